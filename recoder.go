// The MIT License (MIT)
//
// # Copyright (c) 2024 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package rlnc

import "io"

// Recoder retains a batch of received full coded pieces and their coding
// vectors, and produces new full coded pieces that are random linear
// combinations of the received ones — re-expressed in the original K-piece
// basis so a downstream Decoder can treat recoded and directly-coded pieces
// uniformly. A Recoder is immutable after construction and safe for
// concurrent use, like Encoder.
type Recoder struct {
	codingVectors     []byte // receivedCount * pieceCount bytes, row-major
	encoder           *Encoder
	receivedCount     int
	fullCodedPieceLen int
	pieceCount        int
}

// NewRecoder builds a Recoder from data, a concatenation of full coded
// pieces each fullCodedPieceByteLen bytes long, where the leading
// pieceCount bytes of each are its coding vector. It fails with
// ErrNotEnoughPiecesToRecode if data is empty, ErrPieceLengthZero /
// ErrPieceCountZero on zero inputs, or ErrPieceLengthTooShort if
// fullCodedPieceByteLen <= pieceCount.
func NewRecoder(data []byte, fullCodedPieceByteLen, pieceCount int) (*Recoder, error) {
	if len(data) == 0 {
		return nil, ErrNotEnoughPiecesToRecode
	}
	if fullCodedPieceByteLen == 0 {
		return nil, ErrPieceLengthZero
	}
	if pieceCount == 0 {
		return nil, ErrPieceCountZero
	}
	if fullCodedPieceByteLen <= pieceCount {
		return nil, ErrPieceLengthTooShort
	}

	pieceByteLen := fullCodedPieceByteLen - pieceCount
	receivedCount := len(data) / fullCodedPieceByteLen
	if receivedCount == 0 {
		return nil, ErrNotEnoughPiecesToRecode
	}

	codingVectors := make([]byte, 0, receivedCount*pieceCount)
	payloads := make([]byte, 0, receivedCount*pieceByteLen)

	for off := 0; off+fullCodedPieceByteLen <= len(data); off += fullCodedPieceByteLen {
		full := data[off : off+fullCodedPieceByteLen]
		codingVectors = append(codingVectors, full[:pieceCount]...)
		payloads = append(payloads, full[pieceCount:]...)
	}

	encoder, err := withoutPadding(payloads, receivedCount)
	if err != nil {
		return nil, err
	}

	return &Recoder{
		codingVectors:     codingVectors,
		encoder:           encoder,
		receivedCount:     receivedCount,
		fullCodedPieceLen: fullCodedPieceByteLen,
		pieceCount:        pieceCount,
	}, nil
}

// OriginalPieceCount returns K, the number of pieces the source data was
// originally split into.
func (r *Recoder) OriginalPieceCount() int { return r.pieceCount }

// ReceivedCount returns R, the number of coded pieces folded into this
// Recoder.
func (r *Recoder) ReceivedCount() int { return r.receivedCount }

// PieceByteLen returns L, the payload byte length of a full coded piece.
func (r *Recoder) PieceByteLen() int { return r.fullCodedPieceLen - r.pieceCount }

// FullCodedPieceByteLen returns K+L, the length of a full coded piece.
func (r *Recoder) FullCodedPieceByteLen() int { return r.fullCodedPieceLen }

// Recode samples a random recoding vector of length ReceivedCount() and
// produces a new full coded piece whose coefficients are re-expressed in
// the original K-piece basis.
func (r *Recoder) Recode(rand io.Reader) ([]byte, error) {
	recodingVec := make([]byte, r.receivedCount)
	if _, err := io.ReadFull(rand, recodingVec); err != nil {
		return nil, err
	}

	sourceVec := make([]byte, r.pieceCount)
	for k, rk := range recodingVec {
		if rk == 0 {
			continue
		}
		row := r.codingVectors[k*r.pieceCount : (k+1)*r.pieceCount]
		FusedMulAdd(sourceVec, row, rk)
	}

	// The inner encoder treats the received payloads as its own source
	// pieces, so coding with recodingVec produces sum_k rk*payload[k] in
	// its payload region; its own coefficient prefix is discarded.
	innerPiece, err := r.encoder.CodeWithCodingVector(recodingVec)
	if err != nil {
		return nil, err
	}

	out := make([]byte, r.fullCodedPieceLen)
	copy(out, sourceVec)
	copy(out[r.pieceCount:], innerPiece[r.receivedCount:])
	return out, nil
}
