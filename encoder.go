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

// boundaryMarker demarcates the end of original data from the zero padding
// an Encoder appends to fill out the last piece. Once this byte is seen
// (scanning from the end, see Decoder.GetDecodedData), every byte after it
// must be zero.
const boundaryMarker = 0x81

// Encoder holds a piece of data, already split (and zero-padded) into
// pieceCount pieces, and emits coded pieces that are random linear
// combinations of those pieces. An Encoder is immutable after construction
// and safe for concurrent use by multiple goroutines: Code/CodeWithCodingVector
// only read encoder state and allocate a fresh output buffer per call.
type Encoder struct {
	data         []byte // pieceCount * pieceByteLen bytes
	pieceCount   int
	pieceByteLen int
}

// NewEncoder splits data into pieceCount pieces, appending a boundary
// marker and zero padding so the data divides evenly. It fails with
// ErrDataLengthZero if data is empty, or ErrPieceCountZero if pieceCount is
// zero.
func NewEncoder(data []byte, pieceCount int) (*Encoder, error) {
	if len(data) == 0 {
		return nil, ErrDataLengthZero
	}
	if pieceCount == 0 {
		return nil, ErrPieceCountZero
	}

	inLen := len(data)
	pieceByteLen := ceilDiv(inLen+1, pieceCount)
	padded := make([]byte, pieceCount*pieceByteLen)
	copy(padded, data)
	padded[inLen] = boundaryMarker

	return &Encoder{data: padded, pieceCount: pieceCount, pieceByteLen: pieceByteLen}, nil
}

// withoutPadding builds an Encoder over data that is already an exact
// multiple of pieceCount bytes, with no boundary marker appended. It backs
// the Recoder's internal re-encoding over received coded payloads.
func withoutPadding(data []byte, pieceCount int) (*Encoder, error) {
	if len(data) == 0 {
		return nil, ErrDataLengthZero
	}
	if pieceCount == 0 {
		return nil, ErrPieceCountZero
	}

	pieceByteLen := len(data) / pieceCount
	if pieceByteLen*pieceCount != len(data) {
		return nil, ErrDataLengthMismatch
	}

	return &Encoder{data: data, pieceCount: pieceCount, pieceByteLen: pieceByteLen}, nil
}

// PieceCount returns K, the number of pieces the data was split into.
func (e *Encoder) PieceCount() int { return e.pieceCount }

// PieceByteLen returns L, the byte length of each piece.
func (e *Encoder) PieceByteLen() int { return e.pieceByteLen }

// FullCodedPieceByteLen returns K+L, the length of a full coded piece.
func (e *Encoder) FullCodedPieceByteLen() int { return e.pieceCount + e.pieceByteLen }

// CodeWithCodingVector produces a full coded piece (coding vector followed
// by the resulting payload) using the caller-supplied coding vector. It
// fails with ErrCodingVectorLengthMismatch if len(vec) != PieceCount().
func (e *Encoder) CodeWithCodingVector(vec []byte) ([]byte, error) {
	if len(vec) != e.pieceCount {
		return nil, ErrCodingVectorLengthMismatch
	}

	out := make([]byte, e.FullCodedPieceByteLen())
	copy(out, vec)
	payload := out[e.pieceCount:]

	for i, c := range vec {
		if c == 0 {
			continue
		}
		piece := e.data[i*e.pieceByteLen : (i+1)*e.pieceByteLen]
		FusedMulAdd(payload, piece, c)
	}

	return out, nil
}

// Code samples a uniformly random coding vector of length PieceCount() from
// rand and returns the resulting full coded piece.
func (e *Encoder) Code(rand io.Reader) ([]byte, error) {
	vec := make([]byte, e.pieceCount)
	if _, err := io.ReadFull(rand, vec); err != nil {
		return nil, err
	}
	return e.CodeWithCodingVector(vec)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
