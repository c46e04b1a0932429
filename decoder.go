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

import "sync/atomic"

// Stats holds atomic counters mirroring a Decoder's progress. Unlike the
// Decoder itself, Stats is safe to read concurrently from a goroutine other
// than the one driving Decode, in the spirit of the teacher's kcp.Snmp
// counters (atomic.AddUint64(&DefaultSnmp.X, ...)).
type Stats struct {
	Received atomic.Uint64
	Useful   atomic.Uint64
}

// Decoder accumulates full coded pieces and performs incremental Gaussian
// elimination to recover the original data once it holds pieceCount
// linearly independent pieces. A Decoder is mutated by every Decode call
// and must be driven from a single goroutine at a time; Stats is the one
// exception meant for concurrent observation.
type Decoder struct {
	matrix       *decoderMatrix
	pieceByteLen int
	pieceCount   int
	received     int
	useful       int

	Stats Stats
}

// NewDecoder creates a Decoder expecting pieceCount linearly independent
// pieces, each carrying a pieceByteLen-byte payload. It fails with
// ErrPieceLengthZero or ErrPieceCountZero on zero inputs.
func NewDecoder(pieceByteLen, pieceCount int) (*Decoder, error) {
	if pieceByteLen == 0 {
		return nil, ErrPieceLengthZero
	}
	if pieceCount == 0 {
		return nil, ErrPieceCountZero
	}

	return &Decoder{
		matrix:       newDecoderMatrix(pieceCount, pieceByteLen),
		pieceByteLen: pieceByteLen,
		pieceCount:   pieceCount,
	}, nil
}

// PieceCount returns K, the number of useful pieces required to decode.
func (d *Decoder) PieceCount() int { return d.pieceCount }

// PieceByteLen returns L, the byte length of each original piece.
func (d *Decoder) PieceByteLen() int { return d.pieceByteLen }

// FullCodedPieceByteLen returns K+L, the length a full coded piece must have.
func (d *Decoder) FullCodedPieceByteLen() int { return d.pieceCount + d.pieceByteLen }

// ReceivedCount returns how many pieces Decode has been called with so far,
// useful or not.
func (d *Decoder) ReceivedCount() int { return d.received }

// UsefulCount returns how many linearly independent pieces have been
// received so far; equal to the matrix rank.
func (d *Decoder) UsefulCount() int { return d.useful }

// RemainingCount returns how many more useful pieces are needed to decode.
func (d *Decoder) RemainingCount() int { return d.pieceCount - d.useful }

// IsAlreadyDecoded reports whether enough useful pieces have been received
// to recover the original data.
func (d *Decoder) IsAlreadyDecoded() bool { return d.useful == d.pieceCount }

// Decode folds a full coded piece into the decoder's matrix. It returns
// ErrReceivedAllPieces if decoding is already complete,
// ErrInvalidPieceLength if piece has the wrong length, and
// ErrPieceNotUseful if the piece was linearly dependent on pieces already
// received (in which case received count still increments, per spec).
func (d *Decoder) Decode(piece []byte) error {
	if d.IsAlreadyDecoded() {
		return ErrReceivedAllPieces
	}
	if len(piece) != d.FullCodedPieceByteLen() {
		return ErrInvalidPieceLength
	}

	rankBefore := d.matrix.rank()

	if err := d.matrix.addRow(piece); err != nil {
		return err
	}
	d.matrix.rref()
	d.received++
	d.Stats.Received.Add(1)

	rankAfter := d.matrix.rank()
	if rankAfter == rankBefore {
		return ErrPieceNotUseful
	}

	d.useful = rankAfter
	d.Stats.Useful.Store(uint64(d.useful))
	return nil
}

// GetDecodedData recovers the original data. It consumes the Decoder: after
// a successful or failed call, the Decoder must not be used again. It
// returns ErrNotAllPiecesReceivedYet if decoding is incomplete, or
// ErrInvalidDecodedDataFormat if the recovered bytes don't carry a valid
// boundary marker.
func (d *Decoder) GetDecodedData() ([]byte, error) {
	if !d.IsAlreadyDecoded() {
		return nil, ErrNotAllPiecesReceivedYet
	}

	fullLen := d.FullCodedPieceByteLen()
	data := d.matrix.extractData()

	decoded := make([]byte, 0, d.pieceByteLen*d.pieceCount)
	for off := 0; off+fullLen <= len(data); off += fullLen {
		decoded = append(decoded, data[off+d.pieceCount:off+fullLen]...)
	}

	lastIdx := len(decoded) - 1
	markerIdx := -1
	for i := lastIdx; i >= 0; i-- {
		if decoded[i] == boundaryMarker {
			markerIdx = i
			break
		}
	}
	if markerIdx <= 0 {
		return nil, ErrInvalidDecodedDataFormat
	}
	for _, b := range decoded[markerIdx+1:] {
		if b != 0 {
			return nil, ErrInvalidDecodedDataFormat
		}
	}

	return decoded[:markerIdx], nil
}
