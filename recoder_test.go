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

import "testing"

func TestNewRecoderRejectsZeroInputs(t *testing.T) {
	if _, err := NewRecoder(nil, 10, 3); err != ErrNotEnoughPiecesToRecode {
		t.Fatalf("expected ErrNotEnoughPiecesToRecode, got %v", err)
	}
	if _, err := NewRecoder([]byte{1, 2, 3}, 0, 3); err != ErrPieceLengthZero {
		t.Fatalf("expected ErrPieceLengthZero, got %v", err)
	}
	if _, err := NewRecoder([]byte{1, 2, 3}, 10, 0); err != ErrPieceCountZero {
		t.Fatalf("expected ErrPieceCountZero, got %v", err)
	}
	if _, err := NewRecoder([]byte{1, 2, 3}, 3, 3); err != ErrPieceLengthTooShort {
		t.Fatalf("expected ErrPieceLengthTooShort, got %v", err)
	}
}

// collectPieces draws n full coded pieces from enc using a fresh
// deterministic source.
func collectPieces(t *testing.T, enc *Encoder, seed uint64, n int) [][]byte {
	t.Helper()
	src := newDeterministicSource(seed)
	pieces := make([][]byte, n)
	for i := 0; i < n; i++ {
		p, err := enc.Code(src)
		if err != nil {
			t.Fatalf("Code: %v", err)
		}
		pieces[i] = p
	}
	return pieces
}

func concatPieces(pieces [][]byte) []byte {
	var out []byte
	for _, p := range pieces {
		out = append(out, p...)
	}
	return out
}

// TestRecoderUselessWhenBuiltFromConsumedPieces implements the negative
// property from scenario 4: a recoder built exclusively from pieces already
// consumed by a decoder can never raise that decoder's rank.
func TestRecoderUselessWhenBuiltFromConsumedPieces(t *testing.T) {
	data := make([]byte, 10*1024)
	for i := range data {
		data[i] = byte(i)
	}

	enc, err := NewEncoder(data, 32)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	dec, err := NewDecoder(enc.PieceByteLen(), enc.PieceCount())
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	pieces := collectPieces(t, enc, 100, 16)
	for _, p := range pieces {
		if err := dec.Decode(p); err != nil {
			t.Fatalf("Decode: %v", err)
		}
	}
	if dec.UsefulCount() != 16 {
		t.Fatalf("expected all 16 pieces to be useful, got %d", dec.UsefulCount())
	}

	recoder, err := NewRecoder(concatPieces(pieces), enc.FullCodedPieceByteLen(), enc.PieceCount())
	if err != nil {
		t.Fatalf("NewRecoder: %v", err)
	}

	recodeSrc := newDeterministicSource(101)
	for i := 0; i < 64; i++ {
		recoded, err := recoder.Recode(recodeSrc)
		if err != nil {
			t.Fatalf("Recode: %v", err)
		}
		if err := dec.Decode(recoded); err != ErrPieceNotUseful {
			t.Fatalf("recoded piece %d: expected ErrPieceNotUseful, got %v", i, err)
		}
	}
}

// TestRecoderProductiveWhenBuiltFromFreshPieces implements scenario 5: a
// recoder built from pieces never shown to a decoder can raise that
// decoder's rank, but never past the pieces' combined span.
func TestRecoderProductiveWhenBuiltFromFreshPieces(t *testing.T) {
	data := make([]byte, 10*1024)
	for i := range data {
		data[i] = byte(i * 7)
	}

	enc, err := NewEncoder(data, 32)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	pieces := collectPieces(t, enc, 200, 16)
	recoder, err := NewRecoder(concatPieces(pieces), enc.FullCodedPieceByteLen(), enc.PieceCount())
	if err != nil {
		t.Fatalf("NewRecoder: %v", err)
	}

	dec, err := NewDecoder(enc.PieceByteLen(), enc.PieceCount())
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	recodeSrc := newDeterministicSource(201)
	for i := 0; i < 64 && dec.UsefulCount() < 16; i++ {
		recoded, err := recoder.Recode(recodeSrc)
		if err != nil {
			t.Fatalf("Recode: %v", err)
		}
		if err := dec.Decode(recoded); err != nil && err != ErrPieceNotUseful {
			t.Fatalf("Decode: %v", err)
		}
	}

	if dec.UsefulCount() == 0 {
		t.Fatalf("expected recoded pieces to raise decoder rank")
	}
	if dec.UsefulCount() > 16 {
		t.Fatalf("decoder rank exceeded the recoder's span: %d > 16", dec.UsefulCount())
	}
	if dec.IsAlreadyDecoded() {
		t.Fatalf("16 independent recoded pieces cannot fully decode K=32")
	}
}

func TestRecoderRecodedPieceHasExpectedShape(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	enc, err := NewEncoder(data, 4)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	pieces := collectPieces(t, enc, 300, 4)
	recoder, err := NewRecoder(concatPieces(pieces), enc.FullCodedPieceByteLen(), enc.PieceCount())
	if err != nil {
		t.Fatalf("NewRecoder: %v", err)
	}
	if recoder.OriginalPieceCount() != 4 {
		t.Fatalf("OriginalPieceCount() = %d, want 4", recoder.OriginalPieceCount())
	}
	if recoder.ReceivedCount() != 4 {
		t.Fatalf("ReceivedCount() = %d, want 4", recoder.ReceivedCount())
	}

	recoded, err := recoder.Recode(newDeterministicSource(301))
	if err != nil {
		t.Fatalf("Recode: %v", err)
	}
	if len(recoded) != enc.FullCodedPieceByteLen() {
		t.Fatalf("recoded piece length = %d, want %d", len(recoded), enc.FullCodedPieceByteLen())
	}
}
