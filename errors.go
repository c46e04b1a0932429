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

import "errors"

// Construction errors.
var (
	ErrDataLengthZero      = errors.New("rlnc: data length is zero")
	ErrPieceCountZero      = errors.New("rlnc: piece count is zero")
	ErrPieceLengthZero     = errors.New("rlnc: piece byte length is zero")
	ErrPieceLengthTooShort = errors.New("rlnc: full coded piece length is not greater than piece count")
	ErrDataLengthMismatch  = errors.New("rlnc: data length is not a multiple of piece count")
)

// Input-shape errors.
var (
	ErrCodingVectorLengthMismatch = errors.New("rlnc: coding vector length does not match piece count")
	ErrInvalidPieceLength         = errors.New("rlnc: full coded piece has unexpected length")
)

// Flow-control signals. These are expected outcomes of normal operation, not
// bugs; callers branch on them with errors.Is rather than treating them as
// failures.
var (
	ErrPieceNotUseful          = errors.New("rlnc: piece did not increase decoder rank")
	ErrReceivedAllPieces       = errors.New("rlnc: decoder already holds enough pieces to decode")
	ErrNotAllPiecesReceivedYet = errors.New("rlnc: decoder has not received enough useful pieces yet")
	ErrNotEnoughPiecesToRecode = errors.New("rlnc: not enough data to build a recoder")
)

// Data-integrity errors.
var (
	ErrInvalidDecodedDataFormat = errors.New("rlnc: decoded data is missing a valid boundary marker")
)

// ErrDivideByZero is returned by field division when the divisor is zero.
var ErrDivideByZero = errors.New("rlnc: division by zero in GF(2^8)")
