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

// addInPlaceScalar is the byte-at-a-time LevelScalar tier for AddInPlace.
func addInPlaceScalar(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

// mulByScalarScalar is the byte-at-a-time LevelScalar tier for
// MulByScalarInPlace.
func mulByScalarScalar(vec []byte, s byte) {
	mt := &mulTable[s]
	for i, v := range vec {
		vec[i] = mt[v]
	}
}

// fusedMulAddScalar is the byte-at-a-time LevelScalar tier for FusedMulAdd.
func fusedMulAddScalar(dst, src []byte, s byte) {
	mt := &mulTable[s]
	for i, v := range src {
		dst[i] ^= mt[v]
	}
}
