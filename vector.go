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

import (
	"github.com/klauspost/cpuid/v2"
	"github.com/klauspost/reedsolomon"
)

// Level identifies which lane-width tier of the vector kernels this process
// selected at startup, for observability/diagnostics. The kernels
// themselves are backed by klauspost/reedsolomon's LowLevel API below,
// which performs its own internal AVX2/SSSE3/NEON dispatch. Level decides
// one thing itself: on LevelScalar hosts the kernels skip reedsolomon and
// run the pure-Go loops in vector_scalar.go.
type Level int

const (
	LevelScalar Level = iota
	LevelSSSE3NEON
	LevelAVX2
)

func (l Level) String() string {
	switch l {
	case LevelAVX2:
		return "avx2"
	case LevelSSSE3NEON:
		return "ssse3/neon"
	default:
		return "scalar"
	}
}

// level is resolved once at process start, mirroring the vendored
// klauspost/reedsolomon options.go pattern of building a defaultOptions
// struct from cpuid.CPU.Supports(...) in package init.
var level = detectLevel()

func detectLevel() Level {
	if cpuid.CPU.Supports(cpuid.AVX2) {
		return LevelAVX2
	}
	if cpuid.CPU.Supports(cpuid.SSSE3) || cpuid.CPU.Supports(cpuid.ASIMD) {
		return LevelSSSE3NEON
	}
	return LevelScalar
}

// DetectedLevel reports which vector-kernel tier this process selected at
// startup, for observability/diagnostics.
func DetectedLevel() Level { return level }

// lowLevel is the zero-value handle onto klauspost/reedsolomon's low-level
// GF(2^8) slice kernels (mulslice.go): GalMulSlice/GalMulSliceXor carry
// real AVX2/SSSE3/NEON assembly, dispatched internally through the same
// cpuid.CPU.Supports(...) pattern detectLevel mirrors above. The zero value
// is usable directly (LowLevel.options() falls back to reedsolomon's own
// defaultOptions).
var lowLevel reedsolomon.LowLevel

// AddInPlace computes dst[i] ^= src[i] for i < min(len(dst), len(src)).
// On SIMD-capable hosts this runs through reedsolomon's GalMulSliceXor with
// c==1, which routes to its assembly-backed sliceXor; LevelScalar hosts use
// the pure-Go fallback.
func AddInPlace(dst, src []byte) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	dst = dst[:n]
	src = src[:n]
	if n == 0 {
		return
	}

	if level == LevelScalar {
		addInPlaceScalar(dst, src)
		return
	}
	lowLevel.GalMulSliceXor(1, src, dst)
}

// MulByScalarInPlace computes vec[i] = gfMul(vec[i], s) for every byte,
// fast-pathing the identity cases s==0 (zero fill) and s==1 (no-op).
// Everything else routes through reedsolomon's GalMulSlice on SIMD-capable
// hosts; the pure-Go table lookup in vector_scalar.go is the genuine
// scalar-tier fallback.
func MulByScalarInPlace(vec []byte, s byte) {
	if len(vec) == 0 {
		return
	}
	if s == 0 {
		for i := range vec {
			vec[i] = 0
		}
		return
	}
	if s == 1 {
		return
	}

	if level == LevelScalar {
		mulByScalarScalar(vec, s)
		return
	}
	lowLevel.GalMulSlice(s, vec, vec)
}

// FusedMulAdd computes dst[i] ^= gfMul(src[i], s) for i < min(len(dst), len(src)),
// fast-pathing s==0 (no-op) and s==1 (plain XOR, via AddInPlace). Everything
// else routes through reedsolomon's GalMulSliceXor on SIMD-capable hosts.
func FusedMulAdd(dst, src []byte, s byte) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	dst = dst[:n]
	src = src[:n]

	if n == 0 || s == 0 {
		return
	}
	if s == 1 {
		AddInPlace(dst, src)
		return
	}

	if level == LevelScalar {
		fusedMulAddScalar(dst, src, s)
		return
	}
	lowLevel.GalMulSliceXor(s, src, dst)
}
