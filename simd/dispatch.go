// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package simd

import (
	"os"
	"strconv"
)

// DispatchLevel represents the SIMD instruction set the current process
// has detected and will size its batch kernels for.
type DispatchLevel int

const (
	// DispatchScalar indicates no SIMD; the scalar fallback is used.
	// The scalar path is the ground truth: every SpMV/SpMM/FMA kernel
	// must agree with it bit-for-bit on integer-valued inputs.
	DispatchScalar DispatchLevel = iota

	// DispatchAVX2 indicates 256-bit x86-64 SIMD.
	DispatchAVX2

	// DispatchAVX512 indicates 512-bit x86-64 SIMD.
	DispatchAVX512

	// DispatchNEON indicates 128-bit ARM SIMD.
	DispatchNEON
)

func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// currentLevel and currentWidth are set once by the init() function in
// dispatch_amd64.go / dispatch_arm64.go / dispatch_other.go.
var (
	currentLevel DispatchLevel
	currentWidth int // SIMD register width in bytes
)

// CurrentLevel returns the SIMD instruction set detected for this process.
func CurrentLevel() DispatchLevel { return currentLevel }

// CurrentName returns a human-readable name for the current SIMD target,
// e.g. "avx512", "neon", "scalar". Printed in the CLI's startup banner.
func CurrentName() string { return currentLevel.String() }

// HasSIMD reports whether hardware SIMD acceleration was detected.
func HasSIMD() bool { return currentLevel != DispatchScalar }

// NoSimdEnv reports whether the HWY_NO_SIMD environment variable requests
// the scalar fallback regardless of detected CPU features. Useful for
// reproducing the scalar ground truth in tests and benchmarks.
func NoSimdEnv() bool {
	val := os.Getenv("HWY_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// MaxLanes returns the number of float32 lanes the current SIMD width can
// hold. Used as the chunk size of Load and PadLanes; the SpMM batch width B
// comes from BatchWidth instead.
func MaxLanes() int {
	if currentWidth == 0 {
		return 1
	}
	return currentWidth / 4
}

// BatchWidth returns the SpMM batch size B used for batching dense vectors:
// B=16 on AVX-512-class hardware (512 bits / 32 bits per float32 lane),
// scaling down gracefully on narrower SIMD.
func BatchWidth() int {
	switch currentLevel {
	case DispatchAVX512:
		return 16
	case DispatchAVX2:
		return 8
	case DispatchNEON:
		return 4
	default:
		return 4
	}
}
