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

// Package simd provides the portable, runtime-dispatched vector primitives
// that the graph and counttable packages build their SpMV/SpMM/FMA kernels
// on top of. It follows the Highway C++ library's design philosophy: write
// once, run optimally everywhere — operations pick the best available batch
// width for the current CPU (AVX2, AVX-512, NEON) and fall back to a scalar
// ground truth when none is available or HWY_NO_SIMD is set.
//
// Unlike a general-purpose SIMD library, this package only deals in the two
// element types the counting engine actually needs: float32 (the per-vertex
// table columns) and float64 (the root subtemplate's accumulation buffer,
// which needs the extra precision of a full-graph reduction).
package simd

// Floats is a constraint for the floating-point types used by the counting
// engine: float32 for per-vertex table columns, float64 for the root
// subtemplate's double-precision accumulator.
type Floats interface {
	~float32 | ~float64
}

// Vec is a portable vector handle wrapping a contiguous run of lanes.
// Vec instances should not be constructed directly; use Load, Set, or Zero.
type Vec[T Floats] struct {
	data []T
}

// NumLanes returns the number of lanes held by this vector.
func (v Vec[T]) NumLanes() int {
	return len(v.data)
}

// Data returns the underlying slice representation of the vector. Intended
// for tests; performance-sensitive code should prefer Store.
func (v Vec[T]) Data() []T {
	return v.data
}
