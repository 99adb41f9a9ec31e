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

// This file provides layout helpers for the row-major interleaved buffers
// used by the SpMM kernel: X and Y arrive column-major and are converted to
// stride-B row-major layout so a batch of B columns can be updated with one
// FMA per non-zero instead of B separate SpMV passes.

// PadLanes rounds n up to the next multiple of the current SIMD width's
// lane count, so a per-row block of B lanes never spans a partial tail
// vector register.
func PadLanes(n int) int {
	lanes := MaxLanes()
	if lanes <= 1 {
		return n
	}
	rem := n % lanes
	if rem == 0 {
		return n
	}
	return n + (lanes - rem)
}

// InterleaveColumnMajor converts B column-major dense vectors of length n
// (src[k*n+v] is column k, row v) into row-major interleaved layout of
// stride B (dst[v*B+k]), as required before calling a batched SpMM kernel.
// dst must have length >= n*B.
func InterleaveColumnMajor(src []float32, n, b int, dst []float32) {
	for k := range b {
		col := src[k*n : (k+1)*n]
		for v, x := range col {
			dst[v*b+k] = x
		}
	}
}

// DeinterleaveToColumnMajor is the inverse of InterleaveColumnMajor: it
// accumulates a stride-B row-major buffer back into B column-major dense
// vectors (dst[k*n+v] += src[v*b+k]), matching the SpMM kernel's
// caller-zeroed, accumulate-only contract. dst must have length >= n*B.
func DeinterleaveToColumnMajor(src []float32, n, b int, dst []float32) {
	for k := range b {
		col := dst[k*n : (k+1)*n]
		for v := range col {
			col[v] += src[v*b+k]
		}
	}
}
