// Copyright 2026 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package blas implements the 64-bit routines used by the ranking engine.
// All matrices are dense and row-major.
package blas

// Ddot computes the inner product of two vectors.
func Ddot(x, y []float64) (ret float64) {
	if len(x) != len(y) {
		panic("blas: vector lengths do not match")
	}
	for i := range x {
		ret += x[i] * y[i]
	}
	return
}

// Dcopy copies x into dst.
func Dcopy(x, dst []float64) {
	if len(x) != len(dst) {
		panic("blas: vector lengths do not match")
	}
	copy(dst, x)
}

// Dgemv computes y = A * x for an m x n matrix A with leading dimension lda.
func Dgemv(m, n int, a []float64, lda int, x, y []float64) {
	if len(x) < n || len(y) < m {
		panic("blas: vector lengths do not match")
	}
	for i := 0; i < m; i++ {
		y[i] = Ddot(a[i*lda:i*lda+n], x[:n])
	}
}

// Dgemm computes C = A * op(B) where A is m x k with leading dimension lda,
// op(B) is k x n, and C is m x n with leading dimension ldc. When transB is
// true, B is stored as n x k and multiplied transposed.
func Dgemm(transB bool, m, n, k int, a []float64, lda int, b []float64, ldb int, c []float64, ldc int) {
	if transB {
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				c[i*ldc+j] = Ddot(a[i*lda:i*lda+k], b[j*ldb:j*ldb+k])
			}
		}
	} else {
		for i := 0; i < m; i++ {
			ci := c[i*ldc : i*ldc+n]
			for j := range ci {
				ci[j] = 0
			}
			for l := 0; l < k; l++ {
				// C_i += A_{il} * B_l
				ail := a[i*lda+l]
				bl := b[l*ldb : l*ldb+n]
				for j := range ci {
					ci[j] += ail * bl[j]
				}
			}
		}
	}
}
