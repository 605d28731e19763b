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

package ranking

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/gorse-io/simdex/common/blas"
	"github.com/gorse-io/simdex/dataset"
)

// Norms returns the L2 norm of every row.
func Norms(m *dataset.Matrix) []float32 {
	norms := make([]float32, m.Rows)
	for i := range norms {
		row := m.Row(i)
		norms[i] = float32(math.Sqrt(blas.Ddot(row, row)))
	}
	return norms
}

// Thetas returns the angle in [0, π] between every row and the centroid.
// Zero-norm rows take angle zero. Cosines are clipped to [-1, 1] before acos
// so that rounding can never produce NaN.
func Thetas(m *dataset.Matrix, norms []float32, centroid []float64, centroidNorm float32) []float32 {
	thetas := make([]float32, m.Rows)
	for i := range thetas {
		if norms[i] == 0 || centroidNorm == 0 {
			continue
		}
		cos := float32(blas.Ddot(m.Row(i), centroid)) / (norms[i] * centroidNorm)
		if cos > 1 {
			cos = 1
		} else if cos < -1 {
			cos = -1
		}
		thetas[i] = math32.Acos(cos)
	}
	return thetas
}
