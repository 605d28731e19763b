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
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/gorse-io/simdex/common/blas"
	"github.com/gorse-io/simdex/dataset"
	"github.com/stretchr/testify/assert"
)

func TestUpperBounds(t *testing.T) {
	thetaICs := []float32{0, math32.Pi / 4, math32.Pi / 2, math32.Pi}
	itemNorms := []float32{1, 2, 3, 4}
	ub := upperBounds(thetaICs, itemNorms, math32.Pi/4)
	// angles within theta max clamp to zero, leaving the full norm
	assert.InDelta(t, 1, ub[0], 1e-6)
	assert.InDelta(t, 2, ub[1], 1e-6)
	assert.InDelta(t, 3*math32.Cos(math32.Pi/4), ub[2], 1e-6)
	assert.InDelta(t, 4*math32.Cos(3*math32.Pi/4), ub[3], 1e-6)
}

func TestSortIndicesDesc(t *testing.T) {
	perm := sortIndicesDesc([]float32{1, 3, 2})
	assert.Equal(t, []int32{1, 2, 0}, perm)
	// ties break by ascending index
	perm = sortIndicesDesc([]float32{2, 3, 2, 3})
	assert.Equal(t, []int32{1, 3, 0, 2}, perm)
}

// Every score is bounded by ‖u‖ * ub[i].
func TestUpperBoundValidity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	users := dataset.NewMatrix(20, 8)
	items := dataset.NewMatrix(50, 8)
	for i := range users.Data {
		users.Data[i] = rng.NormFloat64()
	}
	for i := range items.Data {
		items.Data[i] = rng.NormFloat64()
	}
	centroid := make([]float64, 8)
	for _, i := range []int{0, 3, 7} {
		row := users.Row(i)
		for j := range centroid {
			centroid[j] += row[j] / 3
		}
	}
	centroidNorm := float32(0)
	for _, v := range centroid {
		centroidNorm += float32(v * v)
	}
	centroidNorm = math32.Sqrt(centroidNorm)

	userNorms := Norms(users)
	itemNorms := Norms(items)
	thetaUCs := Thetas(users, userNorms, centroid, centroidNorm)
	thetaICs := Thetas(items, itemNorms, centroid, centroidNorm)
	thetaMax := float32(0)
	for _, theta := range thetaUCs {
		if theta > thetaMax {
			thetaMax = theta
		}
	}
	ub := upperBounds(thetaICs, itemNorms, thetaMax)
	for u := 0; u < users.Rows; u++ {
		for i := 0; i < items.Rows; i++ {
			score := blas.Ddot(users.Row(u), items.Row(i))
			ceiling := float64(userNorms[u]) * float64(ub[i])
			assert.LessOrEqual(t, score, ceiling+1e-4)
		}
	}
}
