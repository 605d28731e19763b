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

package cluster

import (
	"context"
	"math/rand"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gorse-io/simdex/dataset"
	"github.com/stretchr/testify/assert"
)

func newMatrix(rows ...[]float64) *dataset.Matrix {
	m := dataset.NewMatrix(len(rows), len(rows[0]))
	for i, row := range rows {
		copy(m.Row(i), row)
	}
	return m
}

func TestBuild(t *testing.T) {
	users := newMatrix(
		[]float64{1, 0},
		[]float64{0, 1},
		[]float64{2, 0},
		[]float64{0, 2},
	)
	idx, err := Build(users, []int32{0, 1, 0, 1}, nil)
	assert.NoError(t, err)
	assert.Equal(t, 2, idx.NumClusters)
	assert.Equal(t, [][]int32{{0, 2}, {1, 3}}, idx.Members)
	assert.Equal(t, []int{0, 2, 4}, idx.Offsets)
	assert.Equal(t, 2, idx.Size(0))
	// rows permuted into cluster-contiguous blocks
	assert.Equal(t, []float64{1, 0}, idx.Users.Row(0))
	assert.Equal(t, []float64{2, 0}, idx.Users.Row(1))
	assert.Equal(t, []float64{0, 1}, idx.Users.Row(2))
	assert.Equal(t, []float64{0, 2}, idx.Users.Row(3))
	// centroids are member means
	assert.Equal(t, []float64{1.5, 0}, idx.Centroids.Row(0))
	assert.Equal(t, []float64{0, 1.5}, idx.Centroids.Row(1))
	assert.InDelta(t, 1.5, idx.CentroidNorms[0], 1e-6)
}

func TestBuildGivenCentroids(t *testing.T) {
	users := newMatrix([]float64{1, 0}, []float64{0, 1})
	centroids := newMatrix([]float64{0.5, 0.5}, []float64{1, 1}, []float64{0, 3})
	idx, err := Build(users, []int32{0, 0}, centroids)
	assert.NoError(t, err)
	assert.Equal(t, 3, idx.NumClusters)
	assert.Empty(t, idx.Members[2])
	assert.Equal(t, []int{0, 2, 2, 2}, idx.Offsets)
	assert.InDelta(t, 3, idx.CentroidNorms[2], 1e-6)
}

func TestBuildErrors(t *testing.T) {
	users := newMatrix([]float64{1, 0}, []float64{0, 1})
	_, err := Build(users, []int32{0}, nil)
	assert.Error(t, err)
	_, err = Build(users, []int32{0, -1}, nil)
	assert.Error(t, err)
	_, err = Build(dataset.NewMatrix(0, 2), nil, nil)
	assert.Error(t, err)
	// dimension mismatch
	_, err = Build(users, []int32{0, 0}, dataset.NewMatrix(1, 3))
	assert.Error(t, err)
	// missing centroid
	_, err = Build(users, []int32{0, 1}, newMatrix([]float64{1, 0}))
	assert.Error(t, err)
	// opposite users cancel into a zero-norm centroid
	opposite := newMatrix([]float64{1, 0}, []float64{-1, 0})
	_, err = Build(opposite, []int32{0, 0}, nil)
	assert.Error(t, err)
}

func TestKMeans(t *testing.T) {
	// two tight directional bundles
	users := newMatrix(
		[]float64{1, 0.1},
		[]float64{2, 0.1},
		[]float64{0.9, 0},
		[]float64{0.1, 1},
		[]float64{0, 2},
		[]float64{0.1, 0.9},
	)
	rng := rand.New(rand.NewSource(42))
	assignments, centroids, err := KMeans(context.Background(), users, 2, 100, 1, rng)
	assert.NoError(t, err)
	assert.Equal(t, 2, centroids.Rows)
	assert.Equal(t, assignments[0], assignments[1])
	assert.Equal(t, assignments[0], assignments[2])
	assert.Equal(t, assignments[3], assignments[4])
	assert.Equal(t, assignments[3], assignments[5])
	assert.NotEqual(t, assignments[0], assignments[3])
	// centroids are unit length
	for c := 0; c < centroids.Rows; c++ {
		row := centroids.Row(c)
		assert.InDelta(t, 1, row[0]*row[0]+row[1]*row[1], 1e-4)
	}
	// deterministic given the seed
	again, _, err := KMeans(context.Background(), users, 2, 100, 1, rand.New(rand.NewSource(42)))
	assert.NoError(t, err)
	assert.Equal(t, assignments, again)
}

func TestKMeansErrors(t *testing.T) {
	users := newMatrix([]float64{1, 0}, []float64{0, 1})
	rng := rand.New(rand.NewSource(0))
	_, _, err := KMeans(context.Background(), users, 0, 10, 1, rng)
	assert.Error(t, err)
	_, _, err = KMeans(context.Background(), users, 3, 10, 1, rng)
	assert.Error(t, err)
	_, _, err = KMeans(context.Background(), users, 1, 0, 1, rng)
	assert.Error(t, err)
}

func TestKMeansCoversAllUsers(t *testing.T) {
	users := dataset.NewMatrix(50, 4)
	rng := rand.New(rand.NewSource(7))
	for i := range users.Data {
		users.Data[i] = rng.NormFloat64()
	}
	assignments, _, err := KMeans(context.Background(), users, 5, 50, 2, rng)
	assert.NoError(t, err)
	seen := mapset.NewSet[int32]()
	for _, c := range assignments {
		assert.GreaterOrEqual(t, c, int32(0))
		assert.Less(t, c, int32(5))
		seen.Add(c)
	}
	assert.Positive(t, seen.Cardinality())
}
