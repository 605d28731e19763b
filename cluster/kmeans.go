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
	"math"
	"math/rand"

	"github.com/chewxy/math32"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gorse-io/simdex/base/log"
	"github.com/gorse-io/simdex/common/blas"
	"github.com/gorse-io/simdex/common/floats"
	"github.com/gorse-io/simdex/common/parallel"
	"github.com/gorse-io/simdex/dataset"
	"github.com/juju/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// KMeans clusters user rows by direction: each user is assigned to the
// centroid with the largest cosine similarity. Returns per-user assignments
// and unit-length centroids. Deterministic given rng.
func KMeans(ctx context.Context, users *dataset.Matrix, k, maxIter, jobs int, rng *rand.Rand) ([]int32, *dataset.Matrix, error) {
	if k < 1 {
		return nil, nil, errors.Errorf("invalid number of clusters %d", k)
	}
	if k > users.Rows {
		return nil, nil, errors.Errorf("%d clusters exceed %d users", k, users.Rows)
	}
	if maxIter < 1 {
		return nil, nil, errors.Errorf("invalid number of iterations %d", maxIter)
	}

	// unit-length float32 copies, zero rows stay zero
	normalized := make([][]float32, users.Rows)
	for i := range normalized {
		normalized[i] = normalize(users.Row(i))
	}

	// seed centroids from distinct user rows
	centroids := make([][]float32, k)
	chosen := mapset.NewSet[int]()
	for c := 0; c < k; {
		seed := rng.Intn(users.Rows)
		if !chosen.Add(seed) {
			continue
		}
		centroids[c] = make([]float32, users.Cols)
		copy(centroids[c], normalized[seed])
		c++
	}

	assignments := make([]int32, users.Rows)
	for i := range assignments {
		assignments[i] = -1
	}
	for it := 0; it < maxIter; it++ {
		// reassign users
		changes := atomic.NewInt32(0)
		_ = parallel.Parallel(ctx, users.Rows, jobs, func(_, i int) error {
			next, nextCos := 0, floats.Dot(normalized[i], centroids[0])
			for c := 1; c < len(centroids); c++ {
				if cos := floats.Dot(normalized[i], centroids[c]); cos > nextCos {
					next = c
					nextCos = cos
				}
			}
			if int32(next) != assignments[i] {
				changes.Inc()
				assignments[i] = int32(next)
			}
			return nil
		})
		if err := ctx.Err(); err != nil {
			return nil, nil, errors.Trace(err)
		}
		log.Logger().Debug("spherical k-means",
			zap.Int("iteration", it),
			zap.Int32("changes", changes.Load()))
		if changes.Load() == 0 {
			break
		}

		// recompute centroids
		counts := make([]int, k)
		for c := range centroids {
			floats.Zero(centroids[c])
		}
		for i, c := range assignments {
			floats.MulConstAdd(normalized[i], 1, centroids[c])
			counts[c]++
		}
		for c := range centroids {
			if counts[c] == 0 {
				// reseed empty clusters
				copy(centroids[c], normalized[rng.Intn(users.Rows)])
				continue
			}
			norm := math32.Sqrt(floats.Dot(centroids[c], centroids[c]))
			if norm > 0 {
				floats.MulConst(centroids[c], 1/norm)
			}
		}
	}

	result := dataset.NewMatrix(k, users.Cols)
	for c := range centroids {
		row := result.Row(c)
		for j, v := range centroids[c] {
			row[j] = float64(v)
		}
	}
	return assignments, result, nil
}

func normalize(row []float64) []float32 {
	norm := math.Sqrt(blas.Ddot(row, row))
	unit := make([]float32, len(row))
	if norm == 0 {
		return unit
	}
	for j, v := range row {
		unit[j] = float32(v / norm)
	}
	return unit
}
