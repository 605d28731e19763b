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
	"time"

	"github.com/gorse-io/simdex/common/blas"
	"github.com/gorse-io/simdex/common/floats"
	"github.com/gorse-io/simdex/common/heap"
	"github.com/gorse-io/simdex/dataset"
	"github.com/juju/errors"
	"modernc.org/mathutil"
)

// ComputeTopKForCluster ranks the top k items for every user of one cluster
// and writes their ids into out, one row of k ids per user, best first.
//
// Items are visited in descending order of the cone bound
// ‖item‖ * cos(max(0, θ_ic - θ_max)). Their exact scores are revealed
// batchSize items at a time: the first batch is a single matrix product
// across the whole cluster, later batches are per-user products since early
// termination thins the users that reach them. A user stops as soon as the
// worst score in its heap reaches the score ceiling of the next item.
//
// userWeights must hold the cluster's rows of the user matrix; userIds lists
// the original row ids of those rows, informational only. thetaICs holds the
// angle of every item to the cluster centroid.
func ComputeTopKForCluster(
	out []int32,
	clusterId int,
	centroid []float64, centroidNorm float32,
	userIds []int32,
	userWeights *dataset.Matrix,
	items *dataset.Matrix,
	itemNorms []float32,
	thetaICs []float32,
	k, batchSize int,
	collector *Collector,
) error {
	numUsers := userWeights.Rows
	numItems := items.Rows
	numFactors := items.Cols
	if numUsers == 0 {
		return nil
	}
	if k < 1 || k > numItems {
		return errors.Errorf("invalid k %d for %d items", k, numItems)
	}
	if !isPowerOfTwo(batchSize) {
		return errors.Errorf("batch size %d is not a power of two", batchSize)
	}
	if userWeights.Cols != numFactors {
		return errors.Errorf("user dimension %d does not match item dimension %d",
			userWeights.Cols, numFactors)
	}
	if len(out) < numUsers*k {
		return errors.Errorf("output holds %d ids, need %d", len(out), numUsers*k)
	}
	if numUsers > math.MaxInt32/batchSize {
		return errors.Errorf("%d users with batch size %d overflow the score buffer index",
			numUsers, batchSize)
	}
	mod := batchSize - 1

	userNorms := Norms(userWeights)
	thetaUCs := Thetas(userWeights, userNorms, centroid, centroidNorm)
	thetaMax := thetaUCs[floats.Argmax(thetaUCs)]
	ub := upperBounds(thetaICs, itemNorms, thetaMax)
	perm := sortIndicesDesc(ub)

	// item rows copied into π-order, extended one batch at a time
	sortedItems := make([]float64, numItems*numFactors)
	sortedUB := make([]float32, numItems)
	usersDotItems := make([]float64, numUsers*batchSize)
	userNormTimesUB := make([]float32, batchSize)
	materialize := func(begin, n int) {
		for l := 0; l < n; l++ {
			id := perm[begin+l]
			sortedUB[begin+l] = ub[id]
			blas.Dcopy(items.Row(int(id)), sortedItems[(begin+l)*numFactors:(begin+l+1)*numFactors])
		}
	}
	firstBatch := mathutil.Min(batchSize, numItems)
	materialize(0, firstBatch)
	batchCounter := firstBatch

	// the first batch is shared by every user in the cluster
	blas.Dgemm(true, numUsers, firstBatch, numFactors,
		userWeights.Data, numFactors,
		sortedItems[:firstBatch*numFactors], numFactors,
		usersDotItems, batchSize)

	var stats []UserStats
	if collector != nil {
		stats = make([]UserStats, 0, numUsers)
	}
	for i := 0; i < numUsers; i++ {
		start := time.Now()
		filter := heap.NewTopKFilter(k)
		floats.MulConstTo(sortedUB[:firstBatch], userNorms[i], userNormTimesUB[:firstBatch])
		j := 0
		for ; j < numItems; j++ {
			if j > 0 && j&mod == 0 {
				if j == batchCounter {
					// first user to reach this batch reveals it
					n := mathutil.Min(batchSize, numItems-batchCounter)
					materialize(batchCounter, n)
					batchCounter += n
				}
				n := mathutil.Min(batchSize, numItems-j)
				blas.Dgemv(n, numFactors, sortedItems[j*numFactors:], numFactors,
					userWeights.Row(i), usersDotItems[i*batchSize:i*batchSize+n])
				floats.MulConstTo(sortedUB[j:j+n], userNorms[i], userNormTimesUB[:n])
			}
			if filter.Len() >= k && filter.Min().Score >= float64(userNormTimesUB[j&mod]) {
				break
			}
			filter.Push(perm[j], usersDotItems[i*batchSize+(j&mod)])
		}
		for l, elem := range filter.PopAll() {
			out[i*k+l] = elem.Id
		}
		if collector != nil {
			stats = append(stats, UserStats{
				Cluster:      clusterId,
				ThetaUC:      thetaUCs[i],
				ThetaMax:     thetaMax,
				ItemsVisited: j,
				TotalMs:      float64(time.Since(start)) / float64(time.Millisecond),
			})
		}
	}
	if collector != nil {
		return errors.Trace(collector.Add(stats))
	}
	return nil
}

func isPowerOfTwo(x int) bool {
	return x > 0 && x&(x-1) == 0
}
