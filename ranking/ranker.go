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
	"context"

	"github.com/gorse-io/simdex/cluster"
	"github.com/gorse-io/simdex/common/parallel"
	"github.com/gorse-io/simdex/dataset"
	"github.com/juju/errors"
	"github.com/schollz/progressbar/v3"
)

// Ranker computes the exact top k items of every user. Clusters are
// independent and scheduled on a worker pool; each worker writes into
// disjoint rows of the output.
type Ranker struct {
	TopK      int
	BatchSize int
	Jobs      int
	Progress  bool
	Collector *Collector
}

// Rank returns a row-major U x K matrix of item ids, best first, indexed by
// the original user row ids.
func (r *Ranker) Rank(ctx context.Context, items *dataset.Matrix, idx *cluster.Index) ([]int32, error) {
	if r.TopK < 1 || r.TopK > items.Rows {
		return nil, errors.Errorf("invalid k %d for %d items", r.TopK, items.Rows)
	}
	if !isPowerOfTwo(r.BatchSize) {
		return nil, errors.Errorf("batch size %d is not a power of two", r.BatchSize)
	}
	if r.Jobs < 1 {
		return nil, errors.Errorf("invalid number of jobs %d", r.Jobs)
	}
	itemNorms := Norms(items)
	out := make([]int32, idx.Users.Rows*r.TopK)
	var bar *progressbar.ProgressBar
	if r.Progress {
		bar = progressbar.Default(int64(idx.NumClusters), "ranking clusters")
	}
	err := parallel.Parallel(ctx, idx.NumClusters, r.Jobs, func(_, c int) error {
		if bar != nil {
			defer func() { _ = bar.Add(1) }()
		}
		members := idx.Members[c]
		if len(members) == 0 {
			return nil
		}
		centroid := idx.Centroids.Row(c)
		thetaICs := Thetas(items, itemNorms, centroid, idx.CentroidNorms[c])
		users := idx.Users.Slice(idx.Offsets[c], idx.Offsets[c+1])
		block := make([]int32, len(members)*r.TopK)
		if err := ComputeTopKForCluster(block, c, centroid, idx.CentroidNorms[c],
			members, users, items, itemNorms, thetaICs,
			r.TopK, r.BatchSize, r.Collector); err != nil {
			return errors.Trace(err)
		}
		// scatter block rows back to the original user row ids
		for ui, user := range members {
			copy(out[int(user)*r.TopK:(int(user)+1)*r.TopK], block[ui*r.TopK:(ui+1)*r.TopK])
		}
		return nil
	})
	return out, errors.Trace(err)
}
