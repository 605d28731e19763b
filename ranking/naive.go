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

	"github.com/gorse-io/simdex/common/blas"
	"github.com/gorse-io/simdex/common/heap"
	"github.com/gorse-io/simdex/common/parallel"
	"github.com/gorse-io/simdex/dataset"
	"github.com/juju/errors"
)

// NaiveTopK scores every user against every item with a blocked matrix
// product and keeps the best k per user. Ties resolve to ascending item id.
func NaiveTopK(ctx context.Context, users, items *dataset.Matrix, k, jobs int) ([]int32, error) {
	if k < 1 || k > items.Rows {
		return nil, errors.Errorf("invalid k %d for %d items", k, items.Rows)
	}
	if users.Cols != items.Cols {
		return nil, errors.Errorf("user dimension %d does not match item dimension %d",
			users.Cols, items.Cols)
	}
	if jobs < 1 {
		return nil, errors.Errorf("invalid number of jobs %d", jobs)
	}
	userIds := make([]int, users.Rows)
	for i := range userIds {
		userIds[i] = i
	}
	chunks := parallel.Split(userIds, jobs)
	out := make([]int32, users.Rows*k)
	err := parallel.Parallel(ctx, len(chunks), jobs, func(_, ci int) error {
		chunk := chunks[ci]
		scores := make([]float64, len(chunk)*items.Rows)
		blas.Dgemm(true, len(chunk), items.Rows, items.Cols,
			users.Data[chunk[0]*users.Cols:], users.Cols,
			items.Data, items.Cols,
			scores, items.Rows)
		for ui, user := range chunk {
			filter := heap.NewTopKFilter(k)
			for j, score := range scores[ui*items.Rows : (ui+1)*items.Rows] {
				filter.Push(int32(j), score)
			}
			for l, elem := range filter.PopAll() {
				out[user*k+l] = elem.Id
			}
		}
		return nil
	})
	return out, errors.Trace(err)
}
