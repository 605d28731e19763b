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
	"math"

	"github.com/gorse-io/simdex/common/blas"
	"github.com/gorse-io/simdex/dataset"
	"github.com/juju/errors"
)

// Index groups user rows into clusters. User rows are permuted into
// cluster-contiguous blocks so that each cluster can be processed from a
// single dense slice.
type Index struct {
	NumClusters   int
	Centroids     *dataset.Matrix
	CentroidNorms []float32
	Members       [][]int32 // original user row ids per cluster, ascending
	Users         *dataset.Matrix
	Offsets       []int // block boundaries in Users, length NumClusters+1
}

// Build creates a cluster index from per-user assignments. When centroids is
// nil, each centroid is derived as the mean of its member rows.
func Build(users *dataset.Matrix, assignments []int32, centroids *dataset.Matrix) (*Index, error) {
	if users.Rows == 0 {
		return nil, errors.New("empty user matrix")
	}
	if len(assignments) != users.Rows {
		return nil, errors.Errorf("expected %d assignments, got %d", users.Rows, len(assignments))
	}
	numClusters := 0
	for _, c := range assignments {
		if c < 0 {
			return nil, errors.Errorf("negative cluster id %d", c)
		}
		if int(c) >= numClusters {
			numClusters = int(c) + 1
		}
	}
	if centroids != nil {
		if centroids.Cols != users.Cols {
			return nil, errors.Errorf("centroid dimension %d does not match user dimension %d",
				centroids.Cols, users.Cols)
		}
		if centroids.Rows < numClusters {
			return nil, errors.Errorf("assignments reference cluster %d but only %d centroids given",
				numClusters-1, centroids.Rows)
		}
		numClusters = centroids.Rows
	}

	idx := &Index{
		NumClusters: numClusters,
		Members:     make([][]int32, numClusters),
		Offsets:     make([]int, numClusters+1),
	}
	for user, c := range assignments {
		idx.Members[c] = append(idx.Members[c], int32(user))
	}

	// permute user rows into cluster-contiguous blocks
	idx.Users = dataset.NewMatrix(users.Rows, users.Cols)
	offset := 0
	for c, members := range idx.Members {
		idx.Offsets[c] = offset
		for _, user := range members {
			blas.Dcopy(users.Row(int(user)), idx.Users.Row(offset))
			offset++
		}
	}
	idx.Offsets[numClusters] = offset

	if centroids != nil {
		idx.Centroids = centroids
	} else {
		idx.Centroids = dataset.NewMatrix(numClusters, users.Cols)
		for c, members := range idx.Members {
			if len(members) == 0 {
				continue
			}
			centroid := idx.Centroids.Row(c)
			for _, user := range members {
				row := users.Row(int(user))
				for j := range centroid {
					centroid[j] += row[j]
				}
			}
			for j := range centroid {
				centroid[j] /= float64(len(members))
			}
		}
	}

	idx.CentroidNorms = make([]float32, numClusters)
	for c := 0; c < numClusters; c++ {
		row := idx.Centroids.Row(c)
		idx.CentroidNorms[c] = float32(math.Sqrt(blas.Ddot(row, row)))
		if len(idx.Members[c]) > 0 && idx.CentroidNorms[c] == 0 {
			return nil, errors.Errorf("cluster %d has a zero-norm centroid", c)
		}
	}
	return idx, nil
}

// Size returns the number of users in cluster c.
func (idx *Index) Size(c int) int {
	return idx.Offsets[c+1] - idx.Offsets[c]
}
