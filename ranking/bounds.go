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
	"sort"

	"github.com/gorse-io/simdex/common/floats"
)

// upperBounds builds ub[i] = ‖item_i‖ * cos(max(0, θ_ic - θ_max)). For any
// user u in the cluster, u · item_i never exceeds ‖u‖ * ub[i].
func upperBounds(thetaICs, itemNorms []float32, thetaMax float32) []float32 {
	ub := make([]float32, len(thetaICs))
	floats.SubConstTo(thetaICs, thetaMax, ub)
	floats.ThresholdBelow(ub, 0)
	floats.CosTo(ub, ub)
	floats.MulTo(ub, itemNorms, ub)
	return ub
}

// sortIndicesDesc returns the index permutation that sorts values in
// descending order, ties by ascending index.
func sortIndicesDesc(values []float32) []int32 {
	indices := make([]int32, len(values))
	for i := range indices {
		indices[i] = int32(i)
	}
	sort.Slice(indices, func(i, j int) bool {
		a, b := indices[i], indices[j]
		if values[a] != values[b] {
			return values[a] > values[b]
		}
		return a < b
	})
	return indices
}
