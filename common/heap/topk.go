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

package heap

import (
	"container/heap"
	"math"
)

// Elem is a scored item.
type Elem struct {
	Id    int32
	Score float64
}

// ranksBelow reports whether a ranks below b. Equal scores rank larger ids
// below smaller ids, so ties resolve to ascending item id.
func ranksBelow(a, b Elem) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.Id > b.Id
}

type _heap struct {
	elems []Elem
}

func (h *_heap) Len() int {
	return len(h.elems)
}

func (h *_heap) Less(i, j int) bool {
	return ranksBelow(h.elems[i], h.elems[j])
}

func (h *_heap) Swap(i, j int) {
	h.elems[i], h.elems[j] = h.elems[j], h.elems[i]
}

func (h *_heap) Push(x interface{}) {
	h.elems = append(h.elems, x.(Elem))
}

func (h *_heap) Pop() interface{} {
	old := h.elems
	item := old[len(old)-1]
	h.elems = old[:len(old)-1]
	return item
}

// TopKFilter keeps the k highest scored items, the lowest ranked at the root.
type TopKFilter struct {
	_heap
	k int
}

// NewTopKFilter creates a top k filter.
func NewTopKFilter(k int) *TopKFilter {
	if k < 1 {
		panic("heap: k must be positive")
	}
	return &TopKFilter{
		_heap: _heap{elems: make([]Elem, 0, k+1)},
		k:     k,
	}
}

// Push pushes an item onto the filter, evicting the lowest ranked item once
// more than k items have been seen. NaN scores are forbidden.
func (filter *TopKFilter) Push(id int32, score float64) {
	if math.IsNaN(score) {
		panic("NaN score is forbidden")
	}
	heap.Push(&filter._heap, Elem{Id: id, Score: score})
	if filter.Len() > filter.k {
		heap.Pop(&filter._heap)
	}
}

// Min returns the lowest ranked item in the filter.
func (filter *TopKFilter) Min() Elem {
	return filter.elems[0]
}

// PopAll pops all items in decreasing rank order.
func (filter *TopKFilter) PopAll() []Elem {
	elems := make([]Elem, filter.Len())
	for i := len(elems) - 1; i >= 0; i-- {
		elems[i] = heap.Pop(&filter._heap).(Elem)
	}
	return elems
}
