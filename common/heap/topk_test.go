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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopKFilter(t *testing.T) {
	filter := NewTopKFilter(3)
	filter.Push(10, 2)
	filter.Push(20, 8)
	filter.Push(30, 1)
	assert.Equal(t, []Elem{
		{Id: 20, Score: 8},
		{Id: 10, Score: 2},
		{Id: 30, Score: 1},
	}, filter.PopAll())

	filter = NewTopKFilter(3)
	filter.Push(10, 2)
	filter.Push(20, 8)
	filter.Push(30, 1)
	filter.Push(40, 2)
	filter.Push(50, 5)
	filter.Push(12, 10)
	filter.Push(67, 7)
	filter.Push(32, 9)
	assert.Equal(t, []Elem{
		{Id: 12, Score: 10},
		{Id: 32, Score: 9},
		{Id: 20, Score: 8},
	}, filter.PopAll())
}

func TestTopKFilterTies(t *testing.T) {
	// Equal scores keep the smallest ids.
	filter := NewTopKFilter(2)
	filter.Push(2, 1)
	filter.Push(0, 1)
	filter.Push(1, 1)
	assert.Equal(t, []Elem{
		{Id: 0, Score: 1},
		{Id: 1, Score: 1},
	}, filter.PopAll())

	// Insertion order must not matter.
	filter = NewTopKFilter(2)
	filter.Push(0, 1)
	filter.Push(1, 1)
	filter.Push(2, 1)
	assert.Equal(t, []Elem{
		{Id: 0, Score: 1},
		{Id: 1, Score: 1},
	}, filter.PopAll())
}

func TestTopKFilterMin(t *testing.T) {
	filter := NewTopKFilter(2)
	filter.Push(1, 4)
	assert.Equal(t, Elem{Id: 1, Score: 4}, filter.Min())
	filter.Push(2, 3)
	assert.Equal(t, Elem{Id: 2, Score: 3}, filter.Min())
	filter.Push(3, 5)
	assert.Equal(t, Elem{Id: 1, Score: 4}, filter.Min())
}

func TestTopKFilterNaN(t *testing.T) {
	filter := NewTopKFilter(2)
	assert.Panics(t, func() { filter.Push(1, math.NaN()) })
	assert.Panics(t, func() { NewTopKFilter(0) })
}
