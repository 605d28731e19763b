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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNaiveTopK(t *testing.T) {
	items := newMatrix(
		[]float64{1, 0},
		[]float64{0, 1},
		[]float64{0.5, 0.5},
		[]float64{-1, -1},
	)
	users := newMatrix(
		[]float64{1, 0},
		[]float64{0.1, 1},
	)
	got, err := NaiveTopK(context.Background(), users, items, 2, 1)
	assert.NoError(t, err)
	// user 0: scores 1, 0, 0.5, -1
	// user 1: scores 0.1, 1, 0.55, -1.1
	assert.Equal(t, []int32{0, 2, 1, 2}, got)

	// same result with more workers than users
	again, err := NaiveTopK(context.Background(), users, items, 2, 8)
	assert.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestNaiveTopKErrors(t *testing.T) {
	users := newMatrix([]float64{1, 0})
	items := newMatrix([]float64{1, 0})
	_, err := NaiveTopK(context.Background(), users, items, 2, 1)
	assert.Error(t, err)
	_, err = NaiveTopK(context.Background(), users, items, 1, 0)
	assert.Error(t, err)
	_, err = NaiveTopK(context.Background(), users, newMatrix([]float64{1, 0, 0}), 1, 1)
	assert.Error(t, err)
}
