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

package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestMatrix(t *testing.T) {
	m := NewMatrix(2, 3)
	copy(m.Row(1), []float64{1, 2, 3})
	assert.Equal(t, []float64{0, 0, 0}, m.Row(0))
	assert.Equal(t, []float64{1, 2, 3}, m.Row(1))
	view := m.Slice(1, 2)
	assert.Equal(t, 1, view.Rows)
	assert.Equal(t, []float64{1, 2, 3}, view.Row(0))
	view.Row(0)[0] = 7
	assert.Equal(t, 7.0, m.Row(1)[0])
}

func TestLoadWeights(t *testing.T) {
	path := writeFile(t, "weights.csv", "1.5,2.5,3.5\n-1,0,1\n")
	m, err := LoadWeights(path, 2, 3)
	assert.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, m.Row(0))
	assert.Equal(t, []float64{-1, 0, 1}, m.Row(1))
}

func TestLoadWeightsWhitespace(t *testing.T) {
	path := writeFile(t, "weights.csv", "1.5 ,\t2.5 , 3.5\n -1,0 ,\t1\n")
	m, err := LoadWeights(path, 2, 3)
	assert.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, m.Row(0))
	assert.Equal(t, []float64{-1, 0, 1}, m.Row(1))
}

func TestLoadWeightsErrors(t *testing.T) {
	_, err := LoadWeights("no_such_file.csv", 1, 1)
	assert.Error(t, err)
	// short file
	path := writeFile(t, "short.csv", "1,2,3\n")
	_, err = LoadWeights(path, 2, 3)
	assert.Error(t, err)
	// short row
	path = writeFile(t, "ragged.csv", "1,2,3\n4,5\n")
	_, err = LoadWeights(path, 2, 3)
	assert.Error(t, err)
	// bad cell
	path = writeFile(t, "bad.csv", "1,x,3\n")
	_, err = LoadWeights(path, 1, 3)
	assert.Error(t, err)
}

func TestLoadAssignments(t *testing.T) {
	path := writeFile(t, "assignments.csv", "0\n1\n1\n0\n")
	assignments, err := LoadAssignments(path, 4)
	assert.NoError(t, err)
	assert.Equal(t, []int32{0, 1, 1, 0}, assignments)

	_, err = LoadAssignments(path, 5)
	assert.Error(t, err)
	_, err = LoadAssignments("no_such_file.csv", 4)
	assert.Error(t, err)
}

func TestSaveTopK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topk.csv")
	assert.NoError(t, SaveTopK(path, []int32{3, 1, 2, 0}, 2))
	content, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "3,1\n2,0\n", string(content))
}
