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

// Matrix is a dense row-major matrix of 64-bit floats.
type Matrix struct {
	Rows int
	Cols int
	Data []float64
}

// NewMatrix creates a zero matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{
		Rows: rows,
		Cols: cols,
		Data: make([]float64, rows*cols),
	}
}

// Row returns the i-th row.
func (m *Matrix) Row(i int) []float64 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// Slice returns a view of rows [begin, end). The view shares storage with m.
func (m *Matrix) Slice(begin, end int) *Matrix {
	return &Matrix{
		Rows: end - begin,
		Cols: m.Cols,
		Data: m.Data[begin*m.Cols : end*m.Cols],
	}
}
