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
	"bufio"
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/gorse-io/simdex/base/log"
	"github.com/gorse-io/simdex/common/util"
	"github.com/juju/errors"
	"go.uber.org/zap"
)

// LoadWeights reads a dense weight matrix from a CSV file with one vector per
// row and cols comma-separated values. Spaces and tabs around commas are
// tolerated.
func LoadWeights(path string, rows, cols int) (*Matrix, error) {
	log.Logger().Info("load weights",
		zap.String("path", path),
		zap.Int("rows", rows),
		zap.Int("cols", cols))
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to open %s", path)
	}
	defer f.Close()
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = cols
	m := NewMatrix(rows, cols)
	for i := 0; i < rows; i++ {
		record, err := reader.Read()
		if err != nil {
			return nil, errors.Annotatef(err, "failed to read row %d of %s", i, path)
		}
		row := m.Row(i)
		for j, cell := range record {
			row[j], err = util.ParseFloat[float64](strings.TrimSpace(cell))
			if err != nil {
				return nil, errors.Annotatef(err, "failed to parse row %d column %d of %s", i, j, path)
			}
		}
	}
	return m, nil
}

// LoadAssignments reads one integer per line, the cluster id assigned to each
// of rows users.
func LoadAssignments(path string, rows int) ([]int32, error) {
	log.Logger().Info("load assignments",
		zap.String("path", path),
		zap.Int("rows", rows))
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to open %s", path)
	}
	defer f.Close()
	assignments := make([]int32, 0, rows)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		id, err := util.ParseInt[int32](line)
		if err != nil {
			return nil, errors.Annotatef(err, "failed to parse line %d of %s", len(assignments), path)
		}
		assignments = append(assignments, id)
	}
	if err = scanner.Err(); err != nil {
		return nil, errors.Trace(err)
	}
	if len(assignments) != rows {
		return nil, errors.Errorf("expected %d assignments in %s, found %d", rows, path, len(assignments))
	}
	return assignments, nil
}

// SaveTopK writes a row-major U x K matrix of item ids as CSV, one user per row.
func SaveTopK(path string, topK []int32, k int) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Annotatef(err, "failed to create %s", path)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	record := make([]string, k)
	for begin := 0; begin < len(topK); begin += k {
		for j := 0; j < k; j++ {
			record[j] = strconv.FormatInt(int64(topK[begin+j]), 10)
		}
		if _, err = w.WriteString(strings.Join(record, ",") + "\n"); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(w.Flush())
}
