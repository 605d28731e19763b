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
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/juju/errors"
	"go.uber.org/atomic"
)

// UserStats traces the early-termination behaviour of one user.
type UserStats struct {
	Cluster      int
	ThetaUC      float32
	ThetaMax     float32
	ItemsVisited int
	TotalMs      float64
}

// Collector accumulates per-user statistics and writes them as CSV. The
// ranking loop only appends counters; rows are flushed once per cluster, so
// the hot loop never touches the file.
type Collector struct {
	mu      sync.Mutex
	file    *os.File
	writer  *csv.Writer
	visited atomic.Int64
}

// NewCollector creates a collector writing to path.
func NewCollector(path string) (*Collector, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to create %s", path)
	}
	c := &Collector{file: f, writer: csv.NewWriter(f)}
	if err = c.writer.Write([]string{"cluster_id", "theta_uc", "theta_max", "num_items_visited", "total_ms"}); err != nil {
		_ = f.Close()
		return nil, errors.Trace(err)
	}
	return c, nil
}

// Add appends the statistics of one cluster.
func (c *Collector) Add(stats []UserStats) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range stats {
		c.visited.Add(int64(s.ItemsVisited))
		record := []string{
			strconv.Itoa(s.Cluster),
			strconv.FormatFloat(float64(s.ThetaUC), 'g', -1, 32),
			strconv.FormatFloat(float64(s.ThetaMax), 'g', -1, 32),
			strconv.Itoa(s.ItemsVisited),
			strconv.FormatFloat(s.TotalMs, 'g', -1, 64),
		}
		if err := c.writer.Write(record); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// ItemsVisited returns the total number of items scored so far.
func (c *Collector) ItemsVisited() int64 {
	return c.visited.Load()
}

// Close flushes and closes the underlying file.
func (c *Collector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		_ = c.file.Close()
		return errors.Trace(err)
	}
	return errors.Trace(c.file.Close())
}

// AppendTiming writes a one-row timing summary named after baseName, suffixed
// with the current Unix time.
func AppendTiming(baseName, header, row string) (string, error) {
	name := fmt.Sprintf("%s_timing_%d.csv", baseName, time.Now().Unix())
	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return "", errors.Annotatef(err, "failed to open %s", name)
	}
	defer f.Close()
	if _, err = fmt.Fprintf(f, "%s\n%s\n", header, row); err != nil {
		return "", errors.Trace(err)
	}
	return name, nil
}
