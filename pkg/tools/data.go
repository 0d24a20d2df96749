// Copyright 2025 The Sidekick Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tools

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// dataFrame is a loaded CSV table held in memory between tool calls.
type dataFrame struct {
	columns []string
	rows    [][]string
}

// DataStore holds loaded tables, keyed by name. One store is shared by
// the load and summary tools so a table loaded in one loop iteration can
// be summarized in the next.
type DataStore struct {
	mu     sync.RWMutex
	frames map[string]*dataFrame
}

func NewDataStore() *DataStore {
	return &DataStore{frames: make(map[string]*dataFrame)}
}

// DataLoadCSVTool loads a CSV file into the shared data store.
type DataLoadCSVTool struct {
	store *DataStore
}

// DataSummaryTool reports shape and per-column statistics for a loaded table.
type DataSummaryTool struct {
	store *DataStore
}

func NewDataLoadCSVTool(store *DataStore) *DataLoadCSVTool {
	return &DataLoadCSVTool{store: store}
}

func NewDataSummaryTool(store *DataStore) *DataSummaryTool {
	return &DataSummaryTool{store: store}
}

func (t *DataLoadCSVTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        "data_load_csv",
		Description: "Load a CSV file into memory for analysis",
		Parameters: []ToolParameter{
			{
				Name:        "path",
				Type:        "string",
				Description: "Path to the CSV file",
				Required:    true,
			},
			{
				Name:        "name",
				Type:        "string",
				Description: "Name to store the table under (defaults to the file name)",
				Required:    false,
			},
		},
	}
}

func (t *DataLoadCSVTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	path, err := stringArg(args, "path")
	if err != nil {
		return "", err
	}
	name := optionalStringArg(args, "name", "")
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return "", fmt.Errorf("%w: %s is empty", ErrInvalidArgument, path)
	}

	frame := &dataFrame{
		columns: records[0],
		rows:    records[1:],
	}

	t.store.mu.Lock()
	t.store.frames[name] = frame
	t.store.mu.Unlock()

	return fmt.Sprintf("Loaded '%s': %d rows, %d columns (%s)",
		name, len(frame.rows), len(frame.columns), strings.Join(frame.columns, ", ")), nil
}

func (t *DataSummaryTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        "data_summary",
		Description: "Show a statistical summary of a loaded table",
		Parameters: []ToolParameter{
			{
				Name:        "name",
				Type:        "string",
				Description: "Name of a table loaded with data_load_csv",
				Required:    true,
			},
		},
	}
}

func (t *DataSummaryTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	name, err := stringArg(args, "name")
	if err != nil {
		return "", err
	}

	t.store.mu.RLock()
	frame, ok := t.store.frames[name]
	t.store.mu.RUnlock()
	if !ok {
		var known []string
		t.store.mu.RLock()
		for k := range t.store.frames {
			known = append(known, k)
		}
		t.store.mu.RUnlock()
		sort.Strings(known)
		return "", fmt.Errorf("%w: no table named '%s' (loaded: %v)", ErrInvalidArgument, name, known)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Table '%s': %d rows, %d columns\n", name, len(frame.rows), len(frame.columns))

	for i, col := range frame.columns {
		values := make([]float64, 0, len(frame.rows))
		numeric := true
		for _, row := range frame.rows {
			if i >= len(row) || strings.TrimSpace(row[i]) == "" {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
			if err != nil {
				numeric = false
				break
			}
			values = append(values, v)
		}

		if numeric && len(values) > 0 {
			minV, maxV, mean := describe(values)
			fmt.Fprintf(&sb, "  %s (numeric): min=%g max=%g mean=%.4g\n", col, minV, maxV, mean)
		} else {
			distinct := make(map[string]bool)
			for _, row := range frame.rows {
				if i < len(row) {
					distinct[row[i]] = true
				}
			}
			fmt.Fprintf(&sb, "  %s (text): %d distinct value(s)\n", col, len(distinct))
		}
	}

	return sb.String(), nil
}

func describe(values []float64) (minV, maxV, mean float64) {
	minV, maxV = math.Inf(1), math.Inf(-1)
	var sum float64
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
		sum += v
	}
	return minV, maxV, sum / float64(len(values))
}
