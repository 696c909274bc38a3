// Copyright 2025 Google LLC
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

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/usafacts/usabench/evaluation"
)

// FileStorage persists each run as one JSON document under
// basePath/runs/<runID>.json.
type FileStorage struct {
	mu       sync.RWMutex
	basePath string
}

// NewFileStorage creates a file-based storage rooted at basePath.
func NewFileStorage(basePath string) (*FileStorage, error) {
	if err := os.MkdirAll(filepath.Join(basePath, "runs"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStorage{basePath: basePath}, nil
}

func (s *FileStorage) runPath(runID string) string {
	return filepath.Join(s.basePath, "runs", runID+".json")
}

// SaveRun implements evaluation.Storage.
func (s *FileStorage) SaveRun(ctx context.Context, run *evaluation.Run) error {
	if run == nil || run.ID == "" {
		return evaluation.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}
	if err := os.WriteFile(s.runPath(run.ID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write run file: %w", err)
	}
	return nil
}

// GetRun implements evaluation.Storage.
func (s *FileStorage) GetRun(ctx context.Context, runID string) (*evaluation.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.runPath(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, evaluation.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}

	var run evaluation.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run: %w", err)
	}
	return &run, nil
}

// ListRuns implements evaluation.Storage.
func (s *FileStorage) ListRuns(ctx context.Context) ([]*evaluation.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(filepath.Join(s.basePath, "runs"))
	if err != nil {
		return nil, fmt.Errorf("failed to read storage directory: %w", err)
	}

	var runs []*evaluation.Run
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.basePath, "runs", entry.Name()))
		if err != nil {
			continue
		}
		var run evaluation.Run
		if err := json.Unmarshal(data, &run); err != nil {
			continue
		}
		runs = append(runs, &run)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs, nil
}

// DeleteRun implements evaluation.Storage.
func (s *FileStorage) DeleteRun(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.runPath(runID))
	if os.IsNotExist(err) {
		return evaluation.ErrNotFound
	}
	return err
}
