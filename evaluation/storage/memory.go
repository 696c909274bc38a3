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

// Package storage provides the built-in run storage backends: an in-memory
// store for tests and short-lived sessions, and a JSON file store for
// persisted benchmark history.
package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/usafacts/usabench/evaluation"
)

// MemoryStorage is an in-memory implementation of evaluation.Storage.
type MemoryStorage struct {
	mu   sync.RWMutex
	runs map[string]*evaluation.Run
}

// NewMemoryStorage creates a new in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		runs: make(map[string]*evaluation.Run),
	}
}

// SaveRun implements evaluation.Storage.
func (s *MemoryStorage) SaveRun(ctx context.Context, run *evaluation.Run) error {
	if run == nil || run.ID == "" {
		return evaluation.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *run
	s.runs[run.ID] = &copied
	return nil
}

// GetRun implements evaluation.Storage.
func (s *MemoryStorage) GetRun(ctx context.Context, runID string) (*evaluation.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, exists := s.runs[runID]
	if !exists {
		return nil, evaluation.ErrNotFound
	}

	copied := *run
	return &copied, nil
}

// ListRuns implements evaluation.Storage.
func (s *MemoryStorage) ListRuns(ctx context.Context) ([]*evaluation.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]*evaluation.Run, 0, len(s.runs))
	for _, run := range s.runs {
		copied := *run
		runs = append(runs, &copied)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs, nil
}

// DeleteRun implements evaluation.Storage.
func (s *MemoryStorage) DeleteRun(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[runID]; !exists {
		return evaluation.ErrNotFound
	}

	delete(s.runs, runID)
	return nil
}
