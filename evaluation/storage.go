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

package evaluation

import (
	"context"
	"errors"
)

// Common storage errors.
var (
	// ErrNotFound indicates the requested run does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a run with the same ID already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates invalid input parameters.
	ErrInvalidInput = errors.New("invalid input")
)

// Storage defines the interface for persisting benchmark runs.
type Storage interface {
	// SaveRun persists a run. Saving an existing ID overwrites it.
	SaveRun(ctx context.Context, run *Run) error

	// GetRun retrieves a run by ID. Returns ErrNotFound if it does not exist.
	GetRun(ctx context.Context, runID string) (*Run, error)

	// ListRuns returns all stored runs, newest first.
	ListRuns(ctx context.Context) ([]*Run, error)

	// DeleteRun removes a run. Returns ErrNotFound if it does not exist.
	DeleteRun(ctx context.Context, runID string) error
}
