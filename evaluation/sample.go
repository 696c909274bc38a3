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

// TaskKind identifies the evaluation task family of a sample.
type TaskKind string

const (
	TaskSQL      TaskKind = "sql"
	TaskFunction TaskKind = "function"
)

// Difficulty tags a sample with its expected hardness.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Call is a structured function invocation: a function name plus a mapping of
// argument names to scalar values. Scoring compares call collections as sets
// keyed by name; no ordering between calls is assumed.
type Call struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// FunctionDecl describes one function available to the model for a sample.
type FunctionDecl struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Sample is one evaluation unit. Kind is immutable once constructed; ground
// truth fields belonging to the other kind are absent and ignored. Samples
// are read-only inputs: validators and the runner never mutate them.
type Sample struct {
	ID         string     `json:"id"`
	Question   string     `json:"question"`
	Kind       TaskKind   `json:"kind"`
	Difficulty Difficulty `json:"difficulty"`
	Context    string     `json:"context,omitempty"`

	// SQL ground truth.
	ReferenceSQL string           `json:"reference_sql,omitempty"`
	ExpectedRows []map[string]any `json:"expected_rows,omitempty"`

	// Function-calling ground truth.
	ExpectedCalls      []Call         `json:"expected_calls,omitempty"`
	AvailableFunctions []FunctionDecl `json:"available_functions,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`
}
