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

import "context"

// Validator scores a raw model response against a sample's ground truth.
// Implementations own extraction as well as scoring, and never fail:
// extraction and execution failures are returned as scored outcomes with
// descriptive detail strings, per the error-isolation contract.
type Validator interface {
	// Validate turns one (sample, response) pair into a scored outcome.
	Validate(ctx context.Context, sample *Sample, response string) Outcome

	// Kind returns the task kind this validator handles.
	Kind() TaskKind
}

// ValidatorConfig provides collaborators and scoring parameters for
// validator construction.
type ValidatorConfig struct {
	// Preset selects the function-call scoring scheme.
	Preset ScoringPreset

	// SQLScoring holds the SQL thresholds and weights; the zero value means
	// DefaultSQLScoring.
	SQLScoring SQLScoringConfig

	// Store is the reference relational data source (text2sql.Store).
	// Declared as any to avoid a circular dependency.
	Store any

	// Executor is the optional live API executor (functioncall.Executor).
	// Declared as any to avoid a circular dependency.
	Executor any
}

// ValidatorFactory creates a validator for a specific task kind.
type ValidatorFactory func(config ValidatorConfig) (Validator, error)
