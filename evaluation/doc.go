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

// Package evaluation provides the core types and scoring framework for
// benchmarking language models on natural-language-to-SQL generation and
// function-call selection over government economic data.
//
// # Core Concepts
//
// Sample: one evaluation unit — a question, its task kind (sql or function),
// a difficulty tag, and the task-specific ground truth.
//
// Validator: interface for task-specific scoring logic. A validator turns a
// raw model response into a scored Outcome; it never returns an error, since
// extraction and execution failures are scored outcomes, not faults.
//
// ResultRecord: the immutable per-sample output consumed by the aggregator
// and by storage backends.
//
// ComponentScore: one named sub-metric (pass flag, score in [0,1], and a
// human-readable detail string).
//
// # Task Kinds
//
// SQL tasks extract a single SQL statement from the model response, execute
// it against the reference SQLite store, and compare the result set to the
// expected rows using value-only, order-independent comparison. Two gated
// components are produced:
//
//   - execution_accuracy: 1.0 if the candidate executes, 0.0 otherwise
//   - result_correctness: similarity of the returned rows to the expected rows
//
// Function tasks extract structured calls from the model response and compare
// them to the expected call sequence across four components:
//
//   - function_selection_accuracy: name-set agreement
//   - parameter_accuracy: tolerance-aware argument agreement
//   - execution_success: well-formedness, or live API round-trips
//   - result_accuracy: meaningful-payload rate, or a derived estimate
//
// # Scoring Presets
//
// Two historically separate function-call scoring schemes are exposed as
// named presets of one parameterized scorer:
//
//   - weighted: components weighted 0.3/0.3/0.2/0.2, F1 name selection,
//     pass when selection >= 0.8 and parameters >= 0.6 (the default)
//   - binary: equal 0.25 weights, exact name-set selection,
//     pass when the overall score >= 0.75
//
// # Registry Pattern
//
// Validators are created through a registry keyed by task kind:
//
//	evaluation.Register(evaluation.TaskSQL, text2sql.NewValidator)
//	validator, err := evaluation.CreateValidator(evaluation.TaskSQL, cfg)
package evaluation
