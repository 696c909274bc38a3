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

import "time"

// EvalStatus represents the evaluation outcome of one sample.
type EvalStatus string

const (
	EvalStatusPassed EvalStatus = "PASSED"
	EvalStatusFailed EvalStatus = "FAILED"
	EvalStatusError  EvalStatus = "ERROR"
)

// Component score names shared by validators, storage, and reports. The
// names and numeric ranges are part of the stable output contract.
const (
	ComponentSelection         = "function_selection_accuracy"
	ComponentParameters        = "parameter_accuracy"
	ComponentExecution         = "execution_success"
	ComponentResult            = "result_accuracy"
	ComponentExecutionAccuracy = "execution_accuracy"
	ComponentResultCorrectness = "result_correctness"
)

// ComponentScore is one named sub-metric. It is produced once per metric and
// never mutated afterwards.
type ComponentScore struct {
	Pass    bool    `json:"pass"`
	Score   float64 `json:"score"`
	Details string  `json:"details,omitempty"`
}

// Outcome is the scored portion of a result record: what a Validator
// produces for one (sample, response) pair.
type Outcome struct {
	Passed     bool                      `json:"passed"`
	Score      float64                   `json:"score"`
	Components map[string]ComponentScore `json:"components,omitempty"`
	Error      string                    `json:"error,omitempty"`
}

// ResultRecord is the output of evaluating one sample. It is created once by
// the runner, immutable thereafter, and consumed only by the aggregator and
// storage backends.
type ResultRecord struct {
	SampleID   string     `json:"sample_id"`
	Question   string     `json:"question"`
	Kind       TaskKind   `json:"kind"`
	Difficulty Difficulty `json:"difficulty"`

	ModelResponse string `json:"model_response"`

	Passed     bool                      `json:"is_correct"`
	Score      float64                   `json:"score"`
	Components map[string]ComponentScore `json:"components,omitempty"`

	ErrorMessage string `json:"error_message,omitempty"`

	ElapsedMs int64     `json:"elapsed_ms"`
	Timestamp time.Time `json:"timestamp"`
}

// Status reports the record's outcome as an EvalStatus.
func (r *ResultRecord) Status() EvalStatus {
	switch {
	case r.ErrorMessage != "":
		return EvalStatusError
	case r.Passed:
		return EvalStatusPassed
	default:
		return EvalStatusFailed
	}
}

// Run groups the records and aggregate statistics of one benchmark run.
type Run struct {
	ID        string         `json:"run_id"`
	Name      string         `json:"name,omitempty"`
	Model     string         `json:"model"`
	CreatedAt time.Time      `json:"created_at"`
	Records   []ResultRecord `json:"records"`
	Stats     Stats          `json:"stats"`
}
