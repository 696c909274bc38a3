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

package text2sql

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/usafacts/usabench/evaluation"
	"github.com/usafacts/usabench/evaluation/extract"
)

// Scorer runs predicted SQL and compares its rows to the expected rows.
// Execution gates result correctness: SQL that does not run scores zero
// on both components.
type Scorer struct {
	cfg   evaluation.SQLScoringConfig
	store Store
}

// NewScorer builds a SQL scorer over the given reference store.
func NewScorer(cfg evaluation.SQLScoringConfig, store Store) *Scorer {
	if cfg.ExecutionWeight == 0 && cfg.ResultWeight == 0 {
		cfg = evaluation.DefaultSQLScoring()
	}
	return &Scorer{cfg: cfg, store: store}
}

// Score evaluates one predicted statement against the sample's expected
// rows. Scoring is idempotent: the same SQL and database always produce
// the same outcome.
func (s *Scorer) Score(ctx context.Context, predictedSQL string, expectedRows []map[string]any) evaluation.Outcome {
	cleaned := CleanSQL(predictedSQL)

	rows, err := s.store.Query(ctx, cleaned)
	if err != nil {
		detail := fmt.Sprintf("execution failed: %v", err)
		return s.outcome(
			evaluation.ComponentScore{Score: 0.0, Details: detail},
			evaluation.ComponentScore{Score: 0.0, Details: "not evaluated: execution failed"},
		)
	}

	execution := evaluation.ComponentScore{
		Pass:    true,
		Score:   1.0,
		Details: fmt.Sprintf("executed, %d row(s)", len(rows)),
	}

	result := s.resultScore(rows, expectedRows)
	return s.outcome(execution, result)
}

// resultScore compares actual and expected rows by values only, order
// independent. Partial credit comes from sequence similarity over the
// sorted row keys.
func (s *Scorer) resultScore(actual, expected []map[string]any) evaluation.ComponentScore {
	if len(expected) == 0 {
		return evaluation.ComponentScore{
			Pass:    true,
			Score:   1.0,
			Details: "no expected rows; successful execution accepted",
		}
	}

	actualKeys := rowKeys(actual)
	expectedKeys := rowKeys(expected)

	if equalStringSlices(actualKeys, expectedKeys) {
		return evaluation.ComponentScore{
			Pass:    true,
			Score:   1.0,
			Details: fmt.Sprintf("exact match on %d row(s)", len(expected)),
		}
	}

	ratio := Ratio(actualKeys, expectedKeys)
	return evaluation.ComponentScore{
		Pass:    ratio >= s.cfg.ResultPassThreshold,
		Score:   ratio,
		Details: fmt.Sprintf("row similarity %.2f (%d actual, %d expected)", ratio, len(actual), len(expected)),
	}
}

func (s *Scorer) outcome(execution, result evaluation.ComponentScore) evaluation.Outcome {
	overall := s.cfg.ExecutionWeight*execution.Score + s.cfg.ResultWeight*result.Score
	passed := execution.Score >= s.cfg.ExecutionPassThreshold &&
		result.Score >= s.cfg.ResultPassThreshold

	return evaluation.Outcome{
		Passed: passed,
		Score:  overall,
		Components: map[string]evaluation.ComponentScore{
			evaluation.ComponentExecutionAccuracy: execution,
			evaluation.ComponentResultCorrectness: result,
		},
	}
}

// rowKeys canonicalizes rows for value-only comparison: each row becomes
// its sorted stringified cell values, and the collection is sorted so row
// order never matters.
func rowKeys(rows []map[string]any) []string {
	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			cells = append(cells, fmt.Sprint(v))
		}
		sort.Strings(cells)
		keys = append(keys, strings.Join(cells, "|"))
	}
	sort.Strings(keys)
	return keys
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Validator evaluates SQL samples end to end: statement extraction, then
// execution-gated scoring.
type Validator struct {
	scorer *Scorer
}

// NewValidator builds the SQL validator from a ValidatorConfig. It is
// registered as the factory for the sql task kind.
func NewValidator(config evaluation.ValidatorConfig) (evaluation.Validator, error) {
	store, ok := config.Store.(Store)
	if !ok || store == nil {
		return nil, fmt.Errorf("%w: sql validator requires a text2sql.Store", evaluation.ErrInvalidInput)
	}
	return &Validator{scorer: NewScorer(config.SQLScoring, store)}, nil
}

// Kind implements evaluation.Validator.
func (v *Validator) Kind() evaluation.TaskKind {
	return evaluation.TaskSQL
}

// Validate implements evaluation.Validator. A response with no extractable
// SQL fails rather than errors.
func (v *Validator) Validate(ctx context.Context, sample *evaluation.Sample, response string) evaluation.Outcome {
	sql, ok := extract.SQL(response)
	if !ok {
		return evaluation.Outcome{
			Passed: false,
			Score:  0.0,
			Components: map[string]evaluation.ComponentScore{
				evaluation.ComponentExecutionAccuracy: {Details: "no SQL found in response"},
			},
		}
	}
	return v.scorer.Score(ctx, sql, sample.ExpectedRows)
}
