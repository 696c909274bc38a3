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

package functioncall

import (
	"context"
	"fmt"

	"github.com/usafacts/usabench/evaluation"
	"github.com/usafacts/usabench/evaluation/extract"
)

// ExecutionResult captures one live call against a data API.
type ExecutionResult struct {
	// Success means the API accepted the call and answered.
	Success bool

	// HasData means the answer carried actual observations, not an empty
	// or error payload.
	HasData bool

	// Payload is the decoded response body, kept for diagnostics.
	Payload map[string]any

	// Error describes the failure when Success is false.
	Error string
}

// Executor performs a predicted call against the real data source.
type Executor interface {
	Execute(ctx context.Context, call evaluation.Call) ExecutionResult
}

// Keys that drive data selection in the government APIs. When expected
// arguments include any of these, parameter accuracy under the binary
// preset compares only them.
var importantKeys = map[string]bool{
	"series_id":  true,
	"year":       true,
	"start_year": true,
	"end_year":   true,
	"industry":   true,
	"state":      true,
}

// Scorer computes the four function-call components for one sample.
type Scorer struct {
	cfg      evaluation.FunctionScoringConfig
	matcher  ValueMatcher
	executor Executor
}

// NewScorer builds a scorer. executor may be nil; execution components are
// then approximated from call well-formedness and the offline fallback.
func NewScorer(cfg evaluation.FunctionScoringConfig, executor Executor) *Scorer {
	return &Scorer{
		cfg:      cfg,
		matcher:  NewValueMatcher(cfg.NumericTolerance, cfg.YearTolerance),
		executor: executor,
	}
}

// Score computes the components and overall outcome for predicted calls
// against the expected ones.
func (s *Scorer) Score(ctx context.Context, predicted, expected []evaluation.Call) evaluation.Outcome {
	selection := s.selectionScore(predicted, expected)
	parameters := s.parameterScore(predicted, expected)
	execution, result := s.executionScores(ctx, predicted, selection.Score, parameters.Score)

	overall := s.cfg.SelectionWeight*selection.Score +
		s.cfg.ParameterWeight*parameters.Score +
		s.cfg.ExecutionWeight*execution.Score +
		s.cfg.ResultWeight*result.Score

	var passed bool
	if s.cfg.OverallPassThreshold > 0 {
		passed = overall >= s.cfg.OverallPassThreshold
	} else {
		passed = selection.Score >= s.cfg.SelectionPassMin &&
			parameters.Score >= s.cfg.ParameterPassMin
	}

	return evaluation.Outcome{
		Passed: passed,
		Score:  overall,
		Components: map[string]evaluation.ComponentScore{
			evaluation.ComponentSelection:  selection,
			evaluation.ComponentParameters: parameters,
			evaluation.ComponentExecution:  execution,
			evaluation.ComponentResult:     result,
		},
	}
}

// selectionScore measures whether the right functions were chosen. The
// weighted preset uses an F1 overlap of the name sets; the binary preset
// demands exact set equality.
func (s *Scorer) selectionScore(predicted, expected []evaluation.Call) evaluation.ComponentScore {
	predNames := nameSet(predicted)
	expNames := nameSet(expected)

	if len(expNames) == 0 && len(predNames) == 0 {
		return evaluation.ComponentScore{Pass: true, Score: 1.0, Details: "no functions expected or predicted"}
	}
	if len(expNames) == 0 || len(predNames) == 0 {
		return evaluation.ComponentScore{Score: 0.0, Details: "one side predicted functions, the other did not"}
	}

	if s.cfg.BinarySelection {
		if setsEqual(predNames, expNames) {
			return evaluation.ComponentScore{Pass: true, Score: 1.0, Details: "exact function set match"}
		}
		return evaluation.ComponentScore{Score: 0.0, Details: fmt.Sprintf("predicted %v, expected %v", keys(predNames), keys(expNames))}
	}

	overlap := 0
	for name := range predNames {
		if expNames[name] {
			overlap++
		}
	}
	precision := float64(overlap) / float64(len(predNames))
	recall := float64(overlap) / float64(len(expNames))
	f1 := 0.0
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}
	return evaluation.ComponentScore{
		Pass:    f1 >= s.cfg.SelectionPassMin,
		Score:   f1,
		Details: fmt.Sprintf("F1=%.2f (precision %.2f, recall %.2f)", f1, precision, recall),
	}
}

// parameterScore averages per-call argument accuracy over the expected
// calls. Each expected call is paired with the first unused predicted call
// of the same name; an unpaired expected call scores zero.
func (s *Scorer) parameterScore(predicted, expected []evaluation.Call) evaluation.ComponentScore {
	if len(expected) == 0 {
		return evaluation.ComponentScore{Pass: true, Score: 1.0, Details: "no expected arguments"}
	}
	if s.cfg.RequireCallCountMatch && len(predicted) != len(expected) {
		return evaluation.ComponentScore{
			Score:   0.0,
			Details: fmt.Sprintf("call count mismatch: predicted %d, expected %d", len(predicted), len(expected)),
		}
	}

	used := make([]bool, len(predicted))
	var total float64
	for _, exp := range expected {
		match := -1
		for i, pred := range predicted {
			if !used[i] && pred.Name == exp.Name {
				match = i
				break
			}
		}
		if match < 0 {
			continue
		}
		used[match] = true
		total += s.callArgumentAccuracy(predicted[match], exp)
	}

	score := total / float64(len(expected))
	return evaluation.ComponentScore{
		Pass:    score >= s.cfg.ParameterPassMin,
		Score:   score,
		Details: fmt.Sprintf("argument accuracy %.2f over %d expected call(s)", score, len(expected)),
	}
}

// callArgumentAccuracy is the fraction of expected arguments the predicted
// call reproduces. The binary preset narrows comparison to the important
// data-selection keys when the expected call carries any.
func (s *Scorer) callArgumentAccuracy(pred, exp evaluation.Call) float64 {
	compare := exp.Arguments
	if s.cfg.BinarySelection {
		narrowed := map[string]any{}
		for k, v := range exp.Arguments {
			if importantKeys[k] {
				narrowed[k] = v
			}
		}
		if len(narrowed) > 0 {
			compare = narrowed
		}
	}
	if len(compare) == 0 {
		return 1.0
	}

	matched := 0
	for key, expVal := range compare {
		predVal, ok := pred.Arguments[key]
		if !ok {
			continue
		}
		if s.matcher.Matches(predVal, expVal) {
			matched++
		}
	}
	return float64(matched) / float64(len(compare))
}

// executionScores computes the execution and result components. With a
// live executor, each predicted call is actually performed. Without one,
// execution approximates to well-formedness and the result component
// falls back to a capped blend of selection and parameter accuracy.
func (s *Scorer) executionScores(ctx context.Context, predicted []evaluation.Call, selection, parameters float64) (execution, result evaluation.ComponentScore) {
	if len(predicted) == 0 {
		return evaluation.ComponentScore{Details: "no predicted calls to execute"},
			evaluation.ComponentScore{Details: "no predicted calls to execute"}
	}

	if s.executor == nil {
		wellFormed := 0
		for _, call := range predicted {
			if isWellFormed(call) {
				wellFormed++
			}
		}
		execScore := float64(wellFormed) / float64(len(predicted))
		fallback := (0.4*selection + 0.6*parameters) * 0.8

		return evaluation.ComponentScore{
				Pass:    execScore == 1.0,
				Score:   execScore,
				Details: fmt.Sprintf("offline: %d/%d calls well formed", wellFormed, len(predicted)),
			}, evaluation.ComponentScore{
				Pass:    fallback >= 0.5,
				Score:   fallback,
				Details: "offline fallback from selection and parameter accuracy",
			}
	}

	succeeded, withData := 0, 0
	var lastErr string
	for _, call := range predicted {
		res := s.executor.Execute(ctx, call)
		if res.Success {
			succeeded++
			if res.HasData {
				withData++
			}
		} else if res.Error != "" {
			lastErr = res.Error
		}
	}

	n := float64(len(predicted))
	execScore := float64(succeeded) / n
	resultScore := float64(withData) / n

	execDetails := fmt.Sprintf("%d/%d calls executed", succeeded, len(predicted))
	if lastErr != "" {
		execDetails += ": " + lastErr
	}

	return evaluation.ComponentScore{
			Pass:    execScore == 1.0,
			Score:   execScore,
			Details: execDetails,
		}, evaluation.ComponentScore{
			Pass:    resultScore == 1.0,
			Score:   resultScore,
			Details: fmt.Sprintf("%d/%d calls returned data", withData, len(predicted)),
		}
}

// isWellFormed checks the call against the function catalog: known name
// and all required arguments present.
func isWellFormed(call evaluation.Call) bool {
	required, ok := evaluation.RequiredArguments(call.Name)
	if !ok {
		return false
	}
	for _, name := range required {
		if _, present := call.Arguments[name]; !present {
			return false
		}
	}
	return true
}

func nameSet(calls []evaluation.Call) map[string]bool {
	set := make(map[string]bool, len(calls))
	for _, c := range calls {
		set[c.Name] = true
	}
	return set
}

func setsEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

// Validator evaluates function-call samples end to end: extraction, then
// component scoring.
type Validator struct {
	extractor *extract.CallExtractor
	scorer    *Scorer
}

// NewValidator builds the function-call validator from a ValidatorConfig.
// It is registered as the factory for the function task kind.
func NewValidator(config evaluation.ValidatorConfig) (evaluation.Validator, error) {
	cfg, err := evaluation.ScoringByPreset(config.Preset)
	if err != nil {
		return nil, err
	}

	var executor Executor
	if config.Executor != nil {
		ex, ok := config.Executor.(Executor)
		if !ok {
			return nil, fmt.Errorf("%w: executor does not implement functioncall.Executor", evaluation.ErrInvalidInput)
		}
		executor = ex
	}

	return &Validator{
		extractor: extract.NewCallExtractor(),
		scorer:    NewScorer(cfg, executor),
	}, nil
}

// Kind implements evaluation.Validator.
func (v *Validator) Kind() evaluation.TaskKind {
	return evaluation.TaskFunction
}

// Validate implements evaluation.Validator. Extraction failure is a failed
// outcome, not an error.
func (v *Validator) Validate(ctx context.Context, sample *evaluation.Sample, response string) evaluation.Outcome {
	predicted := v.extractor.Calls(response)
	if len(predicted) == 0 {
		return evaluation.Outcome{
			Passed: false,
			Score:  0.0,
			Components: map[string]evaluation.ComponentScore{
				evaluation.ComponentSelection: {Details: "no function calls found in response"},
			},
		}
	}
	return v.scorer.Score(ctx, predicted, sample.ExpectedCalls)
}
