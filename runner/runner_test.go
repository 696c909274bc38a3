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

package runner

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/usafacts/usabench/evaluation"
)

type fakeGenerator struct {
	responses map[string]string
	err       error
}

func (g *fakeGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	for key, resp := range g.responses {
		if strings.Contains(userPrompt, key) {
			return resp, nil
		}
	}
	return "no idea", nil
}

type fakeValidator struct {
	kind    evaluation.TaskKind
	passOn  string
	panicOn string
}

func (v *fakeValidator) Kind() evaluation.TaskKind { return v.kind }

func (v *fakeValidator) Validate(ctx context.Context, sample *evaluation.Sample, response string) evaluation.Outcome {
	if v.panicOn != "" && strings.Contains(response, v.panicOn) {
		panic("validator blew up")
	}
	if strings.Contains(response, v.passOn) {
		return evaluation.Outcome{Passed: true, Score: 1.0}
	}
	return evaluation.Outcome{Passed: false, Score: 0.0}
}

func sqlSample(id, question string) *evaluation.Sample {
	return &evaluation.Sample{
		ID:         id,
		Question:   question,
		Kind:       evaluation.TaskSQL,
		Difficulty: evaluation.DifficultyMedium,
	}
}

func TestEvaluateSingle(t *testing.T) {
	generator := &fakeGenerator{responses: map[string]string{
		"defense spending": "SELECT * FROM budget_outlays",
	}}
	validators := map[evaluation.TaskKind]evaluation.Validator{
		evaluation.TaskSQL: &fakeValidator{kind: evaluation.TaskSQL, passOn: "SELECT"},
	}

	r, err := New(generator, validators)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	record := r.EvaluateSingle(context.Background(), sqlSample("s1", "What was defense spending in 2023?"))

	if !record.Passed {
		t.Errorf("Passed = false, want true (error %q)", record.ErrorMessage)
	}
	if record.Score != 1.0 {
		t.Errorf("Score = %f, want 1.0", record.Score)
	}
	if record.SampleID != "s1" {
		t.Errorf("SampleID = %q, want s1", record.SampleID)
	}
	if record.ModelResponse != "SELECT * FROM budget_outlays" {
		t.Errorf("ModelResponse = %q", record.ModelResponse)
	}
	if record.Status() != evaluation.EvalStatusPassed {
		t.Errorf("Status = %v, want PASSED", record.Status())
	}
}

func TestEvaluateSingleGenerationFailure(t *testing.T) {
	generator := &fakeGenerator{err: fmt.Errorf("model endpoint unreachable")}
	validators := map[evaluation.TaskKind]evaluation.Validator{
		evaluation.TaskSQL: &fakeValidator{kind: evaluation.TaskSQL, passOn: "SELECT"},
	}

	r, err := New(generator, validators)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	record := r.EvaluateSingle(context.Background(), sqlSample("s1", "anything"))

	if record.Passed {
		t.Error("Passed = true, want false")
	}
	if record.Score != 0.0 {
		t.Errorf("Score = %f, want 0.0", record.Score)
	}
	if record.ErrorMessage == "" {
		t.Error("ErrorMessage empty, want generation failure message")
	}
	if record.Status() != evaluation.EvalStatusError {
		t.Errorf("Status = %v, want ERROR", record.Status())
	}
}

func TestEvaluateSingleMissingValidator(t *testing.T) {
	r, err := New(&fakeGenerator{}, map[evaluation.TaskKind]evaluation.Validator{
		evaluation.TaskSQL: &fakeValidator{kind: evaluation.TaskSQL},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	sample := &evaluation.Sample{ID: "f1", Kind: evaluation.TaskFunction}
	record := r.EvaluateSingle(context.Background(), sample)

	if record.ErrorMessage == "" {
		t.Error("ErrorMessage empty, want missing-validator message")
	}
}

func TestEvaluateSinglePanicIsolated(t *testing.T) {
	generator := &fakeGenerator{responses: map[string]string{"boom": "explode now"}}
	validators := map[evaluation.TaskKind]evaluation.Validator{
		evaluation.TaskSQL: &fakeValidator{kind: evaluation.TaskSQL, passOn: "SELECT", panicOn: "explode"},
	}

	r, err := New(generator, validators)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	record := r.EvaluateSingle(context.Background(), sqlSample("s1", "boom"))

	if record.Passed {
		t.Error("Passed = true, want false")
	}
	if !strings.Contains(record.ErrorMessage, "panic") {
		t.Errorf("ErrorMessage = %q, want panic message", record.ErrorMessage)
	}
}

func TestEvaluateBatchOrderPreserved(t *testing.T) {
	generator := &fakeGenerator{responses: map[string]string{
		"q-pass": "SELECT 1",
	}}
	validators := map[evaluation.TaskKind]evaluation.Validator{
		evaluation.TaskSQL: &fakeValidator{kind: evaluation.TaskSQL, passOn: "SELECT"},
	}

	samples := []*evaluation.Sample{
		sqlSample("a", "q-pass one"),
		sqlSample("b", "q-fail"),
		sqlSample("c", "q-pass two"),
	}

	for _, concurrency := range []int{1, 4} {
		t.Run(fmt.Sprintf("concurrency=%d", concurrency), func(t *testing.T) {
			r, err := New(generator, validators, WithConcurrency(concurrency))
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			records := r.EvaluateBatch(context.Background(), samples)
			if len(records) != len(samples) {
				t.Fatalf("got %d records, want %d", len(records), len(samples))
			}
			for i, sample := range samples {
				if records[i].SampleID != sample.ID {
					t.Errorf("records[%d].SampleID = %q, want %q", i, records[i].SampleID, sample.ID)
				}
			}
			if !records[0].Passed || records[1].Passed || !records[2].Passed {
				t.Errorf("pass pattern = [%v %v %v], want [true false true]",
					records[0].Passed, records[1].Passed, records[2].Passed)
			}
		})
	}
}

func TestNewValidation(t *testing.T) {
	validators := map[evaluation.TaskKind]evaluation.Validator{
		evaluation.TaskSQL: &fakeValidator{kind: evaluation.TaskSQL},
	}

	if _, err := New(nil, validators); err == nil {
		t.Error("New(nil generator) succeeded, want error")
	}
	if _, err := New(&fakeGenerator{}, nil); err == nil {
		t.Error("New(no validators) succeeded, want error")
	}
}

func TestClassifyQuestion(t *testing.T) {
	tests := []struct {
		question string
		want     []string
	}{
		{"What was federal defense spending in 2023?", []string{"budget_outlays"}},
		{"How did the CPI change from 2020 to 2023?", []string{"time_series_data"}},
		{"Which industries contributed most to GDP?", []string{"industry_gdp", "gdp_by_industry"}},
		{"Which state had the highest per capita income?", []string{"regional_data"}},
		{"Tell me something interesting.", []string{"budget_outlays"}},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			got := ClassifyQuestion(tt.question)
			if len(got) != len(tt.want) {
				t.Fatalf("ClassifyQuestion = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ClassifyQuestion = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestPromptBuilder(t *testing.T) {
	pb := NewPromptBuilder()

	t.Run("sql prompt carries schema", func(t *testing.T) {
		system, user := pb.Build(sqlSample("s1", "What was federal defense spending in 2023?"))
		if !strings.Contains(system, "SQL expert") {
			t.Errorf("system prompt missing role: %q", system)
		}
		if !strings.Contains(user, "budget_outlays") {
			t.Errorf("user prompt missing targeted schema: %q", user)
		}
	})

	t.Run("function prompt carries docs", func(t *testing.T) {
		sample := &evaluation.Sample{
			ID:       "f1",
			Question: "Get CPI for 2020 through 2024",
			Kind:     evaluation.TaskFunction,
		}
		system, user := pb.Build(sample)
		if !strings.Contains(system, "get_cpi_data") {
			t.Errorf("system prompt missing function docs")
		}
		if !strings.Contains(user, sample.Question) {
			t.Errorf("user prompt missing question: %q", user)
		}
	})
}
