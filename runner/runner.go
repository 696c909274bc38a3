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

// Package runner drives benchmark execution: it prompts the model for each
// sample, hands the response to the task's validator, and collects result
// records. Sample failures never abort a batch.
package runner

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/usafacts/usabench/evaluation"
	"github.com/usafacts/usabench/internal/telemetry"
)

// Generator produces a model response for one prompt pair.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Runner evaluates samples against a generator using per-kind validators.
type Runner struct {
	generator   Generator
	validators  map[evaluation.TaskKind]evaluation.Validator
	prompts     *PromptBuilder
	concurrency int
}

// Option configures a Runner.
type Option func(*Runner)

// WithConcurrency sets the number of samples evaluated in parallel.
// Values below 2 keep the default sequential behavior.
func WithConcurrency(n int) Option {
	return func(r *Runner) { r.concurrency = n }
}

// WithPromptBuilder overrides the default prompt construction.
func WithPromptBuilder(pb *PromptBuilder) Option {
	return func(r *Runner) { r.prompts = pb }
}

// New creates a runner. validators maps each task kind the run will
// encounter to its validator.
func New(generator Generator, validators map[evaluation.TaskKind]evaluation.Validator, opts ...Option) (*Runner, error) {
	if generator == nil {
		return nil, fmt.Errorf("%w: generator is required", evaluation.ErrInvalidInput)
	}
	if len(validators) == 0 {
		return nil, fmt.Errorf("%w: at least one validator is required", evaluation.ErrInvalidInput)
	}

	r := &Runner{
		generator:   generator,
		validators:  validators,
		prompts:     NewPromptBuilder(),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// EvaluateSingle evaluates one sample. It never returns an error: any
// failure, including a panicking validator or a dead model endpoint,
// becomes a record with an error message, zero score, and Passed false.
// Elapsed time covers generation plus validation.
func (r *Runner) EvaluateSingle(ctx context.Context, sample *evaluation.Sample) evaluation.ResultRecord {
	start := time.Now()
	record := evaluation.ResultRecord{
		SampleID:   sample.ID,
		Question:   sample.Question,
		Kind:       sample.Kind,
		Difficulty: sample.Difficulty,
		Timestamp:  start.UTC(),
	}

	spans := telemetry.StartTrace(ctx, "evaluate_sample")
	defer func() {
		if rec := recover(); rec != nil {
			record.ErrorMessage = fmt.Sprintf("panic during evaluation: %v", rec)
			record.Passed = false
			record.Score = 0.0
		}
		record.ElapsedMs = time.Since(start).Milliseconds()
		telemetry.TraceSampleEvaluation(spans, record.SampleID, string(record.Kind),
			string(record.Difficulty), record.Passed, record.Score)
	}()

	validator, ok := r.validators[sample.Kind]
	if !ok {
		record.ErrorMessage = fmt.Sprintf("no validator for task kind %s", sample.Kind)
		return record
	}

	systemPrompt, userPrompt := r.prompts.Build(sample)
	telemetry.LogRequest(ctx, systemPrompt, userPrompt)
	response, err := r.generator.Generate(ctx, systemPrompt, userPrompt)
	telemetry.LogResponse(ctx, response, err)
	if err != nil {
		record.ErrorMessage = fmt.Sprintf("generation failed: %v", err)
		return record
	}
	record.ModelResponse = response

	outcome := validator.Validate(ctx, sample, response)
	record.Passed = outcome.Passed
	record.Score = outcome.Score
	record.Components = outcome.Components
	record.ErrorMessage = outcome.Error
	return record
}

// EvaluateBatch evaluates all samples and returns one record per sample in
// input order. With concurrency above 1, samples run in parallel under an
// errgroup limit; order is still preserved.
func (r *Runner) EvaluateBatch(ctx context.Context, samples []*evaluation.Sample) []evaluation.ResultRecord {
	records := make([]evaluation.ResultRecord, len(samples))

	if r.concurrency <= 1 {
		for i, sample := range samples {
			records[i] = r.EvaluateSingle(ctx, sample)
		}
		return records
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, sample := range samples {
		g.Go(func() error {
			records[i] = r.EvaluateSingle(gctx, sample)
			return nil
		})
	}
	// Workers never return errors; Wait only synchronizes completion.
	_ = g.Wait()
	return records
}
