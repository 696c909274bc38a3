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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAggregateEmpty(t *testing.T) {
	stats := Aggregate(nil)

	if stats.Overall.TotalSamples != 0 {
		t.Errorf("TotalSamples = %d, want 0", stats.Overall.TotalSamples)
	}
	if stats.Overall.PassRate != 0 {
		t.Errorf("PassRate = %f, want 0", stats.Overall.PassRate)
	}
	if stats.Overall.MeanScore != 0 {
		t.Errorf("MeanScore = %f, want 0", stats.Overall.MeanScore)
	}
	if stats.Errors.TotalErrors != 0 {
		t.Errorf("TotalErrors = %d, want 0", stats.Errors.TotalErrors)
	}
}

func TestAggregate(t *testing.T) {
	records := []ResultRecord{
		{SampleID: "s1", Kind: TaskSQL, Difficulty: DifficultyEasy, Passed: true, Score: 1.0, ElapsedMs: 100},
		{SampleID: "s2", Kind: TaskSQL, Difficulty: DifficultyHard, Passed: false, Score: 0.5, ElapsedMs: 300},
		{SampleID: "f1", Kind: TaskFunction, Difficulty: DifficultyEasy, Passed: true, Score: 0.9, ElapsedMs: 200},
		{SampleID: "f2", Kind: TaskFunction, Difficulty: DifficultyEasy, Passed: false, Score: 0.0, ElapsedMs: 400, ErrorMessage: "generation failed: timeout"},
	}

	stats := Aggregate(records)

	wantOverall := Summary{
		TotalSamples:  4,
		PassedSamples: 2,
		PassRate:      0.5,
		MeanScore:     0.6,
		MeanElapsedMs: 250,
		ErrorRate:     0.25,
	}
	if diff := cmp.Diff(wantOverall, stats.Overall); diff != "" {
		t.Errorf("Overall mismatch (-want +got):\n%s", diff)
	}

	wantSQL := Summary{
		TotalSamples:  2,
		PassedSamples: 1,
		PassRate:      0.5,
		MeanScore:     0.75,
		MeanElapsedMs: 200,
	}
	if diff := cmp.Diff(wantSQL, stats.ByKind[TaskSQL]); diff != "" {
		t.Errorf("ByKind[sql] mismatch (-want +got):\n%s", diff)
	}

	if got := stats.ByDifficulty[DifficultyEasy].TotalSamples; got != 3 {
		t.Errorf("ByDifficulty[easy].TotalSamples = %d, want 3", got)
	}
	if got := stats.Breakdown[TaskFunction][DifficultyEasy].TotalSamples; got != 2 {
		t.Errorf("Breakdown[function][easy].TotalSamples = %d, want 2", got)
	}

	if stats.Errors.TotalErrors != 1 {
		t.Errorf("TotalErrors = %d, want 1", stats.Errors.TotalErrors)
	}
	wantMessages := []string{"generation failed: timeout"}
	if diff := cmp.Diff(wantMessages, stats.Errors.Messages[TaskFunction][DifficultyEasy]); diff != "" {
		t.Errorf("error messages mismatch (-want +got):\n%s", diff)
	}
	if got := stats.Errors.RateByKind[TaskFunction]; got != 0.5 {
		t.Errorf("RateByKind[function] = %f, want 0.5", got)
	}
}

func TestAggregateDeterministic(t *testing.T) {
	records := []ResultRecord{
		{SampleID: "a", Kind: TaskSQL, Difficulty: DifficultyMedium, Passed: true, Score: 0.8},
		{SampleID: "b", Kind: TaskFunction, Difficulty: DifficultyHard, Score: 0.2},
	}

	first := Aggregate(records)
	second := Aggregate(records)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Aggregate not deterministic (-first +second):\n%s", diff)
	}
}

func TestResultRecordStatus(t *testing.T) {
	tests := []struct {
		name   string
		record ResultRecord
		want   EvalStatus
	}{
		{name: "passed", record: ResultRecord{Passed: true}, want: EvalStatusPassed},
		{name: "failed", record: ResultRecord{Passed: false}, want: EvalStatusFailed},
		{name: "error wins over passed", record: ResultRecord{Passed: true, ErrorMessage: "boom"}, want: EvalStatusError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.Status(); got != tt.want {
				t.Errorf("Status() = %v, want %v", got, tt.want)
			}
		})
	}
}
