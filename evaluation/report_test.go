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
	"strings"
	"testing"
	"time"
)

func TestRenderReport(t *testing.T) {
	records := []ResultRecord{
		{SampleID: "s1", Kind: TaskSQL, Difficulty: DifficultyEasy, Passed: true, Score: 1.0, ElapsedMs: 120},
		{SampleID: "f1", Kind: TaskFunction, Difficulty: DifficultyHard, Score: 0.3, ElapsedMs: 250, ErrorMessage: "generation failed: timeout"},
	}
	stats := Aggregate(records)
	generatedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	report := RenderReport(stats, generatedAt)

	for _, want := range []string{
		"# Benchmark Report",
		"Generated: 2025-06-01T12:00:00Z",
		"## Overall",
		"## By Task Kind",
		"## By Difficulty",
		"## Breakdown",
		"## Errors",
		"generation failed: timeout",
		"| all | 2 | 1 | 50.0% |",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestRenderReportDeterministic(t *testing.T) {
	records := []ResultRecord{
		{SampleID: "a", Kind: TaskSQL, Difficulty: DifficultyMedium, Passed: true, Score: 0.9},
		{SampleID: "b", Kind: TaskFunction, Difficulty: DifficultyEasy, Score: 0.1},
		{SampleID: "c", Kind: TaskFunction, Difficulty: DifficultyHard, Passed: true, Score: 0.8},
	}
	stats := Aggregate(records)
	at := time.Now()

	if RenderReport(stats, at) != RenderReport(stats, at) {
		t.Error("RenderReport output is not deterministic")
	}
}

func TestRenderReportNoErrorsSection(t *testing.T) {
	stats := Aggregate([]ResultRecord{
		{SampleID: "s1", Kind: TaskSQL, Difficulty: DifficultyEasy, Passed: true, Score: 1.0},
	})

	report := RenderReport(stats, time.Now())
	if strings.Contains(report, "## Errors") {
		t.Errorf("report has errors section without errors:\n%s", report)
	}
}
