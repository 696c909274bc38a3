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

// Summary holds aggregate statistics over one group of result records.
// All ratios are 0 for empty groups, never NaN.
type Summary struct {
	TotalSamples  int     `json:"total_samples"`
	PassedSamples int     `json:"passed_samples"`
	PassRate      float64 `json:"pass_rate"`
	MeanScore     float64 `json:"mean_score"`
	MeanElapsedMs float64 `json:"mean_elapsed_ms"`
	ErrorRate     float64 `json:"error_rate"`
}

// ErrorSummary collects error counts and messages across a run.
type ErrorSummary struct {
	TotalErrors int                                `json:"total_errors"`
	RateByKind  map[TaskKind]float64               `json:"rate_by_kind,omitempty"`
	Messages    map[TaskKind]map[Difficulty][]string `json:"messages,omitempty"`
}

// Stats is the full aggregate view of a run: overall, per task kind, per
// difficulty, and the nested kind-by-difficulty breakdown.
type Stats struct {
	Overall      Summary                              `json:"overall"`
	ByKind       map[TaskKind]Summary                 `json:"by_kind,omitempty"`
	ByDifficulty map[Difficulty]Summary               `json:"by_difficulty,omitempty"`
	Breakdown    map[TaskKind]map[Difficulty]Summary  `json:"breakdown,omitempty"`
	Errors       ErrorSummary                         `json:"errors"`
}

func summarize(records []ResultRecord) Summary {
	s := Summary{TotalSamples: len(records)}
	if len(records) == 0 {
		return s
	}

	var scoreSum, elapsedSum float64
	var errorCount int
	for _, r := range records {
		if r.Passed {
			s.PassedSamples++
		}
		if r.ErrorMessage != "" {
			errorCount++
		}
		scoreSum += r.Score
		elapsedSum += float64(r.ElapsedMs)
	}

	n := float64(len(records))
	s.PassRate = float64(s.PassedSamples) / n
	s.MeanScore = scoreSum / n
	s.MeanElapsedMs = elapsedSum / n
	s.ErrorRate = float64(errorCount) / n
	return s
}

// Aggregate computes run statistics from raw result records. It is a pure
// function: identical input always yields identical statistics.
func Aggregate(records []ResultRecord) Stats {
	stats := Stats{
		Overall:      summarize(records),
		ByKind:       make(map[TaskKind]Summary),
		ByDifficulty: make(map[Difficulty]Summary),
		Breakdown:    make(map[TaskKind]map[Difficulty]Summary),
		Errors: ErrorSummary{
			RateByKind: make(map[TaskKind]float64),
			Messages:   make(map[TaskKind]map[Difficulty][]string),
		},
	}

	byKind := make(map[TaskKind][]ResultRecord)
	byDifficulty := make(map[Difficulty][]ResultRecord)
	nested := make(map[TaskKind]map[Difficulty][]ResultRecord)

	for _, r := range records {
		byKind[r.Kind] = append(byKind[r.Kind], r)
		byDifficulty[r.Difficulty] = append(byDifficulty[r.Difficulty], r)
		if nested[r.Kind] == nil {
			nested[r.Kind] = make(map[Difficulty][]ResultRecord)
		}
		nested[r.Kind][r.Difficulty] = append(nested[r.Kind][r.Difficulty], r)

		if r.ErrorMessage != "" {
			stats.Errors.TotalErrors++
			if stats.Errors.Messages[r.Kind] == nil {
				stats.Errors.Messages[r.Kind] = make(map[Difficulty][]string)
			}
			stats.Errors.Messages[r.Kind][r.Difficulty] = append(
				stats.Errors.Messages[r.Kind][r.Difficulty], r.ErrorMessage)
		}
	}

	for kind, group := range byKind {
		summary := summarize(group)
		stats.ByKind[kind] = summary
		stats.Errors.RateByKind[kind] = summary.ErrorRate
	}
	for difficulty, group := range byDifficulty {
		stats.ByDifficulty[difficulty] = summarize(group)
	}
	for kind, byDiff := range nested {
		stats.Breakdown[kind] = make(map[Difficulty]Summary)
		for difficulty, group := range byDiff {
			stats.Breakdown[kind][difficulty] = summarize(group)
		}
	}

	return stats
}
