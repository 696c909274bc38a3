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
	"fmt"
	"sort"
	"strings"
	"time"
)

// RenderReport formats run statistics as a markdown document. Sections and
// table rows are emitted in sorted order so the output is deterministic.
func RenderReport(stats Stats, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString("# Benchmark Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", generatedAt.UTC().Format(time.RFC3339))

	b.WriteString("## Overall\n\n")
	writeSummaryTable(&b, []summaryRow{{"all", stats.Overall}})

	if len(stats.ByKind) > 0 {
		b.WriteString("## By Task Kind\n\n")
		rows := make([]summaryRow, 0, len(stats.ByKind))
		for kind, s := range stats.ByKind {
			rows = append(rows, summaryRow{string(kind), s})
		}
		sortRows(rows)
		writeSummaryTable(&b, rows)
	}

	if len(stats.ByDifficulty) > 0 {
		b.WriteString("## By Difficulty\n\n")
		rows := make([]summaryRow, 0, len(stats.ByDifficulty))
		for difficulty, s := range stats.ByDifficulty {
			rows = append(rows, summaryRow{string(difficulty), s})
		}
		sortRows(rows)
		writeSummaryTable(&b, rows)
	}

	if len(stats.Breakdown) > 0 {
		b.WriteString("## Breakdown\n\n")
		rows := make([]summaryRow, 0)
		for kind, byDiff := range stats.Breakdown {
			for difficulty, s := range byDiff {
				rows = append(rows, summaryRow{fmt.Sprintf("%s / %s", kind, difficulty), s})
			}
		}
		sortRows(rows)
		writeSummaryTable(&b, rows)
	}

	if stats.Errors.TotalErrors > 0 {
		b.WriteString("## Errors\n\n")
		fmt.Fprintf(&b, "Total errors: %d\n\n", stats.Errors.TotalErrors)
		kinds := make([]string, 0, len(stats.Errors.Messages))
		for kind := range stats.Errors.Messages {
			kinds = append(kinds, string(kind))
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			byDiff := stats.Errors.Messages[TaskKind(kind)]
			difficulties := make([]string, 0, len(byDiff))
			for difficulty := range byDiff {
				difficulties = append(difficulties, string(difficulty))
			}
			sort.Strings(difficulties)
			for _, difficulty := range difficulties {
				for _, msg := range byDiff[Difficulty(difficulty)] {
					fmt.Fprintf(&b, "- %s / %s: %s\n", kind, difficulty, msg)
				}
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

type summaryRow struct {
	label   string
	summary Summary
}

func sortRows(rows []summaryRow) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].label < rows[j].label })
}

func writeSummaryTable(b *strings.Builder, rows []summaryRow) {
	b.WriteString("| Group | Samples | Passed | Pass Rate | Mean Score | Mean Time (ms) | Error Rate |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, row := range rows {
		s := row.summary
		fmt.Fprintf(b, "| %s | %d | %d | %.1f%% | %.3f | %.1f | %.1f%% |\n",
			row.label, s.TotalSamples, s.PassedSamples,
			s.PassRate*100, s.MeanScore, s.MeanElapsedMs, s.ErrorRate*100)
	}
	b.WriteString("\n")
}
