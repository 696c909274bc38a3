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

package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/usafacts/usabench/evaluation"
)

func writeDataset(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
}

const sqlCorpus = `{
  "questions": [
    {
      "question_id": "sql_001",
      "question_text": "What was total defense spending in 2023?",
      "difficulty": "easy",
      "reference_sql": "SELECT SUM(outlay_amount) FROM budget_outlays WHERE function_name = 'National Defense' AND fiscal_year = 2023",
      "expected_result": [{"total": 800}]
    },
    {
      "id": "sql_002",
      "question": "List spending categories",
      "difficulty": "HARD",
      "ground_truth_sql": "SELECT DISTINCT function_name FROM budget_outlays"
    },
    {
      "question": "No difficulty given",
      "sql": "SELECT 1"
    }
  ]
}`

const functionCorpus = `{
  "ground_truth_data": [
    {
      "question_id": "func_001",
      "question_text": "Get CPI from 2020 to 2024",
      "difficulty": "medium",
      "function_sequence": [
        {
          "function_name": "get_cpi_data",
          "parameters": {"series_id": "CUUR0000SA0", "start_year": 2020, "end_year": 2024}
        }
      ]
    },
    {
      "question_id": "func_002",
      "question_text": "GDP by industry for 2023",
      "difficulty": "hard",
      "expected_functions": [
        {"name": "get_gdp_by_industry", "arguments": {"year": 2023}}
      ]
    }
  ]
}`

func TestLoadSQLSamples(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, SQLGroundTruthFile, sqlCorpus)

	samples, err := NewLoader(dir).LoadSQLSamples(Filter{})
	if err != nil {
		t.Fatalf("LoadSQLSamples: %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("got %d samples, want 3", len(samples))
	}

	first := samples[0]
	if first.ID != "sql_001" {
		t.Errorf("ID = %q, want sql_001", first.ID)
	}
	if first.Kind != evaluation.TaskSQL {
		t.Errorf("Kind = %q, want sql", first.Kind)
	}
	if first.Difficulty != evaluation.DifficultyEasy {
		t.Errorf("Difficulty = %q, want easy", first.Difficulty)
	}
	if first.ReferenceSQL == "" {
		t.Error("ReferenceSQL empty")
	}
	wantRows := []map[string]any{{"total": float64(800)}}
	if diff := cmp.Diff(wantRows, first.ExpectedRows); diff != "" {
		t.Errorf("ExpectedRows mismatch (-want +got):\n%s", diff)
	}

	// Alias fields and case-insensitive difficulty.
	second := samples[1]
	if second.ID != "sql_002" {
		t.Errorf("ID = %q, want sql_002", second.ID)
	}
	if second.Question != "List spending categories" {
		t.Errorf("Question = %q", second.Question)
	}
	if second.Difficulty != evaluation.DifficultyHard {
		t.Errorf("Difficulty = %q, want hard", second.Difficulty)
	}
	if second.ReferenceSQL != "SELECT DISTINCT function_name FROM budget_outlays" {
		t.Errorf("ReferenceSQL = %q", second.ReferenceSQL)
	}

	// Synthetic ID and default difficulty.
	third := samples[2]
	if third.ID != "sql_2" {
		t.Errorf("ID = %q, want sql_2", third.ID)
	}
	if third.Difficulty != evaluation.DifficultyMedium {
		t.Errorf("Difficulty = %q, want medium", third.Difficulty)
	}
}

func TestLoadFunctionSamples(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, FunctionGroundTruthFile, functionCorpus)

	samples, err := NewLoader(dir).LoadFunctionSamples(Filter{})
	if err != nil {
		t.Fatalf("LoadFunctionSamples: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}

	wantCalls := []evaluation.Call{{
		Name: "get_cpi_data",
		Arguments: map[string]any{
			"series_id":  "CUUR0000SA0",
			"start_year": float64(2020),
			"end_year":   float64(2024),
		},
	}}
	if diff := cmp.Diff(wantCalls, samples[0].ExpectedCalls); diff != "" {
		t.Errorf("ExpectedCalls mismatch (-want +got):\n%s", diff)
	}

	wantSecond := []evaluation.Call{{
		Name:      "get_gdp_by_industry",
		Arguments: map[string]any{"year": float64(2023)},
	}}
	if diff := cmp.Diff(wantSecond, samples[1].ExpectedCalls); diff != "" {
		t.Errorf("ExpectedCalls mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFilters(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, SQLGroundTruthFile, sqlCorpus)
	loader := NewLoader(dir)

	t.Run("max samples", func(t *testing.T) {
		samples, err := loader.LoadSQLSamples(Filter{MaxSamples: 1})
		if err != nil {
			t.Fatalf("LoadSQLSamples: %v", err)
		}
		if len(samples) != 1 {
			t.Errorf("got %d samples, want 1", len(samples))
		}
	})

	t.Run("difficulty filter", func(t *testing.T) {
		samples, err := loader.LoadSQLSamples(Filter{
			Difficulties: []evaluation.Difficulty{evaluation.DifficultyHard},
		})
		if err != nil {
			t.Fatalf("LoadSQLSamples: %v", err)
		}
		if len(samples) != 1 || samples[0].Difficulty != evaluation.DifficultyHard {
			t.Errorf("got %d samples, want the single hard sample", len(samples))
		}
	})
}

func TestLoadMixed(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, SQLGroundTruthFile, sqlCorpus)
	writeDataset(t, dir, FunctionGroundTruthFile, functionCorpus)

	samples, err := NewLoader(dir).LoadMixed(2, 1, nil)
	if err != nil {
		t.Fatalf("LoadMixed: %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("got %d samples, want 3", len(samples))
	}

	var sql, function int
	for _, s := range samples {
		switch s.Kind {
		case evaluation.TaskSQL:
			sql++
		case evaluation.TaskFunction:
			function++
		}
	}
	if sql != 2 || function != 1 {
		t.Errorf("kind split = %d sql / %d function, want 2/1", sql, function)
	}
}

func TestLoadMissingFile(t *testing.T) {
	loader := NewLoader(t.TempDir())
	if _, err := loader.LoadSQLSamples(Filter{}); err == nil {
		t.Error("LoadSQLSamples on empty dir succeeded, want error")
	}
}

func TestDatasetInfo(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, SQLGroundTruthFile, sqlCorpus)

	info := NewLoader(dir).DatasetInfo()
	if !info.SQLFilePresent || info.SQLSamples != 3 {
		t.Errorf("SQL info = present %v count %d, want present 3", info.SQLFilePresent, info.SQLSamples)
	}
	if info.FunctionFilePresent {
		t.Error("FunctionFilePresent = true, want false")
	}
}
