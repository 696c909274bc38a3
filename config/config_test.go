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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/usafacts/usabench/evaluation"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ModelName == "" {
		t.Error("ModelName empty")
	}
	if cfg.ScoringPreset != string(evaluation.PresetWeighted) {
		t.Errorf("ScoringPreset = %q, want weighted", cfg.ScoringPreset)
	}
	if cfg.Concurrency != 1 {
		t.Errorf("Concurrency = %d, want 1", cfg.Concurrency)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
model_name: gemini-1.5-pro
temperature: 0.2
sql_samples: 25
difficulty_filter: [easy, hard]
scoring_preset: binary
concurrency: 4
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ModelName != "gemini-1.5-pro" {
		t.Errorf("ModelName = %q", cfg.ModelName)
	}
	if cfg.SQLSamples != 25 {
		t.Errorf("SQLSamples = %d, want 25", cfg.SQLSamples)
	}
	if cfg.ScoringPreset != "binary" {
		t.Errorf("ScoringPreset = %q, want binary", cfg.ScoringPreset)
	}
	// Values not present in the file keep their defaults.
	if cfg.DBPath != "data/usafacts.db" {
		t.Errorf("DBPath = %q, want default", cfg.DBPath)
	}

	difficulties, err := cfg.Difficulties()
	if err != nil {
		t.Fatalf("Difficulties: %v", err)
	}
	want := []evaluation.Difficulty{evaluation.DifficultyEasy, evaluation.DifficultyHard}
	if diff := cmp.Diff(want, difficulties); diff != "" {
		t.Errorf("Difficulties mismatch (-want +got):\n%s", diff)
	}
}

func TestDifficultiesRejectsUnknown(t *testing.T) {
	cfg := Default()
	cfg.DifficultyFilter = []string{"impossible"}
	if _, err := cfg.Difficulties(); err == nil {
		t.Error("Difficulties with unknown value succeeded, want error")
	}
}

func TestEnvFallback(t *testing.T) {
	t.Setenv("BLS_API_KEY", "bls-test-key")
	t.Setenv("BEA_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BLSAPIKey != "bls-test-key" {
		t.Errorf("BLSAPIKey = %q, want env value", cfg.BLSAPIKey)
	}
}
