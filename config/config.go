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

// Package config holds benchmark run configuration, loadable from YAML
// with environment-variable credential fallbacks.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/usafacts/usabench/evaluation"
)

// Config collects everything a benchmark run needs.
type Config struct {
	// Model configuration.
	ModelName      string  `yaml:"model_name"`
	Temperature    float32 `yaml:"temperature"`
	MaxTokens      int32   `yaml:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`

	// Dataset configuration.
	DataDir          string   `yaml:"data_dir"`
	SQLSamples       int      `yaml:"sql_samples"`
	FunctionSamples  int      `yaml:"function_samples"`
	DifficultyFilter []string `yaml:"difficulty_filter"`

	// Reference database.
	DBPath string `yaml:"db_path"`

	// Scoring.
	ScoringPreset string `yaml:"scoring_preset"`

	// Output configuration.
	OutputDir   string `yaml:"output_dir"`
	SaveResults bool   `yaml:"save_results"`

	// Execution configuration.
	Concurrency int `yaml:"concurrency"`

	// Credentials. Empty values fall back to GEMINI_API_KEY, BLS_API_KEY,
	// and BEA_API_KEY.
	GeminiAPIKey string `yaml:"gemini_api_key"`
	BLSAPIKey    string `yaml:"bls_api_key"`
	BEAAPIKey    string `yaml:"bea_api_key"`
}

// Default returns the standard configuration.
func Default() *Config {
	return &Config{
		ModelName:      "gemini-2.0-flash",
		Temperature:    0.0,
		MaxTokens:      2000,
		TimeoutSeconds: 30,
		DataDir:        "data",
		DBPath:         "data/usafacts.db",
		ScoringPreset:  string(evaluation.PresetWeighted),
		OutputDir:      "results",
		SaveResults:    true,
		Concurrency:    1,
	}
}

// Load reads a YAML config file over the defaults, then applies
// environment credential fallbacks.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.BLSAPIKey == "" {
		c.BLSAPIKey = os.Getenv("BLS_API_KEY")
	}
	if c.BEAAPIKey == "" {
		c.BEAAPIKey = os.Getenv("BEA_API_KEY")
	}
}

// Difficulties parses the difficulty filter into typed values. Unknown
// names are rejected.
func (c *Config) Difficulties() ([]evaluation.Difficulty, error) {
	var out []evaluation.Difficulty
	for _, s := range c.DifficultyFilter {
		switch evaluation.Difficulty(s) {
		case evaluation.DifficultyEasy, evaluation.DifficultyMedium, evaluation.DifficultyHard:
			out = append(out, evaluation.Difficulty(s))
		default:
			return nil, fmt.Errorf("%w: unknown difficulty %q", evaluation.ErrInvalidInput, s)
		}
	}
	return out, nil
}
