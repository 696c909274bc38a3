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

// Package dataset loads ground-truth benchmark samples from the JSON
// corpus files. The corpus grew organically, so the loader tolerates
// several field spellings and both known root layouts.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/usafacts/usabench/evaluation"
)

// Default corpus file names under the data directory.
const (
	SQLGroundTruthFile      = "text2sql_ground_truth.json"
	FunctionGroundTruthFile = "enhanced_function_calling_ground_truth.json"
)

// Loader reads ground-truth datasets from a directory.
type Loader struct {
	dataDir string
}

// NewLoader creates a loader rooted at dataDir.
func NewLoader(dataDir string) *Loader {
	return &Loader{dataDir: dataDir}
}

// rawDocument covers both accepted root layouts.
type rawDocument struct {
	Questions       []map[string]any `json:"questions"`
	GroundTruthData []map[string]any `json:"ground_truth_data"`
}

// rawQuestion accepts all observed spellings of the sample fields. Aliases
// are resolved in declaration order: the first non-empty value wins.
type rawQuestion struct {
	QuestionID string `mapstructure:"question_id"`
	ID         string `mapstructure:"id"`

	QuestionText string `mapstructure:"question_text"`
	Question     string `mapstructure:"question"`

	Difficulty string `mapstructure:"difficulty"`
	Context    string `mapstructure:"context"`

	ReferenceSQL   string `mapstructure:"reference_sql"`
	GroundTruthSQL string `mapstructure:"ground_truth_sql"`
	SQL            string `mapstructure:"sql"`

	ExpectedResult []map[string]any `mapstructure:"expected_result"`

	FunctionSequence     []rawCall `mapstructure:"function_sequence"`
	ExpectedFunctions    []rawCall `mapstructure:"expected_functions"`
	GroundTruthFunctions []rawCall `mapstructure:"ground_truth_functions"`

	Category   string `mapstructure:"category"`
	Complexity string `mapstructure:"complexity"`
}

type rawCall struct {
	FunctionName string         `mapstructure:"function_name"`
	Name         string         `mapstructure:"name"`
	Parameters   map[string]any `mapstructure:"parameters"`
	Arguments    map[string]any `mapstructure:"arguments"`
}

func (c rawCall) toCall() evaluation.Call {
	name := c.FunctionName
	if name == "" {
		name = c.Name
	}
	args := c.Parameters
	if args == nil {
		args = c.Arguments
	}
	if args == nil {
		args = map[string]any{}
	}
	return evaluation.Call{Name: name, Arguments: args}
}

// Filter narrows which samples a load returns.
type Filter struct {
	// MaxSamples caps the number of samples; 0 means no cap.
	MaxSamples int

	// Difficulties keeps only the listed difficulties; empty keeps all.
	Difficulties []evaluation.Difficulty
}

func (f Filter) allows(d evaluation.Difficulty) bool {
	if len(f.Difficulties) == 0 {
		return true
	}
	for _, want := range f.Difficulties {
		if want == d {
			return true
		}
	}
	return false
}

// LoadSQLSamples loads the SQL ground-truth corpus.
func (l *Loader) LoadSQLSamples(filter Filter) ([]*evaluation.Sample, error) {
	return l.loadFile(SQLGroundTruthFile, evaluation.TaskSQL, "sql", filter)
}

// LoadFunctionSamples loads the function-call ground-truth corpus.
func (l *Loader) LoadFunctionSamples(filter Filter) ([]*evaluation.Sample, error) {
	return l.loadFile(FunctionGroundTruthFile, evaluation.TaskFunction, "func", filter)
}

// LoadMixed loads both corpora with independent sample caps.
func (l *Loader) LoadMixed(sqlCount, functionCount int, difficulties []evaluation.Difficulty) ([]*evaluation.Sample, error) {
	sqlSamples, err := l.LoadSQLSamples(Filter{MaxSamples: sqlCount, Difficulties: difficulties})
	if err != nil {
		return nil, err
	}
	functionSamples, err := l.LoadFunctionSamples(Filter{MaxSamples: functionCount, Difficulties: difficulties})
	if err != nil {
		return nil, err
	}
	return append(sqlSamples, functionSamples...), nil
}

func (l *Loader) loadFile(name string, kind evaluation.TaskKind, idPrefix string, filter Filter) ([]*evaluation.Sample, error) {
	path := filepath.Join(l.dataDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ground truth file %s: %w", path, err)
	}
	return parseSamples(data, kind, idPrefix, filter)
}

func parseSamples(data []byte, kind evaluation.TaskKind, idPrefix string, filter Filter) ([]*evaluation.Sample, error) {
	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse ground truth JSON: %w", err)
	}

	items := doc.Questions
	if items == nil {
		items = doc.GroundTruthData
	}

	var samples []*evaluation.Sample
	for i, item := range items {
		if filter.MaxSamples > 0 && len(samples) >= filter.MaxSamples {
			break
		}

		var raw rawQuestion
		if err := mapstructure.WeakDecode(item, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode sample %d: %w", i, err)
		}

		difficulty := parseDifficulty(raw.Difficulty)
		if !filter.allows(difficulty) {
			continue
		}

		sample := &evaluation.Sample{
			ID:         firstNonEmpty(raw.QuestionID, raw.ID, fmt.Sprintf("%s_%d", idPrefix, i)),
			Question:   firstNonEmpty(raw.QuestionText, raw.Question),
			Kind:       kind,
			Difficulty: difficulty,
			Context:    raw.Context,
			Metadata: map[string]any{
				"category":   raw.Category,
				"complexity": raw.Complexity,
			},
		}

		switch kind {
		case evaluation.TaskSQL:
			sample.ReferenceSQL = firstNonEmpty(raw.ReferenceSQL, raw.GroundTruthSQL, raw.SQL)
			sample.ExpectedRows = raw.ExpectedResult
		case evaluation.TaskFunction:
			calls := raw.FunctionSequence
			if calls == nil {
				calls = raw.ExpectedFunctions
			}
			if calls == nil {
				calls = raw.GroundTruthFunctions
			}
			for _, c := range calls {
				sample.ExpectedCalls = append(sample.ExpectedCalls, c.toCall())
			}
		}

		samples = append(samples, sample)
	}
	return samples, nil
}

func parseDifficulty(s string) evaluation.Difficulty {
	switch strings.ToLower(s) {
	case "easy":
		return evaluation.DifficultyEasy
	case "hard":
		return evaluation.DifficultyHard
	default:
		return evaluation.DifficultyMedium
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Info describes what the data directory offers.
type Info struct {
	DataDir           string `json:"data_dir"`
	SQLSamples        int    `json:"sql_samples"`
	FunctionSamples   int    `json:"function_samples"`
	SQLFilePresent    bool   `json:"sql_file_present"`
	FunctionFilePresent bool `json:"function_file_present"`
}

// DatasetInfo reports sample counts without a filter. Missing files report
// as absent rather than failing.
func (l *Loader) DatasetInfo() Info {
	info := Info{DataDir: l.dataDir}

	if samples, err := l.LoadSQLSamples(Filter{}); err == nil {
		info.SQLFilePresent = true
		info.SQLSamples = len(samples)
	}
	if samples, err := l.LoadFunctionSamples(Filter{}); err == nil {
		info.FunctionFilePresent = true
		info.FunctionSamples = len(samples)
	}
	return info
}
