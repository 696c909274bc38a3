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

import "fmt"

// ScoringPreset names a function-call scoring configuration.
type ScoringPreset string

const (
	// PresetWeighted weights components 0.3/0.3/0.2/0.2, scores function
	// selection as an F1 overlap, and passes when selection >= 0.8 and
	// parameters >= 0.6. This is the default preset.
	PresetWeighted ScoringPreset = "weighted"

	// PresetBinary weights all four components equally, scores function
	// selection as exact name-set equality, and passes when the overall
	// score reaches 0.75 (three of four components).
	PresetBinary ScoringPreset = "binary"
)

// FunctionScoringConfig parameterizes the function-call scorer. Use
// WeightedScoring or BinaryScoring rather than constructing one by hand.
type FunctionScoringConfig struct {
	SelectionWeight float64
	ParameterWeight float64
	ExecutionWeight float64
	ResultWeight    float64

	// OverallPassThreshold, when positive, decides pass/fail from the
	// weighted overall score. Otherwise the per-component minima below
	// decide.
	OverallPassThreshold float64
	SelectionPassMin     float64
	ParameterPassMin     float64

	// BinarySelection scores function selection as exact set equality
	// (1.0 or 0.0) instead of an F1 overlap of the name sets.
	BinarySelection bool

	// RequireCallCountMatch makes parameter accuracy 0.0 whenever the
	// predicted and expected call counts differ.
	RequireCallCountMatch bool

	// Value-matcher tolerances for argument comparison.
	NumericTolerance float64
	YearTolerance    int
}

// WeightedScoring returns the weighted preset.
func WeightedScoring() FunctionScoringConfig {
	return FunctionScoringConfig{
		SelectionWeight:  0.3,
		ParameterWeight:  0.3,
		ExecutionWeight:  0.2,
		ResultWeight:     0.2,
		SelectionPassMin: 0.8,
		ParameterPassMin: 0.6,
		NumericTolerance: 0.01,
		YearTolerance:    1,
	}
}

// BinaryScoring returns the equal-weight binary preset.
func BinaryScoring() FunctionScoringConfig {
	return FunctionScoringConfig{
		SelectionWeight:       0.25,
		ParameterWeight:       0.25,
		ExecutionWeight:       0.25,
		ResultWeight:          0.25,
		OverallPassThreshold:  0.75,
		SelectionPassMin:      0.8,
		ParameterPassMin:      0.6,
		BinarySelection:       true,
		RequireCallCountMatch: true,
		NumericTolerance:      0.001,
		YearTolerance:         1,
	}
}

// ScoringByPreset resolves a preset name to its configuration.
func ScoringByPreset(preset ScoringPreset) (FunctionScoringConfig, error) {
	switch preset {
	case PresetWeighted, "":
		return WeightedScoring(), nil
	case PresetBinary:
		return BinaryScoring(), nil
	default:
		return FunctionScoringConfig{}, fmt.Errorf("%w: unknown scoring preset %q", ErrInvalidInput, preset)
	}
}

// SQLScoringConfig parameterizes the two-stage SQL scorer.
type SQLScoringConfig struct {
	ExecutionWeight float64
	ResultWeight    float64

	// Pass requires both stage scores to reach their thresholds.
	ExecutionPassThreshold float64
	ResultPassThreshold    float64
}

// DefaultSQLScoring returns the production thresholds: pass requires
// execution >= 0.8 and result similarity >= 0.9; the continuous overall
// score is 0.4*execution + 0.6*result.
func DefaultSQLScoring() SQLScoringConfig {
	return SQLScoringConfig{
		ExecutionWeight:        0.4,
		ResultWeight:           0.6,
		ExecutionPassThreshold: 0.8,
		ResultPassThreshold:    0.9,
	}
}
