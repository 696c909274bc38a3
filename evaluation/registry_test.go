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
	"context"
	"errors"
	"testing"
)

type stubValidator struct {
	kind TaskKind
}

func (v *stubValidator) Kind() TaskKind { return v.kind }

func (v *stubValidator) Validate(ctx context.Context, sample *Sample, response string) Outcome {
	return Outcome{Passed: true, Score: 1.0}
}

func stubFactory(kind TaskKind) ValidatorFactory {
	return func(config ValidatorConfig) (Validator, error) {
		return &stubValidator{kind: kind}, nil
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(TaskSQL, stubFactory(TaskSQL)); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(TaskSQL, stubFactory(TaskSQL)); err == nil {
		t.Error("duplicate Register succeeded, want error")
	}

	if !r.IsRegistered(TaskSQL) {
		t.Error("IsRegistered(sql) = false, want true")
	}
	if r.IsRegistered(TaskFunction) {
		t.Error("IsRegistered(function) = true, want false")
	}

	v, err := r.CreateValidator(TaskSQL, ValidatorConfig{})
	if err != nil {
		t.Fatalf("CreateValidator: %v", err)
	}
	if v.Kind() != TaskSQL {
		t.Errorf("Kind() = %q, want sql", v.Kind())
	}

	if _, err := r.CreateValidator(TaskFunction, ValidatorConfig{}); err == nil {
		t.Error("CreateValidator for unregistered kind succeeded, want error")
	}

	kinds := r.ListKinds()
	if len(kinds) != 1 || kinds[0] != TaskSQL {
		t.Errorf("ListKinds() = %v, want [sql]", kinds)
	}
}

func TestScoringByPreset(t *testing.T) {
	tests := []struct {
		name    string
		preset  ScoringPreset
		wantErr bool
		check   func(t *testing.T, cfg FunctionScoringConfig)
	}{
		{
			name:   "weighted",
			preset: PresetWeighted,
			check: func(t *testing.T, cfg FunctionScoringConfig) {
				if cfg.SelectionWeight != 0.3 || cfg.ExecutionWeight != 0.2 {
					t.Errorf("weights = %v/%v, want 0.3/0.2", cfg.SelectionWeight, cfg.ExecutionWeight)
				}
				if cfg.BinarySelection {
					t.Error("BinarySelection = true, want false")
				}
				if cfg.NumericTolerance != 0.01 {
					t.Errorf("NumericTolerance = %v, want 0.01", cfg.NumericTolerance)
				}
			},
		},
		{
			name:   "empty preset defaults to weighted",
			preset: "",
			check: func(t *testing.T, cfg FunctionScoringConfig) {
				if cfg.SelectionWeight != 0.3 {
					t.Errorf("SelectionWeight = %v, want 0.3", cfg.SelectionWeight)
				}
			},
		},
		{
			name:   "binary",
			preset: PresetBinary,
			check: func(t *testing.T, cfg FunctionScoringConfig) {
				if cfg.SelectionWeight != 0.25 || cfg.OverallPassThreshold != 0.75 {
					t.Errorf("cfg = %+v, want equal weights and 0.75 threshold", cfg)
				}
				if !cfg.BinarySelection || !cfg.RequireCallCountMatch {
					t.Error("binary preset flags not set")
				}
				if cfg.NumericTolerance != 0.001 {
					t.Errorf("NumericTolerance = %v, want 0.001", cfg.NumericTolerance)
				}
			},
		},
		{
			name:    "unknown preset",
			preset:  "bogus",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ScoringByPreset(tt.preset)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("err = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ScoringByPreset: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}
