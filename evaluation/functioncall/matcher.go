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

// Package functioncall scores predicted function-call sequences against
// ground truth: which functions were selected, how their arguments match,
// whether the calls execute, and whether execution returns data.
package functioncall

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ValueMatcher compares argument values with domain-aware leniency.
// Matching is symmetric: Matches(a, b) == Matches(b, a).
type ValueMatcher struct {
	// NumericTolerance is the maximum absolute difference under which two
	// numeric values still match.
	NumericTolerance float64

	// YearTolerance is the maximum absolute difference between two
	// plausible year values that still match.
	YearTolerance int
}

// NewValueMatcher returns a matcher with the given tolerances.
func NewValueMatcher(numericTolerance float64, yearTolerance int) ValueMatcher {
	return ValueMatcher{NumericTolerance: numericTolerance, YearTolerance: yearTolerance}
}

// Matches reports whether predicted and expected argument values agree.
// Rules are applied in order: structural equality, numeric tolerance,
// case-insensitive string equality, then year tolerance.
func (m ValueMatcher) Matches(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}

	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			if abs(af-bf) < m.NumericTolerance {
				return true
			}
		}
	}

	if strings.EqualFold(fmt.Sprint(a), fmt.Sprint(b)) {
		return true
	}

	if ay, aok := asYear(a); aok {
		if by, bok := asYear(b); bok {
			diff := ay - by
			if diff < 0 {
				diff = -diff
			}
			if diff <= m.YearTolerance {
				return true
			}
		}
	}

	return false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// asYear interprets v as a calendar year when it is an integral value in
// a plausible range.
func asYear(v any) (int, bool) {
	f, ok := asFloat(v)
	if !ok {
		return 0, false
	}
	y := int(f)
	if float64(y) != f {
		return 0, false
	}
	if y < 1900 || y > 2100 {
		return 0, false
	}
	return y, true
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
