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

package functioncall

import "testing"

func TestValueMatcher(t *testing.T) {
	m := NewValueMatcher(0.01, 1)

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{name: "equal strings", a: "CUUR0000SA0", b: "CUUR0000SA0", want: true},
		{name: "equal ints", a: 2020, b: 2020, want: true},
		{name: "int and float same value", a: 2020, b: float64(2020), want: true},
		{name: "floats within tolerance", a: 3.141, b: 3.149, want: true},
		{name: "floats outside tolerance small values", a: 0.5, b: 0.6, want: false},
		{name: "case-insensitive strings", a: "California", b: "CALIFORNIA", want: true},
		{name: "adjacent years match", a: 2023, b: 2024, want: true},
		{name: "years two apart do not match", a: 2023, b: 2021, want: false},
		{name: "year as float matches adjacent int year", a: float64(2023), b: 2024, want: true},
		{name: "non-year large numbers outside tolerance", a: 5000, b: 5001, want: false},
		{name: "different strings", a: "CA", b: "NY", want: false},
		{name: "numeric string and number", a: "2023", b: 2023, want: true},
		{name: "string year within tolerance of int year", a: "2023", b: 2024, want: true},
		{name: "string float within tolerance", a: "3.14", b: 3.145, want: true},
		{name: "string year two apart does not match", a: "2023", b: 2021, want: false},
		{name: "non-numeric string and number", a: "recent", b: 2023, want: false},
		{name: "nil equals nil", a: nil, b: nil, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Matches(tt.a, tt.b); got != tt.want {
				t.Errorf("Matches(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Matching is symmetric.
			if got := m.Matches(tt.b, tt.a); got != tt.want {
				t.Errorf("Matches(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestValueMatcherStrictTolerance(t *testing.T) {
	m := NewValueMatcher(0.001, 1)

	if m.Matches(3.141, 3.149) {
		t.Error("Matches(3.141, 3.149) = true under 0.001 tolerance, want false")
	}
	if !m.Matches(3.1414, 3.1415) {
		t.Error("Matches(3.1414, 3.1415) = false under 0.001 tolerance, want true")
	}
}
