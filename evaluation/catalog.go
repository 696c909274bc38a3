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

// The function catalog covers the fixed set of government-data lookups the
// benchmark evaluates. Extraction only accepts these names, the executor
// routes them to the BLS or BEA API, and well-formedness checks use the
// required-argument lists.

var functionDefaults = map[string]map[string]any{
	"get_cpi_data": {
		"series_id":  "CUUR0000SA0",
		"start_year": 2020,
		"end_year":   2024,
	},
	"get_employment_cost_index": {
		"series_id":  "CIU1010000000000I",
		"start_year": 2020,
		"end_year":   2024,
	},
	"get_productivity_data": {
		"series_id":  "PRS85006092",
		"start_year": 2020,
		"end_year":   2024,
	},
	"get_gdp_by_industry": {
		"year":     2023,
		"industry": "ALL",
		"table_id": "1",
	},
	"get_regional_income": {
		"state":     "CA",
		"year":      2023,
		"line_code": "SA1-1",
	},
	// All parameters of get_budget_outlays are optional.
	"get_budget_outlays": {},
}

var functionRequiredArgs = map[string][]string{
	"get_cpi_data":              {"start_year", "end_year"},
	"get_employment_cost_index": {"start_year", "end_year"},
	"get_productivity_data":     {"start_year", "end_year"},
	"get_gdp_by_industry":       {"year"},
	"get_regional_income":       {"state", "year"},
	"get_budget_outlays":        {},
}

// KnownFunctions returns the whitelisted function names in stable order.
func KnownFunctions() []string {
	return []string{
		"get_cpi_data",
		"get_employment_cost_index",
		"get_productivity_data",
		"get_gdp_by_industry",
		"get_regional_income",
		"get_budget_outlays",
	}
}

// IsKnownFunction reports whether name is in the whitelist.
func IsKnownFunction(name string) bool {
	_, ok := functionDefaults[name]
	return ok
}

// DefaultArguments returns a copy of the default argument mapping for a
// whitelisted function, or an empty mapping for unknown names.
func DefaultArguments(name string) map[string]any {
	defaults := make(map[string]any)
	for k, v := range functionDefaults[name] {
		defaults[k] = v
	}
	return defaults
}

// RequiredArguments returns the argument names a well-formed call to the
// given function must carry. Unknown names have no well-formed calls.
func RequiredArguments(name string) ([]string, bool) {
	required, ok := functionRequiredArgs[name]
	return required, ok
}
