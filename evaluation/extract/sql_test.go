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

package extract

import "testing"

func TestSQL(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
		wantOK   bool
	}{
		{
			name:     "sql fence",
			response: "Here is the query:\n```sql\nSELECT * FROM budget_outlays;\n```\nThat should work.",
			want:     "SELECT * FROM budget_outlays",
			wantOK:   true,
		},
		{
			name:     "plain fence",
			response: "```\nSELECT function_name FROM budget_outlays WHERE fiscal_year = 2023\n```",
			want:     "SELECT function_name FROM budget_outlays WHERE fiscal_year = 2023",
			wantOK:   true,
		},
		{
			name: "inline statement terminated by semicolon",
			response: `The answer requires a query.
SELECT state_name, personal_income
FROM regional_data
WHERE year = 2023;
This returns the data.`,
			want:   "SELECT state_name, personal_income\nFROM regional_data\nWHERE year = 2023",
			wantOK: true,
		},
		{
			name: "inline statement terminated by blank line",
			response: `SELECT year, numeric_value FROM time_series_data
WHERE category = 'consumer_price_index'

Some trailing explanation.`,
			want:   "SELECT year, numeric_value FROM time_series_data\nWHERE category = 'consumer_price_index'",
			wantOK: true,
		},
		{
			name:     "with clause",
			response: "WITH totals AS (SELECT fiscal_year, SUM(outlay_amount) AS t FROM budget_outlays GROUP BY fiscal_year) SELECT * FROM totals;",
			want:     "WITH totals AS (SELECT fiscal_year, SUM(outlay_amount) AS t FROM budget_outlays GROUP BY fiscal_year) SELECT * FROM totals",
			wantOK:   true,
		},
		{
			name:     "no sql at all",
			response: "I don't know how to answer that question.",
			wantOK:   false,
		},
		{
			name:     "empty response",
			response: "",
			wantOK:   false,
		},
		{
			name:     "fence without sql keywords",
			response: "```\njust some text\n```",
			wantOK:   false,
		},
		{
			name:     "fence with the english word with",
			response: "```\nGo with the second option instead\n```",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SQL(tt.response)
			if ok != tt.wantOK {
				t.Fatalf("SQL() ok = %v, want %v (got %q)", ok, tt.wantOK, got)
			}
			if ok && got != tt.want {
				t.Errorf("SQL() = %q, want %q", got, tt.want)
			}
		})
	}
}
