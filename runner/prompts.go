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

package runner

import (
	"fmt"
	"strings"

	"github.com/usafacts/usabench/evaluation"
)

const sqlSystemPrompt = `You are a SQL expert. Generate a SQL query to answer the given question using the provided database schema.

IMPORTANT: All government data is limited to years 2014-2024 only.
If asked for data outside this range, explain that data is not available.

Important guidelines:
- Use only the tables and columns described in the schema
- Data covers 2014-2024 only
- Write valid SQLite syntax
- Be precise and efficient
- Return only the SQL query without explanations`

const functionSystemPrompt = `You are a function calling assistant. Given a natural language question, determine which functions to call to answer the question.

Available functions and their parameters are provided below. You must:
1. Select the appropriate function(s) to answer the question
2. Provide correct parameters based on the question
3. Return function calls in JSON format: {"function_name": "name", "parameters": {...}}
4. If multiple functions are needed, return an array of function calls
5. Only use functions from the provided list

`

const functionDocs = `# Available Functions

## DATA AVAILABILITY: All data is limited to 2014-2024

## BLS Functions (Bureau of Labor Statistics)

### get_cpi_data
Retrieve Consumer Price Index data from BLS
Parameters:
- series_id (string, required): BLS series ID for CPI data (default: CUUR0000SA0)
- start_year (integer, required): Start year for data retrieval (2014-2024)
- end_year (integer, required): End year for data retrieval (2014-2024)

### get_employment_cost_index
Retrieve Employment Cost Index data from BLS
Parameters:
- series_id (string, required): BLS series ID for ECI data (default: CIU1010000000000I)
- start_year (integer, required): Start year for data retrieval (2014-2024)
- end_year (integer, required): End year for data retrieval (2014-2024)

### get_productivity_data
Retrieve labor productivity data from BLS
Parameters:
- series_id (string, required): BLS series ID for productivity data (default: PRS85006092)
- start_year (integer, required): Start year for data retrieval (2014-2024)
- end_year (integer, required): End year for data retrieval (2014-2024)

## BEA Functions (Bureau of Economic Analysis)

### get_gdp_by_industry
Retrieve GDP by industry data from BEA
Parameters:
- year (integer, required): Year for GDP data (2014-2024)
- industry (string, optional): Industry code or 'ALL' (default: ALL)
- table_id (string, optional): Table identifier (default: 1)

### get_regional_income
Retrieve regional personal income data from BEA
Parameters:
- state (string, required): State name or FIPS code
- year (integer, required): Year for income data (2014-2024)
- line_code (string, optional): Line code for specific income measure (default: SA1-1)

## Budget Functions

### get_budget_outlays
Retrieve federal budget outlays data
Parameters:
- function_name (string, optional): Budget function name
- fiscal_year (integer, optional): Specific fiscal year
- min_amount (float, optional): Minimum spending amount
- max_amount (float, optional): Maximum spending amount
`

// Table schemas presented to the model. Only the tables a classified
// question needs are included, keeping prompts small and focused.
var tableSchemas = map[string]string{
	"budget_outlays": `TABLE: budget_outlays
COLUMNS: record_id, superfunction, function_name, fiscal_year, outlay_amount, unit, source
PURPOSE: Government spending data by function and fiscal year
EXAMPLE: SELECT function_name, SUM(outlay_amount) AS total_outlays FROM budget_outlays WHERE fiscal_year >= 2020 GROUP BY function_name ORDER BY total_outlays DESC LIMIT 10`,

	"time_series_data": `TABLE: time_series_data
COLUMNS: record_id, series_id, indicator_id, source, category, subcategory, year, period_type, period_value, period_name, fiscal_calendar, geographic_level, geographic_code, geographic_name, raw_value, numeric_value, unit, unit_multiplier, is_estimated, footnotes
KEY CATEGORIES: 'consumer_price_index', 'employment_cost_index', 'productivity_measures'
PURPOSE: Economic indicators and time series data from BLS and BEA
EXAMPLE: SELECT year, numeric_value FROM time_series_data WHERE category = 'consumer_price_index' AND year BETWEEN 2020 AND 2023 ORDER BY year`,

	"industry_gdp": `TABLE: industry_gdp
COLUMNS: record_id, industry_code, industry_name, year, gdp_value, unit, unit_multiplier, source
PURPOSE: GDP contribution by industry over time
EXAMPLE: SELECT industry_name, gdp_value FROM industry_gdp WHERE year = 2023 ORDER BY gdp_value DESC LIMIT 10`,

	"regional_data": `TABLE: regional_data
COLUMNS: record_id, state_code, state_name, region, year, personal_income, per_capita_income, population, unit, source
PURPOSE: Regional economic data by state
EXAMPLE: SELECT state_name, personal_income FROM regional_data WHERE year = 2023 ORDER BY personal_income DESC LIMIT 10`,

	"gdp_by_industry": `TABLE: gdp_by_industry
COLUMNS: record_id, industry_code, industry_name, year, quarter, gdp_contribution, percentage_of_total, unit, source
PURPOSE: Industry contributions to GDP over time
EXAMPLE: SELECT industry_name, SUM(gdp_contribution) as total_contribution FROM gdp_by_industry WHERE year = 2023 GROUP BY industry_name ORDER BY total_contribution DESC`,
}

// ClassifyQuestion maps a question to the reference tables it likely
// needs, by keyword. Unmatched questions default to budget_outlays.
func ClassifyQuestion(question string) []string {
	lower := strings.ToLower(question)
	var tables []string

	containsAny := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}

	if containsAny("outlays", "spending", "budget", "defense", "military",
		"health", "categories", "functions", "departments", "federal") {
		tables = append(tables, "budget_outlays")
	}
	if containsAny("cpi", "consumer price", "inflation", "employment cost",
		"workers", "compensation", "economic indicators", "productivity") {
		tables = append(tables, "time_series_data")
	}
	if containsAny("gdp", "industry", "industries", "contribution", "economic sectors") {
		tables = append(tables, "industry_gdp", "gdp_by_industry")
	}
	if containsAny("state", "states", "regional", "personal income", "per capita", "population") {
		tables = append(tables, "regional_data")
	}

	if len(tables) == 0 {
		tables = append(tables, "budget_outlays")
	}
	return tables
}

// TargetedSchema renders the schema text for the given tables.
func TargetedSchema(tables []string) string {
	var parts []string
	for _, table := range tables {
		if schema, ok := tableSchemas[table]; ok {
			parts = append(parts, schema)
		}
	}
	if len(parts) == 0 {
		return tableSchemas["budget_outlays"]
	}
	if len(parts) == 1 {
		return parts[0]
	}
	header := fmt.Sprintf("RELEVANT TABLES FOR YOUR QUERY (%d tables):\n\n", len(parts))
	return header + strings.Join(parts, "\n---\n")
}

// PromptBuilder constructs the system and user prompts for each task kind.
type PromptBuilder struct{}

// NewPromptBuilder returns the default prompt builder.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// Build returns the (system, user) prompt pair for a sample.
func (pb *PromptBuilder) Build(sample *evaluation.Sample) (string, string) {
	switch sample.Kind {
	case evaluation.TaskSQL:
		return pb.buildSQL(sample)
	case evaluation.TaskFunction:
		return pb.buildFunction(sample)
	default:
		return "", sample.Question
	}
}

func (pb *PromptBuilder) buildSQL(sample *evaluation.Sample) (string, string) {
	schema := sample.Context
	if schema == "" {
		schema = TargetedSchema(ClassifyQuestion(sample.Question))
	}
	user := fmt.Sprintf("Question: %s\n\nDatabase Schema:\n%s\n\nGenerate the SQL query:",
		sample.Question, schema)
	return sqlSystemPrompt, user
}

func (pb *PromptBuilder) buildFunction(sample *evaluation.Sample) (string, string) {
	docs := functionDocs
	if len(sample.AvailableFunctions) > 0 {
		var b strings.Builder
		b.WriteString("# Available Functions\n\n")
		for _, fn := range sample.AvailableFunctions {
			fmt.Fprintf(&b, "### %s\n%s\n\n", fn.Name, fn.Description)
		}
		docs = b.String()
	}

	system := functionSystemPrompt + docs
	user := fmt.Sprintf("Question: %s\n\nBased on the available functions, what function call(s) would you make to answer this question? Return only the JSON function call(s).",
		sample.Question)
	return system, user
}
