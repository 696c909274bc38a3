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

// Package text2sql scores generated SQL by running it against a reference
// database: first whether it executes at all, then how closely its result
// rows match the expected rows.
package text2sql

import (
	"regexp"
	"strings"
)

var (
	fenceOpenRe    = regexp.MustCompile("(?i)```sql")
	fenceCloseRe   = regexp.MustCompile("```")
	lineCommentRe  = regexp.MustCompile(`(?m)--[^\n]*`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// CleanSQL strips markdown fences and SQL comments and collapses all
// whitespace runs to single spaces.
func CleanSQL(sql string) string {
	s := fenceOpenRe.ReplaceAllString(sql, "")
	s = fenceCloseRe.ReplaceAllString(s, "")
	s = lineCommentRe.ReplaceAllString(s, "")
	s = blockCommentRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}
