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

import "strings"

var sqlKeywords = []string{"SELECT", "INSERT", "UPDATE", "DELETE", "CREATE", "DROP", "ALTER"}

// WITH opens common table expressions, so the line scan accepts it as a
// statement start. It stays out of the validation list: as a substring
// check it would match the English word.
var sqlLineKeywords = append([]string{"WITH"}, sqlKeywords...)

// SQL pulls one SQL statement out of a model response. It prefers a
// ```sql fence, then any code fence, then an inline scan that starts at
// the first SQL keyword and stops at a terminating semicolon or blank
// line. The trailing semicolon is stripped. ok is false when no
// plausible statement is present.
func SQL(response string) (sql string, ok bool) {
	text := strings.TrimSpace(response)
	if text == "" {
		return "", false
	}

	if s, found := fencedBlock(text, "```sql"); found {
		return finishSQL(s)
	}
	if s, found := fencedBlock(text, "```"); found {
		return finishSQL(s)
	}
	return finishSQL(inlineSQL(text))
}

// fencedBlock returns the content of the first code fence opened by marker.
func fencedBlock(text, marker string) (string, bool) {
	lower := strings.ToLower(text)
	start := strings.Index(lower, strings.ToLower(marker))
	if start < 0 {
		return "", false
	}
	body := text[start+len(marker):]
	end := strings.Index(body, "```")
	if end < 0 {
		return strings.TrimSpace(body), true
	}
	return strings.TrimSpace(body[:end]), true
}

// inlineSQL collects lines from the first keyword-led line until a
// semicolon terminator or a blank line.
func inlineSQL(text string) string {
	var collected []string
	collecting := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !collecting {
			if startsWithSQLKeyword(trimmed) {
				collecting = true
				collected = append(collected, trimmed)
				if strings.HasSuffix(trimmed, ";") {
					break
				}
			}
			continue
		}
		if trimmed == "" {
			break
		}
		collected = append(collected, trimmed)
		if strings.HasSuffix(trimmed, ";") {
			break
		}
	}
	return strings.Join(collected, "\n")
}

func startsWithSQLKeyword(line string) bool {
	upper := strings.ToUpper(line)
	for _, kw := range sqlLineKeywords {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	return false
}

// finishSQL validates and normalizes a candidate statement.
func finishSQL(s string) (string, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ";"))
	if s == "" {
		return "", false
	}
	upper := strings.ToUpper(s)
	for _, kw := range sqlKeywords {
		if strings.Contains(upper, kw) {
			return s, true
		}
	}
	return "", false
}
