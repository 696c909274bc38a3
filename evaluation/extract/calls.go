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

// Package extract recovers structured predictions from free-form model
// text: function calls in several encodings and SQL statements in fenced
// or inline form. Extraction is best effort and never returns an error;
// an empty result means nothing recognizable was found.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/usafacts/usabench/evaluation"
)

// CallExtractor parses predicted function calls out of model responses.
// Strategies are tried in order from most to least structured, and the
// first one that yields at least one call wins.
type CallExtractor struct {
	labeled    *regexp.Regexp
	params     *regexp.Regexp
	callSyntax *regexp.Regexp
}

// NewCallExtractor compiles the extraction patterns once.
func NewCallExtractor() *CallExtractor {
	return &CallExtractor{
		labeled:    regexp.MustCompile(`(?i)function:\s*(\w+)`),
		params:     regexp.MustCompile(`(?i)parameters?:\s*(.+)`),
		callSyntax: regexp.MustCompile(`(\w+)\s*\(([^)]*)\)`),
	}
}

// Calls extracts predicted calls from a raw response. The strategies, in
// order: embedded JSON fragments, whole-text JSON, labeled
// "Function:/Parameters:" blocks, call syntax name(k=v, ...), and finally
// a bare whitelisted name with that function's default arguments.
func (e *CallExtractor) Calls(response string) []evaluation.Call {
	text := strings.TrimSpace(response)
	if text == "" {
		return nil
	}

	if calls := e.fromJSONFragments(text); len(calls) > 0 {
		return calls
	}
	if calls := e.fromWholeJSON(text); len(calls) > 0 {
		return calls
	}
	if calls := e.fromLabeled(text); len(calls) > 0 {
		return calls
	}
	if calls := e.fromCallSyntax(text); len(calls) > 0 {
		return calls
	}
	return e.fromBareNames(text)
}

// jsonCall mirrors the accepted JSON encodings of a single call.
type jsonCall struct {
	Name         string         `json:"name"`
	Function     string         `json:"function"`
	FunctionName string         `json:"function_name"`
	Arguments    map[string]any `json:"arguments"`
	Parameters   map[string]any `json:"parameters"`
}

func (c jsonCall) toCall() (evaluation.Call, bool) {
	name := c.Name
	if name == "" {
		name = c.Function
	}
	if name == "" {
		name = c.FunctionName
	}
	if name == "" {
		return evaluation.Call{}, false
	}
	args := c.Arguments
	if args == nil {
		args = c.Parameters
	}
	if args == nil {
		args = map[string]any{}
	}
	return evaluation.Call{Name: name, Arguments: normalizeArguments(args)}, true
}

// fromJSONFragments scans for balanced {...} fragments and keeps those that
// decode to an object carrying a function name.
func (e *CallExtractor) fromJSONFragments(text string) []evaluation.Call {
	var calls []evaluation.Call
	for _, fragment := range jsonObjects(text) {
		var jc jsonCall
		if err := json.Unmarshal([]byte(fragment), &jc); err != nil {
			continue
		}
		if call, ok := jc.toCall(); ok {
			calls = append(calls, call)
		}
	}
	return calls
}

// jsonObjects returns all top-level balanced brace fragments in text,
// respecting string literals and escapes.
func jsonObjects(text string) []string {
	var fragments []string
	depth := 0
	start := -1
	inString := false
	escaped := false

	for i, r := range text {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					fragments = append(fragments, text[start:i+1])
					start = -1
				}
			}
		}
	}
	return fragments
}

// fromWholeJSON handles responses that are one JSON value: either a single
// call object or an array of them.
func (e *CallExtractor) fromWholeJSON(text string) []evaluation.Call {
	var single jsonCall
	if err := json.Unmarshal([]byte(text), &single); err == nil {
		if call, ok := single.toCall(); ok {
			return []evaluation.Call{call}
		}
	}

	var many []jsonCall
	if err := json.Unmarshal([]byte(text), &many); err == nil {
		var calls []evaluation.Call
		for _, jc := range many {
			if call, ok := jc.toCall(); ok {
				calls = append(calls, call)
			}
		}
		return calls
	}
	return nil
}

// fromLabeled handles the "Function: name" / "Parameters: k=v, k=v" layout,
// with parameters on the same line or the next non-blank line. Only
// whitelisted names are accepted.
func (e *CallExtractor) fromLabeled(text string) []evaluation.Call {
	var calls []evaluation.Call
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		m := e.labeled.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[1]
		if !evaluation.IsKnownFunction(name) {
			continue
		}
		args := map[string]any{}

		if pm := e.params.FindStringSubmatch(line); pm != nil {
			args = parseKeyValueList(pm[1])
		} else if next := nextNonBlank(lines, i+1); next != "" {
			if pm := e.params.FindStringSubmatch(next); pm != nil {
				args = parseKeyValueList(pm[1])
			}
		}
		calls = append(calls, evaluation.Call{Name: name, Arguments: args})
	}
	return calls
}

// nextNonBlank returns the first non-blank line at or after index from, or
// the empty string if none remains.
func nextNonBlank(lines []string, from int) string {
	for _, line := range lines[min(from, len(lines)):] {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

// fromCallSyntax handles name(k=v, ...) syntax, keeping whitelisted names
// only so prose like "data(2020)" does not produce phantom calls.
func (e *CallExtractor) fromCallSyntax(text string) []evaluation.Call {
	var calls []evaluation.Call
	for _, m := range e.callSyntax.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if !evaluation.IsKnownFunction(name) {
			continue
		}
		calls = append(calls, evaluation.Call{
			Name:      name,
			Arguments: parseKeyValueList(m[2]),
		})
	}
	return calls
}

// fromBareNames is the last resort: whitelisted function names mentioned
// anywhere in the text, each paired with its catalog default arguments.
func (e *CallExtractor) fromBareNames(text string) []evaluation.Call {
	var calls []evaluation.Call
	for _, name := range evaluation.KnownFunctions() {
		if strings.Contains(text, name) {
			calls = append(calls, evaluation.Call{
				Name:      name,
				Arguments: evaluation.DefaultArguments(name),
			})
		}
	}
	return calls
}

// parseKeyValueList parses "k=v, k2=v2" into typed arguments.
func parseKeyValueList(s string) map[string]any {
	args := map[string]any{}
	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		args[key] = coerceValue(strings.TrimSpace(value))
	}
	return args
}

// normalizeArguments re-types string argument values that carry obvious
// scalar encodings, so JSON calls compare like labeled ones.
func normalizeArguments(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		if s, ok := v.(string); ok {
			out[k] = coerceValue(s)
			continue
		}
		out[k] = v
	}
	return out
}
