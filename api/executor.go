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

// Package api executes predicted function calls against the live BLS and
// BEA government data APIs, so execution and result components reflect
// real behavior rather than syntactic checks.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/usafacts/usabench/evaluation"
	"github.com/usafacts/usabench/evaluation/functioncall"
)

const (
	blsEndpoint = "https://api.bls.gov/publicAPI/v2/timeseries/data/"
	beaEndpoint = "https://apps.bea.gov/api/data"
)

// Executor calls the BLS and BEA APIs for whitelisted functions.
// Missing API keys degrade gracefully: calls go out unauthenticated and
// the APIs apply their anonymous rate limits.
type Executor struct {
	client *http.Client

	blsAPIKey string
	beaAPIKey string
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithHTTPClient overrides the default 30 second client.
func WithHTTPClient(client *http.Client) ExecutorOption {
	return func(e *Executor) { e.client = client }
}

// NewExecutor builds an executor with the given credentials. Either key
// may be empty.
func NewExecutor(blsAPIKey, beaAPIKey string, opts ...ExecutorOption) *Executor {
	e := &Executor{
		client:    &http.Client{Timeout: 30 * time.Second},
		blsAPIKey: blsAPIKey,
		beaAPIKey: beaAPIKey,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute implements functioncall.Executor. Unknown functions and
// transport failures come back as unsuccessful results, never as panics.
func (e *Executor) Execute(ctx context.Context, call evaluation.Call) functioncall.ExecutionResult {
	args := evaluation.DefaultArguments(call.Name)
	for k, v := range call.Arguments {
		args[k] = v
	}

	switch call.Name {
	case "get_cpi_data", "get_employment_cost_index", "get_productivity_data":
		return e.callBLS(ctx, args)
	case "get_gdp_by_industry":
		return e.callBEA(ctx, "GDPbyIndustry", map[string]string{
			"Year":     fmt.Sprint(args["year"]),
			"Industry": fmt.Sprint(args["industry"]),
			"TableID":  fmt.Sprint(args["table_id"]),
		})
	case "get_regional_income":
		return e.callBEA(ctx, "Regional", map[string]string{
			"GeoFips":  fmt.Sprint(args["state"]),
			"Year":     fmt.Sprint(args["year"]),
			"LineCode": fmt.Sprint(args["line_code"]),
		})
	default:
		return functioncall.ExecutionResult{Error: fmt.Sprintf("unknown function: %s", call.Name)}
	}
}

func (e *Executor) callBLS(ctx context.Context, args map[string]any) functioncall.ExecutionResult {
	body := map[string]any{
		"seriesid":  []string{fmt.Sprint(args["series_id"])},
		"startyear": fmt.Sprint(args["start_year"]),
		"endyear":   fmt.Sprint(args["end_year"]),
	}
	if e.blsAPIKey != "" {
		body["registrationkey"] = e.blsAPIKey
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return functioncall.ExecutionResult{Error: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, blsEndpoint, bytes.NewReader(encoded))
	if err != nil {
		return functioncall.ExecutionResult{Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	payload, err := e.doJSON(req)
	if err != nil {
		return functioncall.ExecutionResult{Error: err.Error()}
	}

	success := payload["status"] == "REQUEST_SUCCEEDED"
	return functioncall.ExecutionResult{
		Success: success,
		HasData: success && hasBLSData(payload),
		Payload: payload,
	}
}

func (e *Executor) callBEA(ctx context.Context, dataset string, params map[string]string) functioncall.ExecutionResult {
	query := url.Values{
		"method":       {"GetData"},
		"DataSetName":  {dataset},
		"ResultFormat": {"JSON"},
	}
	if e.beaAPIKey != "" {
		query.Set("UserID", e.beaAPIKey)
	}
	for k, v := range params {
		query.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, beaEndpoint+"?"+query.Encode(), nil)
	if err != nil {
		return functioncall.ExecutionResult{Error: err.Error()}
	}

	payload, err := e.doJSON(req)
	if err != nil {
		return functioncall.ExecutionResult{Error: err.Error()}
	}

	success := false
	if bea, ok := payload["BEAAPI"].(map[string]any); ok {
		_, success = bea["Results"]
	}
	return functioncall.ExecutionResult{
		Success: success,
		HasData: success && hasBEAData(payload),
		Payload: payload,
	}
}

func (e *Executor) doJSON(req *http.Request) (map[string]any, error) {
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Host)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return payload, nil
}

// hasBLSData checks Results.series[0].data for actual observations.
func hasBLSData(payload map[string]any) bool {
	results, ok := payload["Results"].(map[string]any)
	if !ok {
		return false
	}
	series, ok := results["series"].([]any)
	if !ok || len(series) == 0 {
		return false
	}
	first, ok := series[0].(map[string]any)
	if !ok {
		return false
	}
	data, ok := first["data"].([]any)
	return ok && len(data) > 0
}

// hasBEAData checks BEAAPI.Results.Data for actual observations.
func hasBEAData(payload map[string]any) bool {
	bea, ok := payload["BEAAPI"].(map[string]any)
	if !ok {
		return false
	}
	results, ok := bea["Results"].(map[string]any)
	if !ok {
		return false
	}
	data, ok := results["Data"].([]any)
	return ok && len(data) > 0
}
