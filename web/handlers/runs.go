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

// Package handlers serves stored benchmark runs over HTTP.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/usafacts/usabench/evaluation"
)

type RunsApiController struct {
	storage evaluation.Storage
}

func NewRunsApiController(storage evaluation.Storage) *RunsApiController {
	return &RunsApiController{storage: storage}
}

// runListItem is the compact listing shape; full records are only in the
// single-run response.
type runListItem struct {
	ID        string    `json:"run_id"`
	Name      string    `json:"name,omitempty"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	Samples   int       `json:"samples"`
	PassRate  float64   `json:"pass_rate"`
}

// ListRuns returns all stored runs, newest first.
func (c *RunsApiController) ListRuns(rw http.ResponseWriter, req *http.Request) {
	runs, err := c.storage.ListRuns(req.Context())
	if err != nil {
		writeError(rw, err)
		return
	}

	items := make([]runListItem, 0, len(runs))
	for _, run := range runs {
		items = append(items, runListItem{
			ID:        run.ID,
			Name:      run.Name,
			Model:     run.Model,
			CreatedAt: run.CreatedAt,
			Samples:   run.Stats.Overall.TotalSamples,
			PassRate:  run.Stats.Overall.PassRate,
		})
	}
	writeJSON(rw, http.StatusOK, items)
}

// GetRun returns one full run with all its records.
func (c *RunsApiController) GetRun(rw http.ResponseWriter, req *http.Request) {
	run, ok := c.loadRun(rw, req)
	if !ok {
		return
	}
	writeJSON(rw, http.StatusOK, run)
}

// GetRunSummary returns the aggregate statistics of one run.
func (c *RunsApiController) GetRunSummary(rw http.ResponseWriter, req *http.Request) {
	run, ok := c.loadRun(rw, req)
	if !ok {
		return
	}
	writeJSON(rw, http.StatusOK, run.Stats)
}

// GetRunReport renders the markdown report of one run.
func (c *RunsApiController) GetRunReport(rw http.ResponseWriter, req *http.Request) {
	run, ok := c.loadRun(rw, req)
	if !ok {
		return
	}
	rw.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	rw.WriteHeader(http.StatusOK)
	_, _ = rw.Write([]byte(evaluation.RenderReport(run.Stats, run.CreatedAt)))
}

// DeleteRun removes a stored run.
func (c *RunsApiController) DeleteRun(rw http.ResponseWriter, req *http.Request) {
	runID := mux.Vars(req)["run_id"]
	if runID == "" {
		writeJSON(rw, http.StatusBadRequest, map[string]string{"error": "run_id parameter is required"})
		return
	}
	if err := c.storage.DeleteRun(req.Context(), runID); err != nil {
		writeError(rw, err)
		return
	}
	rw.WriteHeader(http.StatusNoContent)
}

func (c *RunsApiController) loadRun(rw http.ResponseWriter, req *http.Request) (*evaluation.Run, bool) {
	runID := mux.Vars(req)["run_id"]
	if runID == "" {
		writeJSON(rw, http.StatusBadRequest, map[string]string{"error": "run_id parameter is required"})
		return nil, false
	}
	run, err := c.storage.GetRun(req.Context(), runID)
	if err != nil {
		writeError(rw, err)
		return nil, false
	}
	return run, true
}

func writeJSON(rw http.ResponseWriter, status int, v any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(v)
}

func writeError(rw http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, evaluation.ErrNotFound) {
		status = http.StatusNotFound
	}
	writeJSON(rw, status, map[string]string{"error": err.Error()})
}
