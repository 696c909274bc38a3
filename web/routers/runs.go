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

package routers

import (
	"net/http"

	"github.com/usafacts/usabench/web/handlers"
)

type RunsApiRouter struct {
	runsController *handlers.RunsApiController
}

func NewRunsApiRouter(controller *handlers.RunsApiController) *RunsApiRouter {
	return &RunsApiRouter{runsController: controller}
}

func (r *RunsApiRouter) Routes() Routes {
	return Routes{
		Route{
			Name:        "ListRuns",
			Method:      http.MethodGet,
			Pattern:     "/runs",
			HandlerFunc: r.runsController.ListRuns,
		},
		Route{
			Name:        "GetRun",
			Method:      http.MethodGet,
			Pattern:     "/runs/{run_id}",
			HandlerFunc: r.runsController.GetRun,
		},
		Route{
			Name:        "GetRunSummary",
			Method:      http.MethodGet,
			Pattern:     "/runs/{run_id}/summary",
			HandlerFunc: r.runsController.GetRunSummary,
		},
		Route{
			Name:        "GetRunReport",
			Method:      http.MethodGet,
			Pattern:     "/runs/{run_id}/report",
			HandlerFunc: r.runsController.GetRunReport,
		},
		Route{
			Name:        "DeleteRun",
			Method:      http.MethodDelete,
			Pattern:     "/runs/{run_id}",
			HandlerFunc: r.runsController.DeleteRun,
		},
	}
}
