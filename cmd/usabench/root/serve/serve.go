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

package serve

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/usafacts/usabench/cmd/usabench/root"
	"github.com/usafacts/usabench/config"
	"github.com/usafacts/usabench/evaluation/storage"
	"github.com/usafacts/usabench/web/handlers"
	"github.com/usafacts/usabench/web/routers"
)

type serveFlags struct {
	port int
}

var Flags serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves stored benchmark runs over HTTP.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(root.ConfigPath())
		if err != nil {
			return err
		}

		store, err := storage.NewFileStorage(cfg.OutputDir)
		if err != nil {
			return err
		}

		router := routers.NewRouter(
			routers.NewRunsApiRouter(handlers.NewRunsApiController(store)),
		)

		addr := fmt.Sprintf(":%d", Flags.port)
		fmt.Printf("Serving runs from %s on %s\n", cfg.OutputDir, addr)
		return http.ListenAndServe(addr, router)
	},
}

func init() {
	root.RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&Flags.port, "port", "p", 8080, "Port to listen on")
}
