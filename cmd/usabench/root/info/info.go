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

package info

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usafacts/usabench/cmd/usabench/root"
	"github.com/usafacts/usabench/config"
	"github.com/usafacts/usabench/dataset"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Shows what the configured data directory offers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(root.ConfigPath())
		if err != nil {
			return err
		}

		info := dataset.NewLoader(cfg.DataDir).DatasetInfo()
		out, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	root.RootCmd.AddCommand(infoCmd)
}
