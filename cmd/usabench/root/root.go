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

package root

import (
	"os"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
}

// Flags holds the global command-line flags.
var Flags rootFlags

// ConfigPath returns the --config flag value.
func ConfigPath() string {
	return Flags.configPath
}

// RootCmd is the base command all subcommands attach to.
var RootCmd = &cobra.Command{
	Use:   "usabench",
	Short: "Benchmark LLMs on government economic data tasks.",
	Long: `usabench evaluates language models on two task families over US
government economic data: generating SQL for natural-language questions
and selecting API function calls with correct parameters. Responses are
scored against ground truth and aggregated into run reports.`,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&Flags.configPath, "config", "c", "", "Path to a YAML config file")
}

// Execute runs the root command.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
