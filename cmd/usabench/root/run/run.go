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

package run

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"google.golang.org/genai"

	"github.com/usafacts/usabench/api"
	"github.com/usafacts/usabench/cmd/usabench/root"
	"github.com/usafacts/usabench/config"
	"github.com/usafacts/usabench/dataset"
	"github.com/usafacts/usabench/evaluation"
	"github.com/usafacts/usabench/evaluation/storage"
	"github.com/usafacts/usabench/evaluation/text2sql"
	"github.com/usafacts/usabench/model"
	"github.com/usafacts/usabench/runner"

	_ "github.com/usafacts/usabench/evaluation/functioncall"
)

type runFlags struct {
	taskType    string
	model       string
	samples     int
	preset      string
	concurrency int
	liveAPIs    bool
	runName     string
}

var Flags runFlags

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs a benchmark evaluation.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Flags.run(cmd.Context())
	},
}

func init() {
	root.RootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&Flags.taskType, "type", "t", "mixed", "Evaluation type: sql, function, or mixed")
	runCmd.Flags().StringVarP(&Flags.model, "model", "m", "", "Model name, overriding the config file")
	runCmd.Flags().IntVarP(&Flags.samples, "samples", "n", 0, "Max samples per task kind (0 = all)")
	runCmd.Flags().StringVarP(&Flags.preset, "preset", "p", "", "Function scoring preset: weighted or binary")
	runCmd.Flags().IntVar(&Flags.concurrency, "concurrency", 0, "Samples evaluated in parallel")
	runCmd.Flags().BoolVar(&Flags.liveAPIs, "live-apis", false, "Execute predicted calls against the live BLS/BEA APIs")
	runCmd.Flags().StringVar(&Flags.runName, "name", "", "Name recorded with the run")
}

func (f *runFlags) run(ctx context.Context) error {
	cfg, err := config.Load(root.ConfigPath())
	if err != nil {
		return err
	}
	if f.model != "" {
		cfg.ModelName = f.model
	}
	if f.samples > 0 {
		cfg.SQLSamples = f.samples
		cfg.FunctionSamples = f.samples
	}
	if f.preset != "" {
		cfg.ScoringPreset = f.preset
	}
	if f.concurrency > 0 {
		cfg.Concurrency = f.concurrency
	}

	samples, err := loadSamples(cfg, f.taskType)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no samples matched the requested type and filter")
	}

	validators, err := buildValidators(cfg, samples, f.liveAPIs)
	if err != nil {
		return err
	}

	generator, err := model.NewGeminiGenerator(ctx, cfg.ModelName,
		&genai.ClientConfig{APIKey: cfg.GeminiAPIKey},
		model.WithTemperature(cfg.Temperature),
		model.WithMaxOutputTokens(cfg.MaxTokens),
	)
	if err != nil {
		return err
	}

	r, err := runner.New(generator, validators, runner.WithConcurrency(cfg.Concurrency))
	if err != nil {
		return err
	}

	fmt.Printf("Evaluating %d sample(s) with %s\n", len(samples), cfg.ModelName)
	records := r.EvaluateBatch(ctx, samples)

	run := &evaluation.Run{
		ID:        uuid.NewString(),
		Name:      f.runName,
		Model:     cfg.ModelName,
		CreatedAt: time.Now().UTC(),
		Records:   records,
		Stats:     evaluation.Aggregate(records),
	}

	if cfg.SaveResults {
		store, err := storage.NewFileStorage(cfg.OutputDir)
		if err != nil {
			return err
		}
		if err := store.SaveRun(ctx, run); err != nil {
			return err
		}
		reportPath := filepath.Join(cfg.OutputDir, run.ID+".md")
		report := evaluation.RenderReport(run.Stats, run.CreatedAt)
		if err := os.WriteFile(reportPath, []byte(report), 0o644); err != nil {
			return err
		}
		fmt.Printf("Saved run %s and report %s\n", run.ID, reportPath)
	}

	s := run.Stats.Overall
	fmt.Printf("Passed %d/%d (%.1f%%), mean score %.3f, error rate %.1f%%\n",
		s.PassedSamples, s.TotalSamples, s.PassRate*100, s.MeanScore, s.ErrorRate*100)
	return nil
}

func loadSamples(cfg *config.Config, taskType string) ([]*evaluation.Sample, error) {
	difficulties, err := cfg.Difficulties()
	if err != nil {
		return nil, err
	}

	loader := dataset.NewLoader(cfg.DataDir)
	switch taskType {
	case "sql":
		return loader.LoadSQLSamples(dataset.Filter{MaxSamples: cfg.SQLSamples, Difficulties: difficulties})
	case "function":
		return loader.LoadFunctionSamples(dataset.Filter{MaxSamples: cfg.FunctionSamples, Difficulties: difficulties})
	case "mixed", "full":
		return loader.LoadMixed(cfg.SQLSamples, cfg.FunctionSamples, difficulties)
	default:
		return nil, fmt.Errorf("unknown evaluation type: %s", taskType)
	}
}

func buildValidators(cfg *config.Config, samples []*evaluation.Sample, liveAPIs bool) (map[evaluation.TaskKind]evaluation.Validator, error) {
	kinds := map[evaluation.TaskKind]bool{}
	for _, s := range samples {
		kinds[s.Kind] = true
	}

	validators := map[evaluation.TaskKind]evaluation.Validator{}
	for kind := range kinds {
		vcfg := evaluation.ValidatorConfig{
			Preset:     evaluation.ScoringPreset(cfg.ScoringPreset),
			SQLScoring: evaluation.DefaultSQLScoring(),
		}
		if kind == evaluation.TaskSQL {
			store, err := text2sql.OpenStore(cfg.DBPath)
			if err != nil {
				return nil, err
			}
			vcfg.Store = store
		}
		if kind == evaluation.TaskFunction && liveAPIs {
			vcfg.Executor = api.NewExecutor(cfg.BLSAPIKey, cfg.BEAAPIKey)
		}

		v, err := evaluation.CreateValidator(kind, vcfg)
		if err != nil {
			return nil, err
		}
		validators[kind] = v
	}
	return validators, nil
}
