package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fmeca/internal/core"
	"fmeca/internal/dataset"
	"fmeca/internal/llm"
	"fmeca/internal/store"
	"fmeca/pkg/schema"
)

var (
	cfg     *core.Config
	rootCmd = &cobra.Command{
		Use:   "fmeca",
		Short: "FMECA/RCM study builder with generative analysis",
		Long: `fmeca builds and maintains failure mode, effects, and criticality
analyses. Records are generated from a plain-text asset description, refined
through an interactive copilot, and exported as spreadsheet-ready sheets.

Studies persist under the store directory (FMECA_DIR, default .fmeca).
Generation requires OPENROUTER_API_KEY.`,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(copilotCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(validateCmd)
}

func initConfig() {
	var err error
	cfg, err = core.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
}

func newStore() *store.Store {
	return store.NewStore(cfg.BaseDir)
}

// newOrchestrator builds the full generation stack. Only commands that call
// the generative service use it; store-only commands read the store directly.
func newOrchestrator(ctx context.Context) (*core.Orchestrator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY is not set")
	}

	client, err := llm.NewClient(&llm.Config{
		APIKey:       cfg.APIKey,
		BaseURL:      cfg.BaseURL,
		DefaultModel: cfg.DefaultModel,
	})
	if err != nil {
		return nil, fmt.Errorf("create service client: %w", err)
	}
	if _, err := llm.RegisterAnalystProvider(ctx, client); err != nil {
		return nil, fmt.Errorf("register analyst provider: %w", err)
	}

	gen := core.NewServiceGenerator(client)
	log := core.NewLogger(cfg.LogLevel)
	return core.NewOrchestrator(gen, dataset.NewEngine(), newStore(), log), nil
}

// loadStudy fetches a study and makes its items the orchestrator's dataset.
func loadStudy(orch *core.Orchestrator, id string) (*schema.Study, error) {
	study, err := orch.LoadStudy(id)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Loaded %q (%d records)\n", study.Name, len(study.Items))
	return study, nil
}
