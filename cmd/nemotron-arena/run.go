package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DealExMachina/nemotron-3-inference/assertions"
	"github.com/DealExMachina/nemotron-3-inference/client"
	"github.com/DealExMachina/nemotron-3-inference/config"
	"github.com/DealExMachina/nemotron-3-inference/engine"
	"github.com/DealExMachina/nemotron-3-inference/logger"
	"github.com/DealExMachina/nemotron-3-inference/results"
	"github.com/DealExMachina/nemotron-3-inference/scenario"
	"github.com/DealExMachina/nemotron-3-inference/tokens"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every scenario suite in fixed category order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeSuites(cmd, scenario.Categories())
	},
}

func suiteCommand(use, short string, cat scenario.Category) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeSuites(cmd, []scenario.Category{cat})
		},
	}
}

func init() {
	runCmd.Flags().Int("haystack-tokens", 0, "Approximate long-context haystack size in tokens")
	runCmd.Flags().String("scenarios", "", "YAML file with extra scenarios to run after the built-in suites")

	longContextCmd := suiteCommand("longcontext", "Run needle-in-haystack retrieval scenarios", scenario.CategoryLongContext)
	longContextCmd.Flags().Int("haystack-tokens", 0, "Approximate haystack size in tokens")

	rootCmd.AddCommand(
		runCmd,
		suiteCommand("context", "Run context-length scaling scenarios", scenario.CategoryContextLength),
		suiteCommand("reasoning", "Run multi-step reasoning scenarios", scenario.CategoryReasoning),
		suiteCommand("tools", "Run tool-calling scenarios", scenario.CategoryToolCalling),
		suiteCommand("structured", "Run structured-output schema scenarios", scenario.CategoryStructuredOutput),
		longContextCmd,
	)
}

func executeSuites(cmd *cobra.Command, categories []scenario.Category) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	// Operator interrupt cancels in-flight work but partial results are
	// still summarized below.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.New(client.Config{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
		Retry: client.RetryPolicy{
			MaxAttempts: cfg.RetryAttempts,
			Backoff:     cfg.RetryBackoff,
		},
	})

	reportModels(ctx, c)

	counter := tokens.Default()
	haystackTokens := resolveHaystackTokens(cmd, cfg.HaystackTokens)
	var scenarios []scenario.Scenario
	for _, cat := range categories {
		if cat == scenario.CategoryLongContext {
			scenarios = append(scenarios, scenario.WithHaystackTokens(counter, haystackTokens)...)
			continue
		}
		scenarios = append(scenarios, scenario.ForCategory(cat, counter)...)
	}

	if scenarioFile, _ := cmd.Flags().GetString("scenarios"); scenarioFile != "" {
		extra, err := scenario.LoadFile(scenarioFile)
		if err != nil {
			return err
		}
		scenarios = append(scenarios, extra...)
	}

	// Scenarios carry their own temperatures; the flag overrides all of
	// them for exploratory runs.
	if cmd.Flags().Changed("temperature") {
		temperature, _ := cmd.Flags().GetFloat32("temperature")
		for i := range scenarios {
			scenarios[i].Temperature = temperature
		}
	}

	console := results.NewConsoleWriter(os.Stdout)
	eng := engine.New(c, assertions.NewRegistry(), console, cfg.Model, cfg.BaseURL)

	logger.Info("starting run",
		"run_id", eng.RunID(), "base_url", cfg.BaseURL,
		"model", cfg.Model, "scenarios", len(scenarios))

	seq := eng.Run(ctx, scenarios)
	summary := eng.Summarize(seq)
	console.WriteSummary(summary)

	if repo, err := results.NewJSONRepository(cfg.OutDir); err != nil {
		logger.Warn("skipping JSON output", "error", err)
	} else {
		if err := repo.SaveResults(seq); err != nil {
			logger.Warn("failed to save results", "error", err)
		}
		if err := repo.SaveSummary(summary); err != nil {
			logger.Warn("failed to save summary", "error", err)
		}
	}

	if !summary.AllPassed() {
		return fmt.Errorf("%d of %d scenarios failed", summary.Failed, summary.Total)
	}
	return nil
}

// resolveHaystackTokens prefers an explicitly set flag on the invoked
// command over the configured value. The flag is declared per command, so
// it cannot be bound to a single shared config key.
func resolveHaystackTokens(cmd *cobra.Command, configured int) int {
	if cmd.Flags().Changed("haystack-tokens") {
		if v, err := cmd.Flags().GetInt("haystack-tokens"); err == nil {
			return v
		}
	}
	return configured
}

// reportModels logs what the deployment serves before the run starts.
// A failure here is informational: the run itself will surface transport
// problems per scenario.
func reportModels(ctx context.Context, c *client.Client) {
	models, err := c.ListModels(ctx)
	if err != nil {
		logger.Warn("could not list models", "error", err)
		return
	}
	for _, m := range models {
		logger.Info("endpoint serves model", "id", m.ID, "max_model_len", m.MaxModelLen)
	}
}
