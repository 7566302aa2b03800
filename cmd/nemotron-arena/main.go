package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/DealExMachina/nemotron-3-inference/logger"
)

var rootCmd = &cobra.Command{
	Use:           "nemotron-arena",
	Short:         "Contract-check harness for a vLLM-served Nemotron endpoint",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	Long: `nemotron-arena drives a deployed vLLM OpenAI-compatible endpoint through
scenario suites (context length, reasoning, tool calling, structured output,
long-context retrieval) and checks each response against its expected
contract: latency, token accounting, JSON-schema conformance, tool-call
shape, and needle retrieval.

The process exits non-zero when any scenario fails.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger.SetVerbose(verbose)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("base-url", "", "Base URL of the deployed endpoint (e.g. https://host)")
	flags.String("api-key", "", "Optional bearer token (vLLM does not require auth by default)")
	flags.String("model", "", "Model name to request")
	flags.Duration("timeout", 0, "Per-request timeout ceiling")
	flags.StringP("out", "o", "", "Output directory for JSON results")
	flags.Float32("temperature", 0, "Override the sampling temperature for every scenario")
	flags.StringP("config", "c", "", "Optional YAML config file")
	flags.BoolP("verbose", "v", false, "Enable debug logging of API requests/responses")

	_ = viper.BindPFlag("base_url", flags.Lookup("base-url"))
	_ = viper.BindPFlag("api_key", flags.Lookup("api-key"))
	_ = viper.BindPFlag("model", flags.Lookup("model"))
	_ = viper.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = viper.BindPFlag("out_dir", flags.Lookup("out"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
