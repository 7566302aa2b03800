package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DealExMachina/nemotron-3-inference/client"
	"github.com/DealExMachina/nemotron-3-inference/config"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models the endpoint serves",
	RunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c := client.New(client.Config{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Timeout: cfg.Timeout,
		})
		models, err := c.ListModels(ctx)
		if err != nil {
			return err
		}
		for _, m := range models {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\towned_by=%s\tmax_model_len=%d\n",
				m.ID, m.OwnedBy, m.MaxModelLen)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
