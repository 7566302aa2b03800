package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"run", "context", "reasoning", "tools", "structured", "longcontext", "models"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestPersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	for _, want := range []string{"base-url", "api-key", "model", "timeout", "out", "config", "verbose", "temperature"} {
		assert.NotNil(t, flags.Lookup(want), "missing flag %q", want)
	}
}

func TestRunFlags(t *testing.T) {
	run, _, err := rootCmd.Find([]string{"run"})
	require.NoError(t, err)
	assert.NotNil(t, run.Flags().Lookup("haystack-tokens"))
	assert.NotNil(t, run.Flags().Lookup("scenarios"))
}

func TestHaystackTokensFlagWinsOnEveryCommand(t *testing.T) {
	// Both run and longcontext declare the flag; an explicit value on
	// either command must override the configured default.
	for _, name := range []string{"run", "longcontext"} {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{name})
			require.NoError(t, err)

			assert.Equal(t, 50000, resolveHaystackTokens(cmd, 50000))

			require.NoError(t, cmd.Flags().Set("haystack-tokens", "12345"))
			defer func() {
				require.NoError(t, cmd.Flags().Set("haystack-tokens", "0"))
				cmd.Flags().Lookup("haystack-tokens").Changed = false
			}()

			assert.Equal(t, 12345, resolveHaystackTokens(cmd, 50000))
		})
	}
}
