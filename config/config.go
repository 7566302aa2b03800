// Package config resolves harness configuration from, in order of
// precedence: command-line flags (bound by the CLI), an optional YAML
// config file, environment variables (ARENA_* with .env autoload), and
// built-in defaults. Configuration is read once at startup and never
// mutated afterwards.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/DealExMachina/nemotron-3-inference/logger"
)

// Defaults for a deployment that serves a single Nemotron checkpoint.
const (
	DefaultModel          = "nemotron"
	DefaultTimeout        = 5 * time.Minute
	DefaultOutDir         = "out"
	DefaultHaystackTokens = 50000
)

// ErrNoBaseURL is the one unrecoverable configuration error: without an
// endpoint there is nothing to test, so the run aborts before any scenario.
var ErrNoBaseURL = errors.New("no base URL configured (set --base-url or ARENA_BASE_URL)")

// Config holds the resolved run configuration.
type Config struct {
	BaseURL        string        `yaml:"base_url"`
	APIKey         string        `yaml:"api_key"`
	Model          string        `yaml:"model"`
	Timeout        time.Duration `yaml:"timeout"`
	OutDir         string        `yaml:"out_dir"`
	HaystackTokens int           `yaml:"haystack_tokens"`
	RetryAttempts  int           `yaml:"retry_attempts"`
	RetryBackoff   time.Duration `yaml:"retry_backoff"`
}

// Load resolves the configuration. configFile may be empty; a missing .env
// file is not an error.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded environment from .env")
	}

	v := viper.GetViper()
	v.SetEnvPrefix("ARENA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("model", DefaultModel)
	v.SetDefault("timeout", DefaultTimeout.String())
	v.SetDefault("out_dir", DefaultOutDir)
	v.SetDefault("haystack_tokens", DefaultHaystackTokens)
	v.SetDefault("retry_attempts", 0)
	v.SetDefault("retry_backoff", "10s")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		logger.Debug("loaded config file", "path", configFile)
	}

	cfg := &Config{
		BaseURL:        strings.TrimRight(v.GetString("base_url"), "/"),
		APIKey:         v.GetString("api_key"),
		Model:          v.GetString("model"),
		Timeout:        v.GetDuration("timeout"),
		OutDir:         v.GetString("out_dir"),
		HaystackTokens: v.GetInt("haystack_tokens"),
		RetryAttempts:  v.GetInt("retry_attempts"),
		RetryBackoff:   v.GetDuration("retry_backoff"),
	}

	if cfg.BaseURL == "" {
		return nil, ErrNoBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg, nil
}
