package main

import (
	"fmt"
	"os"

	"github.com/ncobase/ncore/config"
	"github.com/ncobase/ncore/logging/logger"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "careerhub",
	Short: "CareerHub job board API",
	Long:  "CareerHub serves job postings, industries and companies over a JSON API backed by MongoDB.",
	// Default to `serve` so the bare binary starts the API.
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: CAREERHUB_CONFIG env var or ./config.yaml)")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit flag > CAREERHUB_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("CAREERHUB_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.LoadConfig(path)
}

// setup loads configuration and initializes the process logger. The
// returned cleanup flushes the logger.
func setup() (*config.Config, *logger.Logger, func(), error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	cleanup, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return cfg, logger.StdLogger(), cleanup, nil
}
