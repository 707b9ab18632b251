package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"calcpad/internal/config"
	"calcpad/internal/observability"
)

var rootCmd = &cobra.Command{
	Use:           "calcpad",
	Short:         "calcpad is a four-function keypad calculator",
	Long:          `calcpad runs the keypad calculator as an HTTP service with per-session state, as an interactive terminal keypad, or over a one-shot key sequence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
}

// loadConfig reads configuration and applies the persistent flag overrides,
// then starts the process logger.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}

	if err := observability.InitLogger(cfg.LogLevel); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
