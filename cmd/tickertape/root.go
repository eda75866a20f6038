package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tickertape"
	"github.com/aretw0/tickertape/internal/config"
	"github.com/aretw0/tickertape/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tickertape",
	Short: "tickertape is an MCP server for stock market data",
	Long: `tickertape exposes stock-data tools (last price, quarterly income statement,
company information) and a summarisation prompt to AI clients over the
Model Context Protocol. Without a subcommand it serves over stdio.`,
	Run: func(cmd *cobra.Command, args []string) {
		runServe(cmd, "", 0)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override: debug, info, warn, error")
}

// loadConfig reads the config file and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	return cfg, nil
}

// newApp loads the configuration and wires the application. Logs go to stderr.
func newApp(cmd *cobra.Command) (*tickertape.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger := logging.NewWithFormat(os.Stderr, level, cfg.Log.Format)
	return tickertape.New(cfg, logger)
}

func mustApp(cmd *cobra.Command) *tickertape.App {
	app, err := newApp(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing tickertape: %v\n", err)
		os.Exit(1)
	}
	return app
}
