package cmd

import (
	"fmt"
	"os"

	"github.com/chrisdamba/roadatasim/internal/models"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "roadatasim",
	Short: "Batch analytics and synthetic data for roadside-assistance dispatch",
	Long: `roadatasim is a CLI tool for a roadside-assistance dispatch operation:
it assigns geographic zones to service requests, forecasts hourly demand
per zone, detects spatial hotspots, recommends truck staffing, and can
generate a synthetic request dataset for testing the pipeline end to end.

Each subcommand is an independent batch run: read, compute, write, exit.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")
}

func loadConfig() (*models.Config, error) {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return cfg, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
