package cmd

import (
	"github.com/chrisdamba/roadatasim/internal/jobs"
	"github.com/chrisdamba/roadatasim/internal/repositories/postgres"
	"github.com/spf13/cobra"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast hourly call demand per zone",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		pool, err := postgres.Connect(cmd.Context(), cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()

		job := &jobs.ForecastJob{
			Config:    cfg,
			Requests:  postgres.NewRequestRepository(pool),
			Forecasts: postgres.NewForecastRepository(pool),
		}
		return job.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(forecastCmd)
}
