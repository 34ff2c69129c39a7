package cmd

import (
	"github.com/chrisdamba/roadatasim/internal/jobs"
	"github.com/chrisdamba/roadatasim/internal/repositories/postgres"
	"github.com/spf13/cobra"
)

var staffingCmd = &cobra.Command{
	Use:   "staffing",
	Short: "Recommend trucks per zone-hour from the demand forecast",
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

		job := &jobs.StaffingJob{
			Config:    cfg,
			Forecasts: postgres.NewForecastRepository(pool),
			Staffing:  postgres.NewStaffingRepository(pool),
		}
		return job.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(staffingCmd)
}
