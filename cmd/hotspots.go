package cmd

import (
	"github.com/chrisdamba/roadatasim/internal/jobs"
	"github.com/chrisdamba/roadatasim/internal/repositories/postgres"
	"github.com/spf13/cobra"
)

var hotspotsCmd = &cobra.Command{
	Use:   "hotspots",
	Short: "Detect spatial hotspots of roadside calls",
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

		job := &jobs.HotspotJob{
			Config:   cfg,
			Requests: postgres.NewRequestRepository(pool),
			Hotspots: postgres.NewHotspotRepository(pool),
		}
		return job.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(hotspotsCmd)
}
