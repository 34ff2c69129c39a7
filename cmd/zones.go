package cmd

import (
	"github.com/chrisdamba/roadatasim/internal/jobs"
	"github.com/chrisdamba/roadatasim/internal/repositories/postgres"
	"github.com/spf13/cobra"
)

var zonesCmd = &cobra.Command{
	Use:   "assign-zones",
	Short: "Cluster request coordinates into zones and write the labels back",
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

		job := &jobs.ZoneAssignmentJob{
			Config:   cfg,
			Requests: postgres.NewRequestRepository(pool),
		}
		return job.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(zonesCmd)
}
