package cmd

import (
	"log"

	"github.com/chrisdamba/roadatasim/internal/generator"
	"github.com/chrisdamba/roadatasim/internal/repositories/postgres"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic roadside-request dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		gen := generator.NewGenerator(cfg)
		requests := gen.GenerateRequests()
		log.Printf("generated %d synthetic requests", len(requests))

		if cfg.PostgresEnabled {
			pool, err := postgres.Connect(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			repo := postgres.NewRequestRepository(pool)
			if err := repo.EnsureTable(cmd.Context()); err != nil {
				return err
			}
			if err := repo.BulkCreate(cmd.Context(), requests); err != nil {
				return err
			}
			log.Printf("inserted %d rows into roadside_requests", len(requests))
		}

		outputs, err := gen.DetermineOutputs(cmd.Context())
		if err != nil {
			return err
		}
		for _, out := range outputs {
			if err := out.WriteRequests(requests); err != nil {
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
