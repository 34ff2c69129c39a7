package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/chrisdamba/roadatasim/internal/cluster"
	"github.com/chrisdamba/roadatasim/internal/models"
	"github.com/spf13/cobra"
)

var zonecheckInput string

// zonecheckCmd sweeps the DBSCAN radius over a generated CSV so the
// clustering parameters can be tuned against a known geography before
// running assign-zones for real.
var zonecheckCmd = &cobra.Command{
	Use:   "zonecheck",
	Short: "Sweep DBSCAN eps values over a generated CSV dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		points, err := loadCSVPoints(zonecheckInput)
		if err != nil {
			return err
		}

		epsValues := []float64{0.5, 1.0, 1.5, 2.0}
		const minSamples = 5

		fmt.Println("\n=== DBSCAN EPS Parameter Sweep ===")
		for _, eps := range epsValues {
			dbscan := cluster.DBSCAN{EpsKm: eps, MinSamples: minSamples}
			labels := dbscan.Fit(points)

			sizes := map[int]int{}
			noise := 0
			for _, l := range labels {
				if l == cluster.Noise {
					noise++
				} else {
					sizes[l]++
				}
			}

			fmt.Printf("\nEPS = %.1f km:\n", eps)
			fmt.Printf("  -> Real clusters found: %d\n", len(sizes))
			fmt.Printf("  -> Noise points: %d\n", noise)
			fmt.Println("  -> Cluster sizes:")
			ids := make([]int, 0, len(sizes))
			for id := range sizes {
				ids = append(ids, id)
			}
			sort.Ints(ids)
			for _, id := range ids {
				fmt.Printf("     %d: %d\n", id, sizes[id])
			}
		}
		return nil
	},
}

func loadCSVPoints(path string) ([]cluster.Point, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	latCol, lonCol := -1, -1
	for i, name := range header {
		switch name {
		case "latitude":
			latCol = i
		case "longitude":
			lonCol = i
		}
	}
	if latCol < 0 || lonCol < 0 {
		return nil, fmt.Errorf("CSV %s is missing latitude/longitude columns", path)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV rows: %w", err)
	}

	points := make([]cluster.Point, 0, len(records))
	for i, rec := range records {
		lat, err := strconv.ParseFloat(rec[latCol], 64)
		if err != nil {
			return nil, fmt.Errorf("bad latitude on row %d: %w", i+2, err)
		}
		lon, err := strconv.ParseFloat(rec[lonCol], 64)
		if err != nil {
			return nil, fmt.Errorf("bad longitude on row %d: %w", i+2, err)
		}
		points = append(points, cluster.Point{
			ID:  int64(i),
			Loc: models.Location{Lat: lat, Lon: lon},
		})
	}
	return points, nil
}

func init() {
	zonecheckCmd.Flags().StringVar(&zonecheckInput, "input", "synthetic_roadside_requests.csv", "CSV file with latitude/longitude columns")
	rootCmd.AddCommand(zonecheckCmd)
}
