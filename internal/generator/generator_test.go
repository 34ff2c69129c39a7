package generator_test

import (
	"testing"
	"time"

	"github.com/chrisdamba/roadatasim/internal/generator"
	"github.com/chrisdamba/roadatasim/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generatorConfig(records int) *models.Config {
	return &models.Config{
		Seed:            42,
		StartDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
		GenerateRecords: records,
		StartRequestID:  1,
		Zones:           models.DefaultZones,
		TruckIDMin:      100,
		TruckIDMax:      149,
	}
}

func TestGenerateRequestsCountIDsAndOrder(t *testing.T) {
	gen := generator.NewGenerator(generatorConfig(1000))

	requests := gen.GenerateRequests()
	require.Len(t, requests, 1000)

	ids := map[int64]bool{}
	for i, r := range requests {
		ids[r.RequestID] = true
		if i > 0 {
			require.False(t, r.RequestTs.Before(requests[i-1].RequestTs),
				"dataset not sorted by request time at row %d", i)
		}
	}
	assert.Len(t, ids, 1000)
}

func TestGenerateRequestsInjectsImpossibleMiles(t *testing.T) {
	gen := generator.NewGenerator(generatorConfig(1000))

	requests := gen.GenerateRequests()

	flagged := 0
	for _, r := range requests {
		if r.MilesTowed == 200.0 {
			flagged++
		}
	}
	assert.Greater(t, flagged, 0)
	assert.LessOrEqual(t, flagged, 30)
}

func TestGenerateRequestsInjectsDuplicateVINs(t *testing.T) {
	gen := generator.NewGenerator(generatorConfig(1000))

	requests := gen.GenerateRequests()

	byVIN := map[string]int{}
	for _, r := range requests {
		byVIN[r.VIN]++
	}
	maxUses := 0
	for _, n := range byVIN {
		if n > maxUses {
			maxUses = n
		}
	}
	assert.GreaterOrEqual(t, maxUses, 2, "expected at least one reused VIN")
}

func TestGenerateRequestsInjectsOverlappingJobs(t *testing.T) {
	gen := generator.NewGenerator(generatorConfig(1000))

	requests := gen.GenerateRequests()

	byTruck := map[int][]*models.Request{}
	for _, r := range requests {
		byTruck[r.TruckID] = append(byTruck[r.TruckID], r)
	}

	overlapping := 0
	for _, rows := range byTruck {
		for i := range rows {
			for j := i + 1; j < len(rows); j++ {
				if rows[i].RequestTs.Before(rows[j].CompletionTs) &&
					rows[j].RequestTs.Before(rows[i].CompletionTs) {
					overlapping++
				}
			}
		}
	}
	assert.Greater(t, overlapping, 0, "expected trucks with simultaneous jobs")
}
