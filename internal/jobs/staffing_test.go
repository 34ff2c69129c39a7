package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/chrisdamba/roadatasim/internal/jobs"
	"github.com/chrisdamba/roadatasim/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffingJobSizesTrucksFromForecast(t *testing.T) {
	ts := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	forecasts := &fakeForecastRepo{rows: []models.HourlyForecast{
		{Ts: ts, ZoneID: 1, ForecastCalls: 10, ModelName: models.ModelHoltWinters},
		{Ts: ts, ZoneID: 2, ForecastCalls: 3, ModelName: models.ModelNaiveMean},
	}}
	repo := &fakeStaffingRepo{}
	job := &jobs.StaffingJob{
		Config:    &models.Config{CallsPerTruckPerHour: 2.0, TargetServiceLevel: 0.9},
		Forecasts: forecasts,
		Staffing:  repo,
	}

	require.NoError(t, job.Run(context.Background()))
	require.Len(t, repo.rows, 2)

	byZone := map[int]models.StaffingPlan{}
	for _, p := range repo.rows {
		byZone[p.ZoneID] = p
	}

	// zone 1: ceil(10 * 0.9 / 2) = 5; zone 2: ceil(3 * 0.9 / 2) = 2.
	assert.Equal(t, 5, byZone[1].NumTrucks)
	assert.Equal(t, 2, byZone[2].NumTrucks)
	assert.Equal(t, models.ModelStaffing, byZone[1].ModelName)
	assert.Equal(t, 0.9, byZone[1].TargetServiceLvl)
}

func TestStaffingJobRerunReplacesPlan(t *testing.T) {
	ts := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	forecasts := &fakeForecastRepo{rows: []models.HourlyForecast{
		{Ts: ts, ZoneID: 1, ForecastCalls: 4},
	}}
	repo := &fakeStaffingRepo{}
	job := &jobs.StaffingJob{
		Config:    &models.Config{CallsPerTruckPerHour: 2.0, TargetServiceLevel: 0.9},
		Forecasts: forecasts,
		Staffing:  repo,
	}

	require.NoError(t, job.Run(context.Background()))
	require.NoError(t, job.Run(context.Background()))

	assert.Len(t, repo.rows, 1)
}

func TestStaffingJobNoForecasts(t *testing.T) {
	repo := &fakeStaffingRepo{}
	job := &jobs.StaffingJob{
		Config:    &models.Config{CallsPerTruckPerHour: 2.0, TargetServiceLevel: 0.9},
		Forecasts: &fakeForecastRepo{},
		Staffing:  repo,
	}

	require.NoError(t, job.Run(context.Background()))
	assert.Empty(t, repo.rows)
}
