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

func hotspotTestPoints() []models.RequestPoint {
	day := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	return []models.RequestPoint{
		{RequestID: 1, RequestTs: day.Add(8 * time.Hour), Location: models.Location{Lat: 41.7010, Lon: -71.1550}},
		{RequestID: 2, RequestTs: day.Add(9 * time.Hour), Location: models.Location{Lat: 41.7020, Lon: -71.1560}},
		{RequestID: 3, RequestTs: day.Add(10 * time.Hour), Location: models.Location{Lat: 41.7030, Lon: -71.1540}},
		{RequestID: 4, RequestTs: day.Add(11 * time.Hour), Location: models.Location{Lat: 41.7000, Lon: -71.1545}},
		{RequestID: 5, RequestTs: day.Add(23 * time.Hour), Location: models.Location{Lat: 41.7015, Lon: -71.1555}},
		{RequestID: 6, RequestTs: day.Add(12 * time.Hour), Location: models.Location{Lat: 43.0000, Lon: -70.0000}},
	}
}

func TestComputeHotspotsSummarizesClusters(t *testing.T) {
	points := hotspotTestPoints()

	rows := jobs.ComputeHotspots(points, 2.0, 3)

	require.Len(t, rows, 1)
	h := rows[0]

	assert.Equal(t, 5.0, h.HotspotScore)
	assert.Equal(t, models.NoiseZoneID, h.ZoneID)
	assert.Equal(t, models.ModelDBSCAN, h.Method)

	// Centroid is the mean of the five cluster members; the outlier at
	// request 6 contributes nothing.
	assert.InDelta(t, (41.7010+41.7020+41.7030+41.7000+41.7015)/5, h.CentroidLat, 1e-9)
	assert.InDelta(t, (-71.1550-71.1560-71.1540-71.1545-71.1555)/5, h.CentroidLng, 1e-9)

	// As-of-date comes from the latest member, truncated to the day.
	assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), h.AsOfDate)
}

func TestComputeHotspotsAllNoise(t *testing.T) {
	points := hotspotTestPoints()[:2]
	rows := jobs.ComputeHotspots(points, 2.0, 3)
	assert.Empty(t, rows)
}

func TestHotspotJobAppendModeAccumulates(t *testing.T) {
	repo := &fakeHotspotRepo{}
	job := &jobs.HotspotJob{
		Config: &models.Config{
			HotspotEpsKm:      2.0,
			HotspotMinSamples: 3,
			HotspotWriteMode:  models.HotspotWriteAppend,
		},
		Requests: &fakeRequestRepo{points: hotspotTestPoints()},
		Hotspots: repo,
	}

	require.NoError(t, job.Run(context.Background()))
	require.NoError(t, job.Run(context.Background()))

	assert.Len(t, repo.rows, 2)
}

func TestHotspotJobReplaceModeSupersedes(t *testing.T) {
	repo := &fakeHotspotRepo{}
	job := &jobs.HotspotJob{
		Config: &models.Config{
			HotspotEpsKm:      2.0,
			HotspotMinSamples: 3,
			HotspotWriteMode:  models.HotspotWriteReplace,
		},
		Requests: &fakeRequestRepo{points: hotspotTestPoints()},
		Hotspots: repo,
	}

	require.NoError(t, job.Run(context.Background()))
	require.NoError(t, job.Run(context.Background()))

	assert.Len(t, repo.rows, 1)
}

func TestHotspotJobUnknownWriteMode(t *testing.T) {
	job := &jobs.HotspotJob{
		Config: &models.Config{
			HotspotEpsKm:      2.0,
			HotspotMinSamples: 3,
			HotspotWriteMode:  "upsert",
		},
		Requests: &fakeRequestRepo{points: hotspotTestPoints()},
		Hotspots: &fakeHotspotRepo{},
	}

	err := job.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown hotspot write mode")
}
