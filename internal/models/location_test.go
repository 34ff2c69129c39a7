package models_test

import (
	"testing"

	"github.com/chrisdamba/roadatasim/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineKm(t *testing.T) {
	a := models.Location{Lat: 41.0, Lon: -71.0}

	assert.Zero(t, a.HaversineKm(a))

	// One degree of latitude is about 111.19 km on a 6371 km sphere.
	b := models.Location{Lat: 42.0, Lon: -71.0}
	assert.InDelta(t, 111.19, a.HaversineKm(b), 0.1)

	// Distance is symmetric.
	assert.Equal(t, a.HaversineKm(b), b.HaversineKm(a))
}

func TestLocationScanPoint(t *testing.T) {
	var loc models.Location

	require.NoError(t, loc.Scan([]byte("POINT(-71.155 41.7015)")))
	assert.InDelta(t, 41.7015, loc.Lat, 1e-9)
	assert.InDelta(t, -71.155, loc.Lon, 1e-9)

	require.NoError(t, loc.Scan("POINT(-71.412 41.823)"))
	assert.InDelta(t, 41.823, loc.Lat, 1e-9)

	assert.Error(t, loc.Scan(42))
}
