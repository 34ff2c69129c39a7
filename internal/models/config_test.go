package models_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chrisdamba/roadatasim/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"seed": 7,
		"generate_records": 250,
		"start_date": "2024-06-01T00:00:00Z",
		"database": {"dbname": "testdb"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := models.LoadConfig(path)
	require.NoError(t, err)

	// File values win over defaults.
	assert.Equal(t, 7, cfg.Seed)
	assert.Equal(t, 250, cfg.GenerateRecords)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), cfg.StartDate)
	assert.Equal(t, "testdb", cfg.Database.DBName)

	// Everything unset falls back to declared defaults.
	assert.Equal(t, 2.0, cfg.ClusterEpsKm)
	assert.Equal(t, 3, cfg.ClusterMinSamples)
	assert.Equal(t, 48, cfg.ForecastHorizonHours)
	assert.Equal(t, 2.0, cfg.CallsPerTruckPerHour)
	assert.Equal(t, 0.90, cfg.TargetServiceLevel)
	assert.Equal(t, models.HotspotWriteAppend, cfg.HotspotWriteMode)
	assert.Equal(t, "localhost", cfg.Database.Host)

	// Zones not declared in the file fall back to the built-in territory.
	assert.Equal(t, models.DefaultZones, cfg.Zones)
}

func TestDatabaseConnString(t *testing.T) {
	cfg := models.DatabaseConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "svc",
		Password: "secret",
		DBName:   "aaa_roadside",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=svc password=secret dbname=aaa_roadside sslmode=require",
		cfg.ConnString())
}
