package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/chrisdamba/roadatasim/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ForecastRepository struct {
	pool *pgxpool.Pool
}

func NewForecastRepository(pool *pgxpool.Pool) *ForecastRepository {
	return &ForecastRepository{pool: pool}
}

func (r *ForecastRepository) EnsureTable(ctx context.Context) error {
	ddl := `
        CREATE TABLE IF NOT EXISTS roadside_demand_forecast_hourly (
            ts             TIMESTAMPTZ NOT NULL,
            zone_id        INT NOT NULL,
            forecast_calls DOUBLE PRECISION,
            lower_80       DOUBLE PRECISION,
            upper_80       DOUBLE PRECISION,
            model_name     VARCHAR(50),
            created_at     TIMESTAMPTZ DEFAULT NOW(),
            PRIMARY KEY (ts, zone_id)
        )`
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure forecast table: %w", err)
	}
	return nil
}

func (r *ForecastRepository) GetAll(ctx context.Context) ([]models.HourlyForecast, error) {
	query := `
        SELECT ts, zone_id, forecast_calls, lower_80, upper_80, model_name
        FROM roadside_demand_forecast_hourly
        ORDER BY ts, zone_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query forecasts: %w", err)
	}
	defer rows.Close()

	var forecasts []models.HourlyForecast
	for rows.Next() {
		var f models.HourlyForecast
		if err := rows.Scan(&f.Ts, &f.ZoneID, &f.ForecastCalls, &f.Lower80, &f.Upper80, &f.ModelName); err != nil {
			return nil, fmt.Errorf("failed to scan forecast row: %w", err)
		}
		forecasts = append(forecasts, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating forecast rows: %w", err)
	}
	return forecasts, nil
}

// ReplaceRange deletes every existing row whose ts falls inside the new
// rows' min/max span, then inserts the new rows, all in one transaction so
// a reader never observes a half-replaced window.
func (r *ForecastRepository) ReplaceRange(ctx context.Context, rows []models.HourlyForecast) error {
	if len(rows) == 0 {
		return nil
	}

	minTs, maxTs := forecastSpan(rows)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
        DELETE FROM roadside_demand_forecast_hourly
        WHERE ts BETWEEN $1 AND $2`, minTs, maxTs); err != nil {
		return fmt.Errorf("failed to delete forecast range: %w", err)
	}

	stmt := `
        INSERT INTO roadside_demand_forecast_hourly (
            ts, zone_id, forecast_calls, lower_80, upper_80, model_name
        ) VALUES ($1, $2, $3, $4, $5, $6)`

	for _, f := range rows {
		if _, err := tx.Exec(ctx, stmt,
			f.Ts, f.ZoneID, f.ForecastCalls, f.Lower80, f.Upper80, f.ModelName,
		); err != nil {
			return fmt.Errorf("failed to insert forecast for zone %d at %s: %w", f.ZoneID, f.Ts, err)
		}
	}

	return tx.Commit(ctx)
}

func forecastSpan(rows []models.HourlyForecast) (time.Time, time.Time) {
	minTs, maxTs := rows[0].Ts, rows[0].Ts
	for _, f := range rows[1:] {
		if f.Ts.Before(minTs) {
			minTs = f.Ts
		}
		if f.Ts.After(maxTs) {
			maxTs = f.Ts
		}
	}
	return minTs, maxTs
}
