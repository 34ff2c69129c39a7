package postgres

import (
	"context"
	"fmt"

	"github.com/chrisdamba/roadatasim/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StaffingRepository struct {
	pool *pgxpool.Pool
}

func NewStaffingRepository(pool *pgxpool.Pool) *StaffingRepository {
	return &StaffingRepository{pool: pool}
}

func (r *StaffingRepository) EnsureTable(ctx context.Context) error {
	ddl := `
        CREATE TABLE IF NOT EXISTS roadside_staffing_plan (
            ts                 TIMESTAMPTZ NOT NULL,
            zone_id            INT NOT NULL,
            num_trucks         INT,
            forecast_calls     DOUBLE PRECISION,
            target_service_lvl DOUBLE PRECISION,
            model_name         VARCHAR(50),
            created_at         TIMESTAMPTZ DEFAULT NOW(),
            PRIMARY KEY (ts, zone_id)
        )`
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure staffing table: %w", err)
	}
	return nil
}

// ReplaceRange applies the same delete-then-insert discipline as the
// forecast writer over the plan's min/max ts span.
func (r *StaffingRepository) ReplaceRange(ctx context.Context, rows []models.StaffingPlan) error {
	if len(rows) == 0 {
		return nil
	}

	minTs, maxTs := rows[0].Ts, rows[0].Ts
	for _, p := range rows[1:] {
		if p.Ts.Before(minTs) {
			minTs = p.Ts
		}
		if p.Ts.After(maxTs) {
			maxTs = p.Ts
		}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
        DELETE FROM roadside_staffing_plan
        WHERE ts BETWEEN $1 AND $2`, minTs, maxTs); err != nil {
		return fmt.Errorf("failed to delete staffing range: %w", err)
	}

	stmt := `
        INSERT INTO roadside_staffing_plan (
            ts, zone_id, num_trucks, forecast_calls, target_service_lvl, model_name
        ) VALUES ($1, $2, $3, $4, $5, $6)`

	for _, p := range rows {
		if _, err := tx.Exec(ctx, stmt,
			p.Ts, p.ZoneID, p.NumTrucks, p.ForecastCalls, p.TargetServiceLvl, p.ModelName,
		); err != nil {
			return fmt.Errorf("failed to insert staffing row for zone %d at %s: %w", p.ZoneID, p.Ts, err)
		}
	}

	return tx.Commit(ctx)
}
