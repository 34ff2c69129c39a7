package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/chrisdamba/roadatasim/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HotspotRepository struct {
	pool *pgxpool.Pool
}

func NewHotspotRepository(pool *pgxpool.Pool) *HotspotRepository {
	return &HotspotRepository{pool: pool}
}

func (r *HotspotRepository) EnsureTable(ctx context.Context) error {
	ddl := `
        CREATE TABLE IF NOT EXISTS roadside_hotspots (
            id            BIGSERIAL PRIMARY KEY,
            as_of_date    DATE NOT NULL,
            zone_id       INT NOT NULL,
            cluster_id    INT NOT NULL,
            centroid_lat  DOUBLE PRECISION,
            centroid_lng  DOUBLE PRECISION,
            hotspot_score DOUBLE PRECISION,
            method        VARCHAR(50),
            created_at    TIMESTAMPTZ DEFAULT NOW()
        )`
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure hotspot table: %w", err)
	}
	return nil
}

// Append inserts the run's hotspot rows without touching prior runs' rows.
func (r *HotspotRepository) Append(ctx context.Context, rows []models.Hotspot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertHotspots(ctx, tx, rows); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ReplaceForDate removes any prior rows carrying the same as-of-date before
// inserting, in the same transaction, so a rerun over the same period does
// not accumulate duplicates.
func (r *HotspotRepository) ReplaceForDate(ctx context.Context, asOf time.Time, rows []models.Hotspot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
        DELETE FROM roadside_hotspots
        WHERE as_of_date = $1`, asOf); err != nil {
		return fmt.Errorf("failed to delete hotspots for %s: %w", asOf.Format("2006-01-02"), err)
	}
	if err := insertHotspots(ctx, tx, rows); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertHotspots(ctx context.Context, tx pgx.Tx, rows []models.Hotspot) error {
	stmt := `
        INSERT INTO roadside_hotspots (
            as_of_date, zone_id, cluster_id, centroid_lat, centroid_lng,
            hotspot_score, method
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, h := range rows {
		if _, err := tx.Exec(ctx, stmt,
			h.AsOfDate, h.ZoneID, h.ClusterID, h.CentroidLat, h.CentroidLng,
			h.HotspotScore, h.Method,
		); err != nil {
			return fmt.Errorf("failed to insert hotspot cluster %d: %w", h.ClusterID, err)
		}
	}
	return nil
}
