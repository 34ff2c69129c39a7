package postgres

import (
	"context"
	"fmt"

	"github.com/chrisdamba/roadatasim/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

func (r *RequestRepository) EnsureTable(ctx context.Context) error {
	ddl := `
        CREATE TABLE IF NOT EXISTS roadside_requests (
            request_id       BIGINT PRIMARY KEY,
            member_id        BIGINT NOT NULL,
            request_ts       TIMESTAMPTZ NOT NULL,
            dispatch_ts      TIMESTAMPTZ,
            arrival_ts       TIMESTAMPTZ,
            completion_ts    TIMESTAMPTZ,
            latitude         DOUBLE PRECISION,
            longitude        DOUBLE PRECISION,
            zip_code         VARCHAR(10),
            city             VARCHAR(100),
            state            VARCHAR(2),
            road_type        VARCHAR(20),
            issue_type       VARCHAR(20),
            truck_id         INT,
            vin              VARCHAR(17),
            miles_towed      DOUBLE PRECISION,
            call_source      VARCHAR(20),
            membership_start TIMESTAMPTZ,
            member_home_zip  VARCHAR(10),
            zone_id          INT
        )`
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure roadside_requests table: %w", err)
	}
	return nil
}

func (r *RequestRepository) BulkCreate(ctx context.Context, requests []*models.Request) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	stmt := `
        INSERT INTO roadside_requests (
            request_id, member_id, request_ts, dispatch_ts, arrival_ts,
            completion_ts, latitude, longitude, zip_code, city, state,
            road_type, issue_type, truck_id, vin, miles_towed, call_source,
            membership_start, member_home_zip, zone_id
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
            $11, $12, $13, $14, $15, $16, $17, $18, $19, $20
        )`

	for _, req := range requests {
		_, err = tx.Exec(ctx, stmt,
			req.RequestID,
			req.MemberID,
			req.RequestTs,
			req.DispatchTs,
			req.ArrivalTs,
			req.CompletionTs,
			req.Latitude,
			req.Longitude,
			req.ZipCode,
			req.City,
			req.State,
			req.RoadType,
			req.IssueType,
			req.TruckID,
			req.VIN,
			req.MilesTowed,
			req.CallSource,
			req.MembershipStart,
			req.MemberHomeZip,
			req.ZoneID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert request %d: %w", req.RequestID, err)
		}
	}

	return tx.Commit(ctx)
}

// GetPoints returns every request that carries a coordinate, regardless of
// whether it has been assigned a zone yet.
func (r *RequestRepository) GetPoints(ctx context.Context) ([]models.RequestPoint, error) {
	query := `
        SELECT request_id, request_ts, latitude, longitude
        FROM roadside_requests
        WHERE latitude IS NOT NULL
          AND longitude IS NOT NULL`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query request points: %w", err)
	}
	defer rows.Close()

	var points []models.RequestPoint
	for rows.Next() {
		var p models.RequestPoint
		var lat, lon float64
		if err := rows.Scan(&p.RequestID, &p.RequestTs, &lat, &lon); err != nil {
			return nil, fmt.Errorf("failed to scan request point: %w", err)
		}
		p.Location = models.Location{Lat: lat, Lon: lon}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating request points: %w", err)
	}
	return points, nil
}

// GetHourlyCounts aggregates call counts per wall-clock hour per zone for
// every request with a known zone.
func (r *RequestRepository) GetHourlyCounts(ctx context.Context) ([]models.HourlyCount, error) {
	query := `
        SELECT date_trunc('hour', request_ts) AS ts_hour,
               zone_id,
               COUNT(*) AS call_count
        FROM roadside_requests
        WHERE zone_id IS NOT NULL
        GROUP BY date_trunc('hour', request_ts), zone_id
        ORDER BY ts_hour, zone_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query hourly counts: %w", err)
	}
	defer rows.Close()

	var counts []models.HourlyCount
	for rows.Next() {
		var c models.HourlyCount
		var count int64
		if err := rows.Scan(&c.TsHour, &c.ZoneID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan hourly count: %w", err)
		}
		c.CallCount = float64(count)
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hourly counts: %w", err)
	}
	return counts, nil
}

// BulkUpdateZones rewrites every request's zone label in one statement
// inside one transaction, keyed by request id.
func (r *RequestRepository) BulkUpdateZones(ctx context.Context, assignments []models.ZoneAssignment) error {
	if len(assignments) == 0 {
		return nil
	}

	ids := make([]int64, len(assignments))
	zones := make([]int32, len(assignments))
	for i, a := range assignments {
		ids[i] = a.RequestID
		zones[i] = int32(a.ZoneID)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	stmt := `
        UPDATE roadside_requests AS r
        SET zone_id = u.zone_id
        FROM (
            SELECT unnest($1::bigint[]) AS request_id,
                   unnest($2::int[]) AS zone_id
        ) AS u
        WHERE r.request_id = u.request_id`

	if _, err := tx.Exec(ctx, stmt, ids, zones); err != nil {
		return fmt.Errorf("failed to update zone labels: %w", err)
	}

	return tx.Commit(ctx)
}
