package repositories

import (
	"context"
	"time"

	"github.com/chrisdamba/roadatasim/internal/models"
)

type RequestRepository interface {
	EnsureTable(ctx context.Context) error
	BulkCreate(ctx context.Context, requests []*models.Request) error
	GetPoints(ctx context.Context) ([]models.RequestPoint, error)
	GetHourlyCounts(ctx context.Context) ([]models.HourlyCount, error)
	BulkUpdateZones(ctx context.Context, assignments []models.ZoneAssignment) error
}

type ForecastRepository interface {
	EnsureTable(ctx context.Context) error
	GetAll(ctx context.Context) ([]models.HourlyForecast, error)
	ReplaceRange(ctx context.Context, rows []models.HourlyForecast) error
}

type HotspotRepository interface {
	EnsureTable(ctx context.Context) error
	Append(ctx context.Context, rows []models.Hotspot) error
	ReplaceForDate(ctx context.Context, asOf time.Time, rows []models.Hotspot) error
}

type StaffingRepository interface {
	EnsureTable(ctx context.Context) error
	ReplaceRange(ctx context.Context, rows []models.StaffingPlan) error
}
