package jobs_test

import (
	"context"
	"time"

	"github.com/chrisdamba/roadatasim/internal/models"
)

// In-memory repository doubles mirroring the postgres write discipline:
// ReplaceRange drops rows inside the incoming span before inserting, and
// ReplaceForDate drops rows for the incoming as-of-date.

type fakeRequestRepo struct {
	points      []models.RequestPoint
	counts      []models.HourlyCount
	assignments []models.ZoneAssignment
}

func (f *fakeRequestRepo) EnsureTable(context.Context) error { return nil }

func (f *fakeRequestRepo) BulkCreate(context.Context, []*models.Request) error { return nil }

func (f *fakeRequestRepo) GetPoints(context.Context) ([]models.RequestPoint, error) {
	return f.points, nil
}

func (f *fakeRequestRepo) GetHourlyCounts(context.Context) ([]models.HourlyCount, error) {
	return f.counts, nil
}

func (f *fakeRequestRepo) BulkUpdateZones(_ context.Context, assignments []models.ZoneAssignment) error {
	f.assignments = assignments
	return nil
}

type fakeForecastRepo struct {
	rows []models.HourlyForecast
}

func (f *fakeForecastRepo) EnsureTable(context.Context) error { return nil }

func (f *fakeForecastRepo) GetAll(context.Context) ([]models.HourlyForecast, error) {
	return f.rows, nil
}

func (f *fakeForecastRepo) ReplaceRange(_ context.Context, rows []models.HourlyForecast) error {
	if len(rows) == 0 {
		return nil
	}
	minTs, maxTs := rows[0].Ts, rows[0].Ts
	for _, r := range rows[1:] {
		if r.Ts.Before(minTs) {
			minTs = r.Ts
		}
		if r.Ts.After(maxTs) {
			maxTs = r.Ts
		}
	}
	var kept []models.HourlyForecast
	for _, r := range f.rows {
		if r.Ts.Before(minTs) || r.Ts.After(maxTs) {
			kept = append(kept, r)
		}
	}
	f.rows = append(kept, rows...)
	return nil
}

type fakeHotspotRepo struct {
	rows []models.Hotspot
}

func (f *fakeHotspotRepo) EnsureTable(context.Context) error { return nil }

func (f *fakeHotspotRepo) Append(_ context.Context, rows []models.Hotspot) error {
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakeHotspotRepo) ReplaceForDate(_ context.Context, asOf time.Time, rows []models.Hotspot) error {
	var kept []models.Hotspot
	for _, r := range f.rows {
		if !r.AsOfDate.Equal(asOf) {
			kept = append(kept, r)
		}
	}
	f.rows = append(kept, rows...)
	return nil
}

type fakeStaffingRepo struct {
	rows []models.StaffingPlan
}

func (f *fakeStaffingRepo) EnsureTable(context.Context) error { return nil }

func (f *fakeStaffingRepo) ReplaceRange(_ context.Context, rows []models.StaffingPlan) error {
	if len(rows) == 0 {
		return nil
	}
	minTs, maxTs := rows[0].Ts, rows[0].Ts
	for _, r := range rows[1:] {
		if r.Ts.Before(minTs) {
			minTs = r.Ts
		}
		if r.Ts.After(maxTs) {
			maxTs = r.Ts
		}
	}
	var kept []models.StaffingPlan
	for _, r := range f.rows {
		if r.Ts.Before(minTs) || r.Ts.After(maxTs) {
			kept = append(kept, r)
		}
	}
	f.rows = append(kept, rows...)
	return nil
}
