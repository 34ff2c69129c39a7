package jobs

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/chrisdamba/roadatasim/internal/forecast"
	"github.com/chrisdamba/roadatasim/internal/models"
	"github.com/chrisdamba/roadatasim/internal/repositories"
)

// ForecastJob projects hourly demand per zone over a fixed horizon and
// overwrites the forecast table for the projected window.
type ForecastJob struct {
	Config    *models.Config
	Requests  repositories.RequestRepository
	Forecasts repositories.ForecastRepository
}

func (j *ForecastJob) Run(ctx context.Context) error {
	counts, err := j.Requests.GetHourlyCounts(ctx)
	if err != nil {
		return fmt.Errorf("loading hourly counts: %w", err)
	}
	if len(counts) == 0 {
		log.Printf("no data found in roadside_requests")
		return nil
	}

	byZone := forecast.GroupByZone(counts)
	zoneIDs := make([]int, 0, len(byZone))
	for id := range byZone {
		zoneIDs = append(zoneIDs, id)
	}
	sort.Ints(zoneIDs)
	log.Printf("zones found: %v", zoneIDs)

	horizon := j.Config.ForecastHorizonHours
	var rows []models.HourlyForecast
	for _, zoneID := range zoneIDs {
		series := forecast.NewHourlySeries(byZone[zoneID])
		rows = append(rows, forecastZone(zoneID, series, horizon)...)
	}

	if err := j.Forecasts.EnsureTable(ctx); err != nil {
		return err
	}
	if err := j.Forecasts.ReplaceRange(ctx, rows); err != nil {
		return fmt.Errorf("writing forecasts: %w", err)
	}

	log.Printf("multi-zone forecasts written: %d zones, %d rows", len(zoneIDs), len(rows))
	return nil
}

// forecastZone runs the primary model when the history supports it and the
// naive mean otherwise. The primary path's failure is a value, not a panic:
// any fit error drops the zone to the fallback with the cause logged.
func forecastZone(zoneID int, series forecast.HourlySeries, horizon int) []models.HourlyForecast {
	if series.Len() < forecast.MinPrimaryObservations {
		return naiveRows(zoneID, series, horizon)
	}

	model, err := forecast.FitHoltWinters(series.Counts, forecast.SeasonalPeriod)
	if err != nil {
		log.Printf("holt-winters failed for zone %d, using naive: %v", zoneID, err)
		return naiveRows(zoneID, series, horizon)
	}

	points := model.Forecast(horizon)
	sigma := model.ResidualSigma()

	rows := make([]models.HourlyForecast, horizon)
	for i, f := range points {
		rows[i] = models.HourlyForecast{
			Ts:            series.NextHour().Add(time.Duration(i) * time.Hour),
			ZoneID:        zoneID,
			ForecastCalls: f,
			Lower80:       f - 1.28*sigma,
			Upper80:       f + 1.28*sigma,
			ModelName:     models.ModelHoltWinters,
		}
	}
	return rows
}

func naiveRows(zoneID int, series forecast.HourlySeries, horizon int) []models.HourlyForecast {
	points := forecast.NaiveMean(series.Counts, horizon)

	rows := make([]models.HourlyForecast, horizon)
	for i, f := range points {
		rows[i] = models.HourlyForecast{
			Ts:            series.NextHour().Add(time.Duration(i) * time.Hour),
			ZoneID:        zoneID,
			ForecastCalls: f,
			Lower80:       f * 0.8,
			Upper80:       f * 1.2,
			ModelName:     models.ModelNaiveMean,
		}
	}
	return rows
}
