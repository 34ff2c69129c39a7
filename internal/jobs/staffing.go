package jobs

import (
	"context"
	"fmt"
	"log"

	"github.com/chrisdamba/roadatasim/internal/models"
	"github.com/chrisdamba/roadatasim/internal/repositories"
	"github.com/chrisdamba/roadatasim/internal/staffing"
)

// StaffingJob reads the forecast table and recommends truck counts per
// (zone, hour), overwriting the plan for the forecasted window.
type StaffingJob struct {
	Config    *models.Config
	Forecasts repositories.ForecastRepository
	Staffing  repositories.StaffingRepository
}

func (j *StaffingJob) Run(ctx context.Context) error {
	forecasts, err := j.Forecasts.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("loading forecasts: %w", err)
	}
	if len(forecasts) == 0 {
		log.Printf("no forecast data found in roadside_demand_forecast_hourly")
		return nil
	}

	cells := make([]staffing.Cell, len(forecasts))
	zones := map[int]bool{}
	for i, f := range forecasts {
		cells[i] = staffing.Cell{Ts: f.Ts, ZoneID: f.ZoneID, ForecastCalls: f.ForecastCalls}
		zones[f.ZoneID] = true
	}
	log.Printf("staffing optimization over %d cells in %d zones", len(cells), len(zones))

	optimizer := staffing.Optimizer{
		CallsPerTruck:      j.Config.CallsPerTruckPerHour,
		TargetServiceLevel: j.Config.TargetServiceLevel,
	}
	plan, err := optimizer.Solve(cells)
	if err != nil {
		return err
	}
	if len(plan) == 0 {
		log.Printf("no staffing plan created")
		return nil
	}

	if err := j.Staffing.EnsureTable(ctx); err != nil {
		return err
	}
	if err := j.Staffing.ReplaceRange(ctx, plan); err != nil {
		return fmt.Errorf("writing staffing plan: %w", err)
	}

	log.Printf("staffing plan written to roadside_staffing_plan: %d rows", len(plan))
	return nil
}
