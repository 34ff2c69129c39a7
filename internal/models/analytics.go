package models

import "time"

// HourlyCount is one aggregated (hour, zone) demand observation.
type HourlyCount struct {
	TsHour    time.Time
	ZoneID    int
	CallCount float64
}

// HourlyForecast is one projected (hour, zone) demand row. The table is
// keyed by (Ts, ZoneID); at most one row exists per hour per zone.
type HourlyForecast struct {
	Ts            time.Time
	ZoneID        int
	ForecastCalls float64
	Lower80       float64
	Upper80       float64
	ModelName     string
}

// Hotspot is one dense sub-area surfaced by a detection run. Rows carry no
// identity linking them to prior runs; whether reruns accumulate or replace
// is a write-mode choice.
type Hotspot struct {
	AsOfDate     time.Time
	ZoneID       int
	ClusterID    int
	CentroidLat  float64
	CentroidLng  float64
	HotspotScore float64
	Method       string
}

// StaffingPlan is one recommended (hour, zone) truck count together with
// the demand figure and coverage target it was sized against.
type StaffingPlan struct {
	Ts               time.Time
	ZoneID           int
	NumTrucks        int
	ForecastCalls    float64
	TargetServiceLvl float64
	ModelName        string
}
