package forecast

import (
	"time"

	"github.com/chrisdamba/roadatasim/internal/models"
)

// HourlySeries is one zone's demand history on a continuous hourly grid.
// Counts[i] is the call count for Start + i hours; hours with no calls hold
// zero rather than being absent.
type HourlySeries struct {
	Start  time.Time
	Counts []float64
}

// NewHourlySeries reindexes one zone's observed (hour, count) rows onto a
// continuous hourly grid spanning their observed range, filling gaps with
// zero. Returns the zero value when no observations exist.
func NewHourlySeries(counts []models.HourlyCount) HourlySeries {
	if len(counts) == 0 {
		return HourlySeries{}
	}

	minTs := counts[0].TsHour
	maxTs := counts[0].TsHour
	for _, c := range counts[1:] {
		if c.TsHour.Before(minTs) {
			minTs = c.TsHour
		}
		if c.TsHour.After(maxTs) {
			maxTs = c.TsHour
		}
	}

	n := int(maxTs.Sub(minTs)/time.Hour) + 1
	grid := make([]float64, n)
	for _, c := range counts {
		grid[int(c.TsHour.Sub(minTs)/time.Hour)] = c.CallCount
	}

	return HourlySeries{Start: minTs, Counts: grid}
}

// Len is the number of hourly observations on the grid.
func (s HourlySeries) Len() int { return len(s.Counts) }

// NextHour is the first timestamp after the observed range, i.e. where a
// forecast horizon begins.
func (s HourlySeries) NextHour() time.Time {
	return s.Start.Add(time.Duration(len(s.Counts)) * time.Hour)
}

// GroupByZone splits aggregated counts into per-zone slices.
func GroupByZone(counts []models.HourlyCount) map[int][]models.HourlyCount {
	byZone := make(map[int][]models.HourlyCount)
	for _, c := range counts {
		byZone[c.ZoneID] = append(byZone[c.ZoneID], c)
	}
	return byZone
}
