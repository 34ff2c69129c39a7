package forecast_test

import (
	"math"
	"testing"

	"github.com/chrisdamba/roadatasim/internal/forecast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sineSeries builds a noiseless daily-shaped series: base demand plus a
// sinusoidal cycle of the given period.
func sineSeries(cycles, period int) []float64 {
	out := make([]float64, cycles*period)
	for t := range out {
		out[t] = 10 + 5*math.Sin(2*math.Pi*float64(t)/float64(period))
	}
	return out
}

func TestFitHoltWintersRejectsShortHistory(t *testing.T) {
	_, err := forecast.FitHoltWinters(make([]float64, 10), 24)
	assert.Error(t, err)
}

func TestFitHoltWintersRejectsDegeneratePeriod(t *testing.T) {
	_, err := forecast.FitHoltWinters(make([]float64, 100), 1)
	assert.Error(t, err)
}

func TestHoltWintersReproducesCleanSeasonality(t *testing.T) {
	const period = 24
	series := sineSeries(5, period)

	model, err := forecast.FitHoltWinters(series, period)
	require.NoError(t, err)

	got := model.Forecast(period)
	require.Len(t, got, period)
	for step := 1; step <= period; step++ {
		want := 10 + 5*math.Sin(2*math.Pi*float64(step-1)/float64(period))
		assert.InDelta(t, want, got[step-1], 1e-6, "step %d", step)
	}

	// A noiseless series fits exactly, so the residual spread collapses.
	assert.InDelta(t, 0.0, model.ResidualSigma(), 1e-6)
}

func TestHoltWintersForecastIsFiniteOnFlatSeries(t *testing.T) {
	const period = 24
	series := make([]float64, 3*period)
	for i := range series {
		series[i] = 4.0
	}

	model, err := forecast.FitHoltWinters(series, period)
	require.NoError(t, err)

	for _, f := range model.Forecast(48) {
		require.False(t, math.IsNaN(f) || math.IsInf(f, 0))
		assert.InDelta(t, 4.0, f, 1e-6)
	}
}

func TestNaiveMeanRepeatsHistoricalMean(t *testing.T) {
	got := forecast.NaiveMean([]float64{2, 4, 6}, 3)
	assert.Equal(t, []float64{4, 4, 4}, got)
}
