package forecast

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// SeasonalPeriod is the additive seasonal cycle length: one week of hours.
const SeasonalPeriod = 24 * 7

// MinPrimaryObservations is the shortest history the primary model will be
// attempted on; anything shorter goes straight to the naive fallback.
const MinPrimaryObservations = 24

// HoltWinters is a fitted additive trend + additive seasonal exponential
// smoothing model.
type HoltWinters struct {
	Alpha, Beta, Gamma float64

	level    float64
	trend    float64
	seasonal []float64
	n        int

	fitted    []float64
	residuals []float64
}

// FitHoltWinters fits the additive-weekly model on a zone's full hourly
// history. Smoothing constants are chosen by a coarse grid search over the
// in-sample one-step squared error, standing in for a numerical optimizer.
// It fails (rather than guessing) when the history cannot initialize the
// seasonal state or the fit degenerates; callers branch to the naive
// fallback on error.
func FitHoltWinters(series []float64, period int) (*HoltWinters, error) {
	if period < 2 {
		return nil, fmt.Errorf("seasonal period must be at least 2, got %d", period)
	}
	if len(series) < 2*period {
		return nil, fmt.Errorf("need at least %d observations to fit seasonal period %d, have %d",
			2*period, period, len(series))
	}

	alphas := []float64{0.05, 0.1, 0.2, 0.3, 0.5}
	betas := []float64{0.01, 0.05, 0.1}
	gammas := []float64{0.05, 0.1, 0.2}

	var best *HoltWinters
	bestSSE := math.Inf(1)
	for _, a := range alphas {
		for _, b := range betas {
			for _, g := range gammas {
				m, sse := smooth(series, period, a, b, g)
				if sse < bestSSE {
					best = m
					bestSSE = sse
				}
			}
		}
	}

	if best == nil || !isFinite(bestSSE) {
		return nil, fmt.Errorf("holt-winters fit produced a non-finite solution")
	}
	return best, nil
}

// smooth runs one pass of triple exponential smoothing and returns the
// resulting model state plus its in-sample SSE. A non-finite intermediate
// poisons the SSE so the grid search discards that parameter triple.
func smooth(series []float64, period int, alpha, beta, gamma float64) (*HoltWinters, float64) {
	level, trend, seasonal := initialState(series, period)

	fitted := make([]float64, len(series))
	residuals := make([]float64, len(series))
	sse := 0.0

	for t, y := range series {
		si := t % period
		f := level + trend + seasonal[si]
		fitted[t] = f
		residuals[t] = y - f
		sse += residuals[t] * residuals[t]

		prevLevel := level
		level = alpha*(y-seasonal[si]) + (1-alpha)*(level+trend)
		trend = beta*(level-prevLevel) + (1-beta)*trend
		seasonal[si] = gamma*(y-level) + (1-gamma)*seasonal[si]

		if !isFinite(level) || !isFinite(trend) || !isFinite(seasonal[si]) {
			return nil, math.Inf(1)
		}
	}

	return &HoltWinters{
		Alpha:     alpha,
		Beta:      beta,
		Gamma:     gamma,
		level:     level,
		trend:     trend,
		seasonal:  seasonal,
		n:         len(series),
		fitted:    fitted,
		residuals: residuals,
	}, sse
}

// initialState seeds level, trend and the seasonal profile from the first
// two full cycles: level is the first-cycle mean, trend the per-step change
// between cycle means, and each seasonal index the mean deviation from its
// cycle's mean across all complete cycles.
func initialState(series []float64, period int) (float64, float64, []float64) {
	level := stat.Mean(series[:period], nil)
	second := stat.Mean(series[period:2*period], nil)
	trend := (second - level) / float64(period)

	cycles := len(series) / period
	seasonal := make([]float64, period)
	for i := 0; i < period; i++ {
		sum := 0.0
		for c := 0; c < cycles; c++ {
			cycleMean := stat.Mean(series[c*period:(c+1)*period], nil)
			sum += series[c*period+i] - cycleMean
		}
		seasonal[i] = sum / float64(cycles)
	}
	return level, trend, seasonal
}

// Forecast projects h steps past the fitted history.
func (m *HoltWinters) Forecast(h int) []float64 {
	out := make([]float64, h)
	for step := 1; step <= h; step++ {
		si := (m.n + step - 1) % len(m.seasonal)
		out[step-1] = m.level + float64(step)*m.trend + m.seasonal[si]
	}
	return out
}

// ResidualSigma is the standard deviation of the in-sample one-step
// residuals, used as the single interval width across the whole horizon.
// With fewer than two residuals it falls back to 1.0.
func (m *HoltWinters) ResidualSigma() float64 {
	if len(m.residuals) < 2 {
		return 1.0
	}
	return stat.StdDev(m.residuals, nil)
}

// NaiveMean forecasts the historical mean for every horizon step.
func NaiveMean(series []float64, h int) []float64 {
	mean := stat.Mean(series, nil)
	out := make([]float64, h)
	for i := range out {
		out[i] = mean
	}
	return out
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
