// Package series holds the rolling-window and return primitives shared by the
// analytics engines. Everything operates on plain float64 slices and returns
// explicit ok flags instead of NaN sentinels.
package series

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"StockPulse/internal/domain/models"
)

// Returns computes simple period-over-period returns. A zero previous close
// is skipped rather than dividing by it.
func Returns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		out = append(out, closes[i]/closes[i-1]-1)
	}
	return out
}

// DatedReturn pairs a return with the date of its later bar, for alignment
// across series with holiday gaps.
type DatedReturn struct {
	Date time.Time
	Ret  float64
}

// DatedReturns computes returns keyed by bar date.
func DatedReturns(bars models.PriceSeries) []DatedReturn {
	if len(bars) < 2 {
		return nil
	}
	out := make([]DatedReturn, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		if bars[i-1].Close == 0 {
			continue
		}
		out = append(out, DatedReturn{
			Date: bars[i].Date,
			Ret:  bars[i].Close/bars[i-1].Close - 1,
		})
	}
	return out
}

// Align intersects two dated return series on date, preserving order.
func Align(a, b []DatedReturn) (x, y []float64) {
	byDate := make(map[time.Time]float64, len(b))
	for _, r := range b {
		byDate[r.Date] = r.Ret
	}
	for _, r := range a {
		if v, ok := byDate[r.Date]; ok {
			x = append(x, r.Ret)
			y = append(y, v)
		}
	}
	return x, y
}

// Mean is the arithmetic mean; 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// Std is the sample standard deviation (n-1); 0 when fewer than two points.
func Std(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}

// RollingMean averages the trailing window ending at the last element.
func RollingMean(xs []float64, window int) (float64, bool) {
	if window <= 0 || len(xs) < window {
		return 0, false
	}
	return stat.Mean(xs[len(xs)-window:], nil), true
}

// RollingStd is the sample standard deviation of the trailing window.
func RollingStd(xs []float64, window int) (float64, bool) {
	if window < 2 || len(xs) < window {
		return 0, false
	}
	return stat.StdDev(xs[len(xs)-window:], nil), true
}

// RollingMax is the maximum of the trailing window.
func RollingMax(xs []float64, window int) (float64, bool) {
	if window <= 0 || len(xs) < window {
		return 0, false
	}
	max := xs[len(xs)-window]
	for _, v := range xs[len(xs)-window:] {
		if v > max {
			max = v
		}
	}
	return max, true
}

// RollingMin is the minimum of the trailing window.
func RollingMin(xs []float64, window int) (float64, bool) {
	if window <= 0 || len(xs) < window {
		return 0, false
	}
	min := xs[len(xs)-window]
	for _, v := range xs[len(xs)-window:] {
		if v < min {
			min = v
		}
	}
	return min, true
}

// EMA computes the full exponential moving average series with the usual
// 2/(span+1) smoothing, seeded on the first value.
func EMA(xs []float64, span int) []float64 {
	if span <= 0 || len(xs) == 0 {
		return nil
	}
	alpha := 2.0 / (float64(span) + 1)
	out := make([]float64, len(xs))
	out[0] = xs[0]
	for i := 1; i < len(xs); i++ {
		out[i] = alpha*xs[i] + (1-alpha)*out[i-1]
	}
	return out
}

// SMASeries computes the rolling mean at every index where the window is
// full; earlier indexes hold NaN so positions line up with the input.
func SMASeries(xs []float64, window int) []float64 {
	out := make([]float64, len(xs))
	for i := range out {
		out[i] = math.NaN()
	}
	if window <= 0 || len(xs) < window {
		return out
	}
	var sum float64
	for i, v := range xs {
		sum += v
		if i >= window {
			sum -= xs[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}
