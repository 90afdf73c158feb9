package analytics

import (
	"fmt"
	"math"
	"sort"

	"StockPulse/internal/domain/models"
)

const (
	levelLookback   = 20
	levelTouchPct   = 0.02
	levelMinTouches = 2
	levelTopN       = 3
	fibWindow       = 100
)

// Retracement ratios; 0 and 1 anchor the window high and low and take part
// in closest-level detection like any other line.
var fibRatios = []float64{0, 0.236, 0.382, 0.5, 0.618, 0.786, 1}

// SupportResistance scans for local extrema with a ±lookback window, counts
// 2%-radius touches across the whole series and keeps the strongest levels.
func SupportResistance(bars models.PriceSeries) (support, resistance []models.Level, err error) {
	if len(bars) < 2*levelLookback+1 {
		return nil, nil, fmt.Errorf("level detection needs %d bars, have %d: %w",
			2*levelLookback+1, len(bars), ErrInsufficientData)
	}
	highs, lows := bars.Highs(), bars.Lows()

	var resCandidates, supCandidates []float64
	for i := levelLookback; i < len(bars)-levelLookback; i++ {
		if isWindowMax(highs, i, levelLookback) {
			resCandidates = append(resCandidates, highs[i])
		}
		if isWindowMin(lows, i, levelLookback) {
			supCandidates = append(supCandidates, lows[i])
		}
	}

	resistance = scoreLevels(resCandidates, lows)
	support = scoreLevels(supCandidates, highs)
	return support, resistance, nil
}

// Extrema are strict: an equal high or low elsewhere in the window
// disqualifies the candidate.
func isWindowMax(xs []float64, i, lookback int) bool {
	for j := i - lookback; j <= i+lookback; j++ {
		if j != i && xs[j] >= xs[i] {
			return false
		}
	}
	return true
}

func isWindowMin(xs []float64, i, lookback int) bool {
	for j := i - lookback; j <= i+lookback; j++ {
		if j != i && xs[j] <= xs[i] {
			return false
		}
	}
	return true
}

// scoreLevels counts touches within the 2% radius, drops candidates below the
// minimum and keeps the top levels by touch count. The sort is stable so
// equal-touch levels keep scan order.
func scoreLevels(candidates, probes []float64) []models.Level {
	levels := make([]models.Level, 0, len(candidates))
	for _, price := range candidates {
		if price == 0 {
			continue
		}
		touches := 0
		for _, p := range probes {
			if math.Abs(p-price)/price < levelTouchPct {
				touches++
			}
		}
		if touches < levelMinTouches {
			continue
		}
		strength := "moderate"
		if touches >= 3 {
			strength = "strong"
		}
		levels = append(levels, models.Level{Price: price, Touches: touches, Strength: strength})
	}
	sort.SliceStable(levels, func(i, j int) bool {
		return levels[i].Touches > levels[j].Touches
	})
	if len(levels) > levelTopN {
		levels = levels[:levelTopN]
	}
	return levels
}

// Fibonacci computes the retracement grid over the trailing window (clamped
// to the available history) and finds the level closest to the last close.
func Fibonacci(bars models.PriceSeries) (*models.FibonacciLevels, error) {
	if len(bars) < 2 {
		return nil, fmt.Errorf("fibonacci needs at least 2 bars, have %d: %w", len(bars), ErrInsufficientData)
	}
	window := bars.Tail(fibWindow)
	high := window[0].High
	low := window[0].Low
	for _, b := range window {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}

	price := bars[len(bars)-1].Close
	out := &models.FibonacciLevels{High: high, Low: low}
	bestDist := math.Inf(1)
	for _, r := range fibRatios {
		p := high - (high-low)*r
		out.Levels = append(out.Levels, models.FibLevel{Ratio: r, Price: p})
		if d := math.Abs(price - p); d < bestDist {
			bestDist = d
			out.ClosestRatio = r
			out.ClosestPrice = p
		}
	}
	if diff := high - low; diff > 0 {
		out.RetracementFromHigh = (high - price) / diff * 100
		out.ExtensionFromLow = (price - low) / diff * 100
	}
	return out, nil
}
