package analytics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/services/series"
)

const (
	tradingDays = 252

	// Beta and Kelly estimates need more than this many aligned returns
	// before they are trusted over their fallbacks.
	minEstimationPoints = 30

	riskMinBars = 30
)

// HistoricalVaR is the empirical value-at-risk at the given confidence: the
// magnitude of the return at the (1-confidence) quantile of the sorted
// return distribution.
func HistoricalVaR(returns []float64, confidence float64) (float64, error) {
	if len(returns) == 0 {
		return 0, fmt.Errorf("var needs returns: %w", ErrInsufficientData)
	}
	if confidence <= 0 || confidence >= 1 {
		return 0, fmt.Errorf("confidence %v outside (0,1): %w", confidence, ErrInvalidAssumptions)
	}
	sorted := make([]float64, len(returns))
	copy(sorted, returns)
	sort.Float64s(sorted)

	idx := int((1 - confidence) * float64(len(sorted)))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return math.Abs(sorted[idx]), nil
}

// MaxDrawdown is the largest peak-to-trough decline, as a positive fraction.
func MaxDrawdown(closes []float64) float64 {
	if len(closes) == 0 {
		return 0
	}
	peak := closes[0]
	worst := 0.0
	for _, p := range closes {
		if p > peak {
			peak = p
		}
		if peak > 0 {
			if dd := (peak - p) / peak; dd > worst {
				worst = dd
			}
		}
	}
	return worst
}

// AnnualizedVolatility scales the sample standard deviation of daily returns
// by sqrt(252).
func AnnualizedVolatility(returns []float64) float64 {
	return series.Std(returns) * math.Sqrt(tradingDays)
}

// Beta regresses asset returns against benchmark returns aligned on date.
// With too few aligned points or a flat benchmark it falls back to 1.0.
func Beta(asset, benchmark []series.DatedReturn) float64 {
	x, y := series.Align(asset, benchmark)
	if len(x) <= minEstimationPoints {
		return 1.0
	}
	benchVar := stat.Variance(y, nil)
	if benchVar == 0 {
		return 1.0
	}
	return stat.Covariance(x, y, nil) / benchVar
}

// SharpeRatio is annualized mean return over annualized volatility, with a
// zero risk-free rate; 0 when volatility is 0.
func SharpeRatio(returns []float64) float64 {
	sd := series.Std(returns)
	if sd == 0 {
		return 0
	}
	return series.Mean(returns) * tradingDays / (sd * math.Sqrt(tradingDays))
}

// RiskProfile computes the full per-asset risk block over daily bars.
func RiskProfile(bars, benchmark models.PriceSeries) (*models.RiskProfile, error) {
	if len(bars) < riskMinBars {
		return nil, fmt.Errorf("risk metrics need %d bars, have %d: %w", riskMinBars, len(bars), ErrInsufficientData)
	}
	closes := bars.Closes()
	returns := series.Returns(closes)

	var95, err := HistoricalVaR(returns, 0.95)
	if err != nil {
		return nil, err
	}
	var99, err := HistoricalVaR(returns, 0.99)
	if err != nil {
		return nil, err
	}

	return &models.RiskProfile{
		VaR95:       var95,
		VaR99:       var99,
		MaxDrawdown: MaxDrawdown(closes),
		Volatility:  AnnualizedVolatility(returns),
		Beta:        Beta(series.DatedReturns(bars), series.DatedReturns(benchmark)),
		Sharpe:      SharpeRatio(returns),
	}, nil
}

// PortfolioVaRMethod documents the aggregation approximation.
const PortfolioVaRMethod = "equal_weight_independent"

// PortfolioVaR aggregates per-asset VaR under equal weights assuming
// independent assets: sqrt(sum(w^2 * var^2)). It ignores cross-asset
// correlation and therefore understates risk for correlated books.
func PortfolioVaR(vars []float64) float64 {
	if len(vars) == 0 {
		return 0
	}
	w := 1.0 / float64(len(vars))
	sum := 0.0
	for _, v := range vars {
		sum += w * w * v * v
	}
	return math.Sqrt(sum)
}

// CorrelationMatrix computes pairwise Pearson correlation on date-aligned
// returns. The matrix is symmetric with a unit diagonal; pairs with fewer
// than two aligned points correlate at 0.
func CorrelationMatrix(returns [][]series.DatedReturn) [][]float64 {
	n := len(returns)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1.0
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			x, y := series.Align(returns[i], returns[j])
			c := 0.0
			if len(x) >= 2 {
				c = stat.Correlation(x, y, nil)
				if math.IsNaN(c) {
					c = 0
				}
			}
			m[i][j] = c
			m[j][i] = c
		}
	}
	return m
}
