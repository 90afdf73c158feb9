package analytics

import (
	"fmt"
	"math"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/services/series"
)

const kellyCap = 0.25

// SizingInputs are the caller-supplied sizing parameters. RiskPerTrade and
// StopLossPct are percentages, not fractions.
type SizingInputs struct {
	AccountSize  float64
	RiskPerTrade float64
	StopLossPct  float64
}

// PositionPlan sizes a position three ways over daily bars and recommends
// the floor of the most conservative share count.
func PositionPlan(ticker string, bars models.PriceSeries, in SizingInputs) (*models.PositionPlan, error) {
	last, ok := bars.Last()
	if !ok || last.Close <= 0 {
		return nil, fmt.Errorf("position sizing needs price history: %w", ErrInsufficientData)
	}
	if in.AccountSize <= 0 || in.RiskPerTrade <= 0 || in.StopLossPct <= 0 {
		return nil, fmt.Errorf("account size, risk and stop loss must be positive: %w", ErrInvalidAssumptions)
	}
	price := last.Close
	returns := series.Returns(bars.Closes())

	// Fixed risk: risk a flat percent of the account against the stop.
	riskAmount := in.AccountSize * in.RiskPerTrade / 100
	stopAmount := price * in.StopLossPct / 100
	fixedShares := riskAmount / stopAmount

	kelly := kellyFraction(returns)
	kellyShares := in.AccountSize * kelly / price

	// Volatility adjusted: scale the risk percent down by annualized
	// volatility; a flat series keeps the unscaled risk percent.
	vol := AnnualizedVolatility(returns)
	effectiveRisk := in.RiskPerTrade
	if vol > 0 {
		effectiveRisk = in.RiskPerTrade / (vol * 100)
	}
	volShares := in.AccountSize * (effectiveRisk / 100) / price

	return &models.PositionPlan{
		Ticker:       ticker,
		Price:        price,
		AccountSize:  in.AccountSize,
		RiskPerTrade: in.RiskPerTrade,
		StopLossPct:  in.StopLossPct,
		FixedRisk: models.SizingMethod{
			Shares: fixedShares,
			Detail: fmt.Sprintf("Risk %.1f%% of account (%.2f) on this trade", in.RiskPerTrade, riskAmount),
		},
		Kelly: models.SizingMethod{
			Shares: kellyShares,
			Detail: fmt.Sprintf("Kelly criterion suggests %.1f%% of capital", kelly*100),
		},
		VolatilityAdjusted: models.SizingMethod{
			Shares: volShares,
			Detail: fmt.Sprintf("Adjusted for %.1f%% annual volatility", vol*100),
		},
		Recommended: int(math.Min(fixedShares, math.Min(kellyShares, volShares))),
	}, nil
}

// kellyFraction estimates the Kelly bet fraction from the win rate and the
// win/loss magnitude ratio, clamped to [0, kellyCap]. Fewer than the minimum
// estimation points, or a lossless history, yields 0.
func kellyFraction(returns []float64) float64 {
	if len(returns) <= minEstimationPoints {
		return 0
	}
	var wins, losses []float64
	for _, r := range returns {
		if r > 0 {
			wins = append(wins, r)
		} else if r < 0 {
			losses = append(losses, r)
		}
	}
	winRate := float64(len(wins)) / float64(len(returns))
	avgWin := series.Mean(wins)
	avgLoss := math.Abs(series.Mean(losses))
	if avgLoss == 0 {
		return 0
	}
	f := winRate - (1-winRate)*(avgWin/avgLoss)
	if f < 0 {
		return 0
	}
	if f > kellyCap {
		return kellyCap
	}
	return f
}
