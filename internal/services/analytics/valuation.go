package analytics

import (
	"fmt"
	"math"

	"StockPulse/internal/domain/models"
)

const (
	dcfYears          = 5
	terminalGrowth    = 0.03
	lynchReasonablePE = 15
)

// DCF projects free cash flow forward, adds a Gordon-growth terminal value,
// discounts everything to present, subtracts net debt and divides by shares.
func DCF(f *models.Fundamentals, growthRate, discountRate float64) (float64, error) {
	if !models.Has(f.FreeCashFlow) || !models.Has(f.SharesOutstanding) {
		return 0, fmt.Errorf("dcf needs free cash flow and shares outstanding: %w", ErrInsufficientFundamentals)
	}
	fcf := *f.FreeCashFlow
	shares := *f.SharesOutstanding
	if shares <= 0 {
		return 0, fmt.Errorf("dcf needs positive shares outstanding: %w", ErrInsufficientFundamentals)
	}
	if discountRate <= terminalGrowth {
		return 0, fmt.Errorf("discount rate %.4f must exceed terminal growth %.4f: %w",
			discountRate, terminalGrowth, ErrInvalidAssumptions)
	}

	var enterprise float64
	projected := fcf
	for year := 1; year <= dcfYears; year++ {
		projected = fcf * math.Pow(1+growthRate, float64(year))
		enterprise += projected / math.Pow(1+discountRate, float64(year))
	}
	terminal := projected * (1 + terminalGrowth) / (discountRate - terminalGrowth)
	enterprise += terminal / math.Pow(1+discountRate, dcfYears)

	netDebt := models.Value(f.TotalDebt) - models.Value(f.TotalCash)
	return (enterprise - netDebt) / shares, nil
}

// GrahamNumber is sqrt(22.5 * EPS * book value per share).
func GrahamNumber(f *models.Fundamentals) (float64, error) {
	if !models.Has(f.TrailingEPS) || !models.Has(f.BookValue) {
		return 0, fmt.Errorf("graham number needs eps and book value: %w", ErrInsufficientFundamentals)
	}
	// Both inputs must be positive on their own; two negatives would yield
	// a positive product and a fabricated fair value.
	if *f.TrailingEPS <= 0 || *f.BookValue <= 0 {
		return 0, fmt.Errorf("graham number needs positive eps and book value: %w", ErrInsufficientFundamentals)
	}
	return math.Sqrt(22.5 * *f.TrailingEPS * *f.BookValue), nil
}

// LynchFairValue prices earnings at a flat reasonable multiple.
func LynchFairValue(f *models.Fundamentals) (float64, error) {
	if !models.Has(f.TrailingEPS) {
		return 0, fmt.Errorf("lynch fair value needs eps: %w", ErrInsufficientFundamentals)
	}
	return *f.TrailingEPS * lynchReasonablePE, nil
}

// QualityScorecard awards points across six fundamentals checks, capped at
// 100. Missing fields score as zero rather than erroring, so a sparse record
// still yields a (low) score.
func QualityScorecard(f *models.Fundamentals) models.Scorecard {
	roePct := models.Value(f.ReturnOnEquity) * 100
	de := models.Value(f.DebtToEquity)
	cr := models.Value(f.CurrentRatio)
	grossPct := models.Value(f.GrossMargin) * 100
	netPct := models.Value(f.NetMargin) * 100
	fcf := models.Value(f.FreeCashFlow)

	checks := []models.ScoreCheck{
		{Name: "return_on_equity_above_15pct", Passed: roePct > 15, Points: 20, Value: roePct},
		{Name: "debt_to_equity_below_0.5", Passed: de < 0.5, Points: 20, Value: de},
		{Name: "current_ratio_above_1.5", Passed: cr > 1.5, Points: 15, Value: cr},
		{Name: "gross_margin_above_30pct", Passed: grossPct > 30, Points: 15, Value: grossPct},
		{Name: "net_margin_above_10pct", Passed: netPct > 10, Points: 15, Value: netPct},
		{Name: "positive_free_cash_flow", Passed: fcf > 0, Points: 15, Value: fcf},
	}

	score := 0
	for _, c := range checks {
		if c.Passed {
			score += c.Points
		}
	}
	if score > 100 {
		score = 100
	}
	return models.Scorecard{Score: score, Checks: checks}
}

// ValuationReport runs every model, averages the ones that produced a value
// and converts the blended upside into the tiered recommendation.
func ValuationReport(f *models.Fundamentals, growthRate, discountRate float64) *models.ValuationReport {
	price := models.Value(f.Price)
	report := &models.ValuationReport{
		Ticker:       f.Symbol,
		CurrentPrice: price,
		Quality:      QualityScorecard(f),
	}

	var fairValues []float64
	run := func(fair float64, err error) models.ModelResult {
		if err != nil {
			return models.ModelResult{Error: err.Error()}
		}
		fairValues = append(fairValues, fair)
		res := models.ModelResult{FairValue: fair}
		if price > 0 {
			res.Upside = (fair - price) / price * 100
		}
		return res
	}
	report.DCF = run(DCF(f, growthRate, discountRate))
	report.Graham = run(GrahamNumber(f))
	report.Lynch = run(LynchFairValue(f))

	report.Summary.ModelsUsed = len(fairValues)
	report.Summary.Recommendation = "HOLD"
	if len(fairValues) > 0 {
		var sum float64
		for _, v := range fairValues {
			sum += v
		}
		avg := sum / float64(len(fairValues))
		report.Summary.AverageFairValue = avg
		if price > 0 {
			upside := (avg - price) / price * 100
			report.Summary.AverageUpside = upside
			report.Summary.Recommendation = recommendation(upside)
		}
	}
	return report
}

func recommendation(upsidePct float64) string {
	switch {
	case upsidePct > 20:
		return "STRONG BUY"
	case upsidePct > 10:
		return "BUY"
	case upsidePct < -20:
		return "STRONG SELL"
	case upsidePct < -10:
		return "SELL"
	default:
		return "HOLD"
	}
}
