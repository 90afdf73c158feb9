package analytics

import (
	"fmt"
	"math"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/services/series"
)

// Default indicator windows. The oscillators use simple rolling means, not
// Wilder smoothing, so outputs track the rolling-window definitions exactly.
const (
	macdFast   = 12
	macdSlow   = 26
	macdSignal = 9

	bollingerWindow = 20
	bollingerWidth  = 2.0

	stochasticWindow = 14
	stochasticSmooth = 3

	williamsWindow = 14
	adxWindow      = 14
	atrWindow      = 14
	rsiWindow      = 14
)

// MACD computes the 12/26 convergence-divergence line with a 9-period signal.
func MACD(closes []float64) (*models.MACDResult, error) {
	if len(closes) < macdSlow {
		return nil, fmt.Errorf("macd needs %d closes, have %d: %w", macdSlow, len(closes), ErrInsufficientData)
	}
	fast := series.EMA(closes, macdFast)
	slow := series.EMA(closes, macdSlow)
	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fast[i] - slow[i]
	}
	signal := series.EMA(line, macdSignal)

	last := len(closes) - 1
	trend := "bearish"
	if line[last] > signal[last] {
		trend = "bullish"
	}
	return &models.MACDResult{
		MACD:      line[last],
		Signal:    signal[last],
		Histogram: line[last] - signal[last],
		Trend:     trend,
	}, nil
}

// Bollinger computes the 20-period, 2-sigma bands around the rolling mean.
func Bollinger(closes []float64) (*models.BollingerResult, error) {
	mid, ok := series.RollingMean(closes, bollingerWindow)
	if !ok {
		return nil, fmt.Errorf("bollinger needs %d closes, have %d: %w", bollingerWindow, len(closes), ErrInsufficientData)
	}
	sd, _ := series.RollingStd(closes, bollingerWindow)
	upper := mid + bollingerWidth*sd
	lower := mid - bollingerWidth*sd
	price := closes[len(closes)-1]

	position := "within_bands"
	switch {
	case price > upper:
		position = "above_upper"
	case price < lower:
		position = "below_lower"
	}

	bandwidth := 0.0
	if mid != 0 {
		bandwidth = (upper - lower) / mid * 100
	}
	percent := 50.0
	if upper != lower {
		percent = (price - lower) / (upper - lower) * 100
	}
	return &models.BollingerResult{
		Upper:           upper,
		Middle:          mid,
		Lower:           lower,
		Position:        position,
		Bandwidth:       bandwidth,
		PercentPosition: percent,
	}, nil
}

// Stochastic computes the 14-period %K with a 3-period %D smoothing.
func Stochastic(highs, lows, closes []float64) (*models.StochasticResult, error) {
	n := len(closes)
	need := stochasticWindow + stochasticSmooth - 1
	if n < need || len(highs) != n || len(lows) != n {
		return nil, fmt.Errorf("stochastic needs %d bars, have %d: %w", need, n, ErrInsufficientData)
	}

	// %K for the last smooth-window positions, then %D as their mean.
	ks := make([]float64, 0, stochasticSmooth)
	for i := n - stochasticSmooth; i < n; i++ {
		hh := highs[i-stochasticWindow+1]
		ll := lows[i-stochasticWindow+1]
		for j := i - stochasticWindow + 1; j <= i; j++ {
			if highs[j] > hh {
				hh = highs[j]
			}
			if lows[j] < ll {
				ll = lows[j]
			}
		}
		k := 50.0
		if hh != ll {
			k = (closes[i] - ll) / (hh - ll) * 100
		}
		ks = append(ks, k)
	}
	k := ks[len(ks)-1]
	d := series.Mean(ks)

	crossover := "bearish"
	if k > d {
		crossover = "bullish"
	}
	// Overbought/oversold only when both lines agree; a lone %K spike reads
	// as the crossover direction instead.
	signal := crossover
	switch {
	case k > 80 && d > 80:
		signal = "overbought"
	case k < 20 && d < 20:
		signal = "oversold"
	}
	return &models.StochasticResult{K: k, D: d, Signal: signal, Crossover: crossover}, nil
}

// WilliamsR computes the 14-period Williams %R, bounded in [-100, 0].
func WilliamsR(highs, lows, closes []float64) (*models.WilliamsRResult, error) {
	n := len(closes)
	if n < williamsWindow || len(highs) != n || len(lows) != n {
		return nil, fmt.Errorf("williams %%r needs %d bars, have %d: %w", williamsWindow, n, ErrInsufficientData)
	}
	hh, _ := series.RollingMax(highs, williamsWindow)
	ll, _ := series.RollingMin(lows, williamsWindow)
	value := -50.0
	if hh != ll {
		value = (hh - closes[n-1]) / (hh - ll) * -100
	}
	signal := "neutral"
	switch {
	case value > -20:
		signal = "overbought"
	case value < -80:
		signal = "oversold"
	}
	return &models.WilliamsRResult{Value: value, Signal: signal}, nil
}

// ADX computes the 14-period average directional index on rolling-mean
// smoothed true range and directional movement.
func ADX(highs, lows, closes []float64) (*models.ADXResult, error) {
	n := len(closes)
	need := 2*adxWindow + 1
	if n < need || len(highs) != n || len(lows) != n {
		return nil, fmt.Errorf("adx needs %d bars, have %d: %w", need, n, ErrInsufficientData)
	}

	tr := make([]float64, n-1)
	plusDM := make([]float64, n-1)
	minusDM := make([]float64, n-1)
	for i := 1; i < n; i++ {
		tr[i-1] = trueRange(highs[i], lows[i], closes[i-1])
		up := highs[i] - highs[i-1]
		down := lows[i-1] - lows[i]
		if up > down && up > 0 {
			plusDM[i-1] = up
		}
		if down > up && down > 0 {
			minusDM[i-1] = down
		}
	}

	atr := series.SMASeries(tr, adxWindow)
	pdm := series.SMASeries(plusDM, adxWindow)
	mdm := series.SMASeries(minusDM, adxWindow)

	dx := make([]float64, 0, len(tr))
	var lastPlusDI, lastMinusDI float64
	for i := adxWindow - 1; i < len(tr); i++ {
		if atr[i] == 0 || math.IsNaN(atr[i]) {
			dx = append(dx, 0)
			continue
		}
		plusDI := pdm[i] / atr[i] * 100
		minusDI := mdm[i] / atr[i] * 100
		lastPlusDI, lastMinusDI = plusDI, minusDI
		sum := plusDI + minusDI
		if sum == 0 {
			dx = append(dx, 0)
			continue
		}
		dx = append(dx, math.Abs(plusDI-minusDI)/sum*100)
	}
	adx, ok := series.RollingMean(dx, adxWindow)
	if !ok {
		return nil, fmt.Errorf("adx smoothing window not filled: %w", ErrInsufficientData)
	}

	strength := "weak"
	switch {
	case adx > 25:
		strength = "strong"
	case adx > 20:
		strength = "moderate"
	}
	return &models.ADXResult{ADX: adx, PlusDI: lastPlusDI, MinusDI: lastMinusDI, Strength: strength}, nil
}

// ATR computes the 14-period average true range and its percent of price.
func ATR(highs, lows, closes []float64) (*models.ATRResult, error) {
	n := len(closes)
	if n < atrWindow+1 || len(highs) != n || len(lows) != n {
		return nil, fmt.Errorf("atr needs %d bars, have %d: %w", atrWindow+1, n, ErrInsufficientData)
	}
	tr := make([]float64, n-1)
	for i := 1; i < n; i++ {
		tr[i-1] = trueRange(highs[i], lows[i], closes[i-1])
	}
	atr, _ := series.RollingMean(tr, atrWindow)
	price := closes[n-1]
	percent := 0.0
	if price != 0 {
		percent = atr / price * 100
	}
	volatility := "low"
	switch {
	case percent > 3:
		volatility = "high"
	case percent > 1.5:
		volatility = "moderate"
	}
	return &models.ATRResult{Value: atr, Percent: percent, Volatility: volatility}, nil
}

// RSI computes the 14-period relative strength index over rolling-mean gains
// and losses. A zero average loss reports 100 rather than propagating an
// infinite relative strength.
func RSI(closes []float64) (*models.RSIResult, error) {
	if len(closes) < rsiWindow+1 {
		return nil, fmt.Errorf("rsi needs %d closes, have %d: %w", rsiWindow+1, len(closes), ErrInsufficientData)
	}
	gains := make([]float64, 0, rsiWindow)
	losses := make([]float64, 0, rsiWindow)
	for i := len(closes) - rsiWindow; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gains = append(gains, d)
			losses = append(losses, 0)
		} else {
			gains = append(gains, 0)
			losses = append(losses, -d)
		}
	}
	avgGain := series.Mean(gains)
	avgLoss := series.Mean(losses)

	value := 100.0
	if avgLoss != 0 {
		rs := avgGain / avgLoss
		value = 100 - 100/(1+rs)
	}
	signal := "neutral"
	switch {
	case value > 70:
		signal = "overbought"
	case value < 30:
		signal = "oversold"
	}
	return &models.RSIResult{Value: value, Signal: signal}, nil
}

func trueRange(high, low, prevClose float64) float64 {
	tr := high - low
	if v := math.Abs(high - prevClose); v > tr {
		tr = v
	}
	if v := math.Abs(low - prevClose); v > tr {
		tr = v
	}
	return tr
}

// AllIndicators is the selector meaning "compute everything".
var AllIndicators = []string{"macd", "bollinger", "stochastic", "williams_r", "adx", "atr", "rsi"}

// TechnicalReport computes the requested indicators over one series. Failures
// are partial: indicators that cannot be computed land in Errors while the
// rest of the report is filled in.
func TechnicalReport(bars models.PriceSeries, indicators []string) *models.TechnicalReport {
	if len(indicators) == 0 {
		indicators = AllIndicators
	}
	highs, lows, closes := bars.Highs(), bars.Lows(), bars.Closes()

	report := &models.TechnicalReport{Errors: map[string]string{}}
	if last, ok := bars.Last(); ok {
		report.Price = last.Close
	}
	for _, name := range indicators {
		var err error
		switch name {
		case "macd":
			report.MACD, err = MACD(closes)
		case "bollinger":
			report.Bollinger, err = Bollinger(closes)
		case "stochastic", "stoch":
			report.Stochastic, err = Stochastic(highs, lows, closes)
		case "williams_r":
			report.WilliamsR, err = WilliamsR(highs, lows, closes)
		case "adx":
			report.ADX, err = ADX(highs, lows, closes)
		case "atr":
			report.ATR, err = ATR(highs, lows, closes)
		case "rsi":
			report.RSI, err = RSI(closes)
		default:
			err = fmt.Errorf("unknown indicator %q", name)
		}
		if err != nil {
			report.Errors[name] = err.Error()
		}
	}
	if len(report.Errors) == 0 {
		report.Errors = nil
	}
	return report
}
