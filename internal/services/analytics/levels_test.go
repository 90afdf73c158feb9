package analytics

import (
	"errors"
	"math"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
)

func peakSeries(n, peakAt int, peak, step float64) models.PriceSeries {
	bars := make(models.PriceSeries, n)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		high := peak - math.Abs(float64(i-peakAt))*step
		bars[i] = models.PriceBar{
			Date:  base.AddDate(0, 0, i),
			High:  high,
			Low:   high - 1,
			Close: high - 0.5,
		}
	}
	return bars
}

func TestSupportResistanceFindsPeak(t *testing.T) {
	bars := peakSeries(61, 30, 100, 0.5)
	support, resistance, err := SupportResistance(bars)
	if err != nil {
		t.Fatalf("SupportResistance: %v", err)
	}
	if len(resistance) != 1 {
		t.Fatalf("resistance levels = %d, want 1 (%v)", len(resistance), resistance)
	}
	r := resistance[0]
	if r.Price != 100 {
		t.Errorf("resistance price = %v, want 100", r.Price)
	}
	// lows within 2% of 100 are bars 29..31.
	if r.Touches != 3 {
		t.Errorf("touches = %d, want 3", r.Touches)
	}
	if r.Strength != "strong" {
		t.Errorf("strength = %q, want strong", r.Strength)
	}
	if len(support) != 0 {
		t.Errorf("monotone slopes should yield no interior support, got %v", support)
	}
}

func TestSupportResistanceInsufficientData(t *testing.T) {
	_, _, err := SupportResistance(peakSeries(30, 15, 100, 0.5))
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}

func TestScoreLevelsKeepsTopThreeStable(t *testing.T) {
	// Four candidates far apart; probes give them 4, 2, 2, 3 touches.
	candidates := []float64{100, 200, 300, 400}
	probes := []float64{
		100, 100, 100, 100,
		200, 200,
		300, 300,
		400, 400, 400,
	}
	levels := scoreLevels(candidates, probes)
	if len(levels) != 3 {
		t.Fatalf("kept %d levels, want 3", len(levels))
	}
	if levels[0].Price != 100 || levels[1].Price != 400 {
		t.Errorf("order by touches = %v", levels)
	}
	// 200 and 300 tie at 2 touches; stable sort keeps scan order.
	if levels[2].Price != 200 {
		t.Errorf("tie should keep scan order, third = %v", levels[2])
	}
}

func TestFibonacciGrid(t *testing.T) {
	bars := models.PriceSeries{
		{High: 110, Low: 90, Close: 95},
		{High: 105, Low: 92, Close: 100},
	}
	fib, err := Fibonacci(bars)
	if err != nil {
		t.Fatalf("Fibonacci: %v", err)
	}
	if fib.High != 110 || fib.Low != 90 {
		t.Fatalf("window extremes = [%v, %v], want [110, 90]", fib.Low, fib.High)
	}
	if len(fib.Levels) != 7 {
		t.Fatalf("levels = %d, want 7 (anchors included)", len(fib.Levels))
	}
	if fib.ClosestRatio != 0.5 {
		t.Errorf("closest ratio to close 100 = %v, want 0.5", fib.ClosestRatio)
	}
	if math.Abs(fib.RetracementFromHigh-50) > 1e-9 {
		t.Errorf("retracement = %v, want 50", fib.RetracementFromHigh)
	}
}

func TestPivotPointsClassic(t *testing.T) {
	bars := models.PriceSeries{{High: 110, Low: 90, Close: 100}}
	p, err := PivotPoints(bars, "classic")
	if err != nil {
		t.Fatalf("PivotPoints: %v", err)
	}
	if p.Pivot != 100 {
		t.Errorf("pivot = %v, want 100", p.Pivot)
	}
	if p.R["r1"] != 110 || p.S["s1"] != 90 {
		t.Errorf("r1/s1 = %v/%v, want 110/90", p.R["r1"], p.S["s1"])
	}
	if p.R["r2"] != 120 || p.S["s2"] != 80 {
		t.Errorf("r2/s2 = %v/%v, want 120/80", p.R["r2"], p.S["s2"])
	}
	if p.Position != "below_pivot" {
		t.Errorf("position = %q, want below_pivot (close == pivot)", p.Position)
	}
}

func TestPivotPointsCamarillaHasFourthTier(t *testing.T) {
	bars := models.PriceSeries{{High: 110, Low: 90, Close: 100}}
	p, err := PivotPoints(bars, "camarilla")
	if err != nil {
		t.Fatalf("PivotPoints: %v", err)
	}
	if math.Abs(p.R["r4"]-111) > 1e-9 {
		t.Errorf("r4 = %v, want 111", p.R["r4"])
	}
	if math.Abs(p.S["s4"]-89) > 1e-9 {
		t.Errorf("s4 = %v, want 89", p.S["s4"])
	}
}

func TestPivotPointsUnknownMethodFallsBack(t *testing.T) {
	bars := models.PriceSeries{{High: 110, Low: 90, Close: 100}}
	p, err := PivotPoints(bars, "fancy")
	if err != nil {
		t.Fatalf("PivotPoints: %v", err)
	}
	if p.Method != "classic" {
		t.Errorf("method = %q, want classic fallback", p.Method)
	}
}
