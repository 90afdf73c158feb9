package series

import (
	"math"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
)

func TestReturns(t *testing.T) {
	got := Returns([]float64{100, 110, 99})
	if len(got) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(got))
	}
	if math.Abs(got[0]-0.10) > 1e-12 {
		t.Errorf("first return = %v, want 0.10", got[0])
	}
	if math.Abs(got[1]-(-0.10)) > 1e-12 {
		t.Errorf("second return = %v, want -0.10", got[1])
	}
}

func TestReturnsSkipsZeroClose(t *testing.T) {
	got := Returns([]float64{100, 0, 50})
	if len(got) != 1 {
		t.Fatalf("expected the zero-denominator return to be dropped, got %v", got)
	}
}

func TestRollingWindows(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}

	if m, ok := RollingMean(xs, 3); !ok || math.Abs(m-4) > 1e-12 {
		t.Errorf("RollingMean = %v ok=%v, want 4 true", m, ok)
	}
	if _, ok := RollingMean(xs, 6); ok {
		t.Error("RollingMean should fail when window exceeds data")
	}
	if max, ok := RollingMax(xs, 4); !ok || max != 5 {
		t.Errorf("RollingMax = %v ok=%v, want 5 true", max, ok)
	}
	if min, ok := RollingMin(xs, 4); !ok || min != 2 {
		t.Errorf("RollingMin = %v ok=%v, want 2 true", min, ok)
	}
}

func TestEMASeedAndSmoothing(t *testing.T) {
	out := EMA([]float64{10, 10, 10}, 5)
	for i, v := range out {
		if math.Abs(v-10) > 1e-12 {
			t.Errorf("EMA of constant series index %d = %v, want 10", i, v)
		}
	}
}

func TestSMASeriesAlignment(t *testing.T) {
	out := SMASeries([]float64{1, 2, 3, 4}, 2)
	if !math.IsNaN(out[0]) {
		t.Error("index before full window should be NaN")
	}
	if math.Abs(out[1]-1.5) > 1e-12 || math.Abs(out[3]-3.5) > 1e-12 {
		t.Errorf("SMASeries = %v", out)
	}
}

func TestAlignIntersectsOnDate(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	a := []DatedReturn{{day(1), 0.01}, {day(2), 0.02}, {day(3), 0.03}}
	b := []DatedReturn{{day(2), -0.02}, {day(3), -0.03}, {day(4), -0.04}}

	x, y := Align(a, b)
	if len(x) != 2 || len(y) != 2 {
		t.Fatalf("aligned %d/%d points, want 2/2", len(x), len(y))
	}
	if x[0] != 0.02 || y[0] != -0.02 {
		t.Errorf("first aligned pair = (%v, %v)", x[0], y[0])
	}
}

func TestDatedReturnsUsesLaterBarDate(t *testing.T) {
	d1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	bars := models.PriceSeries{
		{Date: d1, Close: 100},
		{Date: d2, Close: 105},
	}
	got := DatedReturns(bars)
	if len(got) != 1 {
		t.Fatalf("expected 1 return, got %d", len(got))
	}
	if !got[0].Date.Equal(d2) {
		t.Errorf("return dated %v, want %v", got[0].Date, d2)
	}
}
