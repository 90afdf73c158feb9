package analytics

import (
	"fmt"

	"StockPulse/internal/domain/models"
)

// PivotPoints computes one method's pivot grid from the latest completed bar.
// Unknown method names fall back to classic.
func PivotPoints(bars models.PriceSeries, method string) (*models.PivotPoints, error) {
	last, ok := bars.Last()
	if !ok {
		return nil, fmt.Errorf("pivot points need at least one bar: %w", ErrInsufficientData)
	}
	h, l, c := last.High, last.Low, last.Close

	switch method {
	case "woodie":
		p := (h + l + 2*c) / 4
		return &models.PivotPoints{
			Method:   "woodie",
			Pivot:    p,
			Position: pivotPosition(c, p),
			R: map[string]float64{
				"r1": 2*p - l,
				"r2": p + (h - l),
				"r3": h + 2*(p-l),
			},
			S: map[string]float64{
				"s1": 2*p - h,
				"s2": p - (h - l),
				"s3": l - 2*(h-p),
			},
		}, nil
	case "camarilla":
		rng := h - l
		p := (h + l + c) / 3
		return &models.PivotPoints{
			Method:   "camarilla",
			Pivot:    p,
			Position: pivotPosition(c, p),
			R: map[string]float64{
				"r1": c + rng*1.1/12,
				"r2": c + rng*1.1/6,
				"r3": c + rng*1.1/4,
				"r4": c + rng*1.1/2,
			},
			S: map[string]float64{
				"s1": c - rng*1.1/12,
				"s2": c - rng*1.1/6,
				"s3": c - rng*1.1/4,
				"s4": c - rng*1.1/2,
			},
		}, nil
	default:
		p := (h + l + c) / 3
		return &models.PivotPoints{
			Method:   "classic",
			Pivot:    p,
			Position: pivotPosition(c, p),
			R: map[string]float64{
				"r1": 2*p - l,
				"r2": p + (h - l),
				"r3": h + 2*(p-l),
			},
			S: map[string]float64{
				"s1": 2*p - h,
				"s2": p - (h - l),
				"s3": l - 2*(h-p),
			},
		}, nil
	}
}

func pivotPosition(price, pivot float64) string {
	if price > pivot {
		return "above_pivot"
	}
	return "below_pivot"
}
