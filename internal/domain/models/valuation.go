package models

// ModelResult is one valuation model's output. Error is set when the model's
// inputs were missing or invalid; FairValue is only meaningful when Error is
// empty.
type ModelResult struct {
	FairValue float64 `json:"fair_value,omitempty"`
	Upside    float64 `json:"upside_pct,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// ScoreCheck is one scorecard criterion with the points it contributed.
type ScoreCheck struct {
	Name   string  `json:"name"`
	Passed bool    `json:"passed"`
	Points int     `json:"points"`
	Value  float64 `json:"value"`
}

// Scorecard is the 0..100 fundamentals quality score.
type Scorecard struct {
	Score  int          `json:"score"`
	Checks []ScoreCheck `json:"checks"`
}

// ValuationSummary averages the models that produced a value and turns the
// blended upside into a tiered recommendation.
type ValuationSummary struct {
	AverageFairValue float64 `json:"average_fair_value"`
	AverageUpside    float64 `json:"average_upside_pct"`
	ModelsUsed       int     `json:"models_used"`
	Recommendation   string  `json:"recommendation"`
}

// ValuationReport is the /valuation-models payload.
type ValuationReport struct {
	Ticker       string           `json:"ticker"`
	CurrentPrice float64          `json:"current_price"`
	DCF          ModelResult      `json:"dcf"`
	Graham       ModelResult      `json:"graham"`
	Lynch        ModelResult      `json:"lynch"`
	Quality      Scorecard        `json:"quality"`
	Summary      ValuationSummary `json:"summary"`
}
