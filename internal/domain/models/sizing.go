package models

// SizingMethod is one position-sizing model's share count with its inputs.
type SizingMethod struct {
	Shares float64 `json:"shares"`
	Detail string  `json:"detail"`
}

// PositionPlan is the /position-size payload. Recommended is the floor of the
// most conservative method.
type PositionPlan struct {
	Ticker             string       `json:"ticker"`
	Price              float64      `json:"price"`
	AccountSize        float64      `json:"account_size"`
	RiskPerTrade       float64      `json:"risk_per_trade_pct"`
	StopLossPct        float64      `json:"stop_loss_pct"`
	FixedRisk          SizingMethod `json:"fixed_risk"`
	Kelly              SizingMethod `json:"kelly"`
	VolatilityAdjusted SizingMethod `json:"volatility_adjusted"`
	Recommended        int          `json:"recommended_shares"`
}
