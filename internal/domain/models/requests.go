package models

// TickerRequest covers the single-ticker path endpoints.
type TickerRequest struct {
	Ticker string `param:"ticker" validate:"required,min=1,max=20"`
}

// SearchRequest is the /search/:query contract.
type SearchRequest struct {
	Query string `param:"query" validate:"required,min=1,max=20"`
}

// BatchTickersRequest covers /batch-quotes, /batch-analytics, /risk-analysis
// and /portfolio-news.
type BatchTickersRequest struct {
	Tickers []string `json:"tickers" validate:"required,min=1,max=50,dive,min=1,max=20"`
}

// TechnicalRequest selects indicators for /technical/:ticker. An empty list
// means all of them.
type TechnicalRequest struct {
	Ticker     string `param:"ticker" validate:"required,min=1,max=20"`
	Indicators string `query:"indicators"`
}

// PivotRequest selects the pivot method; unknown names fall back to classic.
type PivotRequest struct {
	Ticker string `param:"ticker" validate:"required,min=1,max=20"`
	Method string `query:"method" default:"classic"`
}

// CorrelationRequest is the /correlation-matrix contract.
type CorrelationRequest struct {
	Tickers string `query:"tickers" validate:"required"`
}

// PositionSizeRequest is the /position-size/:ticker contract.
type PositionSizeRequest struct {
	Ticker       string  `param:"ticker" validate:"required,min=1,max=20"`
	AccountSize  float64 `query:"account_size" default:"100000" validate:"gt=0"`
	RiskPerTrade float64 `query:"risk_per_trade" default:"2" validate:"gt=0,lte=100"`
	StopLossPct  float64 `query:"stop_loss_pct" default:"5" validate:"gt=0,lte=100"`
}

// ValuationRequest is the /valuation-models/:ticker contract. Rates are
// fractions, not percentages.
type ValuationRequest struct {
	Ticker       string  `param:"ticker" validate:"required,min=1,max=20"`
	GrowthRate   float64 `query:"growth_rate" default:"0.05" validate:"gte=-1,lte=1"`
	DiscountRate float64 `query:"discount_rate" default:"0.1" validate:"gt=0,lte=1"`
}

// HistoryRequest is the /history/:ticker contract.
type HistoryRequest struct {
	Ticker    string `param:"ticker" validate:"required,min=1,max=20"`
	Timeframe string `query:"timeframe" default:"1M"`
}
