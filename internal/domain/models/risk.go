package models

// RiskProfile is the per-asset block of /risk-analysis.
type RiskProfile struct {
	Ticker      string  `json:"ticker"`
	VaR95       float64 `json:"var_95"`
	VaR99       float64 `json:"var_99"`
	MaxDrawdown float64 `json:"max_drawdown"`
	Volatility  float64 `json:"volatility"`
	Beta        float64 `json:"beta"`
	Sharpe      float64 `json:"sharpe_ratio"`
}

// RiskEntry tags a profile or a per-ticker failure inside a batch.
type RiskEntry struct {
	Ticker  string       `json:"ticker"`
	Profile *RiskProfile `json:"profile,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// PortfolioRisk aggregates the per-asset profiles. VaR aggregation assumes
// independent, equally weighted assets; Method names the approximation so
// consumers do not mistake it for a correlation-aware figure. Correlation
// carries the pairwise matrix over the tickers that produced a profile.
type PortfolioRisk struct {
	VaR95         float64            `json:"var_95"`
	VaR99         float64            `json:"var_99"`
	AvgVolatility float64            `json:"avg_volatility"`
	AvgBeta       float64            `json:"avg_beta"`
	Method        string             `json:"method"`
	Correlation   *CorrelationMatrix `json:"correlation_matrix,omitempty"`
}

// RiskReport is the /risk-analysis payload.
type RiskReport struct {
	Assets    []RiskEntry   `json:"assets"`
	Portfolio PortfolioRisk `json:"portfolio"`
}

// CorrelationMatrix is the /correlation-matrix payload: symmetric with a unit
// diagonal, tickers in request order.
type CorrelationMatrix struct {
	Tickers []string    `json:"tickers"`
	Matrix  [][]float64 `json:"matrix"`
}
