package models

// Fundamentals is the provider-side fundamentals record. Fields are pointers
// because upstream routinely omits them; readers go through Value/Has so a
// missing field never masquerades as a real zero.
type Fundamentals struct {
	Symbol   string
	LongName string
	Sector   string
	Industry string
	Currency string

	Price             *float64
	MarketCap         *float64
	Beta              *float64
	TrailingPE        *float64
	ForwardPE         *float64
	PriceToBook       *float64
	PriceToSales      *float64
	PEGRatio          *float64
	TrailingEPS       *float64
	BookValue         *float64
	DividendYield     *float64
	ReturnOnEquity    *float64
	ReturnOnAssets    *float64
	DebtToEquity      *float64
	CurrentRatio      *float64
	QuickRatio        *float64
	GrossMargin       *float64
	OperatingMargin   *float64
	NetMargin         *float64
	RevenueGrowth     *float64
	EarningsGrowth    *float64
	FreeCashFlow      *float64
	OperatingCashFlow *float64
	TotalDebt         *float64
	TotalCash         *float64
	SharesOutstanding *float64
	FiftyTwoWeekHigh  *float64
	FiftyTwoWeekLow   *float64
}

// Value dereferences an optional field, treating absence as zero.
func Value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Has reports whether an optional field was present upstream.
func Has(p *float64) bool {
	return p != nil
}

// ValueOr dereferences an optional field with an explicit fallback.
func ValueOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

// FundamentalsOverview is the ratio block of /analysis.
type FundamentalsOverview struct {
	PERatio       *float64 `json:"pe_ratio"`
	DividendYield *float64 `json:"dividend_yield"`
	ROE           *float64 `json:"roe"`
	DebtToEquity  *float64 `json:"debt_to_equity"`
	PriceToBook   *float64 `json:"price_to_book"`
	EPS           *float64 `json:"eps"`
}

// TechnicalOverview is the indicator block of /analysis.
type TechnicalOverview struct {
	RSI14         *float64 `json:"rsi_14"`
	SMA50         *float64 `json:"sma_50"`
	SMA200        *float64 `json:"sma_200"`
	PriceVsSMA50  *float64 `json:"price_vs_sma50_pct"`
	PriceVsSMA200 *float64 `json:"price_vs_sma200_pct"`
	YearHigh      float64  `json:"year_high"`
	YearLow       float64  `json:"year_low"`
}

// Analysis is the /analysis/:ticker payload.
type Analysis struct {
	Ticker       string               `json:"ticker"`
	Name         string               `json:"name"`
	Price        float64              `json:"price"`
	Fundamentals FundamentalsOverview `json:"fundamentals"`
	Technicals   TechnicalOverview    `json:"technicals"`
}

// AdvancedFundamentals is the /advanced-fundamentals payload: the raw record
// grouped the way the scorecard consumes it.
type AdvancedFundamentals struct {
	Ticker        string    `json:"ticker"`
	Valuation     Ratios    `json:"valuation"`
	Profitability Ratios    `json:"profitability"`
	Health        Ratios    `json:"financial_health"`
	Growth        Ratios    `json:"growth"`
	CashFlow      Ratios    `json:"cash_flow"`
	QualityScore  Scorecard `json:"quality"`
}

// Ratios is a named ratio group; values stay optional end to end.
type Ratios map[string]*float64
