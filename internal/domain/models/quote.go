package models

// Quote is the fast-path quote shape served by /quote and /batch-quotes.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percentChange"`
	DayHigh       float64 `json:"dayHigh"`
	DayLow        float64 `json:"dayLow"`
	YearHigh      float64 `json:"yearHigh"`
	YearLow       float64 `json:"yearLow"`
	MarketCap     float64 `json:"marketCap"`
	Sector        string  `json:"sector"`
	Beta          float64 `json:"beta"`
	Currency      string  `json:"currency"`
}

// TickerProfile carries the slow-path company fields used by batch analytics.
type TickerProfile struct {
	Symbol    string  `json:"symbol"`
	LongName  string  `json:"longName"`
	Sector    string  `json:"sector"`
	Industry  string  `json:"industry"`
	Beta      float64 `json:"beta"`
	MarketCap float64 `json:"marketCap"`
}

// BatchQuoteEntry is one row of a batch response; exactly one of Quote or
// Error is set.
type BatchQuoteEntry struct {
	Ticker string `json:"ticker"`
	Quote  *Quote `json:"quote,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BatchProfileEntry is one row of /batch-analytics.
type BatchProfileEntry struct {
	Ticker  string         `json:"ticker"`
	Profile *TickerProfile `json:"profile,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// SearchMatch is a resolved symbol from the suffix-probing search.
type SearchMatch struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
}

// MarketStatus reports whether the exchange clock is inside trading hours.
type MarketStatus struct {
	IsOpen  bool   `json:"isOpen"`
	Message string `json:"message"`
}

// IndexQuote is a headline index row for /indices.
type IndexQuote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percentChange"`
}
