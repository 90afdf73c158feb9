package models

// MACDResult holds the 12/26/9 moving average convergence divergence reading.
type MACDResult struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
	Trend     string  `json:"trend"`
}

// BollingerResult holds the 20-period, 2-sigma band reading.
type BollingerResult struct {
	Upper           float64 `json:"upper"`
	Middle          float64 `json:"middle"`
	Lower           float64 `json:"lower"`
	Position        string  `json:"position"`
	Bandwidth       float64 `json:"bandwidth"`
	PercentPosition float64 `json:"percent_position"`
}

// StochasticResult holds the 14/3 stochastic oscillator reading.
type StochasticResult struct {
	K         float64 `json:"k"`
	D         float64 `json:"d"`
	Signal    string  `json:"signal"`
	Crossover string  `json:"crossover"`
}

// WilliamsRResult holds the 14-period Williams %R reading.
type WilliamsRResult struct {
	Value  float64 `json:"value"`
	Signal string  `json:"signal"`
}

// ADXResult holds the 14-period average directional index reading.
type ADXResult struct {
	ADX      float64 `json:"adx"`
	PlusDI   float64 `json:"plus_di"`
	MinusDI  float64 `json:"minus_di"`
	Strength string  `json:"strength"`
}

// ATRResult holds the 14-period average true range reading.
type ATRResult struct {
	Value      float64 `json:"value"`
	Percent    float64 `json:"percent"`
	Volatility string  `json:"volatility"`
}

// RSIResult holds the 14-period relative strength index reading.
type RSIResult struct {
	Value  float64 `json:"value"`
	Signal string  `json:"signal"`
}

// TechnicalReport is the per-ticker indicator bundle. Indicators that could
// not be computed land in Errors keyed by indicator name; the rest of the
// report is still served.
type TechnicalReport struct {
	Ticker     string            `json:"ticker"`
	Price      float64           `json:"price"`
	MACD       *MACDResult       `json:"macd,omitempty"`
	Bollinger  *BollingerResult  `json:"bollinger,omitempty"`
	Stochastic *StochasticResult `json:"stochastic,omitempty"`
	WilliamsR  *WilliamsRResult  `json:"williams_r,omitempty"`
	ADX        *ADXResult        `json:"adx,omitempty"`
	ATR        *ATRResult        `json:"atr,omitempty"`
	RSI        *RSIResult        `json:"rsi,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
}
