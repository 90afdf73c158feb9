package models

// Level is a detected support or resistance price with its touch evidence.
type Level struct {
	Price    float64 `json:"price"`
	Touches  int     `json:"touches"`
	Strength string  `json:"strength"`
}

// FibLevel is one retracement line.
type FibLevel struct {
	Ratio float64 `json:"ratio"`
	Price float64 `json:"price"`
}

// FibonacciLevels is the retracement grid over the trailing window.
type FibonacciLevels struct {
	High                float64    `json:"high"`
	Low                 float64    `json:"low"`
	Levels              []FibLevel `json:"levels"`
	ClosestRatio        float64    `json:"closest_ratio"`
	ClosestPrice        float64    `json:"closest_price"`
	RetracementFromHigh float64    `json:"retracement_from_high"`
	ExtensionFromLow    float64    `json:"extension_from_low"`
}

// LevelReport is the /support-resistance payload.
type LevelReport struct {
	Ticker     string          `json:"ticker"`
	Price      float64         `json:"price"`
	Support    []Level         `json:"support"`
	Resistance []Level         `json:"resistance"`
	Fibonacci  FibonacciLevels `json:"fibonacci"`
}

// PivotPoints is one method's pivot grid from the latest completed bar.
type PivotPoints struct {
	Method   string             `json:"method"`
	Pivot    float64            `json:"pivot"`
	Position string             `json:"position"`
	R        map[string]float64 `json:"resistance"`
	S        map[string]float64 `json:"support"`
}

// PivotReport is the /pivot-points payload.
type PivotReport struct {
	Ticker string      `json:"ticker"`
	Price  float64     `json:"price"`
	Pivots PivotPoints `json:"pivots"`
}
