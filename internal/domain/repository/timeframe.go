package repository

import "strings"

// Timeframe maps a user-facing history window to the upstream period and
// bar interval.
type Timeframe struct {
	Name     string
	Period   string
	Interval string
}

var timeframes = map[string]Timeframe{
	"1D": {Name: "1D", Period: "1d", Interval: "5m"},
	"1W": {Name: "1W", Period: "5d", Interval: "15m"},
	"1M": {Name: "1M", Period: "1mo", Interval: "1d"},
	"1Y": {Name: "1Y", Period: "1y", Interval: "1d"},
	"5Y": {Name: "5Y", Period: "5y", Interval: "1wk"},
}

// DefaultTimeframe is used when the requested name is unknown.
var DefaultTimeframe = timeframes["1M"]

// NormalizeTimeframe resolves a timeframe name case-insensitively, falling
// back to 1M.
func NormalizeTimeframe(name string) Timeframe {
	if tf, ok := timeframes[strings.ToUpper(name)]; ok {
		return tf
	}
	return DefaultTimeframe
}

// Intraday reports whether the timeframe uses intraday bars, which changes
// how chart dates are labeled.
func (t Timeframe) Intraday() bool {
	return t.Name == "1D" || t.Name == "1W"
}

// YearDaily is the timeframe the analytics endpoints compute over.
var YearDaily = Timeframe{Name: "1Y", Period: "1y", Interval: "1d"}
