// Package analytics implements the pure computation engines: technical
// indicators, support/resistance levels, pivots, risk metrics, valuation
// models, headline sentiment and position sizing. Engines are deterministic,
// never call out and never panic; everything they need arrives as arguments.
package analytics

import "errors"

var (
	// ErrInsufficientData means the price history is shorter than the
	// computation's minimum window.
	ErrInsufficientData = errors.New("insufficient price history")

	// ErrInsufficientFundamentals means a required fundamentals field was
	// missing upstream.
	ErrInsufficientFundamentals = errors.New("insufficient fundamentals data")

	// ErrInvalidAssumptions means caller-supplied model inputs are outside
	// the model's domain (e.g. discount rate at or below terminal growth).
	ErrInvalidAssumptions = errors.New("invalid model assumptions")
)
