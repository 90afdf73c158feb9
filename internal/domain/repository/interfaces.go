package repository

import (
	"context"
	"errors"

	"StockPulse/internal/domain/models"
)

// ErrNotFound marks a symbol the upstream does not know about, as opposed to
// a transient fetch failure.
var ErrNotFound = errors.New("symbol not found")

// MarketDataProvider is the pull-based market data contract.
type MarketDataProvider interface {
	// Quote returns the fast-path quote for one symbol.
	Quote(ctx context.Context, symbol string) (*models.Quote, error)
	// Profile returns the slow-path company record (sector, beta, long name).
	Profile(ctx context.Context, symbol string) (*models.TickerProfile, error)
	// Fundamentals returns the full optional-field fundamentals record.
	Fundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error)
	// History returns daily (or intraday, per timeframe) bars, oldest first.
	History(ctx context.Context, symbol string, tf Timeframe) (models.PriceSeries, error)
	// MarketStatus reports the exchange clock state.
	MarketStatus(ctx context.Context) (*models.MarketStatus, error)
	// Indices returns headline index quotes.
	Indices(ctx context.Context) ([]models.IndexQuote, error)
	// Search resolves a free-text query to tradable symbols.
	Search(ctx context.Context, query string) ([]models.SearchMatch, error)
}

// NewsProvider fetches recent headlines for a symbol.
type NewsProvider interface {
	Headlines(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error)
}
