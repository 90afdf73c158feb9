package usecase

import (
	"context"
	"sync"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/domain/repository"
	"StockPulse/internal/services/analytics"
	"StockPulse/internal/services/series"
	"StockPulse/pkg/logger"
)

// QuoteService orchestrates quote, search, history and overview analysis
// flows on top of the market data provider.
type QuoteService struct {
	md      repository.MarketDataProvider
	log     *logger.Logger
	workers int
}

func NewQuoteService(md repository.MarketDataProvider, log *logger.Logger, workers int) *QuoteService {
	if workers <= 0 {
		workers = 1
	}
	return &QuoteService{md: md, log: log, workers: workers}
}

// Quote merges the fast quote with the slow company profile. A failing
// profile degrades to the documented fallbacks instead of failing the quote.
func (s *QuoteService) Quote(ctx context.Context, ticker string) (*models.Quote, error) {
	q, err := s.md.Quote(ctx, ticker)
	if err != nil {
		return nil, err
	}
	q.Sector = "Unknown"
	q.Beta = 1.0
	if profile, err := s.md.Profile(ctx, ticker); err == nil {
		q.Sector = profile.Sector
		q.Beta = profile.Beta
		if profile.LongName != "" && profile.LongName != ticker {
			q.Name = profile.LongName
		}
	} else {
		s.log.Warn("profile fetch failed, using fallbacks",
			logger.String("ticker", ticker),
			logger.Error(err),
		)
	}
	return q, nil
}

// BatchQuotes fans out per ticker with bounded concurrency. One ticker's
// failure becomes its error entry, never aborting the batch.
func (s *QuoteService) BatchQuotes(ctx context.Context, tickers []string) []models.BatchQuoteEntry {
	entries := make([]models.BatchQuoteEntry, len(tickers))
	s.forEach(ctx, tickers, func(ctx context.Context, i int, ticker string) {
		entries[i].Ticker = ticker
		q, err := s.md.Quote(ctx, ticker)
		if err != nil {
			entries[i].Error = "Failed to fetch"
			s.log.Warn("batch quote failed",
				logger.String("ticker", ticker),
				logger.Error(err),
			)
			return
		}
		entries[i].Quote = q
	})
	return entries
}

// BatchProfiles fetches the slow analytics fields per ticker.
func (s *QuoteService) BatchProfiles(ctx context.Context, tickers []string) []models.BatchProfileEntry {
	entries := make([]models.BatchProfileEntry, len(tickers))
	s.forEach(ctx, tickers, func(ctx context.Context, i int, ticker string) {
		entries[i].Ticker = ticker
		profile, err := s.md.Profile(ctx, ticker)
		if err != nil {
			entries[i].Error = "Failed to fetch"
			return
		}
		entries[i].Profile = profile
	})
	return entries
}

// Search delegates to the provider's suffix probing.
func (s *QuoteService) Search(ctx context.Context, query string) ([]models.SearchMatch, error) {
	return s.md.Search(ctx, query)
}

// MarketStatus reports the exchange clock.
func (s *QuoteService) MarketStatus(ctx context.Context) (*models.MarketStatus, error) {
	return s.md.MarketStatus(ctx)
}

// Indices returns the headline index quotes.
func (s *QuoteService) Indices(ctx context.Context) ([]models.IndexQuote, error) {
	return s.md.Indices(ctx)
}

// History returns date-labeled closes for the timeframe. Intraday
// timeframes label bars with time of day, daily ones with the date.
func (s *QuoteService) History(ctx context.Context, ticker, timeframe string) ([]models.HistoryPoint, error) {
	tf := repository.NormalizeTimeframe(timeframe)
	bars, err := s.md.History(ctx, ticker, tf)
	if err != nil {
		return nil, err
	}

	layout := "2006-01-02"
	if tf.Intraday() {
		layout = "Jan 02 15:04"
	}
	points := make([]models.HistoryPoint, 0, len(bars))
	for _, b := range bars {
		points = append(points, models.HistoryPoint{
			Date:  b.Date.Format(layout),
			Price: b.Close,
		})
	}
	return points, nil
}

// Analysis assembles the fundamentals overview and the moving-average /
// RSI / 52-week technical overview over a year of daily bars.
func (s *QuoteService) Analysis(ctx context.Context, ticker string) (*models.Analysis, error) {
	f, err := s.md.Fundamentals(ctx, ticker)
	if err != nil {
		return nil, err
	}

	name := f.LongName
	if name == "" {
		name = ticker
	}
	out := &models.Analysis{
		Ticker: ticker,
		Name:   name,
		Price:  models.Value(f.Price),
		Fundamentals: models.FundamentalsOverview{
			PERatio:       firstPresent(f.ForwardPE, f.TrailingPE),
			DividendYield: scaled(f.DividendYield, 100),
			ROE:           scaled(f.ReturnOnEquity, 100),
			DebtToEquity:  f.DebtToEquity,
			PriceToBook:   f.PriceToBook,
			EPS:           f.TrailingEPS,
		},
	}

	bars, err := s.md.History(ctx, ticker, repository.YearDaily)
	if err != nil {
		s.log.Warn("analysis history unavailable",
			logger.String("ticker", ticker),
			logger.Error(err),
		)
		return out, nil
	}
	closes := bars.Closes()
	price := closes[len(closes)-1]
	out.Price = price

	tech := models.TechnicalOverview{}
	if rsi, err := analytics.RSI(closes); err == nil {
		tech.RSI14 = &rsi.Value
	}
	if sma, ok := series.RollingMean(closes, 50); ok && sma != 0 {
		pct := (price - sma) / sma * 100
		tech.SMA50 = &sma
		tech.PriceVsSMA50 = &pct
	}
	if sma, ok := series.RollingMean(closes, 200); ok && sma != 0 {
		pct := (price - sma) / sma * 100
		tech.SMA200 = &sma
		tech.PriceVsSMA200 = &pct
	}
	if high, ok := series.RollingMax(bars.Highs(), len(bars)); ok {
		tech.YearHigh = high
	}
	if low, ok := series.RollingMin(bars.Lows(), len(bars)); ok {
		tech.YearLow = low
	}
	out.Technicals = tech
	return out, nil
}

// forEach runs fn for every ticker with at most s.workers in flight.
func (s *QuoteService) forEach(ctx context.Context, tickers []string, fn func(ctx context.Context, i int, ticker string)) {
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup
	for i, ticker := range tickers {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, ticker string) {
			defer wg.Done()
			defer func() { <-sem }()
			fn(ctx, i, ticker)
		}(i, ticker)
	}
	wg.Wait()
}

func firstPresent(ps ...*float64) *float64 {
	for _, p := range ps {
		if p != nil {
			return p
		}
	}
	return nil
}

func scaled(p *float64, factor float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p * factor
	return &v
}
