package usecase

import (
	"context"
	"sync"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/domain/repository"
	"StockPulse/internal/services/analytics"
	"StockPulse/pkg/logger"
)

// NewsService fetches headlines and runs sentiment over them.
type NewsService struct {
	np             repository.NewsProvider
	scorer         *analytics.SentimentScorer
	log            *logger.Logger
	tickerLimit    int
	portfolioLimit int
	workers        int
}

func NewNewsService(np repository.NewsProvider, scorer *analytics.SentimentScorer, log *logger.Logger, tickerLimit, portfolioLimit, workers int) *NewsService {
	if workers <= 0 {
		workers = 1
	}
	return &NewsService{
		np:             np,
		scorer:         scorer,
		log:            log,
		tickerLimit:    tickerLimit,
		portfolioLimit: portfolioLimit,
		workers:        workers,
	}
}

// TickerNews fetches a single ticker's headlines and scores their titles.
func (s *NewsService) TickerNews(ctx context.Context, ticker string) (*models.TickerNews, error) {
	items, err := s.np.Headlines(ctx, ticker, s.tickerLimit)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Ticker = ticker
	}
	return &models.TickerNews{
		Ticker:    ticker,
		Items:     items,
		Sentiment: s.scorer.Score(titles(items)),
	}, nil
}

// PortfolioNews fans out per ticker with bounded concurrency, merges the
// headlines and scores the combined flow. A failed ticker lands in the
// Errors map without aborting the batch.
func (s *NewsService) PortfolioNews(ctx context.Context, tickers []string) *models.PortfolioNews {
	perTicker := make([][]models.NewsItem, len(tickers))
	errs := make([]error, len(tickers))

	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup
	for i, ticker := range tickers {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, ticker string) {
			defer wg.Done()
			defer func() { <-sem }()
			items, err := s.np.Headlines(ctx, ticker, s.portfolioLimit)
			if err != nil {
				errs[i] = err
				return
			}
			for j := range items {
				items[j].Ticker = ticker
			}
			perTicker[i] = items
		}(i, ticker)
	}
	wg.Wait()

	out := &models.PortfolioNews{}
	for i, ticker := range tickers {
		if errs[i] != nil {
			if out.Errors == nil {
				out.Errors = make(map[string]string)
			}
			out.Errors[ticker] = errs[i].Error()
			s.log.Warn("portfolio news fetch failed",
				logger.String("ticker", ticker),
				logger.Error(errs[i]),
			)
			continue
		}
		out.Items = append(out.Items, perTicker[i]...)
	}

	out.Sentiment = s.scorer.Score(titles(out.Items))
	return out
}

func titles(items []models.NewsItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	return out
}
