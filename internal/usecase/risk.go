package usecase

import (
	"context"
	"fmt"
	"sync"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/domain/repository"
	"StockPulse/internal/services/analytics"
	"StockPulse/internal/services/series"
	"StockPulse/pkg/logger"
)

// RiskService computes per-asset and portfolio risk over provider history.
type RiskService struct {
	md        repository.MarketDataProvider
	log       *logger.Logger
	benchmark string
	workers   int
}

func NewRiskService(md repository.MarketDataProvider, log *logger.Logger, benchmark string, workers int) *RiskService {
	if workers <= 0 {
		workers = 1
	}
	return &RiskService{md: md, log: log, benchmark: benchmark, workers: workers}
}

// RiskAnalysis fetches the benchmark once, fans out per ticker and
// aggregates the successful profiles. A failed ticker is tagged with its
// error; the batch always completes.
func (s *RiskService) RiskAnalysis(ctx context.Context, tickers []string) (*models.RiskReport, error) {
	benchmark, err := s.md.History(ctx, s.benchmark, repository.YearDaily)
	if err != nil {
		// Risk still computes without a benchmark; beta falls back to 1.0.
		s.log.Warn("benchmark history unavailable",
			logger.String("benchmark", s.benchmark),
			logger.Error(err),
		)
		benchmark = nil
	}

	entries := make([]models.RiskEntry, len(tickers))
	returns := make([][]series.DatedReturn, len(tickers))
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup
	for i, ticker := range tickers {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, ticker string) {
			defer wg.Done()
			defer func() { <-sem }()

			entries[i].Ticker = ticker
			bars, err := s.md.History(ctx, ticker, repository.YearDaily)
			if err != nil {
				entries[i].Error = err.Error()
				return
			}
			profile, err := analytics.RiskProfile(bars, benchmark)
			if err != nil {
				entries[i].Error = err.Error()
				return
			}
			profile.Ticker = ticker
			entries[i].Profile = profile
			returns[i] = series.DatedReturns(bars)
		}(i, ticker)
	}
	wg.Wait()

	report := &models.RiskReport{Assets: entries}
	report.Portfolio = aggregatePortfolio(entries)
	report.Portfolio.Correlation = portfolioCorrelation(entries, returns)
	return report, nil
}

// portfolioCorrelation computes the pairwise matrix over the tickers whose
// profiles computed, in request order.
func portfolioCorrelation(entries []models.RiskEntry, returns [][]series.DatedReturn) *models.CorrelationMatrix {
	var okTickers []string
	var okReturns [][]series.DatedReturn
	for i, e := range entries {
		if e.Profile == nil {
			continue
		}
		okTickers = append(okTickers, e.Ticker)
		okReturns = append(okReturns, returns[i])
	}
	if len(okTickers) == 0 {
		return nil
	}
	return &models.CorrelationMatrix{
		Tickers: okTickers,
		Matrix:  analytics.CorrelationMatrix(okReturns),
	}
}

func aggregatePortfolio(entries []models.RiskEntry) models.PortfolioRisk {
	var var95s, var99s []float64
	var volSum, betaSum float64
	for _, e := range entries {
		if e.Profile == nil {
			continue
		}
		var95s = append(var95s, e.Profile.VaR95)
		var99s = append(var99s, e.Profile.VaR99)
		volSum += e.Profile.Volatility
		betaSum += e.Profile.Beta
	}
	out := models.PortfolioRisk{Method: analytics.PortfolioVaRMethod}
	if n := len(var95s); n > 0 {
		out.VaR95 = analytics.PortfolioVaR(var95s)
		out.VaR99 = analytics.PortfolioVaR(var99s)
		out.AvgVolatility = volSum / float64(n)
		out.AvgBeta = betaSum / float64(n)
	}
	return out
}

// CorrelationMatrix computes pairwise correlation over a year of daily
// returns for the requested tickers, in request order.
func (s *RiskService) CorrelationMatrix(ctx context.Context, tickers []string) (*models.CorrelationMatrix, error) {
	returns := make([][]series.DatedReturn, len(tickers))
	errs := make([]error, len(tickers))

	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup
	for i, ticker := range tickers {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, ticker string) {
			defer wg.Done()
			defer func() { <-sem }()
			bars, err := s.md.History(ctx, ticker, repository.YearDaily)
			if err != nil {
				errs[i] = err
				return
			}
			returns[i] = series.DatedReturns(bars)
		}(i, ticker)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("history %s: %w", tickers[i], err)
		}
	}
	return &models.CorrelationMatrix{
		Tickers: tickers,
		Matrix:  analytics.CorrelationMatrix(returns),
	}, nil
}
