package usecase

import (
	"context"
	"strings"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/domain/repository"
	"StockPulse/internal/services/analytics"
	"StockPulse/pkg/logger"
)

// AnalyticsService runs the pure technical engines over provider history.
type AnalyticsService struct {
	md  repository.MarketDataProvider
	log *logger.Logger
}

func NewAnalyticsService(md repository.MarketDataProvider, log *logger.Logger) *AnalyticsService {
	return &AnalyticsService{md: md, log: log}
}

// Technical computes the selected indicators over a year of daily bars.
// An empty selector means all indicators.
func (s *AnalyticsService) Technical(ctx context.Context, ticker, indicators string) (*models.TechnicalReport, error) {
	bars, err := s.md.History(ctx, ticker, repository.YearDaily)
	if err != nil {
		return nil, err
	}
	report := analytics.TechnicalReport(bars, parseIndicators(indicators))
	report.Ticker = ticker
	return report, nil
}

// Levels detects support/resistance and the Fibonacci grid.
func (s *AnalyticsService) Levels(ctx context.Context, ticker string) (*models.LevelReport, error) {
	bars, err := s.md.History(ctx, ticker, repository.YearDaily)
	if err != nil {
		return nil, err
	}
	support, resistance, err := analytics.SupportResistance(bars)
	if err != nil {
		return nil, err
	}
	fib, err := analytics.Fibonacci(bars)
	if err != nil {
		return nil, err
	}
	last, _ := bars.Last()
	return &models.LevelReport{
		Ticker:     ticker,
		Price:      last.Close,
		Support:    support,
		Resistance: resistance,
		Fibonacci:  *fib,
	}, nil
}

// Pivots computes the requested pivot grid from the latest completed bar.
func (s *AnalyticsService) Pivots(ctx context.Context, ticker, method string) (*models.PivotReport, error) {
	bars, err := s.md.History(ctx, ticker, repository.YearDaily)
	if err != nil {
		return nil, err
	}
	pivots, err := analytics.PivotPoints(bars, strings.ToLower(method))
	if err != nil {
		return nil, err
	}
	last, _ := bars.Last()
	return &models.PivotReport{
		Ticker: ticker,
		Price:  last.Close,
		Pivots: *pivots,
	}, nil
}

// PositionSize runs the three sizing models over a year of daily bars.
func (s *AnalyticsService) PositionSize(ctx context.Context, ticker string, in analytics.SizingInputs) (*models.PositionPlan, error) {
	bars, err := s.md.History(ctx, ticker, repository.YearDaily)
	if err != nil {
		return nil, err
	}
	return analytics.PositionPlan(ticker, bars, in)
}

func parseIndicators(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.ToLower(strings.TrimSpace(p)); name != "" {
			out = append(out, name)
		}
	}
	return out
}
