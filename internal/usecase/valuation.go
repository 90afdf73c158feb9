package usecase

import (
	"context"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/domain/repository"
	"StockPulse/internal/services/analytics"
	"StockPulse/pkg/logger"
)

// ValuationService wraps the valuation models and the grouped ratio view
// around provider fundamentals.
type ValuationService struct {
	md  repository.MarketDataProvider
	log *logger.Logger
}

func NewValuationService(md repository.MarketDataProvider, log *logger.Logger) *ValuationService {
	return &ValuationService{md: md, log: log}
}

// Valuation runs DCF, Graham and Lynch with the caller's assumptions.
func (s *ValuationService) Valuation(ctx context.Context, ticker string, growthRate, discountRate float64) (*models.ValuationReport, error) {
	f, err := s.md.Fundamentals(ctx, ticker)
	if err != nil {
		return nil, err
	}
	report := analytics.ValuationReport(f, growthRate, discountRate)
	report.Ticker = ticker
	return report, nil
}

// AdvancedFundamentals groups the raw record into named ratio blocks and
// attaches the quality scorecard. Margins, returns and growth come back as
// percentages; absent fields stay null.
func (s *ValuationService) AdvancedFundamentals(ctx context.Context, ticker string) (*models.AdvancedFundamentals, error) {
	f, err := s.md.Fundamentals(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return &models.AdvancedFundamentals{
		Ticker: ticker,
		Valuation: models.Ratios{
			"price_to_earnings": firstPresent(f.TrailingPE, f.ForwardPE),
			"price_to_book":     f.PriceToBook,
			"price_to_sales":    f.PriceToSales,
			"peg_ratio":         f.PEGRatio,
		},
		Profitability: models.Ratios{
			"gross_margin":     scaled(f.GrossMargin, 100),
			"operating_margin": scaled(f.OperatingMargin, 100),
			"net_margin":       scaled(f.NetMargin, 100),
			"return_on_equity": scaled(f.ReturnOnEquity, 100),
			"return_on_assets": scaled(f.ReturnOnAssets, 100),
		},
		Health: models.Ratios{
			"current_ratio":  f.CurrentRatio,
			"quick_ratio":    f.QuickRatio,
			"debt_to_equity": f.DebtToEquity,
		},
		Growth: models.Ratios{
			"revenue_growth":  scaled(f.RevenueGrowth, 100),
			"earnings_growth": scaled(f.EarningsGrowth, 100),
		},
		CashFlow: models.Ratios{
			"free_cash_flow":      f.FreeCashFlow,
			"operating_cash_flow": f.OperatingCashFlow,
		},
		QualityScore: analytics.QualityScorecard(f),
	}, nil
}
