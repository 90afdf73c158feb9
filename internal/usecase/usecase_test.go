package usecase

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/domain/repository"
	"StockPulse/internal/services/analytics"
	"StockPulse/pkg/logger"
)

// fakeMarketData serves canned data per symbol and fails for anything else.
type fakeMarketData struct {
	quotes   map[string]*models.Quote
	profiles map[string]*models.TickerProfile
	funds    map[string]*models.Fundamentals
	history  map[string]models.PriceSeries
}

func (f *fakeMarketData) Quote(_ context.Context, symbol string) (*models.Quote, error) {
	if q, ok := f.quotes[symbol]; ok {
		return q, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMarketData) Profile(_ context.Context, symbol string) (*models.TickerProfile, error) {
	if p, ok := f.profiles[symbol]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMarketData) Fundamentals(_ context.Context, symbol string) (*models.Fundamentals, error) {
	if fd, ok := f.funds[symbol]; ok {
		return fd, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMarketData) History(_ context.Context, symbol string, _ repository.Timeframe) (models.PriceSeries, error) {
	if h, ok := f.history[symbol]; ok {
		return h, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMarketData) MarketStatus(context.Context) (*models.MarketStatus, error) {
	return &models.MarketStatus{IsOpen: true, Message: "open"}, nil
}

func (f *fakeMarketData) Indices(context.Context) ([]models.IndexQuote, error) {
	return nil, nil
}

func (f *fakeMarketData) Search(context.Context, string) ([]models.SearchMatch, error) {
	return nil, nil
}

type fakeNews struct {
	items map[string][]models.NewsItem
}

func (f *fakeNews) Headlines(_ context.Context, symbol string, limit int) ([]models.NewsItem, error) {
	items, ok := f.items[symbol]
	if !ok {
		return nil, errors.New("feed unavailable")
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

// wavySeries builds n daily bars oscillating around base, enough history for
// every engine that needs a year of data.
func wavySeries(n int, base float64) models.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make(models.PriceSeries, n)
	for i := range bars {
		c := base + 5*math.Sin(float64(i)/7)
		bars[i] = models.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func TestQuoteMergesProfile(t *testing.T) {
	md := &fakeMarketData{
		quotes: map[string]*models.Quote{
			"TCS.NS": {Symbol: "TCS.NS", Name: "TCS.NS", Price: 100},
		},
		profiles: map[string]*models.TickerProfile{
			"TCS.NS": {Symbol: "TCS.NS", LongName: "Tata Consultancy Services", Sector: "Technology", Beta: 0.8},
		},
	}
	svc := NewQuoteService(md, testLogger(t), 4)

	q, err := svc.Quote(context.Background(), "TCS.NS")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if q.Sector != "Technology" || q.Beta != 0.8 {
		t.Errorf("profile not merged: sector=%q beta=%v", q.Sector, q.Beta)
	}
	if q.Name != "Tata Consultancy Services" {
		t.Errorf("name = %q", q.Name)
	}
}

func TestQuoteProfileFailureUsesFallbacks(t *testing.T) {
	md := &fakeMarketData{
		quotes: map[string]*models.Quote{
			"X.NS": {Symbol: "X.NS", Price: 50},
		},
	}
	svc := NewQuoteService(md, testLogger(t), 4)

	q, err := svc.Quote(context.Background(), "X.NS")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if q.Sector != "Unknown" || q.Beta != 1.0 {
		t.Errorf("fallbacks = %q / %v, want Unknown / 1.0", q.Sector, q.Beta)
	}
}

func TestBatchQuotesTagsFailures(t *testing.T) {
	md := &fakeMarketData{
		quotes: map[string]*models.Quote{
			"A.NS": {Symbol: "A.NS", Price: 10},
		},
	}
	svc := NewQuoteService(md, testLogger(t), 2)

	entries := svc.BatchQuotes(context.Background(), []string{"A.NS", "MISSING.NS"})
	if len(entries) != 2 {
		t.Fatalf("entries = %d", len(entries))
	}
	if entries[0].Quote == nil || entries[0].Error != "" {
		t.Errorf("good ticker: %+v", entries[0])
	}
	if entries[1].Quote != nil || entries[1].Error != "Failed to fetch" {
		t.Errorf("bad ticker: %+v", entries[1])
	}
}

func TestHistoryLabelsDailyDates(t *testing.T) {
	md := &fakeMarketData{history: map[string]models.PriceSeries{
		"A.NS": wavySeries(5, 100),
	}}
	svc := NewQuoteService(md, testLogger(t), 1)

	points, err := svc.History(context.Background(), "A.NS", "1M")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if points[0].Date != "2024-01-01" {
		t.Errorf("daily label = %q", points[0].Date)
	}
}

func TestTechnicalSetsTicker(t *testing.T) {
	md := &fakeMarketData{history: map[string]models.PriceSeries{
		"A.NS": wavySeries(300, 100),
	}}
	svc := NewAnalyticsService(md, testLogger(t))

	report, err := svc.Technical(context.Background(), "A.NS", "rsi, macd")
	if err != nil {
		t.Fatalf("Technical: %v", err)
	}
	if report.Ticker != "A.NS" {
		t.Errorf("ticker = %q", report.Ticker)
	}
	if report.RSI == nil || report.MACD == nil {
		t.Error("selected indicators missing")
	}
	if report.Bollinger != nil {
		t.Error("unselected indicator present")
	}
}

func TestRiskAnalysisTagsFailedTicker(t *testing.T) {
	md := &fakeMarketData{history: map[string]models.PriceSeries{
		"^NSEI": wavySeries(300, 20000),
		"A.NS":  wavySeries(300, 100),
	}}
	svc := NewRiskService(md, testLogger(t), "^NSEI", 2)

	report, err := svc.RiskAnalysis(context.Background(), []string{"A.NS", "MISSING.NS"})
	if err != nil {
		t.Fatalf("RiskAnalysis: %v", err)
	}
	if report.Assets[0].Profile == nil {
		t.Fatalf("good ticker has no profile: %+v", report.Assets[0])
	}
	if report.Assets[1].Error == "" {
		t.Errorf("bad ticker not tagged: %+v", report.Assets[1])
	}
	if report.Portfolio.Method != analytics.PortfolioVaRMethod {
		t.Errorf("method = %q", report.Portfolio.Method)
	}
	if report.Portfolio.VaR95 <= 0 {
		t.Errorf("portfolio VaR95 = %v", report.Portfolio.VaR95)
	}
}

func TestRiskAnalysisEmbedsCorrelationMatrix(t *testing.T) {
	md := &fakeMarketData{history: map[string]models.PriceSeries{
		"^NSEI": wavySeries(300, 20000),
		"A.NS":  wavySeries(300, 100),
		"B.NS":  wavySeries(300, 200),
	}}
	svc := NewRiskService(md, testLogger(t), "^NSEI", 2)

	report, err := svc.RiskAnalysis(context.Background(), []string{"A.NS", "MISSING.NS", "B.NS"})
	if err != nil {
		t.Fatalf("RiskAnalysis: %v", err)
	}
	corr := report.Portfolio.Correlation
	if corr == nil {
		t.Fatal("portfolio block should carry the correlation matrix")
	}
	if len(corr.Tickers) != 2 || corr.Tickers[0] != "A.NS" || corr.Tickers[1] != "B.NS" {
		t.Fatalf("correlation tickers = %v, want the profiled tickers in request order", corr.Tickers)
	}
	if len(corr.Matrix) != 2 || len(corr.Matrix[0]) != 2 {
		t.Fatalf("matrix shape %dx%d", len(corr.Matrix), len(corr.Matrix[0]))
	}
	if corr.Matrix[0][0] != 1 || corr.Matrix[1][1] != 1 {
		t.Errorf("diagonal = %v / %v", corr.Matrix[0][0], corr.Matrix[1][1])
	}
}

func TestCorrelationMatrixShape(t *testing.T) {
	md := &fakeMarketData{history: map[string]models.PriceSeries{
		"A.NS": wavySeries(300, 100),
		"B.NS": wavySeries(300, 200),
	}}
	svc := NewRiskService(md, testLogger(t), "^NSEI", 2)

	matrix, err := svc.CorrelationMatrix(context.Background(), []string{"A.NS", "B.NS"})
	if err != nil {
		t.Fatalf("CorrelationMatrix: %v", err)
	}
	if len(matrix.Matrix) != 2 || len(matrix.Matrix[0]) != 2 {
		t.Fatalf("matrix shape %dx%d", len(matrix.Matrix), len(matrix.Matrix[0]))
	}
	if matrix.Matrix[0][0] != 1 || matrix.Matrix[1][1] != 1 {
		t.Errorf("diagonal = %v / %v", matrix.Matrix[0][0], matrix.Matrix[1][1])
	}
}

func TestCorrelationMatrixPropagatesHistoryError(t *testing.T) {
	md := &fakeMarketData{history: map[string]models.PriceSeries{}}
	svc := NewRiskService(md, testLogger(t), "^NSEI", 2)

	if _, err := svc.CorrelationMatrix(context.Background(), []string{"A.NS"}); err == nil {
		t.Fatal("want error for missing history")
	}
}

func TestAdvancedFundamentalsScalesMargins(t *testing.T) {
	gross := 0.45
	md := &fakeMarketData{funds: map[string]*models.Fundamentals{
		"A.NS": {Symbol: "A.NS", GrossMargin: &gross},
	}}
	svc := NewValuationService(md, testLogger(t))

	af, err := svc.AdvancedFundamentals(context.Background(), "A.NS")
	if err != nil {
		t.Fatalf("AdvancedFundamentals: %v", err)
	}
	got := af.Profitability["gross_margin"]
	if got == nil || math.Abs(*got-45) > 1e-9 {
		t.Errorf("gross_margin = %v, want 45", got)
	}
	if af.Health["current_ratio"] != nil {
		t.Error("absent field should stay null")
	}
	if af.QualityScore.Score == 0 {
		t.Error("scorecard should award gross margin points")
	}
}

func TestTickerNewsScoresTitles(t *testing.T) {
	np := &fakeNews{items: map[string][]models.NewsItem{
		"A.NS": {
			{Title: "Shares surge to record high on profit beat"},
			{Title: "Analysts see continued rally and growth"},
		},
	}}
	svc := NewNewsService(np, analytics.NewSentimentScorer(), testLogger(t), 10, 5, 2)

	news, err := svc.TickerNews(context.Background(), "A.NS")
	if err != nil {
		t.Fatalf("TickerNews: %v", err)
	}
	if news.Sentiment.Score <= 0 {
		t.Errorf("score = %v, want positive", news.Sentiment.Score)
	}
	for _, item := range news.Items {
		if item.Ticker != "A.NS" {
			t.Errorf("item ticker = %q", item.Ticker)
		}
	}
}

func TestPortfolioNewsRecordsPerTickerErrors(t *testing.T) {
	np := &fakeNews{items: map[string][]models.NewsItem{
		"A.NS": {{Title: "Dividend announced"}},
	}}
	svc := NewNewsService(np, analytics.NewSentimentScorer(), testLogger(t), 10, 5, 2)

	news := svc.PortfolioNews(context.Background(), []string{"A.NS", "DOWN.NS"})
	if len(news.Items) != 1 {
		t.Fatalf("items = %d", len(news.Items))
	}
	msg, ok := news.Errors["DOWN.NS"]
	if !ok || !strings.Contains(msg, "feed unavailable") {
		t.Errorf("errors = %v", news.Errors)
	}
	if _, ok := news.Errors["A.NS"]; ok {
		t.Error("good ticker should not be tagged")
	}
}
