package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/domain/repository"
	"StockPulse/internal/services/analytics"
	"StockPulse/internal/usecase"
	pkgcache "StockPulse/pkg/cache"
	"StockPulse/pkg/config"
	"StockPulse/pkg/logger"
)

type stubProvider struct {
	quoteCalls int64
}

func (s *stubProvider) Quote(_ context.Context, symbol string) (*models.Quote, error) {
	atomic.AddInt64(&s.quoteCalls, 1)
	if symbol != "RELIANCE.NS" {
		return nil, repository.ErrNotFound
	}
	return &models.Quote{Symbol: symbol, Name: symbol, Price: 2500}, nil
}

func (s *stubProvider) Profile(_ context.Context, symbol string) (*models.TickerProfile, error) {
	return &models.TickerProfile{Symbol: symbol, LongName: "Reliance Industries", Sector: "Energy", Beta: 1.1}, nil
}

func (s *stubProvider) Fundamentals(_ context.Context, symbol string) (*models.Fundamentals, error) {
	eps := 100.0
	return &models.Fundamentals{Symbol: symbol, TrailingEPS: &eps}, nil
}

func (s *stubProvider) History(_ context.Context, symbol string, _ repository.Timeframe) (models.PriceSeries, error) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make(models.PriceSeries, 300)
	for i := range bars {
		c := 100 + float64(i%20)
		bars[i] = models.PriceBar{Date: start.AddDate(0, 0, i), Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 1000}
	}
	return bars, nil
}

func (s *stubProvider) MarketStatus(context.Context) (*models.MarketStatus, error) {
	return &models.MarketStatus{IsOpen: false, Message: "Market Closed"}, nil
}

func (s *stubProvider) Indices(context.Context) ([]models.IndexQuote, error) {
	return []models.IndexQuote{{Symbol: "^NSEI", Name: "Nifty 50", Price: 22000}}, nil
}

func (s *stubProvider) Search(context.Context, string) ([]models.SearchMatch, error) {
	return nil, nil
}

type stubNews struct{}

func (stubNews) Headlines(_ context.Context, symbol string, _ int) ([]models.NewsItem, error) {
	return []models.NewsItem{{Title: "Quarterly profit beats estimates", Publisher: "Wire"}}, nil
}

func newTestServer(t *testing.T, md *stubProvider) *echo.Echo {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	cfg := &config.Config{}
	cfg.Analytics.CacheTTL.Quote = time.Minute
	cfg.Analytics.CacheTTL.Analysis = time.Minute
	cfg.Analytics.CacheTTL.History = time.Minute
	cfg.Analytics.CacheTTL.MarketStatus = time.Minute
	cfg.Analytics.CacheTTL.News = time.Minute

	scorer := analytics.NewSentimentScorer()
	h := NewHandler(cfg, log,
		usecase.NewQuoteService(md, log, 2),
		usecase.NewAnalyticsService(md, log),
		usecase.NewRiskService(md, log, "^NSEI", 2),
		usecase.NewValuationService(md, log),
		usecase.NewNewsService(stubNews{}, scorer, log, 10, 5, 2),
		pkgcache.NewMemoryCache(),
	)

	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

type apiBody struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, e *echo.Echo, method, target, body string) apiBody {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out apiBody
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response not JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return out
}

func TestRootBanner(t *testing.T) {
	e := newTestServer(t, &stubProvider{})
	body := doRequest(t, e, http.MethodGet, "/", "")
	if body.Status != http.StatusOK {
		t.Fatalf("status = %d", body.Status)
	}
	var data map[string]string
	if err := json.Unmarshal(body.Data, &data); err != nil {
		t.Fatalf("data: %v", err)
	}
	if data["message"] != "StockPulse API is running" {
		t.Errorf("message = %q", data["message"])
	}
}

func TestQuoteNormalizesAndMergesProfile(t *testing.T) {
	e := newTestServer(t, &stubProvider{})
	body := doRequest(t, e, http.MethodGet, "/quote/reliance.ns", "")
	if body.Status != http.StatusOK {
		t.Fatalf("status = %d", body.Status)
	}
	var q models.Quote
	if err := json.Unmarshal(body.Data, &q); err != nil {
		t.Fatalf("data: %v", err)
	}
	if q.Symbol != "RELIANCE.NS" {
		t.Errorf("symbol = %q, want normalized RELIANCE.NS", q.Symbol)
	}
	if q.Sector != "Energy" || q.Name != "Reliance Industries" {
		t.Errorf("profile not merged: %+v", q)
	}
}

func TestQuoteUnknownSymbolIs404(t *testing.T) {
	e := newTestServer(t, &stubProvider{})
	body := doRequest(t, e, http.MethodGet, "/quote/NOPE.NS", "")
	if body.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", body.Status)
	}
}

func TestQuoteSecondCallServedFromCache(t *testing.T) {
	md := &stubProvider{}
	e := newTestServer(t, md)

	doRequest(t, e, http.MethodGet, "/quote/RELIANCE.NS", "")
	doRequest(t, e, http.MethodGet, "/quote/RELIANCE.NS", "")

	if calls := atomic.LoadInt64(&md.quoteCalls); calls != 1 {
		t.Errorf("provider quote calls = %d, want 1", calls)
	}
}

func TestCorrelationMatrixNeedsTwoTickers(t *testing.T) {
	e := newTestServer(t, &stubProvider{})
	body := doRequest(t, e, http.MethodGet, "/correlation-matrix?tickers=RELIANCE.NS", "")
	if body.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", body.Status)
	}
}

func TestBatchQuotesValidatesEmptyList(t *testing.T) {
	e := newTestServer(t, &stubProvider{})
	body := doRequest(t, e, http.MethodPost, "/batch-quotes", `{"tickers":[]}`)
	if body.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", body.Status)
	}
}

func TestBatchQuotesMixedResults(t *testing.T) {
	e := newTestServer(t, &stubProvider{})
	body := doRequest(t, e, http.MethodPost, "/batch-quotes", `{"tickers":["RELIANCE.NS","NOPE.NS"]}`)
	if body.Status != http.StatusOK {
		t.Fatalf("status = %d", body.Status)
	}
	var entries []models.BatchQuoteEntry
	if err := json.Unmarshal(body.Data, &entries); err != nil {
		t.Fatalf("data: %v", err)
	}
	if entries[0].Quote == nil || entries[1].Error == "" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestPositionSizeEndpoint(t *testing.T) {
	e := newTestServer(t, &stubProvider{})
	body := doRequest(t, e, http.MethodGet, "/position-size/RELIANCE.NS?account_size=100000&risk_per_trade=2&stop_loss_pct=5", "")
	if body.Status != http.StatusOK {
		t.Fatalf("status = %d", body.Status)
	}
	var plan models.PositionPlan
	if err := json.Unmarshal(body.Data, &plan); err != nil {
		t.Fatalf("data: %v", err)
	}
	if plan.Recommended < 0 {
		t.Errorf("recommended = %d", plan.Recommended)
	}
}
