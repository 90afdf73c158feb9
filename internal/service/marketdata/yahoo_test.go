package marketdata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"StockPulse/internal/domain/repository"
	"StockPulse/pkg/config"
	"StockPulse/pkg/logger"
	"StockPulse/pkg/metrics"
)

var (
	recOnce sync.Once
	testRec *metrics.Recorder
)

func newTestProvider(t *testing.T, baseURL string) *YahooProvider {
	t.Helper()
	recOnce.Do(func() { testRec = metrics.New() })
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	cfg := &config.Config{}
	cfg.MarketData.ChartBaseURL = baseURL + "/chart"
	cfg.MarketData.SummaryBaseURL = baseURL + "/summary"
	cfg.MarketData.UserAgent = "test"
	cfg.MarketData.Timeout = 5 * time.Second
	cfg.MarketData.Indices = []string{"^NSEI"}
	return NewYahooProvider(cfg, log, testRec)
}

const chartBody = `{
	"chart": {
		"result": [{
			"meta": {"symbol": "TEST.NS", "currency": "INR", "regularMarketPrice": 103, "chartPreviousClose": 100},
			"timestamp": [1717372800, 1717459200, 1717545600],
			"indicators": {"quote": [{
				"open":   [100, null, 102],
				"high":   [101, null, 104],
				"low":    [99,  null, 101],
				"close":  [100.5, null, 103],
				"volume": [1000, null, 1200]
			}]}
		}],
		"error": null
	}
}`

func TestHistoryParsesAndSkipsNullBars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/chart/") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("interval") != "1d" {
			t.Errorf("interval = %q, want 1d", r.URL.Query().Get("interval"))
		}
		fmt.Fprint(w, chartBody)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	bars, err := p.History(context.Background(), "TEST.NS", repository.YearDaily)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("bars = %d, want 2 (null row skipped)", len(bars))
	}
	if bars[0].Close != 100.5 || bars[1].Close != 103 {
		t.Errorf("closes = %v, %v", bars[0].Close, bars[1].Close)
	}
	if !bars[0].Date.Before(bars[1].Date) {
		t.Error("bars should be oldest first")
	}
}

func TestHistoryClampsShortIndicatorColumns(t *testing.T) {
	// Three timestamps but only two rows in the indicator arrays, as the
	// chart API sometimes returns on partially-settled sessions.
	const shortBody = `{
		"chart": {
			"result": [{
				"meta": {"symbol": "TEST.NS", "regularMarketPrice": 102, "chartPreviousClose": 100},
				"timestamp": [1717372800, 1717459200, 1717545600],
				"indicators": {"quote": [{
					"open":   [100, 101],
					"high":   [101, 103],
					"low":    [99,  100],
					"close":  [100.5, 102],
					"volume": [1000, 1100]
				}]}
			}],
			"error": null
		}
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, shortBody)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	bars, err := p.History(context.Background(), "TEST.NS", repository.YearDaily)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("bars = %d, want 2 (trailing timestamp without a row dropped)", len(bars))
	}
	if bars[1].Close != 102 {
		t.Errorf("last close = %v, want 102", bars[1].Close)
	}
}

func TestHistoryNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	_, err := p.History(context.Background(), "NOPE", repository.YearDaily)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

const summaryBody = `{
	"quoteSummary": {
		"result": [{
			"price": {
				"symbol": "TEST.NS",
				"longName": "Test Industries Ltd",
				"currency": "INR",
				"regularMarketPrice": {"raw": 103},
				"regularMarketPreviousClose": {"raw": 100},
				"regularMarketDayHigh": {"raw": 104},
				"regularMarketDayLow": {"raw": 99},
				"marketCap": {"raw": 5000000000}
			},
			"summaryDetail": {
				"fiftyTwoWeekHigh": {"raw": 130},
				"fiftyTwoWeekLow": {"raw": 80},
				"beta": {"raw": 1.2}
			},
			"assetProfile": {"sector": "Energy", "industry": "Refining"}
		}],
		"error": null
	}
}`

func TestQuoteFromSummaryModules(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, summaryBody)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	q, err := p.Quote(context.Background(), "TEST.NS")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if q.Price != 103 || q.Change != 3 {
		t.Errorf("price/change = %v/%v, want 103/3", q.Price, q.Change)
	}
	if q.PercentChange != 3 {
		t.Errorf("percent change = %v, want 3", q.PercentChange)
	}
	if q.Name != "Test Industries Ltd" {
		t.Errorf("name = %q", q.Name)
	}
	if q.YearHigh != 130 || q.YearLow != 80 {
		t.Errorf("year range = [%v, %v]", q.YearLow, q.YearHigh)
	}
}

func TestProfileFallbacks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteSummary":{"result":[{"price":{"regularMarketPrice":{"raw": 10}}}],"error":null}}`)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	profile, err := p.Profile(context.Background(), "BARE.NS")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.Sector != "Unknown" || profile.Industry != "Unknown" {
		t.Errorf("sector/industry = %q/%q, want Unknown fallbacks", profile.Sector, profile.Industry)
	}
	if profile.Beta != 1.0 {
		t.Errorf("beta = %v, want 1.0 fallback", profile.Beta)
	}
	if profile.LongName != "BARE.NS" {
		t.Errorf("name = %q, want symbol fallback", profile.LongName)
	}
}

func TestSearchSuffixProbing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only the NSE listing resolves.
		if strings.Contains(r.URL.Path, "RELIANCE.NS") {
			fmt.Fprint(w, summaryBody)
			return
		}
		fmt.Fprint(w, `{"quoteSummary":{"result":null,"error":{"code":"Not Found","description":"no such symbol"}}}`)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	matches, err := p.Search(context.Background(), "reliance")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if matches[0].Symbol != "RELIANCE.NS" {
		t.Errorf("symbol = %q, want RELIANCE.NS", matches[0].Symbol)
	}
}

func TestSearchExplicitSuffixNotProbed(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		fmt.Fprint(w, summaryBody)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	if _, err := p.Search(context.Background(), "TCS.BO"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(paths) != 1 || !strings.Contains(paths[0], "TCS.BO") {
		t.Errorf("explicit suffix should probe once, got %v", paths)
	}
}

func TestFundamentalsOptionalFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, summaryBody)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	f, err := p.Fundamentals(context.Background(), "TEST.NS")
	if err != nil {
		t.Fatalf("Fundamentals: %v", err)
	}
	if f.Sector != "Energy" {
		t.Errorf("sector = %q", f.Sector)
	}
	if f.TrailingEPS != nil {
		t.Error("absent trailingEps should stay nil")
	}
	if f.Beta == nil || *f.Beta != 1.2 {
		t.Errorf("beta = %v, want 1.2", f.Beta)
	}
}
