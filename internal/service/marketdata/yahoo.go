// Package marketdata implements the market data provider on the public
// Yahoo Finance chart and quoteSummary endpoints.
package marketdata

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/domain/repository"
	"StockPulse/pkg/config"
	apphttp "StockPulse/pkg/http"
	"StockPulse/pkg/logger"
	"StockPulse/pkg/metrics"
)

const providerName = "yahoo"

// indexNames maps index symbols to display names.
var indexNames = map[string]string{
	"^NSEI":  "Nifty 50",
	"^BSESN": "Sensex",
}

// YahooProvider implements repository.MarketDataProvider.
type YahooProvider struct {
	client     *apphttp.Client
	chartURL   string
	summaryURL string
	userAgent  string
	indices    []string
	log        *logger.Logger
	rec        *metrics.Recorder
	clock      *MarketClock
}

// NewYahooProvider creates a provider from config.
func NewYahooProvider(cfg *config.Config, log *logger.Logger, rec *metrics.Recorder) *YahooProvider {
	return &YahooProvider{
		client:     apphttp.NewClient(apphttp.WithTimeout(cfg.MarketData.Timeout)),
		chartURL:   cfg.MarketData.ChartBaseURL,
		summaryURL: cfg.MarketData.SummaryBaseURL,
		userAgent:  cfg.MarketData.UserAgent,
		indices:    cfg.MarketData.Indices,
		log:        log,
		rec:        rec,
		clock:      NewMarketClock(),
	}
}

// chartResponse is the v8 chart payload. Bar columns arrive as interface{}
// because closed-market rows are JSON nulls.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (p *YahooProvider) fetchChart(ctx context.Context, symbol, interval, rng string) (*chartResponse, error) {
	p.rec.RecordProviderRequest(providerName, "chart")
	start := time.Now()
	defer func() { p.rec.RecordLatency("chart", time.Since(start).Seconds()) }()

	var out chartResponse
	err := p.client.SendAndParse(ctx, &apphttp.RequestOptions{
		Method: apphttp.MethodGet,
		URL:    fmt.Sprintf("%s/%s", p.chartURL, url.PathEscape(symbol)),
		Headers: map[string]string{
			"User-Agent": p.userAgent,
		},
		QueryParams: map[string][]string{
			"interval": {interval},
			"range":    {rng},
		},
	}, &out)
	if err != nil {
		p.rec.RecordError("chart_fetch")
		return nil, fmt.Errorf("chart %s: %w", symbol, err)
	}
	if out.Chart.Error != nil {
		if strings.EqualFold(out.Chart.Error.Code, "Not Found") {
			return nil, fmt.Errorf("chart %s: %s: %w", symbol, out.Chart.Error.Description, repository.ErrNotFound)
		}
		p.rec.RecordError("chart_api")
		return nil, fmt.Errorf("chart %s: api error %s: %s", symbol, out.Chart.Error.Code, out.Chart.Error.Description)
	}
	if len(out.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart %s: empty result: %w", symbol, repository.ErrNotFound)
	}
	return &out, nil
}

// History fetches bars for the timeframe, oldest first, null rows skipped.
func (p *YahooProvider) History(ctx context.Context, symbol string, tf repository.Timeframe) (models.PriceSeries, error) {
	chart, err := p.fetchChart(ctx, symbol, tf.Interval, tf.Period)
	if err != nil {
		return nil, err
	}
	result := chart.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("history %s: no bars: %w", symbol, repository.ErrNotFound)
	}
	quote := result.Indicators.Quote[0]

	// The upstream occasionally ships indicator arrays shorter than the
	// timestamp list; rows past the shortest column are unusable.
	n := len(result.Timestamp)
	for _, col := range [][]interface{}{quote.Open, quote.High, quote.Low, quote.Close, quote.Volume} {
		if len(col) < n {
			n = len(col)
		}
	}

	bars := make(models.PriceSeries, 0, n)
	for i, ts := range result.Timestamp[:n] {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // null bar (holiday, halted session)
		}
		bars = append(bars, models.PriceBar{
			Date:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	if len(bars) == 0 {
		return nil, fmt.Errorf("history %s: only null bars: %w", symbol, repository.ErrNotFound)
	}
	p.rec.RecordLastPrice(symbol, bars[len(bars)-1].Close)
	return bars, nil
}

// MarketStatus reports the NSE trading clock.
func (p *YahooProvider) MarketStatus(ctx context.Context) (*models.MarketStatus, error) {
	return p.clock.Status(), nil
}

// Indices returns quotes for the configured headline indices. A failing
// index is logged and skipped rather than failing the set.
func (p *YahooProvider) Indices(ctx context.Context) ([]models.IndexQuote, error) {
	out := make([]models.IndexQuote, 0, len(p.indices))
	for _, symbol := range p.indices {
		chart, err := p.fetchChart(ctx, symbol, "1d", "1d")
		if err != nil {
			p.log.Warn("index fetch failed",
				logger.String("symbol", symbol),
				logger.Error(err),
			)
			continue
		}
		meta := chart.Chart.Result[0].Meta
		change := meta.RegularMarketPrice - meta.ChartPreviousClose
		pct := 0.0
		if meta.ChartPreviousClose != 0 {
			pct = change / meta.ChartPreviousClose * 100
		}
		name := indexNames[symbol]
		if name == "" {
			name = symbol
		}
		out = append(out, models.IndexQuote{
			Symbol:        symbol,
			Name:          name,
			Price:         meta.RegularMarketPrice,
			Change:        change,
			PercentChange: pct,
		})
	}
	return out, nil
}

// Search resolves a query by suffix probing: explicit .NS/.BO symbols are
// checked as-is, otherwise both exchanges are tried. Candidates whose quote
// resolves are returned; failures are simply absent.
func (p *YahooProvider) Search(ctx context.Context, query string) ([]models.SearchMatch, error) {
	upper := strings.ToUpper(strings.TrimSpace(query))
	if upper == "" {
		return nil, nil
	}

	var candidates []string
	if strings.HasSuffix(upper, ".NS") || strings.HasSuffix(upper, ".BO") {
		candidates = []string{upper}
	} else {
		candidates = []string{upper + ".NS", upper + ".BO"}
	}

	var matches []models.SearchMatch
	for _, symbol := range candidates {
		q, err := p.Quote(ctx, symbol)
		if err != nil {
			continue
		}
		matches = append(matches, models.SearchMatch{
			Symbol: symbol,
			Name:   q.Name,
			Price:  q.Price,
		})
	}
	return matches, nil
}
