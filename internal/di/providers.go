package di

import (
	"fmt"
	"strings"
	"time"

	"StockPulse/internal/domain/repository"
	"StockPulse/internal/handler/api"
	"StockPulse/internal/service/marketdata"
	"StockPulse/internal/service/news"
	"StockPulse/internal/services/analytics"
	"StockPulse/internal/usecase"
	pkgcache "StockPulse/pkg/cache"
	"StockPulse/pkg/config"
	xhttp "StockPulse/pkg/http"
	"StockPulse/pkg/logger"
	"StockPulse/pkg/metrics"
	"StockPulse/pkg/server"
)

// ProvideLogger creates the application logger. Development gets console
// debug output; everything else logs JSON at info with the error aggregator
// attached, so a flapping upstream emits periodic digests instead of a line
// per failed request.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	lc := &logger.Config{Level: "info", Format: "json", Output: "stdout"}
	if cfg.Environment == "development" {
		lc.Level = "debug"
		lc.Format = "console"
	}
	l, err := logger.New(lc)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	if cfg.Environment != "development" {
		l.AddCollector(&logger.CollectionConfig{
			Interval:  30 * time.Second,
			Threshold: 100,
		})
	}
	return l, nil
}

// ProvideMetrics creates the Prometheus recorder for provider calls.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideMarketData creates the Yahoo Finance provider.
func ProvideMarketData(cfg *config.Config, log *logger.Logger, rec *metrics.Recorder) repository.MarketDataProvider {
	return marketdata.NewYahooProvider(cfg, log, rec)
}

// ProvideNewsProvider creates the Google News RSS provider.
func ProvideNewsProvider(cfg *config.Config, rec *metrics.Recorder) repository.NewsProvider {
	return news.NewGoogleProvider(cfg, rec)
}

// ProvideCache creates the response cache: layered memory+Redis when Redis
// is configured, memory-only otherwise.
func ProvideCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Analytics.Redis.Enabled {
		return pkgcache.NewMemoryCache(), nil
	}

	host, port := splitAddr(cfg.Analytics.Redis.Addr)
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Analytics.Redis.Password),
		pkgcache.WithRedisDB(cfg.Analytics.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return pkgcache.NewLayeredCache(rc), nil
}

func splitAddr(addr string) (string, int) {
	host, port := "localhost", 6379
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		if addr[:i] != "" {
			host = addr[:i]
		}
		fmt.Sscanf(addr[i+1:], "%d", &port)
	} else if addr != "" {
		host = addr
	}
	return host, port
}

// ProvideSentimentScorer creates the headline sentiment scorer.
func ProvideSentimentScorer() *analytics.SentimentScorer {
	return analytics.NewSentimentScorer()
}

// ProvideQuoteService creates the quote/search/history use case.
func ProvideQuoteService(md repository.MarketDataProvider, log *logger.Logger, cfg *config.Config) *usecase.QuoteService {
	return usecase.NewQuoteService(md, log, cfg.Analytics.BatchWorkers)
}

// ProvideAnalyticsService creates the technical analysis use case.
func ProvideAnalyticsService(md repository.MarketDataProvider, log *logger.Logger) *usecase.AnalyticsService {
	return usecase.NewAnalyticsService(md, log)
}

// ProvideRiskService creates the risk and correlation use case.
func ProvideRiskService(md repository.MarketDataProvider, log *logger.Logger, cfg *config.Config) *usecase.RiskService {
	return usecase.NewRiskService(md, log, cfg.MarketData.BenchmarkIndex, cfg.Analytics.BatchWorkers)
}

// ProvideValuationService creates the valuation use case.
func ProvideValuationService(md repository.MarketDataProvider, log *logger.Logger) *usecase.ValuationService {
	return usecase.NewValuationService(md, log)
}

// ProvideNewsService creates the news and sentiment use case.
func ProvideNewsService(np repository.NewsProvider, scorer *analytics.SentimentScorer, log *logger.Logger, cfg *config.Config) *usecase.NewsService {
	return usecase.NewNewsService(np, scorer, log,
		cfg.News.TickerLimit, cfg.News.PortfolioLimit, cfg.Analytics.BatchWorkers)
}

// ProvideHandler creates the HTTP handler with every use case wired in.
func ProvideHandler(
	cfg *config.Config,
	log *logger.Logger,
	quotes *usecase.QuoteService,
	technical *usecase.AnalyticsService,
	risk *usecase.RiskService,
	valuation *usecase.ValuationService,
	newsSvc *usecase.NewsService,
	cache pkgcache.Service,
) xhttp.Handler {
	return api.NewHandler(cfg, log, quotes, technical, risk, valuation, newsSvc, cache)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, log *logger.Logger, handler xhttp.Handler) *server.App {
	return server.New(cfg, log, handler)
}
