// Package api exposes the analytics engine over Echo HTTP routes.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"StockPulse/internal/domain/repository"
	"StockPulse/internal/service/metrics"
	"StockPulse/internal/service/ratelimit"
	"StockPulse/internal/services/analytics"
	"StockPulse/internal/usecase"
	pkgcache "StockPulse/pkg/cache"
	"StockPulse/pkg/config"
	xhttp "StockPulse/pkg/http"
	"StockPulse/pkg/logger"
)

// Handler serves the full route table. Read-heavy GET endpoints cache their
// marshaled payload; POST batch endpoints always compute fresh.
type Handler struct {
	log       *logger.Logger
	quotes    *usecase.QuoteService
	technical *usecase.AnalyticsService
	risk      *usecase.RiskService
	valuation *usecase.ValuationService
	news      *usecase.NewsService
	cache     pkgcache.Service
	rl        *ratelimit.Limiter
	cfg       *config.Config
}

func NewHandler(
	cfg *config.Config,
	log *logger.Logger,
	quotes *usecase.QuoteService,
	technical *usecase.AnalyticsService,
	risk *usecase.RiskService,
	valuation *usecase.ValuationService,
	news *usecase.NewsService,
	cache pkgcache.Service,
) *Handler {
	metrics.Register()
	return &Handler{
		log:       log,
		quotes:    quotes,
		technical: technical,
		risk:      risk,
		valuation: valuation,
		news:      news,
		cache:     cache,
		rl:        ratelimit.New(),
		cfg:       cfg,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/market-status", h.MarketStatus)
	e.GET("/indices", h.Indices)
	e.GET("/quote/:ticker", h.Quote)
	e.POST("/batch-quotes", h.BatchQuotes)
	e.POST("/batch-analytics", h.BatchAnalytics)
	e.GET("/search/:query", h.Search)
	e.GET("/analysis/:ticker", h.Analysis)
	e.GET("/technical/:ticker", h.Technical)
	e.GET("/support-resistance/:ticker", h.SupportResistance)
	e.GET("/pivot-points/:ticker", h.PivotPoints)
	e.POST("/risk-analysis", h.RiskAnalysis)
	e.GET("/correlation-matrix", h.CorrelationMatrix)
	e.GET("/position-size/:ticker", h.PositionSize)
	e.GET("/valuation-models/:ticker", h.Valuation)
	e.GET("/advanced-fundamentals/:ticker", h.AdvancedFundamentals)
	e.GET("/history/:ticker", h.History)
	e.GET("/news/:ticker", h.TickerNews)
	e.POST("/portfolio-news", h.PortfolioNews)
}

// Root is the liveness banner.
func (h *Handler) Root(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"message": "StockPulse API is running"})
}

// serve wraps an endpoint with latency metrics, rate limiting, response
// caching and error mapping. An empty cacheKey disables caching.
func (h *Handler) serve(c echo.Context, endpoint, cacheKey string, ttl time.Duration, fetch func(ctx context.Context) (interface{}, error)) error {
	start := time.Now()
	defer func() { metrics.AnalyticsLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	if !h.allow(c, endpoint) {
		h.log.Warn("rate limited",
			logger.String("endpoint", endpoint),
			logger.String("remote", c.RealIP()),
		)
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limited")
	}

	ctx := c.Request().Context()
	if cacheKey != "" && h.cache != nil {
		var hit string
		if err := h.cache.Get(ctx, cacheKey, &hit); err == nil {
			return xhttp.SuccessResponse(c, json.RawMessage(hit))
		}
	}

	data, err := fetch(ctx)
	if err != nil {
		metrics.AnalyticsErrors.WithLabelValues(endpoint).Inc()
		h.log.Error(endpoint+" error", logger.Error(err))
		return xhttp.AppErrorResponse(c, h.appError(err))
	}

	if cacheKey != "" && h.cache != nil {
		if b, merr := json.Marshal(data); merr == nil {
			if cerr := h.cache.Set(ctx, cacheKey, string(b), ttl); cerr != nil {
				h.log.Warn("cache set failed",
					logger.String("key", cacheKey),
					logger.Error(cerr),
				)
			}
		}
	}
	return xhttp.SuccessResponse(c, data)
}

func (h *Handler) allow(c echo.Context, endpoint string) bool {
	if !h.cfg.RateLimit.Enabled {
		return true
	}
	return h.rl.Allow(c.RealIP()+":"+endpoint, float64(h.cfg.RateLimit.Burst), h.cfg.RateLimit.Rate)
}

func (h *Handler) appError(err error) *xhttp.AppError {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return xhttp.NotFoundError("symbol not found").WithError(err)
	case errors.Is(err, analytics.ErrInsufficientData),
		errors.Is(err, analytics.ErrInsufficientFundamentals),
		errors.Is(err, analytics.ErrInvalidAssumptions):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	default:
		return xhttp.InternalError("Something went wrong").WithError(err)
	}
}
