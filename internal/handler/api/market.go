package api

import (
	"context"

	"github.com/labstack/echo/v4"

	"StockPulse/internal/domain/models"
	pkgcache "StockPulse/pkg/cache"
	xhttp "StockPulse/pkg/http"
	"StockPulse/pkg/util"
)

func (h *Handler) MarketStatus(c echo.Context) error {
	return h.serve(c, "market_status", "market-status", h.cfg.Analytics.CacheTTL.MarketStatus, func(ctx context.Context) (interface{}, error) {
		return h.quotes.MarketStatus(ctx)
	})
}

func (h *Handler) Indices(c echo.Context) error {
	return h.serve(c, "indices", "indices", h.cfg.Analytics.CacheTTL.Quote, func(ctx context.Context) (interface{}, error) {
		return h.quotes.Indices(ctx)
	})
}

func (h *Handler) Quote(c echo.Context) error {
	req := &models.TickerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	ticker := util.NormalizeSymbol(req.Ticker)

	return h.serve(c, "quote", pkgcache.GenerateKey("quote", ticker), h.cfg.Analytics.CacheTTL.Quote, func(ctx context.Context) (interface{}, error) {
		return h.quotes.Quote(ctx, ticker)
	})
}

func (h *Handler) BatchQuotes(c echo.Context) error {
	req := &models.BatchTickersRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	tickers := util.NormalizeSymbols(req.Tickers)

	return h.serve(c, "batch_quotes", "", 0, func(ctx context.Context) (interface{}, error) {
		return h.quotes.BatchQuotes(ctx, tickers), nil
	})
}

func (h *Handler) BatchAnalytics(c echo.Context) error {
	req := &models.BatchTickersRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	tickers := util.NormalizeSymbols(req.Tickers)

	return h.serve(c, "batch_analytics", "", 0, func(ctx context.Context) (interface{}, error) {
		return h.quotes.BatchProfiles(ctx, tickers), nil
	})
}

func (h *Handler) Search(c echo.Context) error {
	req := &models.SearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	query := util.NormalizeSymbol(req.Query)

	return h.serve(c, "search", pkgcache.GenerateKey("search", query), h.cfg.Analytics.CacheTTL.Analysis, func(ctx context.Context) (interface{}, error) {
		matches, err := h.quotes.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"results": matches}, nil
	})
}

func (h *Handler) Analysis(c echo.Context) error {
	req := &models.TickerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	ticker := util.NormalizeSymbol(req.Ticker)

	return h.serve(c, "analysis", pkgcache.GenerateKey("analysis", ticker), h.cfg.Analytics.CacheTTL.Analysis, func(ctx context.Context) (interface{}, error) {
		return h.quotes.Analysis(ctx, ticker)
	})
}

func (h *Handler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	ticker := util.NormalizeSymbol(req.Ticker)

	return h.serve(c, "history", pkgcache.GenerateKeyWithParams("history", ticker, req.Timeframe), h.cfg.Analytics.CacheTTL.History, func(ctx context.Context) (interface{}, error) {
		points, err := h.quotes.History(ctx, ticker, req.Timeframe)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"ticker": ticker, "timeframe": req.Timeframe, "points": points}, nil
	})
}
