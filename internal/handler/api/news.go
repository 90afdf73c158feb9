package api

import (
	"context"

	"github.com/labstack/echo/v4"

	"StockPulse/internal/domain/models"
	pkgcache "StockPulse/pkg/cache"
	xhttp "StockPulse/pkg/http"
	"StockPulse/pkg/util"
)

func (h *Handler) TickerNews(c echo.Context) error {
	req := &models.TickerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	ticker := util.NormalizeSymbol(req.Ticker)

	return h.serve(c, "news", pkgcache.GenerateKey("news", ticker), h.cfg.Analytics.CacheTTL.News, func(ctx context.Context) (interface{}, error) {
		return h.news.TickerNews(ctx, ticker)
	})
}

func (h *Handler) PortfolioNews(c echo.Context) error {
	req := &models.BatchTickersRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	tickers := util.NormalizeSymbols(req.Tickers)

	return h.serve(c, "portfolio_news", "", 0, func(ctx context.Context) (interface{}, error) {
		return h.news.PortfolioNews(ctx, tickers), nil
	})
}
