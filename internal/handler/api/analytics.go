package api

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/services/analytics"
	pkgcache "StockPulse/pkg/cache"
	xhttp "StockPulse/pkg/http"
	"StockPulse/pkg/util"
)

func (h *Handler) Technical(c echo.Context) error {
	req := &models.TechnicalRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	ticker := util.NormalizeSymbol(req.Ticker)

	key := pkgcache.GenerateKeyWithParams("technical", ticker, req.Indicators)
	return h.serve(c, "technical", key, h.cfg.Analytics.CacheTTL.Analysis, func(ctx context.Context) (interface{}, error) {
		return h.technical.Technical(ctx, ticker, req.Indicators)
	})
}

func (h *Handler) SupportResistance(c echo.Context) error {
	req := &models.TickerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	ticker := util.NormalizeSymbol(req.Ticker)

	return h.serve(c, "support_resistance", pkgcache.GenerateKey("levels", ticker), h.cfg.Analytics.CacheTTL.Analysis, func(ctx context.Context) (interface{}, error) {
		return h.technical.Levels(ctx, ticker)
	})
}

func (h *Handler) PivotPoints(c echo.Context) error {
	req := &models.PivotRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	ticker := util.NormalizeSymbol(req.Ticker)

	key := pkgcache.GenerateKeyWithParams("pivots", ticker, req.Method)
	return h.serve(c, "pivot_points", key, h.cfg.Analytics.CacheTTL.Analysis, func(ctx context.Context) (interface{}, error) {
		return h.technical.Pivots(ctx, ticker, req.Method)
	})
}

func (h *Handler) RiskAnalysis(c echo.Context) error {
	req := &models.BatchTickersRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	tickers := util.NormalizeSymbols(req.Tickers)

	return h.serve(c, "risk_analysis", "", 0, func(ctx context.Context) (interface{}, error) {
		return h.risk.RiskAnalysis(ctx, tickers)
	})
}

func (h *Handler) CorrelationMatrix(c echo.Context) error {
	req := &models.CorrelationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	tickers := util.SplitSymbols(req.Tickers)
	if len(tickers) < 2 {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("at least two tickers are required"))
	}

	key := pkgcache.GenerateKey("correlation", strings.Join(tickers, ","))
	return h.serve(c, "correlation_matrix", key, h.cfg.Analytics.CacheTTL.Analysis, func(ctx context.Context) (interface{}, error) {
		return h.risk.CorrelationMatrix(ctx, tickers)
	})
}

func (h *Handler) PositionSize(c echo.Context) error {
	req := &models.PositionSizeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	ticker := util.NormalizeSymbol(req.Ticker)
	in := analytics.SizingInputs{
		AccountSize:  req.AccountSize,
		RiskPerTrade: req.RiskPerTrade,
		StopLossPct:  req.StopLossPct,
	}

	return h.serve(c, "position_size", "", 0, func(ctx context.Context) (interface{}, error) {
		return h.technical.PositionSize(ctx, ticker, in)
	})
}

func (h *Handler) Valuation(c echo.Context) error {
	req := &models.ValuationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	ticker := util.NormalizeSymbol(req.Ticker)

	key := pkgcache.GenerateKeyWithParams("valuation", ticker, req.GrowthRate, req.DiscountRate)
	return h.serve(c, "valuation_models", key, h.cfg.Analytics.CacheTTL.Analysis, func(ctx context.Context) (interface{}, error) {
		return h.valuation.Valuation(ctx, ticker, req.GrowthRate, req.DiscountRate)
	})
}

func (h *Handler) AdvancedFundamentals(c echo.Context) error {
	req := &models.TickerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	ticker := util.NormalizeSymbol(req.Ticker)

	return h.serve(c, "advanced_fundamentals", pkgcache.GenerateKey("fundamentals", ticker), h.cfg.Analytics.CacheTTL.Analysis, func(ctx context.Context) (interface{}, error) {
		return h.valuation.AdvancedFundamentals(ctx, ticker)
	})
}
