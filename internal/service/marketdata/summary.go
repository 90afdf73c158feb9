package marketdata

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/domain/repository"
	apphttp "StockPulse/pkg/http"
)

// rawValue is Yahoo's {"raw": n, "fmt": "..."} number wrapper. Absent fields
// leave Raw nil, which flows straight into the optional fundamentals record.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

type summaryResponse struct {
	QuoteSummary struct {
		Result []summaryResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

type summaryResult struct {
	Price *struct {
		Symbol                     string   `json:"symbol"`
		LongName                   string   `json:"longName"`
		ShortName                  string   `json:"shortName"`
		Currency                   string   `json:"currency"`
		RegularMarketPrice         rawValue `json:"regularMarketPrice"`
		RegularMarketPreviousClose rawValue `json:"regularMarketPreviousClose"`
		RegularMarketDayHigh       rawValue `json:"regularMarketDayHigh"`
		RegularMarketDayLow        rawValue `json:"regularMarketDayLow"`
		MarketCap                  rawValue `json:"marketCap"`
	} `json:"price"`
	SummaryDetail *struct {
		TrailingPE       rawValue `json:"trailingPE"`
		ForwardPE        rawValue `json:"forwardPE"`
		DividendYield    rawValue `json:"dividendYield"`
		Beta             rawValue `json:"beta"`
		FiftyTwoWeekHigh rawValue `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow  rawValue `json:"fiftyTwoWeekLow"`
		PriceToSales     rawValue `json:"priceToSalesTrailing12Months"`
	} `json:"summaryDetail"`
	DefaultKeyStatistics *struct {
		TrailingEPS       rawValue `json:"trailingEps"`
		BookValue         rawValue `json:"bookValue"`
		PriceToBook       rawValue `json:"priceToBook"`
		PEGRatio          rawValue `json:"pegRatio"`
		SharesOutstanding rawValue `json:"sharesOutstanding"`
	} `json:"defaultKeyStatistics"`
	FinancialData *struct {
		ReturnOnEquity    rawValue `json:"returnOnEquity"`
		ReturnOnAssets    rawValue `json:"returnOnAssets"`
		DebtToEquity      rawValue `json:"debtToEquity"`
		CurrentRatio      rawValue `json:"currentRatio"`
		QuickRatio        rawValue `json:"quickRatio"`
		GrossMargins      rawValue `json:"grossMargins"`
		OperatingMargins  rawValue `json:"operatingMargins"`
		ProfitMargins     rawValue `json:"profitMargins"`
		RevenueGrowth     rawValue `json:"revenueGrowth"`
		EarningsGrowth    rawValue `json:"earningsGrowth"`
		FreeCashFlow      rawValue `json:"freeCashflow"`
		OperatingCashFlow rawValue `json:"operatingCashflow"`
		TotalDebt         rawValue `json:"totalDebt"`
		TotalCash         rawValue `json:"totalCash"`
	} `json:"financialData"`
	AssetProfile *struct {
		Sector   string `json:"sector"`
		Industry string `json:"industry"`
	} `json:"assetProfile"`
}

func (p *YahooProvider) fetchSummary(ctx context.Context, symbol string, modules []string) (*summaryResult, error) {
	p.rec.RecordProviderRequest(providerName, "quote_summary")
	start := time.Now()
	defer func() { p.rec.RecordLatency("quote_summary", time.Since(start).Seconds()) }()

	var out summaryResponse
	err := p.client.SendAndParse(ctx, &apphttp.RequestOptions{
		Method: apphttp.MethodGet,
		URL:    fmt.Sprintf("%s/%s", p.summaryURL, url.PathEscape(symbol)),
		Headers: map[string]string{
			"User-Agent": p.userAgent,
		},
		QueryParams: map[string][]string{
			"modules": {strings.Join(modules, ",")},
		},
	}, &out)
	if err != nil {
		p.rec.RecordError("summary_fetch")
		return nil, fmt.Errorf("quote summary %s: %w", symbol, err)
	}
	if out.QuoteSummary.Error != nil {
		if strings.EqualFold(out.QuoteSummary.Error.Code, "Not Found") {
			return nil, fmt.Errorf("quote summary %s: %w", symbol, repository.ErrNotFound)
		}
		p.rec.RecordError("summary_api")
		return nil, fmt.Errorf("quote summary %s: api error %s: %s",
			symbol, out.QuoteSummary.Error.Code, out.QuoteSummary.Error.Description)
	}
	if len(out.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("quote summary %s: empty result: %w", symbol, repository.ErrNotFound)
	}
	return &out.QuoteSummary.Result[0], nil
}

// Quote returns the fast-path quote assembled from the price and summary
// detail modules.
func (p *YahooProvider) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	res, err := p.fetchSummary(ctx, symbol, []string{"price", "summaryDetail"})
	if err != nil {
		return nil, err
	}
	if res.Price == nil || res.Price.RegularMarketPrice.Raw == nil {
		return nil, fmt.Errorf("quote %s: no market price: %w", symbol, repository.ErrNotFound)
	}

	price := *res.Price.RegularMarketPrice.Raw
	prev := price
	if res.Price.RegularMarketPreviousClose.Raw != nil {
		prev = *res.Price.RegularMarketPreviousClose.Raw
	}
	change := price - prev
	pct := 0.0
	if prev != 0 {
		pct = change / prev * 100
	}

	name := res.Price.LongName
	if name == "" {
		name = res.Price.ShortName
	}
	if name == "" {
		name = symbol
	}

	q := &models.Quote{
		Symbol:        symbol,
		Name:          name,
		Price:         price,
		Change:        change,
		PercentChange: pct,
		DayHigh:       models.Value(res.Price.RegularMarketDayHigh.Raw),
		DayLow:        models.Value(res.Price.RegularMarketDayLow.Raw),
		MarketCap:     models.Value(res.Price.MarketCap.Raw),
		Currency:      res.Price.Currency,
	}
	if res.SummaryDetail != nil {
		q.YearHigh = models.Value(res.SummaryDetail.FiftyTwoWeekHigh.Raw)
		q.YearLow = models.Value(res.SummaryDetail.FiftyTwoWeekLow.Raw)
	}
	p.rec.RecordLastPrice(symbol, price)
	return q, nil
}

// Profile returns the slow-path company fields with the documented
// fallbacks: sector/industry "Unknown", beta 1.0, name falling back to the
// symbol.
func (p *YahooProvider) Profile(ctx context.Context, symbol string) (*models.TickerProfile, error) {
	res, err := p.fetchSummary(ctx, symbol, []string{"assetProfile", "price", "summaryDetail"})
	if err != nil {
		return nil, err
	}

	profile := &models.TickerProfile{
		Symbol:   symbol,
		LongName: symbol,
		Sector:   "Unknown",
		Industry: "Unknown",
		Beta:     1.0,
	}
	if res.AssetProfile != nil {
		if res.AssetProfile.Sector != "" {
			profile.Sector = res.AssetProfile.Sector
		}
		if res.AssetProfile.Industry != "" {
			profile.Industry = res.AssetProfile.Industry
		}
	}
	if res.Price != nil {
		if res.Price.LongName != "" {
			profile.LongName = res.Price.LongName
		}
		profile.MarketCap = models.Value(res.Price.MarketCap.Raw)
	}
	if res.SummaryDetail != nil && res.SummaryDetail.Beta.Raw != nil {
		profile.Beta = *res.SummaryDetail.Beta.Raw
	}
	return profile, nil
}

// Fundamentals returns the full optional-field record across the summary
// modules. Fields stay nil when upstream omits them.
func (p *YahooProvider) Fundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error) {
	res, err := p.fetchSummary(ctx, symbol, []string{
		"price", "summaryDetail", "defaultKeyStatistics", "financialData", "assetProfile",
	})
	if err != nil {
		return nil, err
	}

	f := &models.Fundamentals{Symbol: symbol}
	if res.Price != nil {
		f.LongName = res.Price.LongName
		f.Currency = res.Price.Currency
		f.Price = res.Price.RegularMarketPrice.Raw
		f.MarketCap = res.Price.MarketCap.Raw
	}
	if res.AssetProfile != nil {
		f.Sector = res.AssetProfile.Sector
		f.Industry = res.AssetProfile.Industry
	}
	if sd := res.SummaryDetail; sd != nil {
		f.TrailingPE = sd.TrailingPE.Raw
		f.ForwardPE = sd.ForwardPE.Raw
		f.DividendYield = sd.DividendYield.Raw
		f.Beta = sd.Beta.Raw
		f.FiftyTwoWeekHigh = sd.FiftyTwoWeekHigh.Raw
		f.FiftyTwoWeekLow = sd.FiftyTwoWeekLow.Raw
		f.PriceToSales = sd.PriceToSales.Raw
	}
	if ks := res.DefaultKeyStatistics; ks != nil {
		f.TrailingEPS = ks.TrailingEPS.Raw
		f.BookValue = ks.BookValue.Raw
		f.PriceToBook = ks.PriceToBook.Raw
		f.PEGRatio = ks.PEGRatio.Raw
		f.SharesOutstanding = ks.SharesOutstanding.Raw
	}
	if fd := res.FinancialData; fd != nil {
		f.ReturnOnEquity = fd.ReturnOnEquity.Raw
		f.ReturnOnAssets = fd.ReturnOnAssets.Raw
		f.DebtToEquity = fd.DebtToEquity.Raw
		f.CurrentRatio = fd.CurrentRatio.Raw
		f.QuickRatio = fd.QuickRatio.Raw
		f.GrossMargin = fd.GrossMargins.Raw
		f.OperatingMargin = fd.OperatingMargins.Raw
		f.NetMargin = fd.ProfitMargins.Raw
		f.RevenueGrowth = fd.RevenueGrowth.Raw
		f.EarningsGrowth = fd.EarningsGrowth.Raw
		f.FreeCashFlow = fd.FreeCashFlow.Raw
		f.OperatingCashFlow = fd.OperatingCashFlow.Raw
		f.TotalDebt = fd.TotalDebt.Raw
		f.TotalCash = fd.TotalCash.Raw
	}
	return f, nil
}
