// Package news implements the headline provider on the Google News RSS
// search feed.
package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"StockPulse/internal/domain/models"
	"StockPulse/pkg/config"
	"StockPulse/pkg/metrics"
)

const summaryMaxChars = 200

// markupPattern strips the HTML fragments Google embeds in item summaries.
var markupPattern = regexp.MustCompile(`<[^<]+?>`)

// GoogleProvider implements repository.NewsProvider over the RSS search
// feed, region-pinned to Indian English results.
type GoogleProvider struct {
	parser  *gofeed.Parser
	baseURL string
	rec     *metrics.Recorder
}

// NewGoogleProvider creates a provider from config.
func NewGoogleProvider(cfg *config.Config, rec *metrics.Recorder) *GoogleProvider {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: cfg.News.Timeout}
	return &GoogleProvider{
		parser:  parser,
		baseURL: cfg.News.FeedBaseURL,
		rec:     rec,
	}
}

// Headlines fetches up to limit recent items for the query. Feed titles
// arrive as "headline - Publisher"; the publisher splits off the last
// separator, defaulting to "Unknown" when absent.
func (p *GoogleProvider) Headlines(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error) {
	p.rec.RecordProviderRequest("google_news", "headlines")
	start := time.Now()
	defer func() { p.rec.RecordLatency("news_headlines", time.Since(start).Seconds()) }()

	feedURL := fmt.Sprintf("%s?q=%s&hl=en-IN&gl=IN&ceid=IN:en", p.baseURL, url.QueryEscape(symbol))
	feed, err := p.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		p.rec.RecordError("news_fetch")
		return nil, fmt.Errorf("news feed %s: %w", symbol, err)
	}

	items := feed.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	out := make([]models.NewsItem, 0, len(items))
	for _, item := range items {
		headline, publisher := splitPublisher(item.Title)
		out = append(out, models.NewsItem{
			Title:     headline,
			Publisher: publisher,
			Link:      item.Link,
			Published: item.Published,
			Summary:   cleanSummary(item.Description),
		})
	}
	return out, nil
}

func splitPublisher(title string) (headline, publisher string) {
	if idx := strings.LastIndex(title, " - "); idx >= 0 {
		return title[:idx], title[idx+3:]
	}
	return title, "Unknown"
}

func cleanSummary(raw string) string {
	clean := markupPattern.ReplaceAllString(raw, "")
	runes := []rune(clean)
	if len(runes) > summaryMaxChars {
		return string(runes[:summaryMaxChars])
	}
	return clean
}
