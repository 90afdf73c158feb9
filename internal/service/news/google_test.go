package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"StockPulse/pkg/config"
	"StockPulse/pkg/metrics"
)

var (
	recOnce sync.Once
	testRec *metrics.Recorder
)

func newTestProvider(baseURL string) *GoogleProvider {
	recOnce.Do(func() { testRec = metrics.New() })
	cfg := &config.Config{}
	cfg.News.FeedBaseURL = baseURL
	cfg.News.Timeout = 5 * time.Second
	return NewGoogleProvider(cfg, testRec)
}

const feedBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>search results</title>
<item>
<title>Shares surge after record quarter - Business Daily</title>
<link>https://example.com/a</link>
<pubDate>Mon, 10 Jun 2024 08:00:00 GMT</pubDate>
<description>&lt;a href="x"&gt;Shares&lt;/a&gt; surged &lt;b&gt;sharply&lt;/b&gt; today.</description>
</item>
<item>
<title>Headline without a publisher separator</title>
<link>https://example.com/b</link>
<pubDate>Mon, 10 Jun 2024 09:00:00 GMT</pubDate>
<description></description>
</item>
<item>
<title>Third item - Extra Wire</title>
<link>https://example.com/c</link>
<pubDate>Mon, 10 Jun 2024 10:00:00 GMT</pubDate>
<description></description>
</item>
</channel>
</rss>`

func TestHeadlinesParsesFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "TCS.NS" {
			t.Errorf("query = %q, want TCS.NS", q)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, feedBody)
	}))
	defer srv.Close()

	items, err := newTestProvider(srv.URL).Headlines(context.Background(), "TCS.NS", 10)
	if err != nil {
		t.Fatalf("Headlines: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	if items[0].Title != "Shares surge after record quarter" {
		t.Errorf("title = %q", items[0].Title)
	}
	if items[0].Publisher != "Business Daily" {
		t.Errorf("publisher = %q", items[0].Publisher)
	}
	if strings.ContainsAny(items[0].Summary, "<>") {
		t.Errorf("summary should be stripped of markup: %q", items[0].Summary)
	}
	if items[1].Publisher != "Unknown" {
		t.Errorf("missing separator publisher = %q, want Unknown", items[1].Publisher)
	}
}

func TestHeadlinesLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feedBody)
	}))
	defer srv.Close()

	items, err := newTestProvider(srv.URL).Headlines(context.Background(), "TCS.NS", 2)
	if err != nil {
		t.Fatalf("Headlines: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("items = %d, want limit 2", len(items))
	}
}

func TestSplitPublisherKeepsInnerDashes(t *testing.T) {
	headline, publisher := splitPublisher("Q1 results - a mixed bag - The Paper")
	if headline != "Q1 results - a mixed bag" || publisher != "The Paper" {
		t.Errorf("split = %q / %q", headline, publisher)
	}
}

func TestCleanSummaryTruncates(t *testing.T) {
	long := strings.Repeat("x", 300)
	if got := cleanSummary(long); len(got) != 200 {
		t.Errorf("summary length = %d, want 200", len(got))
	}
}
