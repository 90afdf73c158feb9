package models

// NewsItem is a single headline row from the news provider.
type NewsItem struct {
	Ticker    string `json:"ticker,omitempty"`
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	Link      string `json:"link"`
	Published string `json:"published"`
	Summary   string `json:"summary"`
}

// HeadlineScore is the per-headline sentiment breakdown.
type HeadlineScore struct {
	Headline string  `json:"headline"`
	Compound float64 `json:"compound"`
	Adjusted float64 `json:"adjusted"`
}

// SentimentReport aggregates headline scores into a labeled reading.
type SentimentReport struct {
	Score     float64         `json:"score"`
	Label     string          `json:"label"`
	Detail    string          `json:"detail"`
	Headlines []HeadlineScore `json:"headlines,omitempty"`
	Count     int             `json:"headline_count"`
}

// TickerNews is the /news/:ticker payload.
type TickerNews struct {
	Ticker    string          `json:"ticker"`
	Items     []NewsItem      `json:"items"`
	Sentiment SentimentReport `json:"sentiment"`
}

// PortfolioNews merges per-ticker headlines with an aggregate reading.
type PortfolioNews struct {
	Items     []NewsItem        `json:"items"`
	Sentiment SentimentReport   `json:"sentiment"`
	Errors    map[string]string `json:"errors,omitempty"`
}
