package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	MarketData struct {
		ChartBaseURL   string        `yaml:"chart_base_url"`
		SummaryBaseURL string        `yaml:"summary_base_url"`
		UserAgent      string        `yaml:"user_agent"`
		Timeout        time.Duration `yaml:"timeout"`
		BenchmarkIndex string        `yaml:"benchmark_index"`
		Indices        []string      `yaml:"indices"`
	} `yaml:"marketdata"`
	News struct {
		FeedBaseURL    string        `yaml:"feed_base_url"`
		Timeout        time.Duration `yaml:"timeout"`
		TickerLimit    int           `yaml:"ticker_limit"`
		PortfolioLimit int           `yaml:"portfolio_limit"`
	} `yaml:"news"`
	Analytics struct {
		BatchWorkers int `yaml:"batch_workers"`
		CacheTTL     struct {
			MarketStatus time.Duration `yaml:"market_status"`
			Quote        time.Duration `yaml:"quote"`
			Analysis     time.Duration `yaml:"analysis"`
			History      time.Duration `yaml:"history"`
			News         time.Duration `yaml:"news"`
		} `yaml:"cache_ttl"`
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"analytics"`
	RateLimit struct {
		Enabled bool    `yaml:"enabled"`
		Rate    float64 `yaml:"rate"`
		Burst   int     `yaml:"burst"`
	} `yaml:"ratelimit"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("SERVER_PORT"); v != "" {
		fmt.Sscanf(v, "%d", &c.Server.Port)
	}
	if v := os.Getenv("BENCHMARK_INDEX"); v != "" {
		c.MarketData.BenchmarkIndex = v
	}
	if v := os.Getenv("INDICES"); v != "" {
		c.MarketData.Indices = strings.Split(v, ",")
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Analytics.Redis.Enabled = true
		c.Analytics.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Analytics.Redis.Password = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.MarketData.ChartBaseURL == "" {
		c.MarketData.ChartBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	}
	if c.MarketData.SummaryBaseURL == "" {
		c.MarketData.SummaryBaseURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary"
	}
	if c.MarketData.UserAgent == "" {
		c.MarketData.UserAgent = "Mozilla/5.0 (compatible; StockPulse/1.0)"
	}
	if c.MarketData.Timeout == 0 {
		c.MarketData.Timeout = 10 * time.Second
	}
	if c.MarketData.BenchmarkIndex == "" {
		c.MarketData.BenchmarkIndex = "^NSEI"
	}
	if len(c.MarketData.Indices) == 0 {
		c.MarketData.Indices = []string{"^NSEI", "^BSESN"}
	}
	if c.News.FeedBaseURL == "" {
		c.News.FeedBaseURL = "https://news.google.com/rss/search"
	}
	if c.News.Timeout == 0 {
		c.News.Timeout = 10 * time.Second
	}
	if c.News.TickerLimit == 0 {
		c.News.TickerLimit = 10
	}
	if c.News.PortfolioLimit == 0 {
		c.News.PortfolioLimit = 5
	}
	if c.Analytics.BatchWorkers == 0 {
		c.Analytics.BatchWorkers = 8
	}
	ttl := &c.Analytics.CacheTTL
	if ttl.MarketStatus == 0 {
		ttl.MarketStatus = time.Minute
	}
	if ttl.Quote == 0 {
		ttl.Quote = 30 * time.Second
	}
	if ttl.Analysis == 0 {
		ttl.Analysis = time.Hour
	}
	if ttl.History == 0 {
		ttl.History = 5 * time.Minute
	}
	if ttl.News == 0 {
		ttl.News = 30 * time.Minute
	}
	if c.RateLimit.Rate == 0 {
		c.RateLimit.Rate = 5
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in (0, 65535], got %d", c.Server.Port)
	}
	if c.Analytics.Redis.Enabled && c.Analytics.Redis.Addr == "" {
		return fmt.Errorf("analytics.redis.addr is required when redis is enabled")
	}
	if c.MarketData.BenchmarkIndex == "" {
		return fmt.Errorf("marketdata.benchmark_index is required")
	}
	return nil
}
