package logger

import (
	"sync"
	"time"
)

// Sink receives the aggregated entries on every flush.
type Sink interface {
	Flush(entries []AggregatedEntry)
}

// CollectionConfig tunes the error-log aggregator.
type CollectionConfig struct {
	Interval  time.Duration // periodic flush interval
	Threshold int           // max distinct entries before an early flush
	Sink      Sink          // flush target; defaults to a summary line on the owning logger
}

// AggregatedEntry is one deduplicated log line with its occurrence window.
type AggregatedEntry struct {
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields"`
	Caller    string                 `json:"caller"`
	Count     int                    `json:"count"`
	FirstSeen time.Time              `json:"first_seen"`
	LastSeen  time.Time              `json:"last_seen"`
}

// LogCollector deduplicates repeated error logs and flushes periodic digests,
// keeping a provider outage from flooding the log stream with identical lines.
// Entries are keyed by level, message and call site; the fields of the first
// occurrence are kept as the sample.
type LogCollector struct {
	config *CollectionConfig
	logMap map[string]*AggregatedEntry
	mutex  sync.Mutex
	done   chan struct{}
	wg     sync.WaitGroup
}

func NewLogCollector(config *CollectionConfig) *LogCollector {
	if config.Interval <= 0 {
		config.Interval = 30 * time.Second
	}
	if config.Threshold <= 0 {
		config.Threshold = 100
	}

	c := &LogCollector{
		config: config,
		logMap: make(map[string]*AggregatedEntry),
		done:   make(chan struct{}),
	}

	c.wg.Add(1)
	go c.periodicFlush()

	return c
}

// Record folds one log occurrence into the aggregate.
func (c *LogCollector) Record(level, message string, fields map[string]interface{}, caller string) {
	now := time.Now()
	key := level + "|" + message + "|" + caller

	c.mutex.Lock()
	if entry, exists := c.logMap[key]; exists {
		entry.Count++
		entry.LastSeen = now
	} else {
		c.logMap[key] = &AggregatedEntry{
			Level:     level,
			Message:   message,
			Fields:    fields,
			Caller:    caller,
			Count:     1,
			FirstSeen: now,
			LastSeen:  now,
		}
	}
	flush := len(c.logMap) >= c.config.Threshold
	var entries []AggregatedEntry
	if flush {
		entries = c.drain()
	}
	c.mutex.Unlock()

	if flush {
		c.config.Sink.Flush(entries)
	}
}

// drain snapshots and resets the map. Caller holds the mutex.
func (c *LogCollector) drain() []AggregatedEntry {
	if len(c.logMap) == 0 {
		return nil
	}
	entries := make([]AggregatedEntry, 0, len(c.logMap))
	for _, entry := range c.logMap {
		entries = append(entries, *entry)
	}
	c.logMap = make(map[string]*AggregatedEntry)
	return entries
}

func (c *LogCollector) flush() {
	c.mutex.Lock()
	entries := c.drain()
	c.mutex.Unlock()

	if len(entries) > 0 {
		c.config.Sink.Flush(entries)
	}
}

func (c *LogCollector) periodicFlush() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.flush()
		case <-c.done:
			// Final flush before shutdown.
			c.flush()
			return
		}
	}
}

func (c *LogCollector) Close() {
	close(c.done)
	c.wg.Wait()
}
