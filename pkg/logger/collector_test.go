package logger

import (
	"sync"
	"testing"
	"time"
)

type recordingSink struct {
	mu      sync.Mutex
	flushes [][]AggregatedEntry
}

func (s *recordingSink) Flush(entries []AggregatedEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushes = append(s.flushes, entries)
}

func (s *recordingSink) all() []AggregatedEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []AggregatedEntry
	for _, f := range s.flushes {
		out = append(out, f...)
	}
	return out
}

func TestCollectorDeduplicatesByCallSite(t *testing.T) {
	sink := &recordingSink{}
	c := NewLogCollector(&CollectionConfig{Interval: time.Hour, Threshold: 100, Sink: sink})

	for i := 0; i < 3; i++ {
		c.Record("error", "chart fetch failed", map[string]interface{}{"symbol": "A.NS"}, "marketdata/yahoo.go:120")
	}
	c.Record("error", "feed unavailable", nil, "news/google.go:80")
	c.Close()

	entries := sink.all()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2 deduplicated", len(entries))
	}
	counts := map[string]int{}
	for _, e := range entries {
		counts[e.Message] = e.Count
	}
	if counts["chart fetch failed"] != 3 {
		t.Errorf("repeated entry count = %d, want 3", counts["chart fetch failed"])
	}
	if counts["feed unavailable"] != 1 {
		t.Errorf("singleton count = %d, want 1", counts["feed unavailable"])
	}
}

func TestCollectorFlushesOnThreshold(t *testing.T) {
	sink := &recordingSink{}
	c := NewLogCollector(&CollectionConfig{Interval: time.Hour, Threshold: 2, Sink: sink})
	defer c.Close()

	c.Record("error", "first", nil, "a.go:1")
	c.Record("error", "second", nil, "b.go:2")

	if len(sink.all()) != 2 {
		t.Fatalf("threshold flush should have drained both entries, got %d", len(sink.all()))
	}
}

func TestCollectorTracksOccurrenceWindow(t *testing.T) {
	sink := &recordingSink{}
	c := NewLogCollector(&CollectionConfig{Interval: time.Hour, Threshold: 100, Sink: sink})

	c.Record("error", "boom", nil, "a.go:1")
	c.Record("error", "boom", nil, "a.go:1")
	c.Close()

	entries := sink.all()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].LastSeen.Before(entries[0].FirstSeen) {
		t.Error("last_seen precedes first_seen")
	}
}
