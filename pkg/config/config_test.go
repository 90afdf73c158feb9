package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "environment: test\n")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 8000 {
		t.Errorf("port = %d, want 8000", c.Server.Port)
	}
	if c.MarketData.BenchmarkIndex != "^NSEI" {
		t.Errorf("benchmark = %q", c.MarketData.BenchmarkIndex)
	}
	if c.Analytics.CacheTTL.Analysis != time.Hour {
		t.Errorf("analysis ttl = %v, want 1h", c.Analytics.CacheTTL.Analysis)
	}
	if c.Analytics.BatchWorkers != 8 {
		t.Errorf("batch workers = %d, want 8", c.Analytics.BatchWorkers)
	}
}

func TestLoadRejectsMissingEnvironment(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for empty environment")
	}
}

func TestLoadRejectsRedisWithoutAddr(t *testing.T) {
	path := writeConfig(t, "environment: test\nanalytics:\n  redis:\n    enabled: true\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for redis without addr")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("BENCHMARK_INDEX", "^GSPC")

	c, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 9100 {
		t.Errorf("port = %d, want 9100", c.Server.Port)
	}
	if c.MarketData.BenchmarkIndex != "^GSPC" {
		t.Errorf("benchmark = %q, want ^GSPC", c.MarketData.BenchmarkIndex)
	}
}
