package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func loadDefaults(t *testing.T) *Config {
	t.Helper()
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := loadDefaults(t)

	if cfg.Server.Port != 8050 {
		t.Errorf("port = %d, want 8050", cfg.Server.Port)
	}
	if cfg.Server.RefreshSeconds != 15 {
		t.Errorf("refresh_seconds = %d, want 15", cfg.Server.RefreshSeconds)
	}
	if cfg.Binance.BaseURL != "https://api.binance.com" {
		t.Errorf("base_url = %s", cfg.Binance.BaseURL)
	}
	if cfg.Binance.Limit != 100 {
		t.Errorf("limit = %d, want 100", cfg.Binance.Limit)
	}
	if cfg.Market.DefaultSymbol != "BTCUSDT" || cfg.Market.DefaultInterval != "5m" {
		t.Errorf("default view = %s %s", cfg.Market.DefaultSymbol, cfg.Market.DefaultInterval)
	}
	if cfg.Market.Timezone != "UTC" {
		t.Errorf("timezone = %s, want UTC", cfg.Market.Timezone)
	}
	if cfg.Indicators.SMAWindow != 20 || cfg.Indicators.RSIWindow != 14 {
		t.Errorf("indicator windows = %+v", cfg.Indicators)
	}
	if cfg.Strategy.Rule != "rsi" {
		t.Errorf("rule = %s, want rsi", cfg.Strategy.Rule)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  port: 9000
market:
  default_interval: 1h
strategy:
  rule: bollinger
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Market.DefaultInterval != "1h" {
		t.Errorf("default_interval = %s, want 1h", cfg.Market.DefaultInterval)
	}
	if cfg.Strategy.Rule != "bollinger" {
		t.Errorf("rule = %s, want bollinger", cfg.Strategy.Rule)
	}
	// Untouched sections keep their defaults.
	if cfg.Binance.TimeoutSeconds != 10 {
		t.Errorf("timeout_seconds = %d, want 10", cfg.Binance.TimeoutSeconds)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [whoops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("SYMBOL", "ETHUSDT")
	t.Setenv("INTERVAL", "15m")
	t.Setenv("STRATEGY_RULE", "bollinger")

	cfg := loadDefaults(t)
	if cfg.Server.Port != 9100 {
		t.Errorf("port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.Market.DefaultSymbol != "ETHUSDT" {
		t.Errorf("default_symbol = %s, want ETHUSDT", cfg.Market.DefaultSymbol)
	}
	if cfg.Market.DefaultInterval != "15m" {
		t.Errorf("default_interval = %s, want 15m", cfg.Market.DefaultInterval)
	}
	if cfg.Rule() != "bollinger" {
		t.Errorf("rule = %s, want bollinger", cfg.Rule())
	}
}

func TestValidate_Failures(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "unsupported interval",
			mutate:  func(c *Config) { c.Market.Intervals = append(c.Market.Intervals, "2m") },
			wantErr: "unsupported interval",
		},
		{
			name:    "default symbol missing from list",
			mutate:  func(c *Config) { c.Market.DefaultSymbol = "DOGEUSDT" },
			wantErr: "default_symbol",
		},
		{
			name:    "macd fast not below slow",
			mutate:  func(c *Config) { c.Indicators.MACDFast = 26 },
			wantErr: "macd_fast",
		},
		{
			name:    "limit above max window",
			mutate:  func(c *Config) { c.Binance.Limit = 500 },
			wantErr: "binance.limit",
		},
		{
			name:    "unknown rule",
			mutate:  func(c *Config) { c.Strategy.Rule = "magic" },
			wantErr: "strategy.rule",
		},
		{
			name:    "bad timezone",
			mutate:  func(c *Config) { c.Market.Timezone = "Mars/Olympus" },
			wantErr: "market.timezone",
		},
		{
			name:    "negative sigma",
			mutate:  func(c *Config) { c.Indicators.BollingerSigma = -1 },
			wantErr: "bollinger_sigma",
		},
		{
			name: "inverted rsi thresholds",
			mutate: func(c *Config) {
				c.Strategy.RSIOversold = 80
				c.Strategy.RSIOverbought = 70
			},
			wantErr: "thresholds",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := loadDefaults(t)
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestConfigHelpers(t *testing.T) {
	cfg := loadDefaults(t)

	if got := cfg.RefreshInterval().Seconds(); got != 15 {
		t.Errorf("refresh interval = %vs, want 15s", got)
	}
	if got := cfg.RequestTimeout().Seconds(); got != 10 {
		t.Errorf("request timeout = %vs, want 10s", got)
	}
	if !cfg.AllowedSymbol("ETHUSDT") || cfg.AllowedSymbol("DOGEUSDT") {
		t.Error("AllowedSymbol must follow market.symbols")
	}
	if !cfg.AllowedInterval("1d") || cfg.AllowedInterval("2m") {
		t.Error("AllowedInterval must follow market.intervals")
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "UTC" {
		t.Errorf("location = %v, %v", loc, err)
	}
}
