package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/BrunoCesarAngst/crypto-candlestick/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port           int `yaml:"port"`
		RefreshSeconds int `yaml:"refresh_seconds"`
	} `yaml:"server"`
	Binance struct {
		BaseURL        string `yaml:"base_url"`
		Proxy          string `yaml:"proxy"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		Limit          int    `yaml:"limit"`
	} `yaml:"binance"`
	Market struct {
		Symbols         []string `yaml:"symbols"`
		Intervals       []string `yaml:"intervals"`
		DefaultSymbol   string   `yaml:"default_symbol"`
		DefaultInterval string   `yaml:"default_interval"`
		Timezone        string   `yaml:"timezone"`
	} `yaml:"market"`
	Indicators struct {
		SMAWindow      int     `yaml:"sma_window"`
		EMASpan        int     `yaml:"ema_span"`
		RSIWindow      int     `yaml:"rsi_window"`
		MACDFast       int     `yaml:"macd_fast"`
		MACDSlow       int     `yaml:"macd_slow"`
		MACDSignal     int     `yaml:"macd_signal"`
		CCIWindow      int     `yaml:"cci_window"`
		ADXWindow      int     `yaml:"adx_window"`
		BollingerSigma float64 `yaml:"bollinger_sigma"`
	} `yaml:"indicators"`
	Strategy struct {
		Rule          string  `yaml:"rule"`
		RSIOversold   float64 `yaml:"rsi_oversold"`
		RSIOverbought float64 `yaml:"rsi_overbought"`
	} `yaml:"strategy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("BINANCE_BASE_URL"); v != "" {
		cfg.Binance.BaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Binance.Proxy = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.Market.DefaultSymbol = v
	}
	if v := os.Getenv("INTERVAL"); v != "" {
		cfg.Market.DefaultInterval = v
	}
	if v := os.Getenv("TIMEZONE"); v != "" {
		cfg.Market.Timezone = v
	}
	if v := os.Getenv("STRATEGY_RULE"); v != "" {
		cfg.Strategy.Rule = v
	}

	// Defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8050
	}
	if cfg.Server.RefreshSeconds == 0 {
		cfg.Server.RefreshSeconds = 15
	}
	if cfg.Binance.BaseURL == "" {
		cfg.Binance.BaseURL = "https://api.binance.com"
	}
	if cfg.Binance.TimeoutSeconds == 0 {
		cfg.Binance.TimeoutSeconds = 10
	}
	if cfg.Binance.Limit == 0 {
		cfg.Binance.Limit = model.MaxWindowSize
	}
	if len(cfg.Market.Symbols) == 0 {
		cfg.Market.Symbols = []string{"BTCUSDT", "ETHUSDT", "SOLUSDT"}
	}
	if len(cfg.Market.Intervals) == 0 {
		cfg.Market.Intervals = []string{"1m", "3m", "5m", "10m", "15m", "30m", "1h", "4h", "1d"}
	}
	if cfg.Market.DefaultSymbol == "" {
		cfg.Market.DefaultSymbol = "BTCUSDT"
	}
	if cfg.Market.DefaultInterval == "" {
		cfg.Market.DefaultInterval = "5m"
	}
	if cfg.Market.Timezone == "" {
		cfg.Market.Timezone = "UTC"
	}
	if cfg.Indicators.SMAWindow == 0 {
		cfg.Indicators.SMAWindow = 20
	}
	if cfg.Indicators.EMASpan == 0 {
		cfg.Indicators.EMASpan = 20
	}
	if cfg.Indicators.RSIWindow == 0 {
		cfg.Indicators.RSIWindow = 14
	}
	if cfg.Indicators.MACDFast == 0 {
		cfg.Indicators.MACDFast = 12
	}
	if cfg.Indicators.MACDSlow == 0 {
		cfg.Indicators.MACDSlow = 26
	}
	if cfg.Indicators.MACDSignal == 0 {
		cfg.Indicators.MACDSignal = 9
	}
	if cfg.Indicators.CCIWindow == 0 {
		cfg.Indicators.CCIWindow = 20
	}
	if cfg.Indicators.ADXWindow == 0 {
		cfg.Indicators.ADXWindow = 14
	}
	if cfg.Indicators.BollingerSigma == 0 {
		cfg.Indicators.BollingerSigma = 2.0
	}
	if cfg.Strategy.Rule == "" {
		cfg.Strategy.Rule = string(model.RuleRSI)
	}
	if cfg.Strategy.RSIOversold == 0 {
		cfg.Strategy.RSIOversold = 30
	}
	if cfg.Strategy.RSIOverbought == 0 {
		cfg.Strategy.RSIOverbought = 70
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Server.RefreshSeconds <= 0 {
		return fmt.Errorf("server.refresh_seconds must be positive")
	}
	if c.Binance.TimeoutSeconds <= 0 {
		return fmt.Errorf("binance.timeout_seconds must be positive")
	}
	if c.Binance.Limit < 1 || c.Binance.Limit > model.MaxWindowSize {
		return fmt.Errorf("binance.limit must be between 1 and %d", model.MaxWindowSize)
	}
	if len(c.Market.Symbols) == 0 {
		return fmt.Errorf("market.symbols must not be empty")
	}
	for _, interval := range c.Market.Intervals {
		if !model.SupportedInterval(interval) {
			return fmt.Errorf("market.intervals contains unsupported interval %q", interval)
		}
	}
	if !c.AllowedSymbol(c.Market.DefaultSymbol) {
		return fmt.Errorf("market.default_symbol %q is not in market.symbols", c.Market.DefaultSymbol)
	}
	if !c.AllowedInterval(c.Market.DefaultInterval) {
		return fmt.Errorf("market.default_interval %q is not in market.intervals", c.Market.DefaultInterval)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("market.timezone: %w", err)
	}
	for name, w := range map[string]int{
		"indicators.sma_window":  c.Indicators.SMAWindow,
		"indicators.ema_span":    c.Indicators.EMASpan,
		"indicators.rsi_window":  c.Indicators.RSIWindow,
		"indicators.macd_fast":   c.Indicators.MACDFast,
		"indicators.macd_slow":   c.Indicators.MACDSlow,
		"indicators.macd_signal": c.Indicators.MACDSignal,
		"indicators.cci_window":  c.Indicators.CCIWindow,
		"indicators.adx_window":  c.Indicators.ADXWindow,
	} {
		if w <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if c.Indicators.MACDFast >= c.Indicators.MACDSlow {
		return fmt.Errorf("indicators.macd_fast must be smaller than indicators.macd_slow")
	}
	if c.Indicators.BollingerSigma <= 0 {
		return fmt.Errorf("indicators.bollinger_sigma must be positive")
	}
	if !c.Rule().Known() {
		return fmt.Errorf("strategy.rule %q is not a known rule", c.Strategy.Rule)
	}
	if c.Strategy.RSIOversold <= 0 || c.Strategy.RSIOverbought >= 100 ||
		c.Strategy.RSIOversold >= c.Strategy.RSIOverbought {
		return fmt.Errorf("strategy rsi thresholds must satisfy 0 < oversold < overbought < 100")
	}
	return nil
}

// RefreshInterval is the page and snapshot refresh cadence.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Server.RefreshSeconds) * time.Second
}

// RequestTimeout bounds one upstream klines request.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Binance.TimeoutSeconds) * time.Second
}

// Location resolves the display timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Market.Timezone)
}

// Rule returns the configured signal rule.
func (c *Config) Rule() model.SignalRule {
	return model.SignalRule(c.Strategy.Rule)
}

// AllowedSymbol reports whether the symbol is configured.
func (c *Config) AllowedSymbol(symbol string) bool {
	for _, s := range c.Market.Symbols {
		if s == symbol {
			return true
		}
	}
	return false
}

// AllowedInterval reports whether the interval is configured.
func (c *Config) AllowedInterval(interval string) bool {
	for _, iv := range c.Market.Intervals {
		if iv == interval {
			return true
		}
	}
	return false
}
