package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/BrunoCesarAngst/crypto-candlestick/internal/collector"
	"github.com/BrunoCesarAngst/crypto-candlestick/internal/config"
	"github.com/BrunoCesarAngst/crypto-candlestick/internal/indicator"
	"github.com/BrunoCesarAngst/crypto-candlestick/internal/metrics"
	"github.com/BrunoCesarAngst/crypto-candlestick/internal/scheduler"
	"github.com/BrunoCesarAngst/crypto-candlestick/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] crypto-candlestick dashboard starting...")

	godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("[FATAL] resolve timezone: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if os.Getenv("USE_MOCK_DATA") == "true" {
		fetcher = &collector.MockFetcher{}
	} else {
		fetcher = collector.NewBinanceFetcher(cfg.Binance.BaseURL, cfg.Binance.Proxy, cfg.RequestTimeout(), loc)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init indicator engine
	engine := indicator.NewEngine(indicator.Config{
		SMAWindow:      cfg.Indicators.SMAWindow,
		EMASpan:        cfg.Indicators.EMASpan,
		RSIWindow:      cfg.Indicators.RSIWindow,
		MACDFast:       cfg.Indicators.MACDFast,
		MACDSlow:       cfg.Indicators.MACDSlow,
		MACDSignal:     cfg.Indicators.MACDSignal,
		CCIWindow:      cfg.Indicators.CCIWindow,
		ADXWindow:      cfg.Indicators.ADXWindow,
		BollingerSigma: cfg.Indicators.BollingerSigma,
		Rule:           cfg.Rule(),
		RSIOversold:    cfg.Strategy.RSIOversold,
		RSIOverbought:  cfg.Strategy.RSIOverbought,
	})

	met := metrics.New(prometheus.DefaultRegisterer)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init refresher
	refresher := scheduler.NewRefresher(ctx, fetcher, engine, met, cfg.Binance.Limit, cfg.RefreshInterval())
	if err := refresher.RegisterWarm(cfg.Market.DefaultSymbol, cfg.Market.DefaultInterval); err != nil {
		log.Fatalf("[FATAL] register warm refresh: %v", err)
	}
	refresher.Start()
	defer refresher.Stop()

	// Serve the dashboard
	srv := server.New(cfg, refresher)
	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	log.Printf("[INFO] dashboard ready on http://localhost:%d (default view %s %s)",
		cfg.Server.Port, cfg.Market.DefaultSymbol, cfg.Market.DefaultInterval)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] shutdown: %v", err)
	}
	log.Println("[INFO] dashboard stopped")
}
