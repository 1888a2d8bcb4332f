package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/BrunoCesarAngst/crypto-candlestick/internal/collector"
	"github.com/BrunoCesarAngst/crypto-candlestick/internal/config"
	"github.com/BrunoCesarAngst/crypto-candlestick/internal/indicator"
	"github.com/BrunoCesarAngst/crypto-candlestick/internal/metrics"
	"github.com/BrunoCesarAngst/crypto-candlestick/internal/model"
	"github.com/BrunoCesarAngst/crypto-candlestick/internal/scheduler"
)

func newTestServer(t *testing.T, fetcher collector.Fetcher) *Server {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	refresher := scheduler.NewRefresher(context.Background(), fetcher,
		indicator.NewEngine(indicator.DefaultConfig()),
		metrics.New(prometheus.NewRegistry()),
		cfg.Binance.Limit, time.Minute)
	return New(cfg, refresher)
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t, &collector.MockFetcher{})
	w := get(t, srv, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	body := w.Body.String()
	for _, want := range []string{
		"Crypto Candlestick Dashboard",
		`id="symbol"`,
		`id="interval"`,
		"BTCUSDT",
		`value="5m" selected`,
		`name="layer"`,
		"/api/v1/snapshot",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %s", want)
		}
	}
	if !strings.Contains(body, `value="moving_averages" checked`) {
		t.Error("moving averages must start checked")
	}
	if strings.Contains(body, `value="bollinger" checked`) {
		t.Error("bollinger bands must start unchecked")
	}
}

func TestChartRoute(t *testing.T) {
	mock := &collector.MockFetcher{Series: collector.GenerateMockSeries(30000, 60, 5*time.Minute)}
	srv := newTestServer(t, mock)

	w := get(t, srv, "/chart")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "echarts") {
		t.Error("chart document must load echarts")
	}
	if !strings.Contains(body, `"name":"Candles"`) {
		t.Error("default chart must include the candle series")
	}
	if !strings.Contains(body, "BTC/USDT Candlesticks - Technical Indicators") {
		t.Error("chart title missing")
	}
}

func TestChartRoute_LayersParam(t *testing.T) {
	mock := &collector.MockFetcher{Series: collector.GenerateMockSeries(30000, 60, 5*time.Minute)}
	srv := newTestServer(t, mock)

	w := get(t, srv, "/chart?layers=candles")
	body := w.Body.String()
	if !strings.Contains(body, `"name":"Candles"`) {
		t.Error("candles layer missing")
	}
	if strings.Contains(body, `"name":"SMA 20"`) {
		t.Error("unselected layers must not render")
	}
}

func TestChartRoute_InvalidParams(t *testing.T) {
	srv := newTestServer(t, &collector.MockFetcher{})

	w := get(t, srv, "/chart?interval=2m")
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown interval: status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "unknown interval") {
		t.Error("expected an interval error body")
	}

	w = get(t, srv, "/chart?symbol=DOGEUSDT")
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown symbol: status = %d, want 400", w.Code)
	}
}

func TestChartRoute_UpstreamError(t *testing.T) {
	srv := newTestServer(t, &collector.MockFetcher{Err: collector.ErrUpstream})

	w := get(t, srv, "/chart")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with placeholder", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Failed to load data") {
		t.Error("placeholder chart missing")
	}
}

func TestSnapshotRoute(t *testing.T) {
	mock := &collector.MockFetcher{Series: collector.GenerateMockSeries(3000, 60, time.Hour)}
	srv := newTestServer(t, mock)

	w := get(t, srv, "/api/v1/snapshot?symbol=ETHUSDT&interval=1h")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp snapshotResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Symbol != "ETHUSDT" || resp.Interval != "1h" {
		t.Errorf("view = %s %s", resp.Symbol, resp.Interval)
	}
	if resp.Bars != 60 {
		t.Errorf("bars = %d, want 60", resp.Bars)
	}
	if resp.Error != "" {
		t.Errorf("unexpected error %q", resp.Error)
	}
	if resp.Last == nil {
		t.Fatal("last row missing")
	}
	if resp.Last.SMA == nil || resp.Last.RSI == nil {
		t.Error("formed indicators must not be null on the last row")
	}
	if resp.WindowHigh == nil || resp.WindowLow == nil {
		t.Fatal("window range missing")
	}
	if *resp.WindowHigh < *resp.WindowLow {
		t.Errorf("window high %v below window low %v", *resp.WindowHigh, *resp.WindowLow)
	}
}

func TestSnapshotRoute_EmptyUpstream(t *testing.T) {
	srv := newTestServer(t, &collector.MockFetcher{Series: model.Series{}})

	w := get(t, srv, "/api/v1/snapshot")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp snapshotResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Signal != string(model.SignalNoData) {
		t.Errorf("signal = %s, want %s", resp.Signal, model.SignalNoData)
	}
	if resp.Error != scheduler.ErrLoadMessage {
		t.Errorf("empty window must surface the inline message, got %q", resp.Error)
	}
	if resp.Bars != 0 || resp.WindowHigh != nil {
		t.Error("empty window must carry no bars or range")
	}
}

func TestSnapshotRoute_UpstreamError(t *testing.T) {
	srv := newTestServer(t, &collector.MockFetcher{Err: collector.ErrUpstream})

	w := get(t, srv, "/api/v1/snapshot")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp snapshotResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Signal != string(model.SignalNoData) {
		t.Errorf("signal = %s, want %s", resp.Signal, model.SignalNoData)
	}
	if resp.Error != scheduler.ErrLoadMessage {
		t.Errorf("error = %q, want %q", resp.Error, scheduler.ErrLoadMessage)
	}
	if resp.Bars != 0 || resp.Last != nil {
		t.Error("failed snapshot must be empty")
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &collector.MockFetcher{})
	w := get(t, srv, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ok") {
		t.Error("health body missing status")
	}
}

func TestMetricsRoute(t *testing.T) {
	srv := newTestServer(t, &collector.MockFetcher{})
	w := get(t, srv, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}
