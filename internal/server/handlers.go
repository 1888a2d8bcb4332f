package server

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BrunoCesarAngst/crypto-candlestick/internal/render"
	"github.com/BrunoCesarAngst/crypto-candlestick/internal/scheduler"
)

type pageData struct {
	Symbols         []string
	Intervals       []string
	DefaultSymbol   string
	DefaultInterval string
	RefreshMillis   int64
	ErrorText       string
	Layers          []layerOption
}

type layerOption struct {
	Value   string
	Label   string
	Checked bool
}

// snapshotResponse is the JSON view of a scheduler snapshot. Indicator
// values are pointers so unformed positions serialize as null, never NaN.
type snapshotResponse struct {
	Symbol     string    `json:"symbol"`
	Interval   string    `json:"interval"`
	Signal     string    `json:"signal"`
	Reason     string    `json:"reason"`
	Error      string    `json:"error,omitempty"`
	FetchedAt  time.Time `json:"fetched_at"`
	Bars       int       `json:"bars"`
	WindowHigh *float64  `json:"window_high,omitempty"`
	WindowLow  *float64  `json:"window_low,omitempty"`
	Last       *lastRow  `json:"last,omitempty"`
}

type lastRow struct {
	Time           time.Time `json:"time"`
	Open           float64   `json:"open"`
	High           float64   `json:"high"`
	Low            float64   `json:"low"`
	Close          float64   `json:"close"`
	SMA            *float64  `json:"sma"`
	EMA            *float64  `json:"ema"`
	RSI            *float64  `json:"rsi"`
	MACD           *float64  `json:"macd"`
	MACDSignal     *float64  `json:"macd_signal"`
	CCI            *float64  `json:"cci"`
	ADX            *float64  `json:"adx"`
	BollingerUpper *float64  `json:"bollinger_upper"`
	BollingerLower *float64  `json:"bollinger_lower"`
	Projection     *float64  `json:"projection"`
	Buy            bool      `json:"buy"`
	Sell           bool      `json:"sell"`
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard", pageData{
		Symbols:         s.cfg.Market.Symbols,
		Intervals:       s.cfg.Market.Intervals,
		DefaultSymbol:   s.cfg.Market.DefaultSymbol,
		DefaultInterval: s.cfg.Market.DefaultInterval,
		RefreshMillis:   s.cfg.RefreshInterval().Milliseconds(),
		ErrorText:       scheduler.ErrLoadMessage,
		Layers:          layerOptions(),
	})
}

func (s *Server) handleChart(c *gin.Context) {
	symbol, interval, ok := s.requestedView(c)
	if !ok {
		return
	}

	layers := render.DefaultLayers()
	if _, present := c.GetQuery("layers"); present {
		layers = render.ParseLayers(c.QueryArray("layers"))
	}

	snap := s.refresher.Snapshot(c.Request.Context(), symbol, interval)
	chart := render.Chart(snap.Frame, snap.Signal, layers)
	if snap.Err != nil {
		chart = render.RenderError("Failed to load data")
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := chart.Render(c.Writer); err != nil {
		log.Printf("[ERROR] render chart: %v", err)
	}
}

func (s *Server) handleSnapshot(c *gin.Context) {
	symbol, interval, ok := s.requestedView(c)
	if !ok {
		return
	}
	snap := s.refresher.Snapshot(c.Request.Context(), symbol, interval)
	c.JSON(http.StatusOK, buildSnapshotResponse(snap))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// requestedView resolves and validates the symbol and interval query
// params, writing a 400 response when either is unknown.
func (s *Server) requestedView(c *gin.Context) (symbol, interval string, ok bool) {
	symbol = c.DefaultQuery("symbol", s.cfg.Market.DefaultSymbol)
	interval = c.DefaultQuery("interval", s.cfg.Market.DefaultInterval)
	if !s.cfg.AllowedSymbol(symbol) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown symbol %q", symbol)})
		return "", "", false
	}
	if !s.cfg.AllowedInterval(interval) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown interval %q", interval)})
		return "", "", false
	}
	return symbol, interval, true
}

func buildSnapshotResponse(snap *scheduler.Snapshot) snapshotResponse {
	resp := snapshotResponse{
		Symbol:    snap.Symbol,
		Interval:  snap.Interval,
		Signal:    string(snap.Signal),
		Reason:    snap.Reason,
		FetchedAt: snap.FetchedAt,
		Bars:      len(snap.Frame.Series),
	}
	// An empty frame means nothing could be plotted, whether the fetch
	// failed or the upstream simply had no rows.
	if snap.Err != nil || snap.Frame.IsEmpty() {
		resp.Error = scheduler.ErrLoadMessage
	}

	frame := snap.Frame
	last := frame.LastIndex()
	if last < 0 {
		return resp
	}
	if high, low, ok := frame.Series.WindowRange(); ok {
		resp.WindowHigh = &high
		resp.WindowLow = &low
	}
	point := frame.Series[last]
	resp.Last = &lastRow{
		Time:           point.Time,
		Open:           point.Open.InexactFloat64(),
		High:           point.High.InexactFloat64(),
		Low:            point.Low.InexactFloat64(),
		Close:          point.Close.InexactFloat64(),
		SMA:            floatPtr(frame.SMA[last]),
		EMA:            floatPtr(frame.EMA[last]),
		RSI:            floatPtr(frame.RSI[last]),
		MACD:           floatPtr(frame.MACD[last]),
		MACDSignal:     floatPtr(frame.MACDSignal[last]),
		CCI:            floatPtr(frame.CCI[last]),
		ADX:            floatPtr(frame.ADX[last]),
		BollingerUpper: floatPtr(frame.BollingerUpper[last]),
		BollingerLower: floatPtr(frame.BollingerLower[last]),
		Projection:     floatPtr(frame.Projection[last]),
		Buy:            frame.Buy[last],
		Sell:           frame.Sell[last],
	}
	return resp
}

func layerOptions() []layerOption {
	labels := map[render.Layer]string{
		render.LayerCandles:        "Candles",
		render.LayerMovingAverages: "Moving Averages",
		render.LayerBollinger:      "Bollinger Bands",
		render.LayerSignals:        "Buy/Sell Signals",
		render.LayerProjection:     "Projection",
	}
	defaults := render.DefaultLayers()
	options := make([]layerOption, 0, len(labels))
	for _, l := range render.AllLayers() {
		options = append(options, layerOption{
			Value:   string(l),
			Label:   labels[l],
			Checked: defaults.Has(l),
		})
	}
	return options
}

func floatPtr(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
