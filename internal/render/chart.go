package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/BrunoCesarAngst/crypto-candlestick/internal/model"
)

const (
	colorUp    = "lime"
	colorDown  = "red"
	colorSMA   = "blue"
	colorEMA   = "orange"
	colorBand  = "#8e8e93"
	colorTrend = "white"

	chartBackground = "#121212"

	errorTitle = "Failed to load data"
)

// quoteAssets are the Binance quote suffixes recognized when splitting
// a pair for display.
var quoteAssets = []string{"USDT", "USDC", "BUSD", "TUSD", "BTC", "ETH", "BNB"}

// Chart builds the candlestick chart for a frame. Layers select which
// series are drawn. An empty frame falls back to the error placeholder
// so the embedding page never shows a blank document.
func Chart(frame *model.IndicatorFrame, signal model.Signal, layers LayerSet) *charts.Kline {
	if frame.IsEmpty() {
		return RenderError(errorTitle)
	}

	labels := axisLabels(frame)
	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithInitializationOpts(pageInit()),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s Candlesticks - Technical Indicators", DisplayPair(frame.Symbol)),
			Subtitle: fmt.Sprintf("Interval %s", frame.Interval),
			Left:     "center",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:        "Time",
			SplitNumber: 20,
			Scale:       true,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      yAxisName(frame.Symbol),
			Scale:     true,
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			XAxisIndex: []int{0},
			Start:      0,
			End:        100,
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "slider",
			XAxisIndex: []int{0},
			Start:      0,
			End:        100,
		}),
		charts.WithLegendOpts(opts.Legend{Show: true, Top: "5%"}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:        true,
			Trigger:     "axis",
			AxisPointer: &opts.AxisPointer{Type: "cross"},
		}),
	)

	kline.SetXAxis(labels)
	if layers.Has(LayerCandles) {
		kline.AddSeries("Candles", klineData(frame.Series),
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color:        colorUp,
				Color0:       colorDown,
				BorderColor:  colorUp,
				BorderColor0: colorDown,
			}),
		)
	}

	if layers.Has(LayerMovingAverages) {
		ma := charts.NewLine()
		ma.SetXAxis(labels).
			AddSeries(windowName("SMA", frame.SMAWindow), lineData(frame.SMA),
				charts.WithLineChartOpts(opts.LineChart{Smooth: true}),
				charts.WithLineStyleOpts(opts.LineStyle{Color: colorSMA, Width: 2}),
			).
			AddSeries(windowName("EMA", frame.EMAWindow), lineData(frame.EMA),
				charts.WithLineChartOpts(opts.LineChart{Smooth: true}),
				charts.WithLineStyleOpts(opts.LineStyle{Color: colorEMA, Width: 2}),
			)
		kline.Overlap(ma)
	}

	if layers.Has(LayerBollinger) {
		bb := charts.NewLine()
		bb.SetXAxis(labels).
			AddSeries("BB Upper", lineData(frame.BollingerUpper),
				charts.WithLineChartOpts(opts.LineChart{Smooth: true}),
				charts.WithLineStyleOpts(opts.LineStyle{Color: colorBand, Width: 1, Type: "dashed", Opacity: 0.5}),
			).
			AddSeries("BB Lower", lineData(frame.BollingerLower),
				charts.WithLineChartOpts(opts.LineChart{Smooth: true}),
				charts.WithLineStyleOpts(opts.LineStyle{Color: colorBand, Width: 1, Type: "dashed", Opacity: 0.5}),
			)
		kline.Overlap(bb)
	}

	if layers.Has(LayerProjection) {
		trend := charts.NewLine()
		trend.SetXAxis(labels).
			AddSeries("Trend", lineData(frame.Projection),
				charts.WithLineChartOpts(opts.LineChart{Smooth: false}),
				charts.WithLineStyleOpts(opts.LineStyle{Color: colorTrend, Width: 2, Type: "dashed"}),
			)
		kline.Overlap(trend)
	}

	if layers.Has(LayerSignals) {
		if marker := signalSeries(frame, signal, labels); marker != nil {
			kline.Overlap(marker)
		}
	}
	return kline
}

// RenderError produces a chart with no series and only a title, used
// when a snapshot failed and there is nothing to plot.
func RenderError(title string) *charts.Kline {
	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithInitializationOpts(pageInit()),
		charts.WithTitleOpts(opts.Title{Title: title, Left: "center"}),
	)
	kline.SetXAxis([]string{})
	return kline
}

// signalSeries marks the newest candle when the rule fired there.
// Flags on older rows stay unmarked.
func signalSeries(frame *model.IndicatorFrame, signal model.Signal, labels []string) *charts.Scatter {
	last := frame.LastIndex()
	if last < 0 {
		return nil
	}

	var name, color string
	rotate := 0
	switch signal {
	case model.SignalBuy:
		name, color = "BUY signal", colorUp
	case model.SignalSell:
		name, color, rotate = "SELL signal", colorDown, 180
	default:
		return nil
	}

	points := make([]opts.ScatterData, len(labels))
	for i := range points {
		points[i] = opts.ScatterData{Value: "-"}
	}
	points[last] = opts.ScatterData{
		Value:        frame.Series[last].Close.InexactFloat64(),
		Symbol:       "triangle",
		SymbolSize:   16,
		SymbolRotate: rotate,
	}

	marker := charts.NewScatter()
	marker.SetXAxis(labels).
		AddSeries(name, points, charts.WithItemStyleOpts(opts.ItemStyle{Color: color}))
	return marker
}

func pageInit() opts.Initialization {
	return opts.Initialization{
		PageTitle:       "Crypto Candlestick Dashboard",
		Theme:           "dark",
		Width:           "100%",
		Height:          "640px",
		BackgroundColor: chartBackground,
	}
}

// axisLabels formats candle times in the display timezone the series
// already carries. Daily bars drop the clock part.
func axisLabels(frame *model.IndicatorFrame) []string {
	layout := "01-02 15:04"
	if d, ok := model.IntervalDuration(frame.Interval); ok && d >= 24*time.Hour {
		layout = "2006-01-02"
	}
	labels := make([]string, len(frame.Series))
	for i, p := range frame.Series {
		labels[i] = p.Time.Format(layout)
	}
	return labels
}

func klineData(series model.Series) []opts.KlineData {
	data := make([]opts.KlineData, len(series))
	for i, p := range series {
		data[i] = opts.KlineData{Value: [4]float64{
			p.Open.InexactFloat64(),
			p.Close.InexactFloat64(),
			p.Low.InexactFloat64(),
			p.High.InexactFloat64(),
		}}
	}
	return data
}

// lineData converts a column to chart points. NaN becomes the echarts
// empty marker so unformed stretches render as gaps, not zeroes.
func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			data[i] = opts.LineData{Value: "-"}
		} else {
			data[i] = opts.LineData{Value: v}
		}
	}
	return data
}

func windowName(prefix string, window int) string {
	if window <= 0 {
		return prefix
	}
	return fmt.Sprintf("%s %d", prefix, window)
}

// DisplayPair formats a Binance symbol like BTCUSDT as BTC/USDT.
// Symbols with an unrecognized quote are returned unchanged.
func DisplayPair(symbol string) string {
	for _, q := range quoteAssets {
		if len(symbol) > len(q) && strings.HasSuffix(symbol, q) {
			return symbol[:len(symbol)-len(q)] + "/" + q
		}
	}
	return symbol
}

func yAxisName(symbol string) string {
	for _, q := range quoteAssets {
		if len(symbol) > len(q) && strings.HasSuffix(symbol, q) {
			return fmt.Sprintf("Price (%s)", q)
		}
	}
	return "Price"
}
