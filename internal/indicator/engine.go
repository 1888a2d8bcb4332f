package indicator

import (
	"log"
	"math"
	"time"

	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"

	"github.com/BrunoCesarAngst/crypto-candlestick/internal/model"
)

// Config holds the indicator windows and the flag rule. The Bollinger bands
// share SMAWindow, so both always use one window value.
type Config struct {
	SMAWindow      int
	EMASpan        int
	RSIWindow      int
	MACDFast       int
	MACDSlow       int
	MACDSignal     int
	CCIWindow      int
	ADXWindow      int
	BollingerSigma float64

	Rule          model.SignalRule
	RSIOversold   float64
	RSIOverbought float64
}

// DefaultConfig mirrors the dashboard's standard indicator set.
func DefaultConfig() Config {
	return Config{
		SMAWindow:      20,
		EMASpan:        20,
		RSIWindow:      14,
		MACDFast:       12,
		MACDSlow:       26,
		MACDSignal:     9,
		CCIWindow:      20,
		ADXWindow:      14,
		BollingerSigma: 2.0,
		Rule:           model.RuleRSI,
		RSIOversold:    30,
		RSIOverbought:  70,
	}
}

// Engine derives indicator frames from price series.
type Engine struct {
	cfg Config
}

// NewEngine creates an Engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Enrich computes every indicator column plus the buy/sell flags for the
// series. It is pure: the same series always yields the same frame and the
// input is never mutated. An empty series yields an empty frame.
func (e *Engine) Enrich(symbol, interval string, series model.Series) *model.IndicatorFrame {
	frame := &model.IndicatorFrame{
		Symbol:    symbol,
		Interval:  interval,
		Rule:      e.cfg.Rule,
		SMAWindow: e.cfg.SMAWindow,
		EMAWindow: e.cfg.EMASpan,
		Series:    series,
	}
	n := len(series)
	if n == 0 {
		return frame
	}

	ts := toTimeSeries(series, interval)
	closes := techan.NewClosePriceIndicator(ts)

	w := e.cfg.SMAWindow
	sma := techan.NewSimpleMovingAverage(closes, w)
	stddev := newWindowedStddev(closes, w)

	frame.SMA = column(sma, n, w-1)
	frame.EMA = column(newEWMA(closes, n, e.cfg.EMASpan), n, 0)
	frame.RSI = column(newRSI(closes, n, e.cfg.RSIWindow), n, e.cfg.RSIWindow)

	macd := newMACD(closes, n, e.cfg.MACDFast, e.cfg.MACDSlow)
	frame.MACD = column(macd, n, 0)
	frame.MACDSignal = column(newEWMA(macd, n, e.cfg.MACDSignal), n, 0)

	frame.CCI = column(newCCI(ts, e.cfg.CCIWindow), n, e.cfg.CCIWindow-1)
	frame.ADX = column(newADX(ts, e.cfg.ADXWindow), n, 2*e.cfg.ADXWindow-1)
	frame.BollingerUpper = column(newBollingerBand(sma, stddev, e.cfg.BollingerSigma), n, w-1)
	frame.BollingerLower = column(newBollingerBand(sma, stddev, -e.cfg.BollingerSigma), n, w-1)

	if proj, err := fitProjection(series.Closes()); err != nil {
		log.Printf("[WARN] trend projection skipped: %v", err)
		frame.Projection = nanColumn(n)
	} else {
		frame.Projection = proj
	}

	frame.Buy, frame.Sell = e.flags(frame)
	return frame
}

// flags derives the buy/sell columns from the configured rule. NaN
// comparisons are false, so flags stay unset wherever the underlying
// indicator is undefined.
func (e *Engine) flags(frame *model.IndicatorFrame) (buy, sell []bool) {
	n := len(frame.Series)
	buy = make([]bool, n)
	sell = make([]bool, n)

	switch e.cfg.Rule {
	case model.RuleBollinger:
		closes := frame.Series.Closes()
		for i := 0; i < n; i++ {
			buy[i] = closes[i] < frame.BollingerLower[i]
			sell[i] = closes[i] > frame.BollingerUpper[i]
		}
	default:
		for i := 0; i < n; i++ {
			buy[i] = frame.RSI[i] < e.cfg.RSIOversold
			sell[i] = frame.RSI[i] > e.cfg.RSIOverbought
		}
	}
	return buy, sell
}

// toTimeSeries mirrors the series into a techan candle table.
func toTimeSeries(series model.Series, interval string) *techan.TimeSeries {
	dur, ok := model.IntervalDuration(interval)
	if !ok {
		dur = time.Minute
	}
	ts := techan.NewTimeSeries()
	for _, p := range series {
		candle := techan.NewCandle(techan.NewTimePeriod(p.Time, dur))
		candle.OpenPrice = big.NewFromString(p.Open.String())
		candle.MaxPrice = big.NewFromString(p.High.String())
		candle.MinPrice = big.NewFromString(p.Low.String())
		candle.ClosePrice = big.NewFromString(p.Close.String())
		candle.Volume = big.NewFromString(p.Volume.String())
		ts.AddCandle(candle)
	}
	return ts
}

// column materializes ind over n rows, with NaN before firstValid.
func column(ind techan.Indicator, n, firstValid int) []float64 {
	col := make([]float64, n)
	for i := range col {
		if i < firstValid {
			col[i] = math.NaN()
		} else {
			col[i] = ind.Calculate(i).Float()
		}
	}
	return col
}

func nanColumn(n int) []float64 {
	col := make([]float64, n)
	for i := range col {
		col[i] = math.NaN()
	}
	return col
}
