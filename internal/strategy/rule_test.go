package strategy

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BrunoCesarAngst/crypto-candlestick/internal/model"
)

func frameWithFlags(rule model.SignalRule, rsi []float64, buy, sell []bool) *model.IndicatorFrame {
	n := len(buy)
	series := make(model.Series, n)
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range series {
		series[i] = model.PricePoint{
			Time:  start.Add(time.Duration(i) * time.Minute),
			Close: decimal.NewFromInt(100),
		}
	}
	lower := make([]float64, n)
	upper := make([]float64, n)
	for i := range lower {
		lower[i] = 90
		upper[i] = 110
	}
	return &model.IndicatorFrame{
		Symbol:         "BTCUSDT",
		Interval:       "5m",
		Rule:           rule,
		Series:         series,
		RSI:            rsi,
		BollingerLower: lower,
		BollingerUpper: upper,
		Buy:            buy,
		Sell:           sell,
	}
}

func TestCheckSignal_EmptyFrame(t *testing.T) {
	sig, reason := CheckSignal(&model.IndicatorFrame{})
	if sig != model.SignalNoData {
		t.Fatalf("empty frame: got %s, want %s", sig, model.SignalNoData)
	}
	if reason == "" {
		t.Error("expected a reason for NO_DATA")
	}
}

func TestCheckSignal_LastRowOnly(t *testing.T) {
	cases := []struct {
		name string
		buy  []bool
		sell []bool
		rsi  []float64
		want model.Signal
	}{
		{
			name: "buy on last row",
			buy:  []bool{false, false, true},
			sell: []bool{false, false, false},
			rsi:  []float64{50, 40, 25},
			want: model.SignalBuy,
		},
		{
			name: "sell on last row",
			buy:  []bool{true, false, false},
			sell: []bool{false, false, true},
			rsi:  []float64{25, 50, 75},
			want: model.SignalSell,
		},
		{
			name: "earlier flags do not count",
			buy:  []bool{true, true, false},
			sell: []bool{false, false, false},
			rsi:  []float64{25, 25, 50},
			want: model.SignalNone,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			frame := frameWithFlags(model.RuleRSI, tc.rsi, tc.buy, tc.sell)
			sig, _ := CheckSignal(frame)
			if sig != tc.want {
				t.Errorf("got %s, want %s", sig, tc.want)
			}
		})
	}
}

func TestCheckSignal_RSIReason(t *testing.T) {
	frame := frameWithFlags(model.RuleRSI,
		[]float64{50, 40, 25},
		[]bool{false, false, true},
		[]bool{false, false, false})

	sig, reason := CheckSignal(frame)
	if sig != model.SignalBuy {
		t.Fatalf("got %s, want BUY", sig)
	}
	if !strings.Contains(reason, "RSI 25.0") {
		t.Errorf("reason must mention the latest RSI value, got %q", reason)
	}
}

func TestCheckSignal_BollingerReason(t *testing.T) {
	frame := frameWithFlags(model.RuleBollinger,
		[]float64{50, 50, 50},
		[]bool{false, false, false},
		[]bool{false, false, true})

	sig, reason := CheckSignal(frame)
	if sig != model.SignalSell {
		t.Fatalf("got %s, want SELL", sig)
	}
	if !strings.Contains(reason, "upper band") {
		t.Errorf("reason must mention the band, got %q", reason)
	}
}

func TestCheckSignal_UndefinedIndicatorReason(t *testing.T) {
	frame := frameWithFlags(model.RuleRSI,
		[]float64{math.NaN(), math.NaN(), math.NaN()},
		[]bool{false, false, false},
		[]bool{false, false, false})

	sig, reason := CheckSignal(frame)
	if sig != model.SignalNone {
		t.Fatalf("got %s, want NONE", sig)
	}
	if !strings.Contains(reason, "not formed") {
		t.Errorf("reason must explain the unformed indicator, got %q", reason)
	}
}
