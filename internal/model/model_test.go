package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func point(t time.Time, high, low float64) PricePoint {
	return PricePoint{
		Time:  t,
		Open:  decimal.NewFromFloat(low + 1),
		High:  decimal.NewFromFloat(high),
		Low:   decimal.NewFromFloat(low),
		Close: decimal.NewFromFloat(high - 1),
	}
}

func TestSeriesWindowRange(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	s := Series{
		point(start, 105, 95),
		point(start.Add(time.Minute), 110, 99),
		point(start.Add(2*time.Minute), 108, 90),
	}

	high, low, ok := s.WindowRange()
	if !ok {
		t.Fatal("expected a range for a non-empty series")
	}
	if high != 110 || low != 90 {
		t.Errorf("range = %v..%v, want 90..110", low, high)
	}

	if _, _, ok := (Series{}).WindowRange(); ok {
		t.Error("empty series must have no range")
	}
}

func TestSeriesLast(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	s := Series{point(start, 105, 95), point(start.Add(time.Minute), 110, 99)}

	last, ok := s.Last()
	if !ok || !last.Time.Equal(start.Add(time.Minute)) {
		t.Errorf("last = %+v, ok = %v", last, ok)
	}
	if _, ok := (Series{}).Last(); ok {
		t.Error("empty series must have no last point")
	}
}

func TestIntervals(t *testing.T) {
	cases := map[string]time.Duration{
		"1m":  time.Minute,
		"10m": 10 * time.Minute,
		"4h":  4 * time.Hour,
		"1d":  24 * time.Hour,
	}
	for code, want := range cases {
		if !SupportedInterval(code) {
			t.Errorf("%s must be supported", code)
		}
		if d, ok := IntervalDuration(code); !ok || d != want {
			t.Errorf("IntervalDuration(%s) = %v, want %v", code, d, want)
		}
	}

	for _, code := range []string{"2m", "1w", "", "5"} {
		if SupportedInterval(code) {
			t.Errorf("%s must not be supported", code)
		}
	}
}

func TestFrameEmptiness(t *testing.T) {
	var nilFrame *IndicatorFrame
	if !nilFrame.IsEmpty() {
		t.Error("nil frame must be empty")
	}
	if nilFrame.LastIndex() != -1 {
		t.Error("nil frame must have no last index")
	}

	frame := &IndicatorFrame{Series: Series{point(time.Now(), 10, 9)}}
	if frame.IsEmpty() {
		t.Error("frame with one row is not empty")
	}
	if frame.LastIndex() != 0 {
		t.Errorf("last index = %d, want 0", frame.LastIndex())
	}
}

func TestSignalRuleKnown(t *testing.T) {
	if !RuleRSI.Known() || !RuleBollinger.Known() {
		t.Error("built-in rules must be known")
	}
	if SignalRule("macd").Known() {
		t.Error("unexpected rule must not be known")
	}
}
