package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MaxWindowSize caps how many klines one refresh loads.
const MaxWindowSize = 100

// PricePoint represents a single candlestick bar. Prices keep the exact
// decimal values the exchange reported.
type PricePoint struct {
	Time   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
}

// Series is a window of price points for one symbol and interval, ordered by
// ascending time. It may be empty.
type Series []PricePoint

// IsEmpty reports whether the series holds no points.
func (s Series) IsEmpty() bool { return len(s) == 0 }

// Last returns the newest point, if any.
func (s Series) Last() (PricePoint, bool) {
	if len(s) == 0 {
		return PricePoint{}, false
	}
	return s[len(s)-1], true
}

// Closes returns the close prices as floats, in series order.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, p := range s {
		closes[i] = p.Close.InexactFloat64()
	}
	return closes
}

// Highs returns the high prices as floats, in series order.
func (s Series) Highs() []float64 {
	highs := make([]float64, len(s))
	for i, p := range s {
		highs[i] = p.High.InexactFloat64()
	}
	return highs
}

// Lows returns the low prices as floats, in series order.
func (s Series) Lows() []float64 {
	lows := make([]float64, len(s))
	for i, p := range s {
		lows[i] = p.Low.InexactFloat64()
	}
	return lows
}

// WindowRange scans the loaded window and returns its highest high and
// lowest low.
func (s Series) WindowRange() (high, low float64, ok bool) {
	if len(s) == 0 {
		return 0, 0, false
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, p := range s {
		if h := p.High.InexactFloat64(); h > high {
			high = h
		}
		if l := p.Low.InexactFloat64(); l < low {
			low = l
		}
	}
	return high, low, true
}
