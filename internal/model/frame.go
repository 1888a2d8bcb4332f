package model

// IndicatorFrame couples a series with its derived indicator columns. Every
// column has exactly len(Series) entries; positions before an indicator's
// first valid index hold NaN.
type IndicatorFrame struct {
	Symbol   string
	Interval string
	Rule     SignalRule

	// Windows used to compute the moving averages, kept so chart
	// legends can label the series.
	SMAWindow int
	EMAWindow int

	Series Series

	SMA            []float64
	EMA            []float64
	RSI            []float64
	MACD           []float64
	MACDSignal     []float64
	CCI            []float64
	ADX            []float64
	BollingerUpper []float64
	BollingerLower []float64
	Projection     []float64

	Buy  []bool
	Sell []bool
}

// IsEmpty reports whether the frame holds no rows.
func (f *IndicatorFrame) IsEmpty() bool { return f == nil || len(f.Series) == 0 }

// LastIndex returns the index of the newest row, or -1 when empty.
func (f *IndicatorFrame) LastIndex() int {
	if f == nil {
		return -1
	}
	return len(f.Series) - 1
}
