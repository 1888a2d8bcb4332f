package indicator

import (
	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

// differenceIndicator yields a.Calculate(i) - b.Calculate(i).
type differenceIndicator struct {
	a, b techan.Indicator
}

func (d differenceIndicator) Calculate(index int) big.Decimal {
	return d.a.Calculate(index).Sub(d.b.Calculate(index))
}

// newMACD builds the MACD line, the fast EMA minus the slow EMA of src.
// The signal line is a separate EWMA of this indicator.
func newMACD(src techan.Indicator, size, fast, slow int) techan.Indicator {
	return differenceIndicator{
		a: newEWMA(src, size, fast),
		b: newEWMA(src, size, slow),
	}
}
