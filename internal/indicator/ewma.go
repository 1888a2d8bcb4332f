package indicator

import (
	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

// ewmaIndicator is an exponentially weighted moving average seeded with the
// first source value, so it is defined from index 0. The recursion uses
// alpha = 2/(span+1):
//
//	ema[0] = src[0]
//	ema[i] = alpha*src[i] + (1-alpha)*ema[i-1]
type ewmaIndicator struct {
	values []float64
}

// newEWMA precomputes the EMA of src over size points for the given span.
func newEWMA(src techan.Indicator, size, span int) techan.Indicator {
	values := make([]float64, size)
	if size == 0 {
		return ewmaIndicator{values: values}
	}
	alpha := 2.0 / (float64(span) + 1.0)
	values[0] = src.Calculate(0).Float()
	for i := 1; i < size; i++ {
		v := src.Calculate(i).Float()
		values[i] = alpha*v + (1-alpha)*values[i-1]
	}
	return ewmaIndicator{values: values}
}

func (e ewmaIndicator) Calculate(index int) big.Decimal {
	return big.NewDecimal(e.values[index])
}
