package indicator

import (
	"math"

	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

// cciIndicator is the commodity channel index over typical price with the
// usual 0.015 scaling constant. A flat window has zero mean deviation and
// yields 0 instead of dividing by it.
type cciIndicator struct {
	values []float64
}

// newCCI precomputes the CCI of the series for the given window.
func newCCI(series *techan.TimeSeries, window int) techan.Indicator {
	n := len(series.Candles)
	values := make([]float64, n)
	typical := techan.NewTypicalPriceIndicator(series)

	for i := window - 1; i < n; i++ {
		var sum float64
		for j := i - window + 1; j <= i; j++ {
			sum += typical.Calculate(j).Float()
		}
		mean := sum / float64(window)

		var dev float64
		for j := i - window + 1; j <= i; j++ {
			dev += math.Abs(typical.Calculate(j).Float() - mean)
		}
		dev /= float64(window)
		if dev == 0 {
			continue
		}
		values[i] = (typical.Calculate(i).Float() - mean) / (0.015 * dev)
	}
	return cciIndicator{values: values}
}

func (c cciIndicator) Calculate(index int) big.Decimal {
	return big.NewDecimal(c.values[index])
}
