package indicator

import (
	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

// rsiIndicator is a Wilder-smoothed relative strength index over a source
// indicator. The first value sits at index == window, once the seed
// averages cover a full window of changes. A window with zero average loss
// yields 100; a completely flat window yields the neutral 50.
type rsiIndicator struct {
	values []float64
}

// newRSI precomputes the RSI of src over size points. Positions before the
// first valid index hold zero; the engine maps them to NaN.
func newRSI(src techan.Indicator, size, window int) techan.Indicator {
	values := make([]float64, size)
	if size <= window {
		return rsiIndicator{values: values}
	}

	var avgGain, avgLoss float64
	for i := 1; i <= window; i++ {
		change := src.Calculate(i).Float() - src.Calculate(i-1).Float()
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(window)
	avgLoss /= float64(window)
	values[window] = rsiValue(avgGain, avgLoss)

	for i := window + 1; i < size; i++ {
		change := src.Calculate(i).Float() - src.Calculate(i-1).Float()
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(window-1) + gain) / float64(window)
		avgLoss = (avgLoss*float64(window-1) + loss) / float64(window)
		values[i] = rsiValue(avgGain, avgLoss)
	}
	return rsiIndicator{values: values}
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50.0 // flat window, neutral
		}
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

func (r rsiIndicator) Calculate(index int) big.Decimal {
	return big.NewDecimal(r.values[index])
}
