package indicator

import (
	"math"

	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

// stddevIndicator is the windowed population standard deviation of a
// source, matching rolling std with ddof=0. Before the window fills it
// returns zero, like the techan built-ins.
type stddevIndicator struct {
	src    techan.Indicator
	window int
}

func newWindowedStddev(src techan.Indicator, window int) techan.Indicator {
	return stddevIndicator{src: src, window: window}
}

func (s stddevIndicator) Calculate(index int) big.Decimal {
	if index < s.window-1 {
		return big.ZERO
	}
	var sum float64
	for i := index - s.window + 1; i <= index; i++ {
		sum += s.src.Calculate(i).Float()
	}
	mean := sum / float64(s.window)

	var sq float64
	for i := index - s.window + 1; i <= index; i++ {
		d := s.src.Calculate(i).Float() - mean
		sq += d * d
	}
	return big.NewDecimal(math.Sqrt(sq / float64(s.window)))
}

// bollingerBandIndicator offsets a middle band by scale standard
// deviations. Use a negative scale for the lower band.
type bollingerBandIndicator struct {
	middle techan.Indicator
	stddev techan.Indicator
	scale  big.Decimal
}

func newBollingerBand(middle, stddev techan.Indicator, scale float64) techan.Indicator {
	return bollingerBandIndicator{middle: middle, stddev: stddev, scale: big.NewDecimal(scale)}
}

func (b bollingerBandIndicator) Calculate(index int) big.Decimal {
	return b.middle.Calculate(index).Add(b.stddev.Calculate(index).Mul(b.scale))
}
