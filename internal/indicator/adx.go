package indicator

import (
	"math"

	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

// adxIndicator is Wilder's average directional index. One window of changes
// seeds the smoothed TR/DM sums and a second window of DX values seeds the
// ADX average, so the first value sits at index 2*window-1.
type adxIndicator struct {
	values []float64
}

// newADX precomputes the ADX of the series for the given window.
func newADX(series *techan.TimeSeries, window int) techan.Indicator {
	n := len(series.Candles)
	values := make([]float64, n)
	if window <= 0 || n < 2*window {
		return adxIndicator{values: values}
	}

	high := techan.NewHighPriceIndicator(series)
	low := techan.NewLowPriceIndicator(series)
	closePrice := techan.NewClosePriceIndicator(series)

	tr := make([]float64, n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < n; i++ {
		h := high.Calculate(i).Float()
		l := low.Calculate(i).Float()
		prevH := high.Calculate(i - 1).Float()
		prevL := low.Calculate(i - 1).Float()
		prevC := closePrice.Calculate(i - 1).Float()

		tr[i] = math.Max(h-l, math.Max(math.Abs(h-prevC), math.Abs(l-prevC)))

		upMove := h - prevH
		downMove := prevL - l
		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		}
	}

	var smTR, smPlus, smMinus float64
	for i := 1; i <= window; i++ {
		smTR += tr[i]
		smPlus += plusDM[i]
		smMinus += minusDM[i]
	}
	dxNow := func() float64 {
		if smTR == 0 {
			return 0
		}
		pdi := 100 * smPlus / smTR
		mdi := 100 * smMinus / smTR
		if pdi+mdi == 0 {
			return 0
		}
		return 100 * math.Abs(pdi-mdi) / (pdi + mdi)
	}

	dx := make([]float64, n)
	dx[window] = dxNow()
	for i := window + 1; i < n; i++ {
		smTR = smTR - smTR/float64(window) + tr[i]
		smPlus = smPlus - smPlus/float64(window) + plusDM[i]
		smMinus = smMinus - smMinus/float64(window) + minusDM[i]
		dx[i] = dxNow()
	}

	var adx float64
	for i := window; i < 2*window; i++ {
		adx += dx[i]
	}
	adx /= float64(window)
	values[2*window-1] = adx
	for i := 2 * window; i < n; i++ {
		adx = (adx*float64(window-1) + dx[i]) / float64(window)
		values[i] = adx
	}
	return adxIndicator{values: values}
}

func (a adxIndicator) Calculate(index int) big.Decimal {
	return big.NewDecimal(a.values[index])
}
