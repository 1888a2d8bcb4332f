package strategy

import (
	"fmt"
	"math"

	"github.com/BrunoCesarAngst/crypto-candlestick/internal/model"
)

// CheckSignal classifies the newest row of the frame. It is a pure function
// of that row: empty frames yield NO_DATA, a set buy flag yields BUY, a set
// sell flag yields SELL, anything else NONE. The second return value is a
// short human explanation for the dashboard's signal badge.
func CheckSignal(frame *model.IndicatorFrame) (model.Signal, string) {
	if frame.IsEmpty() {
		return model.SignalNoData, "no data in the loaded window"
	}
	last := frame.LastIndex()
	switch {
	case frame.Buy[last]:
		return model.SignalBuy, reason(frame, last, model.SignalBuy)
	case frame.Sell[last]:
		return model.SignalSell, reason(frame, last, model.SignalSell)
	default:
		return model.SignalNone, reason(frame, last, model.SignalNone)
	}
}

func reason(frame *model.IndicatorFrame, i int, sig model.Signal) string {
	closing := frame.Series[i].Close

	if frame.Rule == model.RuleBollinger {
		lower, upper := frame.BollingerLower[i], frame.BollingerUpper[i]
		if math.IsNaN(lower) || math.IsNaN(upper) {
			return "bollinger bands not formed yet"
		}
		switch sig {
		case model.SignalBuy:
			return fmt.Sprintf("close %s below lower band %.2f", closing, lower)
		case model.SignalSell:
			return fmt.Sprintf("close %s above upper band %.2f", closing, upper)
		default:
			return fmt.Sprintf("close %s inside bands [%.2f, %.2f]", closing, lower, upper)
		}
	}

	rsi := frame.RSI[i]
	if math.IsNaN(rsi) {
		return "RSI not formed yet"
	}
	switch sig {
	case model.SignalBuy:
		return fmt.Sprintf("RSI %.1f below the oversold threshold", rsi)
	case model.SignalSell:
		return fmt.Sprintf("RSI %.1f above the overbought threshold", rsi)
	default:
		return fmt.Sprintf("RSI %.1f in the neutral range", rsi)
	}
}
