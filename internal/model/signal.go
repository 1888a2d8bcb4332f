package model

// Signal classifies the latest price point of a frame.
type Signal string

const (
	SignalBuy    Signal = "BUY"
	SignalSell   Signal = "SELL"
	SignalNone   Signal = "NONE"
	SignalNoData Signal = "NO_DATA"
)

// SignalRule selects which threshold rule produces the buy/sell flags.
type SignalRule string

const (
	RuleRSI       SignalRule = "rsi"
	RuleBollinger SignalRule = "bollinger"
)

// Known reports whether the rule is one of the supported rule names.
func (r SignalRule) Known() bool {
	return r == RuleRSI || r == RuleBollinger
}
