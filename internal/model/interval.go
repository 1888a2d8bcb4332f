package model

import "time"

// intervalDurations maps the supported kline interval codes to bar
// durations. The set mirrors the dashboard's interval selector; codes the
// exchange rejects fail at fetch time like any other upstream error.
var intervalDurations = map[string]time.Duration{
	"1m":  time.Minute,
	"3m":  3 * time.Minute,
	"5m":  5 * time.Minute,
	"10m": 10 * time.Minute,
	"15m": 15 * time.Minute,
	"30m": 30 * time.Minute,
	"1h":  time.Hour,
	"4h":  4 * time.Hour,
	"1d":  24 * time.Hour,
}

// SupportedInterval reports whether code is one of the known kline intervals.
func SupportedInterval(code string) bool {
	_, ok := intervalDurations[code]
	return ok
}

// IntervalDuration returns the bar duration for a supported interval code.
func IntervalDuration(code string) (time.Duration, bool) {
	d, ok := intervalDurations[code]
	return d, ok
}
