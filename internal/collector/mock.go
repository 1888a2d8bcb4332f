package collector

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BrunoCesarAngst/crypto-candlestick/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Series model.Series
	Err    error
	Calls  int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchKlines(_ context.Context, _, _ string, limit int) (model.Series, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	series := m.Series
	if series == nil {
		series = GenerateMockSeries(100.0, 60, time.Minute)
	}
	if limit > 0 && len(series) > limit {
		series = series[len(series)-limit:]
	}
	return series, nil
}

// GenerateMockSeries builds a deterministic drifting series for tests.
func GenerateMockSeries(basePrice float64, count int, step time.Duration) model.Series {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	series := make(model.Series, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		series[i] = model.PricePoint{
			Time:   start.Add(time.Duration(i) * step),
			Open:   decimal.NewFromFloat(p * 0.999),
			High:   decimal.NewFromFloat(p * 1.005),
			Low:    decimal.NewFromFloat(p * 0.995),
			Close:  decimal.NewFromFloat(p),
			Volume: decimal.NewFromFloat(1000000),
		}
	}
	return series
}
