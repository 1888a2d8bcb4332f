package collector

import (
	"context"
	"errors"

	"github.com/BrunoCesarAngst/crypto-candlestick/internal/model"
)

// Fetcher defines the interface for fetching candlestick data.
type Fetcher interface {
	// FetchKlines returns up to limit bars for symbol/interval, ordered by
	// ascending time. An empty result with a nil error means the upstream
	// had no data for the request.
	FetchKlines(ctx context.Context, symbol, interval string, limit int) (model.Series, error)
	Name() string
}

// Classification roots for refresh-boundary handling and metrics labels.
var (
	ErrUpstream   = errors.New("upstream request failed")
	ErrStatus     = errors.New("unexpected upstream status")
	ErrPayload    = errors.New("malformed klines payload")
	ErrPriceField = errors.New("malformed price field")
)

// ErrorReason maps a fetch error to a stable metrics label.
func ErrorReason(err error) string {
	switch {
	case errors.Is(err, ErrPriceField):
		return "price_field"
	case errors.Is(err, ErrPayload):
		return "payload"
	case errors.Is(err, ErrStatus):
		return "status"
	case errors.Is(err, ErrUpstream):
		return "transport"
	default:
		return "other"
	}
}
