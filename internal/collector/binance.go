package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BrunoCesarAngst/crypto-candlestick/internal/model"
)

// DefaultBaseURL is the Binance spot REST endpoint.
const DefaultBaseURL = "https://api.binance.com"

// klineFields is the expected element count of one raw kline row.
const klineFields = 12

// BinanceFetcher implements Fetcher using the Binance public klines API.
type BinanceFetcher struct {
	BaseURL  string
	Client   *http.Client
	Location *time.Location
}

// NewBinanceFetcher creates a Binance fetcher with a bounded-timeout client.
// Open times are converted into loc for display.
func NewBinanceFetcher(baseURL, proxyURL string, timeout time.Duration, loc *time.Location) *BinanceFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if loc == nil {
		loc = time.UTC
	}
	return &BinanceFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		Location: loc,
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

// FetchKlines requests up to limit bars and parses them into an ascending
// series. Parsing is all-or-nothing: one bad field fails the whole refresh
// rather than producing partial rows.
func (f *BinanceFetcher) FetchKlines(ctx context.Context, symbol, interval string, limit int) (model.Series, error) {
	if symbol == "" {
		return nil, errors.New("symbol is required")
	}
	if !model.SupportedInterval(interval) {
		return nil, fmt.Errorf("unsupported interval %q", interval)
	}
	if limit <= 0 || limit > model.MaxWindowSize {
		limit = model.MaxWindowSize
	}

	u := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=%s&limit=%d",
		f.BaseURL, url.QueryEscape(symbol), url.QueryEscape(interval), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d, body: %s", ErrStatus, resp.StatusCode, string(body))
	}

	return parseKlines(body, limit, f.Location)
}

// parseKlines decodes the raw payload: a JSON array of 12-element arrays
// with the millisecond open time at index 0 and string prices at 1..5.
// Error responses arrive as JSON objects and fail the array decode, which
// keeps them distinguishable from row-level field errors.
func parseKlines(body []byte, limit int, loc *time.Location) (model.Series, error) {
	var rows [][]interface{}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayload, err)
	}

	series := make(model.Series, 0, len(rows))
	for i, row := range rows {
		if len(row) < klineFields {
			return nil, fmt.Errorf("%w: row %d has %d fields, want %d", ErrPayload, i, len(row), klineFields)
		}
		ms, ok := row[0].(float64)
		if !ok {
			return nil, fmt.Errorf("%w: row %d open time is not a number", ErrPayload, i)
		}
		point := model.PricePoint{Time: time.UnixMilli(int64(ms)).In(loc)}

		fields := []struct {
			name string
			dst  *decimal.Decimal
		}{
			{"open", &point.Open},
			{"high", &point.High},
			{"low", &point.Low},
			{"close", &point.Close},
			{"volume", &point.Volume},
		}
		for j, fld := range fields {
			s, ok := row[j+1].(string)
			if !ok {
				return nil, fmt.Errorf("%w: row %d %s is not a string", ErrPriceField, i, fld.name)
			}
			d, err := decimal.NewFromString(s)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d %s %q: %v", ErrPriceField, i, fld.name, s, err)
			}
			*fld.dst = d
		}
		series = append(series, point)
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Time.Before(series[j].Time) })
	if len(series) > limit {
		series = series[len(series)-limit:]
	}
	return series, nil
}
