package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/BrunoCesarAngst/crypto-candlestick/internal/collector"
	"github.com/BrunoCesarAngst/crypto-candlestick/internal/indicator"
	"github.com/BrunoCesarAngst/crypto-candlestick/internal/metrics"
	"github.com/BrunoCesarAngst/crypto-candlestick/internal/model"
	"github.com/BrunoCesarAngst/crypto-candlestick/internal/strategy"
)

// ErrLoadMessage is the inline text shown on the page when a snapshot
// cannot be built.
const ErrLoadMessage = "error loading data, try another interval"

// Snapshot is one refreshed view of a symbol and interval. A failed
// refresh still produces a snapshot: the frame is empty, the signal is
// NO_DATA and Err carries the cause.
type Snapshot struct {
	Symbol    string
	Interval  string
	Frame     *model.IndicatorFrame
	Signal    model.Signal
	Reason    string
	Err       error
	FetchedAt time.Time
}

// Refresher builds snapshots on demand and keeps the default view warm
// on a cron cadence. Snapshots are cached per symbol and interval for
// one refresh period, so the page timer and control changes inside one
// cadence share a single upstream call.
type Refresher struct {
	Cron    *cron.Cron
	Fetcher collector.Fetcher
	Engine  *indicator.Engine
	Metrics *metrics.Metrics
	Ctx     context.Context

	limit int
	ttl   time.Duration

	mu    sync.RWMutex
	cache map[string]*Snapshot

	// refreshMu serializes pipeline runs so timer and control triggers
	// that race past the cache check still produce one upstream call.
	refreshMu sync.Mutex
}

// NewRefresher creates a Refresher. limit is the number of candles per
// fetch and ttl the snapshot lifetime, normally the page refresh period.
func NewRefresher(ctx context.Context, fetcher collector.Fetcher, engine *indicator.Engine, met *metrics.Metrics, limit int, ttl time.Duration) *Refresher {
	return &Refresher{
		Cron:    cron.New(cron.WithSeconds()),
		Fetcher: fetcher,
		Engine:  engine,
		Metrics: met,
		Ctx:     ctx,
		limit:   limit,
		ttl:     ttl,
		cache:   make(map[string]*Snapshot),
	}
}

// Snapshot returns the cached view when it is still fresh, refreshing
// it otherwise.
func (r *Refresher) Snapshot(ctx context.Context, symbol, interval string) *Snapshot {
	if snap, ok := r.cached(symbol, interval); ok {
		return snap
	}
	return r.Refresh(ctx, symbol, interval)
}

// Refresh runs the fetch, enrich and classify pipeline for one view and
// caches the result. It never fails: upstream errors come back inside
// the snapshot so the page always has something to show.
func (r *Refresher) Refresh(ctx context.Context, symbol, interval string) *Snapshot {
	r.refreshMu.Lock()
	defer r.refreshMu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if snap, ok := r.cached(symbol, interval); ok {
		return snap
	}

	snap := r.runPipeline(ctx, symbol, interval)

	r.mu.Lock()
	r.cache[key(symbol, interval)] = snap
	r.mu.Unlock()
	return snap
}

// RegisterWarm schedules a background refresh of one view every ttl, so
// the page's timer poll normally hits a fresh cache.
func (r *Refresher) RegisterWarm(symbol, interval string) error {
	schedule := fmt.Sprintf("@every %s", r.ttl)
	_, err := r.Cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(r.Ctx, r.ttl)
		defer cancel()
		if snap := r.Refresh(ctx, symbol, interval); snap.Err != nil {
			log.Printf("[WARN] warm refresh %s %s: %v", symbol, interval, snap.Err)
		}
	})
	if err != nil {
		return fmt.Errorf("register warm refresh: %w", err)
	}
	return nil
}

// Start starts the warm refresh schedule.
func (r *Refresher) Start() {
	r.Cron.Start()
	log.Println("[INFO] refresher started")
}

// Stop stops the warm refresh schedule gracefully.
func (r *Refresher) Stop() {
	r.Cron.Stop()
	log.Println("[INFO] refresher stopped")
}

func (r *Refresher) runPipeline(ctx context.Context, symbol, interval string) *Snapshot {
	start := time.Now()
	series, err := r.Fetcher.FetchKlines(ctx, symbol, interval, r.limit)
	r.Metrics.ObserveFetch(time.Since(start))
	if err != nil {
		r.Metrics.CountFetchError(collector.ErrorReason(err))
		log.Printf("[WARN] fetch %s %s: %v", symbol, interval, err)
		series = nil
	}

	frame := r.Engine.Enrich(symbol, interval, series)
	signal, reason := strategy.CheckSignal(frame)

	snap := &Snapshot{
		Symbol:    symbol,
		Interval:  interval,
		Frame:     frame,
		Signal:    signal,
		Reason:    reason,
		Err:       err,
		FetchedAt: time.Now(),
	}
	r.Metrics.ObserveRefresh(time.Since(start), err)
	r.Metrics.MarkSnapshot(symbol, interval, snap.FetchedAt)
	return snap
}

func (r *Refresher) cached(symbol, interval string) (*Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap, ok := r.cache[key(symbol, interval)]
	if !ok || time.Since(snap.FetchedAt) >= r.ttl {
		return nil, false
	}
	return snap, true
}

func key(symbol, interval string) string {
	return symbol + "|" + interval
}
