package reserves

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ErrPairUnavailable is returned when no reserves can be produced for a pair.
var ErrPairUnavailable = errors.New("pair unavailable")

// Logger defines a standard interface for structured, leveled logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Oracle serves reserve snapshots for token pairs.
type Oracle interface {
	GetReserves(ctx context.Context, key PairKey) (Pair, error)
}

// Reader performs the underlying on-chain read for a single pair.
type Reader interface {
	ReadPair(ctx context.Context, key PairKey) (Pair, error)
}

// CachingOracleConfig configures a CachingOracle.
type CachingOracleConfig struct {
	Reader Reader
	Logger Logger
	// TTL bounds how long a cached pair is served before a fresh read.
	TTL time.Duration
	// Registerer receives the oracle's metrics. Optional.
	Registerer prometheus.Registerer
}

func (c *CachingOracleConfig) validate() error {
	if c.Reader == nil {
		return errors.New("config: Reader is required")
	}
	if c.Logger == nil {
		return errors.New("config: Logger is required")
	}
	if c.TTL <= 0 {
		return errors.New("config: TTL must be positive")
	}
	return nil
}

type cacheEntry struct {
	pair    Pair
	readAt  time.Time
	present bool
}

// CachingOracle is an Oracle that caches reads for a bounded TTL. It is safe
// for concurrent use. Refresh is pull-driven: a stale entry is re-read on the
// next request, never in the background.
type CachingOracle struct {
	reader Reader
	logger Logger
	ttl    time.Duration

	mu    sync.RWMutex
	cache map[PairKey]cacheEntry

	hits      prometheus.Counter
	misses    prometheus.Counter
	readErrs  prometheus.Counter
	now       func() time.Time
}

// NewCachingOracle constructs a CachingOracle from a validated config.
func NewCachingOracle(cfg CachingOracleConfig) (*CachingOracle, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	o := &CachingOracle{
		reader: cfg.Reader,
		logger: cfg.Logger,
		ttl:    cfg.TTL,
		cache:  make(map[PairKey]cacheEntry),
		now:    time.Now,
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orbitdex", Subsystem: "reserves", Name: "cache_hits_total",
			Help: "Reserve lookups served from cache.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orbitdex", Subsystem: "reserves", Name: "cache_misses_total",
			Help: "Reserve lookups requiring an on-chain read.",
		}),
		readErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orbitdex", Subsystem: "reserves", Name: "read_errors_total",
			Help: "Failed on-chain reserve reads.",
		}),
	}
	if cfg.Registerer != nil {
		for _, c := range []prometheus.Collector{o.hits, o.misses, o.readErrs} {
			if err := cfg.Registerer.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return o, nil
}

// GetReserves returns the cached pair when fresh, reading through otherwise.
// A read failure with a still-present (stale) cache entry falls back to the
// stale value: a usable snapshot beats no snapshot for quoting.
func (o *CachingOracle) GetReserves(ctx context.Context, key PairKey) (Pair, error) {
	o.mu.RLock()
	entry := o.cache[key]
	o.mu.RUnlock()

	if entry.present && o.now().Sub(entry.readAt) < o.ttl {
		o.hits.Inc()
		return entry.pair, nil
	}
	o.misses.Inc()

	pair, err := o.reader.ReadPair(ctx, key)
	if err != nil {
		o.readErrs.Inc()
		if entry.present {
			o.logger.Warn("serving stale reserves after read failure",
				"token0", key.Token0.Hex(), "token1", key.Token1.Hex(), "error", err)
			return entry.pair, nil
		}
		o.logger.Error("reserve read failed",
			"token0", key.Token0.Hex(), "token1", key.Token1.Hex(), "error", err)
		return Pair{}, errors.Join(ErrPairUnavailable, err)
	}

	o.mu.Lock()
	o.cache[key] = cacheEntry{pair: pair, readAt: o.now(), present: true}
	o.mu.Unlock()

	o.logger.Debug("reserves refreshed",
		"token0", key.Token0.Hex(), "token1", key.Token1.Hex(), "block", pair.UpdatedAt)
	return pair, nil
}

// SnapshotFor collects current reserves for a set of pair keys into an
// immutable Snapshot. Pairs that cannot be read are omitted.
func (o *CachingOracle) SnapshotFor(ctx context.Context, keys []PairKey) *Snapshot {
	pairs := make([]Pair, 0, len(keys))
	for _, key := range keys {
		p, err := o.GetReserves(ctx, key)
		if err != nil {
			continue
		}
		pairs = append(pairs, p)
	}
	return NewSnapshot(pairs)
}
