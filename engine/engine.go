// Package engine coordinates asynchronous quote recomputation. Every input
// change starts a new generation; results arriving for an older generation
// are discarded so the visible state always reflects the latest inputs,
// regardless of network completion order.
package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/orbitdex/orbitdex-engine-go/approval"
	"github.com/orbitdex/orbitdex-engine-go/currency"
	"github.com/orbitdex/orbitdex-engine-go/swap"
)

// Logger defines a standard interface for structured, leveled logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Quoter produces a derivation result for a set of inputs. Implementations
// typically refresh a reserve snapshot and run the swap derivation over it;
// the call may block on network reads.
type Quoter interface {
	Quote(ctx context.Context, in swap.Inputs) (*swap.Result, error)
}

// Config configures an Engine.
type Config struct {
	Quoter Quoter
	Logger Logger
	// Approval, when set, is kept in sync with input changes: selection
	// changes re-key it, amount clears drop its permit.
	Approval *approval.Machine
	// Registerer receives the engine's metrics. Optional.
	Registerer prometheus.Registerer
}

func (c *Config) validate() error {
	if c.Quoter == nil {
		return errors.New("config: Quoter is required")
	}
	if c.Logger == nil {
		return errors.New("config: Logger is required")
	}
	return nil
}

// Engine owns the current inputs, the latest committed result, and the
// generation gate between them. Safe for concurrent use.
type Engine struct {
	quoter   Quoter
	logger   Logger
	approval *approval.Machine

	mu     sync.Mutex
	gen    uint64
	inputs swap.Inputs
	result *swap.Result

	staleDiscards prometheus.Counter
}

// New constructs an Engine from a validated config.
func New(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		quoter:   cfg.Quoter,
		logger:   cfg.Logger,
		approval: cfg.Approval,
		staleDiscards: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orbitdex", Subsystem: "engine", Name: "stale_results_discarded_total",
			Help: "Quote results dropped because newer inputs superseded them.",
		}),
	}
	if cfg.Registerer != nil {
		if err := cfg.Registerer.Register(e.staleDiscards); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Begin snapshots new inputs and returns the generation tag a later Commit
// must present. Each call invalidates all earlier generations.
func (e *Engine) Begin(in swap.Inputs) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.syncApproval(e.inputs, in)
	e.inputs = in
	e.gen++
	return e.gen
}

// Commit stores a result if its generation is still current. A stale result
// is counted and dropped silently; staleness is an internal bookkeeping
// outcome, never an error surfaced to the caller's caller.
func (e *Engine) Commit(gen uint64, res *swap.Result) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.gen {
		e.staleDiscards.Inc()
		e.logger.Debug("discarding stale quote result", "generation", gen, "current", e.gen)
		return false
	}
	e.result = res
	return true
}

// Recompute runs a full quote cycle: tag a generation, quote, commit through
// the gate. The committed flag is false when newer inputs arrived while the
// quote was in flight. A Quoter error is returned without committing; the
// previous result stays visible.
func (e *Engine) Recompute(ctx context.Context, in swap.Inputs) (*swap.Result, bool, error) {
	gen := e.Begin(in)
	res, err := e.quoter.Quote(ctx, in)
	if err != nil {
		return nil, false, err
	}
	return res, e.Commit(gen, res), nil
}

// Result returns the latest committed result, nil before the first commit.
func (e *Engine) Result() *swap.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result
}

// Generation returns the current generation tag.
func (e *Engine) Generation() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen
}

// syncApproval mirrors input changes into the approval machine. Token or
// account changes re-key the machine, which also drops any held permit.
// Clearing the typed amount clears the requirement (and the permit with it).
func (e *Engine) syncApproval(old, next swap.Inputs) {
	if e.approval == nil {
		return
	}
	if !sameCurrency(old.InputCurrency, next.InputCurrency) || !sameAccount(old.Account, next.Account) {
		key := e.approval.Key()
		if next.Account != nil {
			key.Owner = *next.Account
		}
		if next.InputCurrency != nil && !next.InputCurrency.IsNative() {
			key.Token = next.InputCurrency.Address()
		}
		e.approval.Reset(key)
		return
	}
	if next.TypedValue == "" && old.TypedValue != "" {
		e.approval.SetRequirement(nil)
	}
}

func sameCurrency(a, b *currency.Currency) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func sameAccount(a, b *common.Address) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
