// Package orchestrator turns priced trades into submitted transactions. For
// each request it builds every applicable call variant, estimates them all,
// and sends the first variant the node accepts, with a safety margin on gas.
// Nothing is ever sent when estimation fails across the board.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/orbitdex/orbitdex-engine-go/approval"
)

// Logger defines a standard interface for structured, leveled logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Provider is the wallet/session boundary. Everything that touches the node
// or prompts the user goes through it; the orchestrator never holds keys.
type Provider interface {
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, msg ethereum.CallMsg, gasLimit uint64) (common.Hash, error)
	SignTypedData(ctx context.Context, payload string) ([]byte, error)
}

// Config configures an Orchestrator.
type Config struct {
	Provider Provider
	// Router is the on-chain contract all non-collection variants target.
	Router common.Address
	Logger Logger
	// Registerer receives the orchestrator's metrics. Optional.
	Registerer prometheus.Registerer
}

func (c *Config) validate() error {
	if c.Provider == nil {
		return errors.New("config: Provider is required")
	}
	if c.Router == (common.Address{}) {
		return errors.New("config: Router is required")
	}
	if c.Logger == nil {
		return errors.New("config: Logger is required")
	}
	return nil
}

// Submission describes a transaction handed to the network.
type Submission struct {
	Hash     common.Hash
	Method   string
	GasLimit uint64
	// Summary is a human-readable description for the notification layer,
	// e.g. "Swap 1.5 WETH for 2940.12 USDC".
	Summary string
}

// Orchestrator submits swap and liquidity transactions through a Provider.
// Safe for concurrent use.
type Orchestrator struct {
	provider Provider
	router   common.Address
	logger   Logger

	submissions prometheus.Counter
	estimFails  prometheus.Counter
	rejections  prometheus.Counter
}

// New constructs an Orchestrator from a validated config.
func New(cfg Config) (*Orchestrator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	o := &Orchestrator{
		provider: cfg.Provider,
		router:   cfg.Router,
		logger:   cfg.Logger,
		submissions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orbitdex", Subsystem: "orchestrator", Name: "submissions_total",
			Help: "Transactions handed to the provider.",
		}),
		estimFails: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orbitdex", Subsystem: "orchestrator", Name: "estimation_failures_total",
			Help: "Requests where every call variant failed gas estimation.",
		}),
		rejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orbitdex", Subsystem: "orchestrator", Name: "rejections_total",
			Help: "Submissions declined by the user at the wallet prompt.",
		}),
	}
	if cfg.Registerer != nil {
		for _, c := range []prometheus.Collector{o.submissions, o.estimFails, o.rejections} {
			if err := cfg.Registerer.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return o, nil
}

// submit runs the estimate-then-send loop shared by all request kinds.
func (o *Orchestrator) submit(ctx context.Context, from common.Address, cands []candidate, summary string) (*Submission, error) {
	if len(cands) == 0 {
		return nil, ErrNoCandidates
	}

	idx, gas, ok := o.estimateFirst(ctx, from, cands)
	if !ok {
		o.estimFails.Inc()
		o.logger.Warn("all call variants failed estimation", "variants", len(cands))
		return nil, ErrTransactionWouldFail
	}
	chosen := cands[idx]
	limit := gasMargin(gas)

	hash, err := o.provider.SendTransaction(ctx, chosen.callMsg(from), limit)
	if err != nil {
		if approval.IsUserRejection(err) {
			o.rejections.Inc()
			o.logger.Info("submission rejected by user", "method", chosen.method)
			return nil, fmt.Errorf("%w: %s", ErrUserRejected, chosen.method)
		}
		return nil, &ProviderError{Op: "send", Err: err}
	}

	o.submissions.Inc()
	o.logger.Info("transaction submitted",
		"method", chosen.method, "hash", hash.Hex(), "gas_limit", limit, "summary", summary)
	return &Submission{Hash: hash, Method: chosen.method, GasLimit: limit, Summary: summary}, nil
}
