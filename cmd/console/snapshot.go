package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/orbitdex/orbitdex-engine-go/cmd/console/config"
	"github.com/orbitdex/orbitdex-engine-go/currency"
	"github.com/orbitdex/orbitdex-engine-go/reserves"
)

// Well-known mainnet tokens available without a tokens section in the pools
// file.
var builtinTokens = map[uint64]map[string]currency.Currency{
	1: {
		"WETH": currency.NewToken(common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"), 18, "WETH", "Wrapped Ether"),
		"USDC": currency.NewToken(common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), 6, "USDC", "USD Coin"),
		"DAI":  currency.NewToken(common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F"), 18, "DAI", "Dai Stablecoin"),
		"WBTC": currency.NewToken(common.HexToAddress("0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599"), 8, "WBTC", "Wrapped BTC"),
		"ORB":  currency.NewToken(common.HexToAddress("0x1d2054e57C2CAc1Bb34Bf0Cb7a3C54FF6Bf9b3B5"), 18, "ORB", "Orbit"),
		"iORB": currency.NewToken(common.HexToAddress("0x7AE2b89788Ea16Cadded6cE64428370a98e70401"), 18, "iORB", "Interoperable Orbit"),
	},
}

type tokenEntry struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals uint8  `json:"decimals"`
}

type poolEntry struct {
	Pool   string `json:"pool"`
	Token0 string `json:"token0"`
	Token1 string `json:"token1"`
	// Reserves are optional; when present the pool quotes offline, when
	// absent reserves are read over RPC.
	Reserve0 string `json:"reserve0,omitempty"`
	Reserve1 string `json:"reserve1,omitempty"`
	FeeBps   uint16 `json:"feeBps,omitempty"`
	Block    uint64 `json:"block,omitempty"`
}

type poolFile struct {
	Tokens []tokenEntry `json:"tokens,omitempty"`
	Pools  []poolEntry  `json:"pools"`
}

const defaultFeeBps = 30

// registry is the console's token and pool universe for one invocation.
type registry struct {
	tokens map[string]currency.Currency // by upper-cased symbol
	byAddr map[common.Address]currency.Currency
	pools  map[reserves.PairKey]common.Address
	static []reserves.Pair // pools with embedded reserves
}

func loadRegistry(cfg *config.Config) (*registry, error) {
	reg := &registry{
		tokens: make(map[string]currency.Currency),
		byAddr: make(map[common.Address]currency.Currency),
		pools:  make(map[reserves.PairKey]common.Address),
	}
	for sym, c := range builtinTokens[cfg.ChainID] {
		reg.addToken(sym, c)
	}

	raw, err := os.ReadFile(cfg.PoolsFile)
	if err != nil {
		return nil, fmt.Errorf("reading pools file %s: %w", cfg.PoolsFile, err)
	}
	var file poolFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing pools file %s: %w", cfg.PoolsFile, err)
	}

	for _, t := range file.Tokens {
		c := currency.NewToken(common.HexToAddress(t.Address), t.Decimals, t.Symbol, t.Name)
		reg.addToken(t.Symbol, c)
	}

	for _, p := range file.Pools {
		t0, ok := reg.lookup(p.Token0)
		if !ok {
			return nil, fmt.Errorf("pool %s: unknown token %q", p.Pool, p.Token0)
		}
		t1, ok := reg.lookup(p.Token1)
		if !ok {
			return nil, fmt.Errorf("pool %s: unknown token %q", p.Pool, p.Token1)
		}
		fee := p.FeeBps
		if fee == 0 {
			fee = defaultFeeBps
		}

		if p.Reserve0 != "" && p.Reserve1 != "" {
			r0, ok0 := new(big.Int).SetString(p.Reserve0, 10)
			r1, ok1 := new(big.Int).SetString(p.Reserve1, 10)
			if !ok0 || !ok1 {
				return nil, fmt.Errorf("pool %s: malformed reserves", p.Pool)
			}
			pair, err := reserves.NewPair(t0, t1, r0, r1, fee, p.Block)
			if err != nil {
				return nil, fmt.Errorf("pool %s: %w", p.Pool, err)
			}
			reg.static = append(reg.static, pair)
			continue
		}

		if p.Pool == "" {
			return nil, fmt.Errorf("pool %s/%s: needs a pool address or embedded reserves", p.Token0, p.Token1)
		}
		key := reserves.KeyFor(t0.Address(), t1.Address())
		reg.pools[key] = common.HexToAddress(p.Pool)
	}
	return reg, nil
}

func (r *registry) addToken(symbol string, c currency.Currency) {
	r.tokens[strings.ToUpper(symbol)] = c
	r.byAddr[c.Address()] = c
}

// lookup resolves a token by symbol. "ETH" is the native asset.
func (r *registry) lookup(symbol string) (currency.Currency, bool) {
	if strings.EqualFold(symbol, "ETH") {
		return currency.Ether, true
	}
	c, ok := r.tokens[strings.ToUpper(symbol)]
	return c, ok
}

func (r *registry) resolveAddr(addr common.Address) (currency.Currency, bool) {
	c, ok := r.byAddr[addr]
	return c, ok
}

// keys returns the canonical pair keys of every known pool, static included.
func (r *registry) keys() []reserves.PairKey {
	out := make([]reserves.PairKey, 0, len(r.pools)+len(r.static))
	for k := range r.pools {
		out = append(out, k)
	}
	for _, p := range r.static {
		out = append(out, p.Key())
	}
	return out
}

// bridges returns the intermediate tokens route search may pass through:
// every known token, wrapped native first.
func (r *registry) bridges(chainID uint64) []currency.Currency {
	var out []currency.Currency
	if w, ok := currency.Wrapped(currency.Ether, chainID); ok {
		out = append(out, w)
	}
	for _, c := range r.tokens {
		if len(out) > 0 && c.Equal(out[0]) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// staticReader serves pools whose reserves were embedded in the pools file.
type staticReader struct {
	pairs map[reserves.PairKey]reserves.Pair
}

func (s *staticReader) ReadPair(_ context.Context, key reserves.PairKey) (reserves.Pair, error) {
	p, ok := s.pairs[key]
	if !ok {
		return reserves.Pair{}, reserves.ErrPairUnavailable
	}
	return p, nil
}

// rpcOrStaticReader prefers embedded reserves and falls through to the
// on-chain slot reader for everything else.
type rpcOrStaticReader struct {
	static *staticReader
	slot   *reserves.SlotReader
}

func (r *rpcOrStaticReader) ReadPair(ctx context.Context, key reserves.PairKey) (reserves.Pair, error) {
	if p, err := r.static.ReadPair(ctx, key); err == nil {
		return p, nil
	}
	if r.slot == nil {
		return reserves.Pair{}, reserves.ErrPairUnavailable
	}
	return r.slot.ReadPair(ctx, key)
}

// newOracle wires the registry into a caching oracle, dialing RPC only when
// some pool actually needs it.
func newOracle(ctx context.Context, cfg *config.Config, reg *registry, logger reserves.Logger) (*reserves.CachingOracle, error) {
	static := &staticReader{pairs: make(map[reserves.PairKey]reserves.Pair, len(reg.static))}
	for _, p := range reg.static {
		static.pairs[p.Key()] = p
	}

	reader := &rpcOrStaticReader{static: static}
	if len(reg.pools) > 0 {
		if cfg.RPCURL == "" {
			return nil, fmt.Errorf("pools file references on-chain pools but no rpc_url is configured")
		}
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " Dialing " + cfg.RPCURL + "..."
		s.Start()
		client, err := ethclient.DialContext(ctx, cfg.RPCURL)
		s.Stop()
		if err != nil {
			return nil, fmt.Errorf("dialing %s: %w", cfg.RPCURL, err)
		}
		reader.slot = reserves.NewSlotReader(client, reg.pools, reg.resolveAddr, defaultFeeBps)
	}

	return reserves.NewCachingOracle(reserves.CachingOracleConfig{
		Reader:     reader,
		Logger:     logger,
		TTL:        15 * time.Second,
		Registerer: prometheus.NewRegistry(),
	})
}
