package reserves

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/orbitdex/orbitdex-engine-go/currency"
)

var (
	// ErrUnknownPool is returned when no pool address is registered for a pair key.
	ErrUnknownPool = errors.New("unknown pool for pair")
	// ErrUnknownToken is returned when a pool token cannot be resolved to metadata.
	ErrUnknownToken = errors.New("unknown token")
)

// Pool contract storage layout: token0 at slot 6, token1 at slot 7 and the
// packed (uint112 reserve0 | uint112 reserve1 | uint32 blockTimestampLast)
// word at slot 8.
const (
	slotToken0   = 6
	slotToken1   = 7
	slotReserves = 8
)

// TokenResolver maps a token address to its currency metadata.
type TokenResolver func(common.Address) (currency.Currency, bool)

// SlotReader reads pair reserves straight from pool contract storage, which
// avoids an eth_call round-trip per field.
type SlotReader struct {
	client  *ethclient.Client
	resolve TokenResolver
	pools   map[PairKey]common.Address
	feeBps  uint16
}

// NewSlotReader constructs a SlotReader. pools maps canonical pair keys to
// deployed pool addresses; resolve supplies token metadata.
func NewSlotReader(client *ethclient.Client, pools map[PairKey]common.Address, resolve TokenResolver, feeBps uint16) *SlotReader {
	return &SlotReader{client: client, resolve: resolve, pools: pools, feeBps: feeBps}
}

// ReadPair reads token0/token1 and the packed reserve slot for the pool
// backing the given pair key, all pinned to a single block number.
func (r *SlotReader) ReadPair(ctx context.Context, key PairKey) (Pair, error) {
	pool, ok := r.pools[key]
	if !ok {
		return Pair{}, fmt.Errorf("%w: %s/%s", ErrUnknownPool, key.Token0.Hex(), key.Token1.Hex())
	}

	bn, err := r.client.BlockNumber(ctx)
	if err != nil {
		return Pair{}, fmt.Errorf("block number: %w", err)
	}
	blockNum := new(big.Int).SetUint64(bn)

	token0Raw, err := r.readSlot(ctx, pool, blockNum, slotToken0)
	if err != nil {
		return Pair{}, err
	}
	token1Raw, err := r.readSlot(ctx, pool, blockNum, slotToken1)
	if err != nil {
		return Pair{}, err
	}
	token0Addr := common.BytesToAddress(token0Raw[12:])
	token1Addr := common.BytesToAddress(token1Raw[12:])

	token0, ok := r.resolve(token0Addr)
	if !ok {
		return Pair{}, fmt.Errorf("%w: %s", ErrUnknownToken, token0Addr.Hex())
	}
	token1, ok := r.resolve(token1Addr)
	if !ok {
		return Pair{}, fmt.Errorf("%w: %s", ErrUnknownToken, token1Addr.Hex())
	}

	packed, err := r.readSlot(ctx, pool, blockNum, slotReserves)
	if err != nil {
		return Pair{}, err
	}
	reserve0, reserve1 := unpackReserves(packed)

	return NewPair(token0, token1, reserve0, reserve1, r.feeBps, bn)
}

func (r *SlotReader) readSlot(ctx context.Context, pool common.Address, blockNum *big.Int, slot int64) ([]byte, error) {
	data, err := r.client.StorageAt(ctx, pool, common.BigToHash(big.NewInt(slot)), blockNum)
	if err != nil {
		return nil, fmt.Errorf("storage slot %d: %w", slot, err)
	}
	if len(data) != 32 {
		return nil, fmt.Errorf("storage slot %d: unexpected length %d", slot, len(data))
	}
	return data, nil
}

// unpackReserves splits the single 32-byte reserve word. Big-endian layout:
// bytes [0:4] blockTimestampLast, [4:18] reserve1, [18:32] reserve0.
func unpackReserves(word []byte) (reserve0, reserve1 *big.Int) {
	reserve1 = new(big.Int).SetBytes(word[4:18])
	reserve0 = new(big.Int).SetBytes(word[18:32])
	return reserve0, reserve1
}
