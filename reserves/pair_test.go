package reserves_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitdex/orbitdex-engine-go/currency"
	"github.com/orbitdex/orbitdex-engine-go/reserves"
)

var (
	lowToken  = currency.NewToken(common.HexToAddress("0x0000000000000000000000000000000000000001"), 18, "LOW", "Low Address")
	highToken = currency.NewToken(common.HexToAddress("0x00000000000000000000000000000000000000FF"), 18, "HIGH", "High Address")
)

func TestKeyForCanonicalOrder(t *testing.T) {
	forward := reserves.KeyFor(lowToken.Address(), highToken.Address())
	reversed := reserves.KeyFor(highToken.Address(), lowToken.Address())

	assert.Equal(t, forward, reversed)
	assert.Equal(t, lowToken.Address(), forward.Token0)
	assert.Equal(t, highToken.Address(), forward.Token1)
}

func TestNewPairNormalizesOrder(t *testing.T) {
	// constructed in reverse address order; reserves must follow the swap
	pair, err := reserves.NewPair(highToken, lowToken, big.NewInt(500), big.NewInt(900), 30, 7)
	require.NoError(t, err)

	assert.True(t, pair.Token0.Equal(lowToken))
	assert.True(t, pair.Token1.Equal(highToken))
	assert.Equal(t, 0, big.NewInt(900).Cmp(pair.Reserve0))
	assert.Equal(t, 0, big.NewInt(500).Cmp(pair.Reserve1))
	assert.Equal(t, uint64(7), pair.UpdatedAt)
}

func TestNewPairRejectsInvalid(t *testing.T) {
	_, err := reserves.NewPair(currency.Ether, highToken, big.NewInt(1), big.NewInt(1), 30, 0)
	require.ErrorIs(t, err, reserves.ErrNotToken)

	_, err = reserves.NewPair(lowToken, lowToken, big.NewInt(1), big.NewInt(1), 30, 0)
	require.ErrorIs(t, err, reserves.ErrIdenticalTokens)
}

func TestPairAccessors(t *testing.T) {
	pair, err := reserves.NewPair(lowToken, highToken, big.NewInt(100), big.NewInt(200), 30, 0)
	require.NoError(t, err)

	r, err := pair.ReserveOf(lowToken)
	require.NoError(t, err)
	assert.Equal(t, 0, big.NewInt(100).Cmp(r))

	other, err := pair.Other(lowToken)
	require.NoError(t, err)
	assert.True(t, other.Equal(highToken))

	stranger := currency.NewToken(common.HexToAddress("0x0000000000000000000000000000000000000042"), 18, "STR", "Stranger")
	_, err = pair.ReserveOf(stranger)
	require.ErrorIs(t, err, reserves.ErrTokenMismatch)

	assert.True(t, pair.Involves(highToken))
	assert.False(t, pair.Involves(stranger))
	assert.True(t, pair.HasLiquidity())

	drained, err := reserves.NewPair(lowToken, highToken, big.NewInt(0), big.NewInt(200), 30, 0)
	require.NoError(t, err)
	assert.False(t, drained.HasLiquidity())
}

func TestSnapshotPairFor(t *testing.T) {
	pair, err := reserves.NewPair(lowToken, highToken, big.NewInt(100), big.NewInt(200), 30, 0)
	require.NoError(t, err)
	snap := reserves.NewSnapshot([]reserves.Pair{pair})

	require.Equal(t, 1, snap.Len())

	got, ok := snap.PairFor(highToken, lowToken)
	require.True(t, ok, "lookup is order-insensitive")
	assert.True(t, got.Token0.Equal(lowToken))

	// native currencies never appear in pools
	_, ok = snap.PairFor(currency.Ether, lowToken)
	assert.False(t, ok)

	stranger := currency.NewToken(common.HexToAddress("0x0000000000000000000000000000000000000042"), 18, "STR", "Stranger")
	_, ok = snap.PairFor(stranger, lowToken)
	assert.False(t, ok)
}
