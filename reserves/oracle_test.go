package reserves

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitdex/orbitdex-engine-go/currency"
)

type stubReader struct {
	pair  Pair
	err   error
	calls int
}

func (s *stubReader) ReadPair(_ context.Context, _ PairKey) (Pair, error) {
	s.calls++
	if s.err != nil {
		return Pair{}, s.err
	}
	return s.pair, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func testOraclePair(t *testing.T) Pair {
	t.Helper()
	a := currency.NewToken(common.HexToAddress("0x0000000000000000000000000000000000000001"), 18, "TKA", "Token A")
	b := currency.NewToken(common.HexToAddress("0x0000000000000000000000000000000000000002"), 18, "TKB", "Token B")
	pair, err := NewPair(a, b, big.NewInt(1000), big.NewInt(2000), 30, 1)
	require.NoError(t, err)
	return pair
}

func newTestOracle(t *testing.T, reader *stubReader, ttl time.Duration) (*CachingOracle, *time.Time) {
	t.Helper()
	oracle, err := NewCachingOracle(CachingOracleConfig{
		Reader: reader,
		Logger: nopLogger{},
		TTL:    ttl,
	})
	require.NoError(t, err)

	clock := time.Unix(1_700_000_000, 0)
	oracle.now = func() time.Time { return clock }
	return oracle, &clock
}

func TestCachingOracleServesFreshFromCache(t *testing.T) {
	pair := testOraclePair(t)
	reader := &stubReader{pair: pair}
	oracle, _ := newTestOracle(t, reader, time.Minute)

	for i := 0; i < 3; i++ {
		got, err := oracle.GetReserves(context.Background(), pair.Key())
		require.NoError(t, err)
		assert.Equal(t, 0, pair.Reserve0.Cmp(got.Reserve0))
	}
	assert.Equal(t, 1, reader.calls, "only the first lookup reads through")
}

func TestCachingOracleRefreshesAfterTTL(t *testing.T) {
	pair := testOraclePair(t)
	reader := &stubReader{pair: pair}
	oracle, clock := newTestOracle(t, reader, time.Minute)

	_, err := oracle.GetReserves(context.Background(), pair.Key())
	require.NoError(t, err)

	*clock = clock.Add(2 * time.Minute)
	_, err = oracle.GetReserves(context.Background(), pair.Key())
	require.NoError(t, err)
	assert.Equal(t, 2, reader.calls)
}

func TestCachingOracleFallsBackToStale(t *testing.T) {
	pair := testOraclePair(t)
	reader := &stubReader{pair: pair}
	oracle, clock := newTestOracle(t, reader, time.Minute)

	_, err := oracle.GetReserves(context.Background(), pair.Key())
	require.NoError(t, err)

	*clock = clock.Add(2 * time.Minute)
	reader.err = errors.New("rpc down")

	got, err := oracle.GetReserves(context.Background(), pair.Key())
	require.NoError(t, err, "stale entry is served when the refresh fails")
	assert.Equal(t, 0, pair.Reserve0.Cmp(got.Reserve0))
}

func TestCachingOracleErrorWithoutCache(t *testing.T) {
	pair := testOraclePair(t)
	reader := &stubReader{err: errors.New("rpc down")}
	oracle, _ := newTestOracle(t, reader, time.Minute)

	_, err := oracle.GetReserves(context.Background(), pair.Key())
	require.ErrorIs(t, err, ErrPairUnavailable)
}

func TestSnapshotForOmitsUnavailable(t *testing.T) {
	pair := testOraclePair(t)
	reader := &stubReader{err: errors.New("rpc down")}
	oracle, _ := newTestOracle(t, reader, time.Minute)

	missing := KeyFor(
		common.HexToAddress("0x0000000000000000000000000000000000000003"),
		common.HexToAddress("0x0000000000000000000000000000000000000004"))
	snap := oracle.SnapshotFor(context.Background(), []PairKey{pair.Key(), missing})
	assert.Equal(t, 0, snap.Len())
}

func TestCachingOracleConfigValidation(t *testing.T) {
	reader := &stubReader{}
	testCases := []struct {
		name string
		cfg  CachingOracleConfig
	}{
		{name: "missing reader", cfg: CachingOracleConfig{Logger: nopLogger{}, TTL: time.Minute}},
		{name: "missing logger", cfg: CachingOracleConfig{Reader: reader, TTL: time.Minute}},
		{name: "zero ttl", cfg: CachingOracleConfig{Reader: reader, Logger: nopLogger{}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCachingOracle(tc.cfg)
			require.Error(t, err)
		})
	}
}

func TestUnpackReserves(t *testing.T) {
	var word [32]byte
	// timestamp in the top 4 bytes must be ignored
	word[0], word[1], word[2], word[3] = 0xDE, 0xAD, 0xBE, 0xEF
	word[17] = 0x02 // reserve1 low byte
	word[31] = 0x05 // reserve0 low byte

	r0, r1 := unpackReserves(word[:])
	assert.Equal(t, 0, big.NewInt(5).Cmp(r0))
	assert.Equal(t, 0, big.NewInt(2).Cmp(r1))
}
