package currency

import "github.com/ethereum/go-ethereum/common"

// wrappedNative maps a chain ID to the wrapped representation of its native
// asset. The engine only ever routes through wrapped tokens; the native asset
// is projected through this table before any pool lookup.
var wrappedNative = map[uint64]Currency{
	1: NewToken(common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"), 18, "WETH", "Wrapped Ether"),
	5: NewToken(common.HexToAddress("0xB4FBF271143F4FBf7B91A5ded31805e42b2208d6"), 18, "WETH", "Wrapped Ether"),
}

// RegisterWrappedNative installs the wrapped-native token for a chain.
// Intended for test fixtures and non-default deployments.
func RegisterWrappedNative(chainID uint64, token Currency) {
	wrappedNative[chainID] = token
}

// Wrapped projects a currency onto the token actually held in pools: tokens
// map to themselves, the native asset maps to its wrapped token for the
// chain. The second return is false when no wrapped token is known.
func Wrapped(c Currency, chainID uint64) (Currency, bool) {
	if !c.IsNative() {
		return c, true
	}
	w, ok := wrappedNative[chainID]
	return w, ok
}

// IsWrapPair reports whether a and b are the native asset and its wrapped
// token (in either order) on the given chain. Such pairs convert 1:1 and
// bypass routing entirely.
func IsWrapPair(a, b Currency, chainID uint64) bool {
	w, ok := wrappedNative[chainID]
	if !ok {
		return false
	}
	if a.IsNative() && !b.IsNative() {
		return b.Equal(w)
	}
	if b.IsNative() && !a.IsNative() {
		return a.Equal(w)
	}
	return false
}
