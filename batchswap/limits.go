package batchswap

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/orbitdex/orbitdex-engine-go/currency"
	"github.com/orbitdex/orbitdex-engine-go/swap"
)

// Output-count bounds. The free tier applies to every account; the full tier
// unlocks for holders of either loyalty token.
const (
	MinOutputs     = 2
	MaxOutputsFree = 5
	MaxOutputs     = 10
)

// MinLoyaltyUnlock is the loyalty-token balance (raw units, 18 decimals)
// required to unlock the full output tier: 100 whole tokens.
var MinLoyaltyUnlock, _ = new(big.Int).SetString("100000000000000000000", 10)

// loyaltyTokens maps a chain ID to the two designated loyalty tokens
// (ORB and its interoperable projection iORB).
var loyaltyTokens = map[uint64][2]currency.Currency{
	1: {
		currency.NewToken(common.HexToAddress("0x1d2054e57C2CAc1Bb34Bf0Cb7a3C54FF6Bf9b3B5"), 18, "ORB", "Orbit"),
		currency.NewToken(common.HexToAddress("0x7AE2b89788Ea16Cadded6cE64428370a98e70401"), 18, "iORB", "Interoperable Orbit"),
	},
}

// RegisterLoyaltyTokens installs the loyalty pair for a chain. Intended for
// test fixtures and non-default deployments.
func RegisterLoyaltyTokens(chainID uint64, orb, iorb currency.Currency) {
	loyaltyTokens[chainID] = [2]currency.Currency{orb, iorb}
}

// LoyaltyTokens returns the loyalty pair for a chain.
func LoyaltyTokens(chainID uint64) (orb, iorb currency.Currency, ok bool) {
	pair, ok := loyaltyTokens[chainID]
	if !ok {
		return currency.Currency{}, currency.Currency{}, false
	}
	return pair[0], pair[1], true
}

// OutputLimit returns the maximum number of output slots available to an
// account holding the given loyalty balances. Holding at least
// MinLoyaltyUnlock of either token unlocks the full tier.
func OutputLimit(orbBalance, iorbBalance *currency.Amount) int {
	if meetsUnlock(orbBalance) || meetsUnlock(iorbBalance) {
		return MaxOutputs
	}
	return MaxOutputsFree
}

func meetsUnlock(balance *currency.Amount) bool {
	return balance != nil && balance.Raw().Cmp(MinLoyaltyUnlock) >= 0
}

// EnforceOutputLimit trims active output fields down to limit by removing
// the most recently added slots. This is the safety net for accounts that
// dropped below the loyalty threshold mid-session, not a validation error.
func EnforceOutputLimit(active []swap.Field, limit int) (kept, removed []swap.Field) {
	if limit < MinOutputs {
		limit = MinOutputs
	}
	if len(active) <= limit {
		return active, nil
	}
	return active[:limit], active[limit:]
}
