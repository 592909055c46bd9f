// Package currency defines the closed set of asset kinds the engine trades:
// the chain's native asset and ERC20 tokens. All call sites branch on the
// tag explicitly instead of relying on sentinel values.
package currency

import (
	"github.com/ethereum/go-ethereum/common"
)

// Kind tags a Currency as either the chain's native asset or an ERC20 token.
type Kind uint8

const (
	KindNative Kind = iota
	KindToken
)

// Currency is a tagged union of {native asset, token}. The zero value is not
// a valid currency; use Native or NewToken.
type Currency struct {
	kind     Kind
	address  common.Address // zero for the native asset
	decimals uint8
	symbol   string
	name     string
}

// Native returns the chain's native asset with the given display metadata.
func Native(decimals uint8, symbol, name string) Currency {
	return Currency{kind: KindNative, decimals: decimals, symbol: symbol, name: name}
}

// Ether is the mainnet native asset.
var Ether = Native(18, "ETH", "Ether")

// NewToken returns an ERC20 token currency.
func NewToken(address common.Address, decimals uint8, symbol, name string) Currency {
	return Currency{kind: KindToken, address: address, decimals: decimals, symbol: symbol, name: name}
}

// Kind returns the union tag.
func (c Currency) Kind() Kind { return c.kind }

// IsNative reports whether c is the chain's native asset.
func (c Currency) IsNative() bool { return c.kind == KindNative }

// Address returns the token contract address. It is the zero address for the
// native asset.
func (c Currency) Address() common.Address { return c.address }

// Decimals returns the number of decimal places of the smallest unit.
func (c Currency) Decimals() uint8 { return c.decimals }

// Symbol returns the display symbol.
func (c Currency) Symbol() string { return c.symbol }

// Name returns the display name.
func (c Currency) Name() string { return c.name }

// Equal reports whether two currencies identify the same asset: both native,
// or both tokens at the same address. Display metadata is not compared.
func (c Currency) Equal(other Currency) bool {
	if c.kind != other.kind {
		return false
	}
	if c.kind == KindNative {
		return true
	}
	return c.address == other.address
}

// String returns the symbol, falling back to the address for unnamed tokens.
func (c Currency) String() string {
	if c.symbol != "" {
		return c.symbol
	}
	if c.kind == KindToken {
		return c.address.Hex()
	}
	return "NATIVE"
}
