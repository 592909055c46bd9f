package approval

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// PermitSignature is a signed EIP-2612 permit: it authorizes the spender for
// the signed amount without an on-chain approve, until the deadline passes.
type PermitSignature struct {
	V        uint8
	R        common.Hash
	S        common.Hash
	Deadline *big.Int
}

// Valid reports whether the signature is still usable at the given time.
func (p *PermitSignature) Valid(now time.Time) bool {
	if p == nil || p.Deadline == nil {
		return false
	}
	return p.Deadline.Cmp(big.NewInt(now.Unix())) > 0
}

var errShortSignature = errors.New("signature shorter than 65 bytes")

// SplitSignature unpacks a raw 65-byte wallet signature into its permit
// components. Wallets that return v as 0/1 are normalized to 27/28.
func SplitSignature(sig []byte, deadline *big.Int) (*PermitSignature, error) {
	if len(sig) < 65 {
		return nil, errShortSignature
	}
	v := sig[64]
	if v < 27 {
		v += 27
	}
	out := &PermitSignature{V: v, Deadline: new(big.Int).Set(deadline)}
	copy(out.R[:], sig[:32])
	copy(out.S[:], sig[32:64])
	return out, nil
}

// PermitRequest carries everything needed to build the typed data a wallet
// signs for an EIP-2612 permit.
type PermitRequest struct {
	TokenName string
	Token     common.Address
	ChainID   int64
	Owner     common.Address
	Spender   common.Address
	Value     *big.Int
	Nonce     *big.Int
	Deadline  *big.Int
}

// TypedData renders the eth_signTypedData_v4 payload for the request. The
// domain pins name, version "1", chain id and the token contract so the
// signature cannot be replayed elsewhere.
func (r PermitRequest) TypedData() (string, error) {
	if r.Value == nil || r.Nonce == nil || r.Deadline == nil {
		return "", errors.New("permit request missing value, nonce or deadline")
	}
	payload := map[string]any{
		"types": map[string]any{
			"EIP712Domain": []map[string]string{
				{"name": "name", "type": "string"},
				{"name": "version", "type": "string"},
				{"name": "chainId", "type": "uint256"},
				{"name": "verifyingContract", "type": "address"},
			},
			"Permit": []map[string]string{
				{"name": "owner", "type": "address"},
				{"name": "spender", "type": "address"},
				{"name": "value", "type": "uint256"},
				{"name": "nonce", "type": "uint256"},
				{"name": "deadline", "type": "uint256"},
			},
		},
		"domain": map[string]any{
			"name":              r.TokenName,
			"version":           "1",
			"chainId":           r.ChainID,
			"verifyingContract": r.Token.Hex(),
		},
		"primaryType": "Permit",
		"message": map[string]any{
			"owner":    r.Owner.Hex(),
			"spender":  r.Spender.Hex(),
			"value":    r.Value.String(),
			"nonce":    r.Nonce.String(),
			"deadline": r.Deadline.String(),
		},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling permit payload: %w", err)
	}
	return string(raw), nil
}

// userRejectionCode is the EIP-1193 code wallets return when the user
// dismisses a signature prompt.
const userRejectionCode = 4001

// CodedError is an error carrying an EIP-1193 provider code.
type CodedError interface {
	error
	ErrorCode() int
}

// IsUserRejection reports whether the error is the user declining the wallet
// prompt. Rejection aborts the flow; any other signing failure should fall
// back to a plain approve instead.
func IsUserRejection(err error) bool {
	var coded CodedError
	if errors.As(err, &coded) {
		return coded.ErrorCode() == userRejectionCode
	}
	return false
}
