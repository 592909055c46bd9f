package reserves

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// AllowanceReader reads the current ERC20 allowance for an (owner, token,
// spender) triple. The approval state machine is driven exclusively by these
// confirmed reads, never by transaction acceptance.
type AllowanceReader interface {
	GetAllowance(ctx context.Context, owner, token, spender common.Address) (*big.Int, error)
}

const erc20AllowanceABI = `[{"constant":true,"inputs":[{"name":"_owner","type":"address"},{"name":"_spender","type":"address"}],"name":"allowance","outputs":[{"name":"","type":"uint256"}],"type":"function"}]`

// EthAllowanceReader is an AllowanceReader backed by an eth_call.
type EthAllowanceReader struct {
	client *ethclient.Client
	abi    abi.ABI
}

// NewEthAllowanceReader constructs an EthAllowanceReader.
func NewEthAllowanceReader(client *ethclient.Client) (*EthAllowanceReader, error) {
	parsed, err := abi.JSON(strings.NewReader(erc20AllowanceABI))
	if err != nil {
		return nil, fmt.Errorf("parse allowance ABI: %w", err)
	}
	return &EthAllowanceReader{client: client, abi: parsed}, nil
}

// GetAllowance returns the raw allowance granted by owner to spender on token.
func (r *EthAllowanceReader) GetAllowance(ctx context.Context, owner, token, spender common.Address) (*big.Int, error) {
	input, err := r.abi.Pack("allowance", owner, spender)
	if err != nil {
		return nil, fmt.Errorf("pack allowance call: %w", err)
	}
	out, err := r.client.CallContract(ctx, ethereum.CallMsg{To: &token, Data: input}, nil)
	if err != nil {
		return nil, fmt.Errorf("allowance call: %w", err)
	}
	results, err := r.abi.Unpack("allowance", out)
	if err != nil {
		return nil, fmt.Errorf("unpack allowance result: %w", err)
	}
	allowance, ok := results[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("allowance result has unexpected type %T", results[0])
	}
	return allowance, nil
}
