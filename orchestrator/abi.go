package orchestrator

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Minimal ABI fragments: only the methods the orchestrator packs calldata
// for. Output declarations are omitted since nothing here decodes returns.
const routerABIJSON = `[
 {"type":"function","name":"swapExactTokensForTokens","stateMutability":"nonpayable","inputs":[
  {"name":"amountIn","type":"uint256"},{"name":"amountOutMin","type":"uint256"},
  {"name":"path","type":"address[]"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"}]},
 {"type":"function","name":"swapTokensForExactTokens","stateMutability":"nonpayable","inputs":[
  {"name":"amountOut","type":"uint256"},{"name":"amountInMax","type":"uint256"},
  {"name":"path","type":"address[]"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"}]},
 {"type":"function","name":"swapExactETHForTokens","stateMutability":"payable","inputs":[
  {"name":"amountOutMin","type":"uint256"},
  {"name":"path","type":"address[]"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"}]},
 {"type":"function","name":"swapETHForExactTokens","stateMutability":"payable","inputs":[
  {"name":"amountOut","type":"uint256"},
  {"name":"path","type":"address[]"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"}]},
 {"type":"function","name":"swapExactTokensForETH","stateMutability":"nonpayable","inputs":[
  {"name":"amountIn","type":"uint256"},{"name":"amountOutMin","type":"uint256"},
  {"name":"path","type":"address[]"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"}]},
 {"type":"function","name":"swapTokensForExactETH","stateMutability":"nonpayable","inputs":[
  {"name":"amountOut","type":"uint256"},{"name":"amountInMax","type":"uint256"},
  {"name":"path","type":"address[]"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"}]},
 {"type":"function","name":"swapExactTokensForTokensWithPermit","stateMutability":"nonpayable","inputs":[
  {"name":"amountIn","type":"uint256"},{"name":"amountOutMin","type":"uint256"},
  {"name":"path","type":"address[]"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"},
  {"name":"v","type":"uint8"},{"name":"r","type":"bytes32"},{"name":"s","type":"bytes32"}]},
 {"type":"function","name":"swapExactTokensForETHWithPermit","stateMutability":"nonpayable","inputs":[
  {"name":"amountIn","type":"uint256"},{"name":"amountOutMin","type":"uint256"},
  {"name":"path","type":"address[]"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"},
  {"name":"v","type":"uint8"},{"name":"r","type":"bytes32"},{"name":"s","type":"bytes32"}]},
 {"type":"function","name":"removeLiquidity","stateMutability":"nonpayable","inputs":[
  {"name":"tokenA","type":"address"},{"name":"tokenB","type":"address"},
  {"name":"liquidity","type":"uint256"},{"name":"amountAMin","type":"uint256"},{"name":"amountBMin","type":"uint256"},
  {"name":"to","type":"address"},{"name":"deadline","type":"uint256"}]},
 {"type":"function","name":"removeLiquidityETH","stateMutability":"nonpayable","inputs":[
  {"name":"token","type":"address"},
  {"name":"liquidity","type":"uint256"},{"name":"amountTokenMin","type":"uint256"},{"name":"amountETHMin","type":"uint256"},
  {"name":"to","type":"address"},{"name":"deadline","type":"uint256"}]},
 {"type":"function","name":"removeLiquidityWithPermit","stateMutability":"nonpayable","inputs":[
  {"name":"tokenA","type":"address"},{"name":"tokenB","type":"address"},
  {"name":"liquidity","type":"uint256"},{"name":"amountAMin","type":"uint256"},{"name":"amountBMin","type":"uint256"},
  {"name":"to","type":"address"},{"name":"deadline","type":"uint256"},
  {"name":"approveMax","type":"bool"},{"name":"v","type":"uint8"},{"name":"r","type":"bytes32"},{"name":"s","type":"bytes32"}]},
 {"type":"function","name":"removeLiquidityETHWithPermit","stateMutability":"nonpayable","inputs":[
  {"name":"token","type":"address"},
  {"name":"liquidity","type":"uint256"},{"name":"amountTokenMin","type":"uint256"},{"name":"amountETHMin","type":"uint256"},
  {"name":"to","type":"address"},{"name":"deadline","type":"uint256"},
  {"name":"approveMax","type":"bool"},{"name":"v","type":"uint8"},{"name":"r","type":"bytes32"},{"name":"s","type":"bytes32"}]}
]`

// Collection wrappers move wrapped assets with an operation payload attached;
// the router executes the swap from within the transfer callback.
const collectionABIJSON = `[
 {"type":"function","name":"safeTransferFrom","stateMutability":"nonpayable","inputs":[
  {"name":"from","type":"address"},{"name":"to","type":"address"},
  {"name":"id","type":"uint256"},{"name":"amount","type":"uint256"},{"name":"data","type":"bytes"}]}
]`

const erc20ABIJSON = `[
 {"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[
  {"name":"spender","type":"address"},{"name":"amount","type":"uint256"}]}
]`

var (
	routerABI     = mustABI(routerABIJSON)
	collectionABI = mustABI(collectionABIJSON)
	erc20ABI      = mustABI(erc20ABIJSON)

	// payload layout for the collection-transfer data argument
	swapPayloadArgs = abi.Arguments{
		{Name: "amountOutMin", Type: mustType("uint256")},
		{Name: "path", Type: mustType("address[]")},
		{Name: "to", Type: mustType("address")},
		{Name: "deadline", Type: mustType("uint256")},
	}
)

func mustABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}

func mustType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}
