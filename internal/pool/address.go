package pool

import (
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/daoleno/uniswap-sdk-core/entities"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"tickScope/internal/currency"
)

var (
	FactoryAddress   = common.HexToAddress("0xAA2cd7477c451E703f3B9Ba5663334914763edF8")
	AddressZero      = common.Address{}
	PoolInitCodeHash = common.HexToHash("0x1565b129f2d1790f12d45301b9b084335626f0c92410bc43130763b69971135d")
)

const (
	minTickSpacing = -(1 << 23)
	maxTickSpacing = 1<<23 - 1
)

// poolKeyABIJSON describes the CREATE2 salt preimage abi.encode(token0, token1, tickSpacing).
const poolKeyABIJSON = `[
  {
    "inputs": [
      {"internalType": "address", "name": "token0", "type": "address"},
      {"internalType": "address", "name": "token1", "type": "address"},
      {"internalType": "int24", "name": "tickSpacing", "type": "int24"}
    ],
    "name": "poolKey",
    "outputs": [],
    "stateMutability": "pure",
    "type": "function"
  }
]`

var (
	poolKeyABI     abi.ABI
	poolKeyABIOnce sync.Once
	poolKeyABIErr  error
)

// PoolKeyABI returns the parsed salt preimage ABI.
func PoolKeyABI() (abi.ABI, error) {
	poolKeyABIOnce.Do(func() {
		poolKeyABI, poolKeyABIErr = abi.JSON(strings.NewReader(poolKeyABIJSON))
	})
	return poolKeyABI, poolKeyABIErr
}

// Params identifies a pool deployment.
type Params struct {
	Factory     common.Address
	TokenA      *entities.Token
	TokenB      *entities.Token
	TickSpacing int32
	// InitCodeHash overrides PoolInitCodeHash when set.
	InitCodeHash *common.Hash
}

// ComputePoolAddress derives the CREATE2 address of the pool for params.
func ComputePoolAddress(params Params) (common.Address, error) {
	if params.TickSpacing < minTickSpacing || params.TickSpacing > maxTickSpacing {
		return common.Address{}, fmt.Errorf("tick spacing %d does not fit int24", params.TickSpacing)
	}

	token0, token1, err := currency.SortTokens(params.TokenA, params.TokenB)
	if err != nil {
		return common.Address{}, fmt.Errorf("sort pool tokens: %w", err)
	}

	salt, err := PoolSalt(token0.Address, token1.Address, params.TickSpacing)
	if err != nil {
		return common.Address{}, err
	}

	initCodeHash := PoolInitCodeHash
	if params.InitCodeHash != nil {
		initCodeHash = *params.InitCodeHash
	}

	return crypto.CreateAddress2(params.Factory, salt, initCodeHash.Bytes()), nil
}

// PoolSalt returns keccak256(abi.encode(token0, token1, tickSpacing)).
func PoolSalt(token0, token1 common.Address, tickSpacing int32) (common.Hash, error) {
	keyABI, err := PoolKeyABI()
	if err != nil {
		return common.Hash{}, fmt.Errorf("parse pool key abi: %w", err)
	}

	encoded, err := keyABI.Methods["poolKey"].Inputs.Pack(token0, token1, big.NewInt(int64(tickSpacing)))
	if err != nil {
		return common.Hash{}, fmt.Errorf("encode pool key: %w", err)
	}
	return crypto.Keccak256Hash(encoded), nil
}
