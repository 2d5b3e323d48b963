package pool

import (
	"testing"

	"github.com/daoleno/uniswap-sdk-core/entities"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickScope/internal/currency"
)

var (
	usdc = entities.NewToken(1, common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), 6, "USDC", "USD Coin")
	dai  = entities.NewToken(1, common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F"), 18, "DAI", "Dai Stablecoin")
)

func TestComputePoolAddress(t *testing.T) {
	cases := []struct {
		tickSpacing int32
		want        string
	}{
		{1, "0x19855a6ba61d628a51009db64af90e3d4ab91614"},
		{5, "0xd890ed3c02fe4030cc123aaa4f34054906d22498"},
		{10, "0x27e5e42c3b09d2de256f516607a52397dfaaf7bd"},
		{60, "0x98babaf506cdaf4801e2ed53c0d17dc78c4eb905"},
		{200, "0xa0fdb0322df0e4608607a2aca564ae3b1093ce67"},
	}
	for _, tc := range cases {
		got, err := ComputePoolAddress(Params{Factory: FactoryAddress, TokenA: usdc, TokenB: dai, TickSpacing: tc.tickSpacing})
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress(tc.want), got, "tick spacing %d", tc.tickSpacing)

		swapped, err := ComputePoolAddress(Params{Factory: FactoryAddress, TokenA: dai, TokenB: usdc, TickSpacing: tc.tickSpacing})
		require.NoError(t, err)
		assert.Equal(t, got, swapped, "token order must not matter")
	}
}

func TestComputePoolAddressInitCodeOverride(t *testing.T) {
	hash := common.HexToHash("0xe34f199b19b2b4f47f68442619d555527d244f78a3297ea89325f843f87b8b54")
	got, err := ComputePoolAddress(Params{
		Factory:      common.HexToAddress("0x1111111111111111111111111111111111111111"),
		TokenA:       usdc,
		TokenB:       dai,
		TickSpacing:  60,
		InitCodeHash: &hash,
	})
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x3b524c661724823a569eb2121a0f30e621593ed8"), got)
}

func TestComputePoolAddressErrors(t *testing.T) {
	_, err := ComputePoolAddress(Params{Factory: FactoryAddress, TokenA: usdc, TokenB: usdc, TickSpacing: 60})
	assert.ErrorIs(t, err, currency.ErrSameAddress)

	other := entities.NewToken(56, dai.Address, 18, "DAI", "Dai")
	_, err = ComputePoolAddress(Params{Factory: FactoryAddress, TokenA: usdc, TokenB: other, TickSpacing: 60})
	assert.ErrorIs(t, err, currency.ErrChainMismatch)

	_, err = ComputePoolAddress(Params{Factory: FactoryAddress, TokenA: usdc, TokenB: dai, TickSpacing: 1 << 23})
	assert.Error(t, err)
}

func TestPoolSalt(t *testing.T) {
	salt, err := PoolSalt(dai.Address, usdc.Address, 60)
	require.NoError(t, err)
	assert.Equal(t, common.HexToHash("0x708feb1e030343d55709c4bded9932db13e66b2981f8a68a77ee58a645e6893b"), salt)
}

func TestFeeAmount(t *testing.T) {
	cases := []struct {
		fee         FeeAmount
		name        string
		tickSpacing int32
	}{
		{FeeStable, "stable", 1},
		{FeeLowest, "lowest", 1},
		{FeeComplete, "complete", 5},
		{FeeLow, "low", 10},
		{FeeMedium, "medium", 60},
		{FeeHigh, "high", 200},
	}
	for _, tc := range cases {
		spacing, err := tc.fee.TickSpacing()
		require.NoError(t, err)
		assert.Equal(t, tc.tickSpacing, spacing)
		assert.Equal(t, tc.name, tc.fee.String())

		parsed, err := ParseFeeAmount(tc.name)
		require.NoError(t, err)
		assert.Equal(t, tc.fee, parsed)
	}

	assert.Equal(t, []FeeAmount{50, 100, 250, 500, 3000, 10000}, FeeAmounts())

	parsed, err := ParseFeeAmount(" 3000 ")
	require.NoError(t, err)
	assert.Equal(t, FeeMedium, parsed)

	_, err = ParseFeeAmount("42")
	assert.Error(t, err)
	_, err = ParseFeeAmount("huge")
	assert.Error(t, err)
	_, err = FeeAmount(42).TickSpacing()
	assert.Error(t, err)
	assert.Equal(t, "42", FeeAmount(42).String())
}
