package tickmath

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"

	"tickScope/internal/fixedpoint"
)

const (
	MinTick int32 = -887272
	MaxTick int32 = -MinTick
)

var (
	ErrInvalidInput = fixedpoint.ErrInvalidInput
	ErrOutOfRange   = fixedpoint.ErrOutOfRange

	ErrTickOutOfRange      = fmt.Errorf("tick %w", ErrOutOfRange)
	ErrSqrtRatioOutOfRange = fmt.Errorf("sqrt ratio %w", ErrOutOfRange)
)

var (
	// MinSqrtRatio is GetSqrtRatioAtTick(MinTick).
	MinSqrtRatio = big.NewInt(4295128739)
	// MaxSqrtRatio is GetSqrtRatioAtTick(MaxTick).
	MaxSqrtRatio, _ = new(big.Int).SetString("1461446703485210103287273052203988822378723970342", 10)
)

// SqrtRatioLadder holds 1/sqrt(1.0001)^(2^i) in Q128.128 for i in [0, 20).
var SqrtRatioLadder = [20]*uint256.Int{
	uint256.MustFromHex("0xfffcb933bd6fad37aa2d162d1a594001"),
	uint256.MustFromHex("0xfff97272373d413259a46990580e213a"),
	uint256.MustFromHex("0xfff2e50f5f656932ef12357cf3c7fdcc"),
	uint256.MustFromHex("0xffe5caca7e10e4e61c3624eaa0941cd0"),
	uint256.MustFromHex("0xffcb9843d60f6159c9db58835c926644"),
	uint256.MustFromHex("0xff973b41fa98c081472e6896dfb254c0"),
	uint256.MustFromHex("0xff2ea16466c96a3843ec78b326b52861"),
	uint256.MustFromHex("0xfe5dee046a99a2a811c461f1969c3053"),
	uint256.MustFromHex("0xfcbe86c7900a88aedcffc83b479aa3a4"),
	uint256.MustFromHex("0xf987a7253ac413176f2b074cf7815e54"),
	uint256.MustFromHex("0xf3392b0822b70005940c7a398e4b70f3"),
	uint256.MustFromHex("0xe7159475a2c29b7443b29c7fa6e889d9"),
	uint256.MustFromHex("0xd097f3bdfd2022b8845ad8f792aa5825"),
	uint256.MustFromHex("0xa9f746462d870fdf8a65dc1f90e061e5"),
	uint256.MustFromHex("0x70d869a156d2a1b890bb3df62baf32f7"),
	uint256.MustFromHex("0x31be135f97d08fd981231505542fcfa6"),
	uint256.MustFromHex("0x9aa508b5b7a84e1c677de54f3e99bc9"),
	uint256.MustFromHex("0x5d6af8dedb81196699c329225ee604"),
	uint256.MustFromHex("0x2216e584f5fa1ea926041bedfe98"),
	uint256.MustFromHex("0x48a170391f7dc42444e8fa2"),
}

var (
	one128     = uint256.MustFromBig(fixedpoint.Q128)
	maxUint256 = uint256.MustFromBig(fixedpoint.MaxUint256)

	logSqrt10001 = mustBig("255738958999603826347141")
	tickLowErr   = mustBig("3402992956809132418596140100660247210")
	tickHighErr  = mustBig("291339464771989622907027621153398088495")
)

func mustBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("tickmath: bad constant " + s)
	}
	return v
}

// GetSqrtRatioAtTick returns sqrt(1.0001^tick) as a Q64.96 value.
func GetSqrtRatioAtTick(tick int32) (*big.Int, error) {
	if tick < MinTick || tick > MaxTick {
		return nil, fmt.Errorf("%w: %d", ErrTickOutOfRange, tick)
	}

	absTick := uint32(tick)
	if tick < 0 {
		absTick = uint32(-tick)
	}

	ratio := new(uint256.Int).Set(one128)
	if absTick&1 != 0 {
		ratio.Set(SqrtRatioLadder[0])
	}
	for i := 1; i < len(SqrtRatioLadder); i++ {
		if absTick&(1<<uint(i)) != 0 {
			ratio = fixedpoint.MulShift(ratio, SqrtRatioLadder[i])
		}
	}

	// the ladder accumulates 1/sqrt(1.0001)^|tick|
	if tick > 0 {
		ratio = new(uint256.Int).Div(maxUint256, ratio)
	}

	return fixedpoint.ShiftRightRoundingUp(ratio.ToBig(), 32), nil
}

// GetTickAtSqrtRatio returns the greatest tick whose sqrt ratio is <= sqrtRatioX96.
func GetTickAtSqrtRatio(sqrtRatioX96 *big.Int) (int32, error) {
	if sqrtRatioX96 == nil {
		return 0, fmt.Errorf("nil sqrt ratio: %w", ErrInvalidInput)
	}
	if sqrtRatioX96.Cmp(MinSqrtRatio) < 0 || sqrtRatioX96.Cmp(MaxSqrtRatio) >= 0 {
		return 0, fmt.Errorf("%w: %s", ErrSqrtRatioOutOfRange, sqrtRatioX96)
	}

	ratioX128 := new(big.Int).Lsh(sqrtRatioX96, 32)
	msb, err := fixedpoint.MostSignificantBit(ratioX128)
	if err != nil {
		return 0, err
	}

	r := new(big.Int)
	if msb >= 128 {
		r.Rsh(ratioX128, msb-127)
	} else {
		r.Lsh(ratioX128, 127-msb)
	}

	log2 := new(big.Int).Lsh(big.NewInt(int64(msb)-128), 64)
	for i := 0; i < 14; i++ {
		r.Mul(r, r)
		r.Rsh(r, 127)
		f := new(big.Int).Rsh(r, 128)
		log2.Add(log2, new(big.Int).Lsh(f, uint(63-i)))
		r.Rsh(r, uint(f.Uint64()))
	}

	logSqrt := new(big.Int).Mul(log2, logSqrt10001)

	tickLow := new(big.Int).Sub(logSqrt, tickLowErr)
	tickLow.Rsh(tickLow, 128)
	tickHigh := new(big.Int).Add(logSqrt, tickHighErr)
	tickHigh.Rsh(tickHigh, 128)

	low := int32(tickLow.Int64())
	high := int32(tickHigh.Int64())
	if low == high {
		return low, nil
	}

	highRatio, err := GetSqrtRatioAtTick(high)
	if err == nil && highRatio.Cmp(sqrtRatioX96) <= 0 {
		return high, nil
	}
	return low, nil
}
