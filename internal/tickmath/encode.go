package tickmath

import (
	"fmt"
	"math/big"

	"tickScope/internal/fixedpoint"
)

// EncodeSqrtRatioX96 returns floor(sqrt(amount1 / amount0)) in Q64.96.
func EncodeSqrtRatioX96(amount1, amount0 *big.Int) (*big.Int, error) {
	if amount1 == nil || amount0 == nil || amount1.Sign() <= 0 || amount0.Sign() <= 0 {
		return nil, fmt.Errorf("encode sqrt ratio %v/%v: %w", amount1, amount0, ErrInvalidInput)
	}

	ratioX192, err := fixedpoint.MulDiv(amount1, fixedpoint.Q192, amount0)
	if err != nil {
		return nil, err
	}
	return fixedpoint.Sqrt(ratioX192)
}
