package fixedpoint

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

var (
	// ErrInvalidInput marks arguments outside a function's domain.
	ErrInvalidInput = errors.New("invalid input")
	// ErrOutOfRange marks values outside the representable tick or ratio range.
	ErrOutOfRange = errors.New("out of range")
)

var (
	Q32        = new(big.Int).Lsh(big.NewInt(1), 32)
	Q96        = new(big.Int).Lsh(big.NewInt(1), 96)
	Q128       = new(big.Int).Lsh(big.NewInt(1), 128)
	Q192       = new(big.Int).Lsh(big.NewInt(1), 192)
	MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

// MulShift returns (val * mulBy) >> 128. Callers keep the product below 2^256.
func MulShift(val, mulBy *uint256.Int) *uint256.Int {
	out := new(uint256.Int).Mul(val, mulBy)
	return out.Rsh(out, 128)
}

// MostSignificantBit returns the index of the highest set bit of x.
func MostSignificantBit(x *big.Int) (uint, error) {
	if x == nil || x.Sign() <= 0 {
		return 0, fmt.Errorf("most significant bit of non-positive value: %w", ErrInvalidInput)
	}
	return uint(x.BitLen() - 1), nil
}

// ShiftRightRoundingUp returns x >> n, adding one when any shifted-out bit is set.
func ShiftRightRoundingUp(x *big.Int, n uint) *big.Int {
	out := new(big.Int).Rsh(x, n)
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), n), big.NewInt(1))
	if new(big.Int).And(x, mask).Sign() != 0 {
		out.Add(out, big.NewInt(1))
	}
	return out
}

// Sqrt returns floor(sqrt(x)).
func Sqrt(x *big.Int) (*big.Int, error) {
	if x == nil || x.Sign() < 0 {
		return nil, fmt.Errorf("square root of negative value: %w", ErrInvalidInput)
	}
	return new(big.Int).Sqrt(x), nil
}

// MulDiv returns floor(a * b / denominator) without intermediate truncation.
func MulDiv(a, b, denominator *big.Int) (*big.Int, error) {
	if denominator == nil || denominator.Sign() == 0 {
		return nil, fmt.Errorf("mul div by zero: %w", ErrInvalidInput)
	}
	product := new(big.Int).Mul(a, b)
	return product.Quo(product, denominator), nil
}
