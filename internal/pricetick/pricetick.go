package pricetick

import (
	"fmt"
	"math/big"

	"github.com/daoleno/uniswap-sdk-core/entities"

	"tickScope/internal/currency"
	"tickScope/internal/fixedpoint"
	"tickScope/internal/tickmath"
)

// Tolerance is a relative distance in hundredths of a basis point (1e6 = 100%).
type Tolerance uint32

const (
	ToleranceDenominator = 1_000_000
	// DefaultTolerance is 1%.
	DefaultTolerance Tolerance = 10_000
)

func (t Tolerance) Fraction() *entities.Fraction {
	return entities.NewFraction(big.NewInt(int64(t)), big.NewInt(ToleranceDenominator))
}

type options struct {
	tolerance Tolerance
}

// Option configures PriceToClosestTick.
type Option func(*options)

// WithTolerance snaps to the next tick when the price is within t of it.
func WithTolerance(t Tolerance) Option {
	return func(o *options) { o.tolerance = t }
}

// Tolerant is WithTolerance(DefaultTolerance).
func Tolerant() Option {
	return WithTolerance(DefaultTolerance)
}

// TickToPrice returns the price of base in quote at the given tick.
func TickToPrice(base, quote *entities.Token, tick int32) (*entities.Price, error) {
	sqrtRatioX96, err := tickmath.GetSqrtRatioAtTick(tick)
	if err != nil {
		return nil, err
	}
	ratioX192 := new(big.Int).Mul(sqrtRatioX96, sqrtRatioX96)

	sorted, err := currency.SortsBefore(base, quote)
	if err != nil {
		return nil, err
	}
	if sorted {
		return entities.NewPrice(base, quote, fixedpoint.Q192, ratioX192), nil
	}
	return entities.NewPrice(base, quote, ratioX192, fixedpoint.Q192), nil
}

// PriceToClosestTick returns the greatest tick whose price does not exceed
// price in token0 terms. With a tolerance, a price that falls short of the
// next tick by less than the tolerance selects that tick instead.
func PriceToClosestTick(price *entities.Price, opts ...Option) (int32, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	base, quote, err := currency.PairOf(price)
	if err != nil {
		return 0, err
	}
	sorted, err := currency.SortsBefore(base, quote)
	if err != nil {
		return 0, err
	}

	var sqrtRatioX96 *big.Int
	if sorted {
		sqrtRatioX96, err = tickmath.EncodeSqrtRatioX96(price.Numerator, price.Denominator)
	} else {
		sqrtRatioX96, err = tickmath.EncodeSqrtRatioX96(price.Denominator, price.Numerator)
	}
	if err != nil {
		return 0, fmt.Errorf("encode price %s/%s: %w", price.Numerator, price.Denominator, err)
	}

	tick, err := tickmath.GetTickAtSqrtRatio(sqrtRatioX96)
	if err != nil {
		return 0, err
	}

	next, err := TickToPrice(base, quote, tick+1)
	if err != nil {
		return 0, err
	}
	if (sorted && !price.LessThan(next.Fraction)) || (!sorted && !price.GreaterThan(next.Fraction)) {
		return tick + 1, nil
	}

	if o.tolerance == 0 {
		return tick, nil
	}

	floor, err := TickToPrice(base, quote, tick)
	if err != nil {
		return 0, err
	}
	if price.EqualTo(floor.Fraction) {
		return tick, nil
	}

	var ratio *entities.Fraction
	if sorted {
		ratio = next.Fraction.Divide(price.Fraction)
	} else {
		ratio = price.Fraction.Divide(next.Fraction)
	}
	one := entities.NewFraction(big.NewInt(1), big.NewInt(1))
	diff := ratio.Subtract(one)
	if ratio.LessThan(one) {
		diff = one.Subtract(ratio)
	}
	if diff.LessThan(o.tolerance.Fraction()) {
		return tick + 1, nil
	}
	return tick, nil
}

// NearestUsableTick rounds tick to the closest multiple of tickSpacing that
// stays within the valid tick range.
func NearestUsableTick(tick, tickSpacing int32) (int32, error) {
	if tickSpacing <= 0 {
		return 0, fmt.Errorf("tick spacing %d: %w", tickSpacing, tickmath.ErrInvalidInput)
	}
	if tick < tickmath.MinTick || tick > tickmath.MaxTick {
		return 0, fmt.Errorf("%w: %d", tickmath.ErrTickOutOfRange, tick)
	}

	// round half up: floor((2*tick + spacing) / (2*spacing))
	num := 2*int64(tick) + int64(tickSpacing)
	den := 2 * int64(tickSpacing)
	q := num / den
	if num%den != 0 && num < 0 {
		q--
	}

	rounded := q * int64(tickSpacing)
	if rounded < int64(tickmath.MinTick) {
		rounded += int64(tickSpacing)
	} else if rounded > int64(tickmath.MaxTick) {
		rounded -= int64(tickSpacing)
	}
	return int32(rounded), nil
}
