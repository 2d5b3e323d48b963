package currency

import (
	"fmt"
	"math/big"

	"github.com/daoleno/uniswap-sdk-core/entities"
	"github.com/shopspring/decimal"
)

var ten = big.NewInt(10)

func pow10(n uint) *big.Int {
	return new(big.Int).Exp(ten, big.NewInt(int64(n)), nil)
}

// ParsePrice converts a human readable price such as "1.0001" into a raw
// price of quote per base.
func ParsePrice(base, quote *entities.Token, human string) (*entities.Price, error) {
	value, err := decimal.NewFromString(human)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", human, err)
	}
	if !value.IsPositive() {
		return nil, fmt.Errorf("price %q must be positive", human)
	}

	numerator := new(big.Int).Mul(value.Coefficient(), pow10(quote.Decimals()))
	denominator := pow10(base.Decimals())
	if exp := value.Exponent(); exp >= 0 {
		numerator.Mul(numerator, pow10(uint(exp)))
	} else {
		denominator.Mul(denominator, pow10(uint(-exp)))
	}
	return entities.NewPrice(base, quote, denominator, numerator), nil
}
