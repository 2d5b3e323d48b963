package currency

import (
	"errors"
	"fmt"

	"github.com/daoleno/uniswap-sdk-core/entities"
)

var (
	ErrChainMismatch = errors.New("tokens on different chains")
	ErrSameAddress   = errors.New("tokens share an address")
	ErrNotToken      = errors.New("currency is not a token")
)

// SortsBefore reports whether a orders before b by address. Tokens on
// different chains or sharing an address cannot be ordered.
func SortsBefore(a, b *entities.Token) (bool, error) {
	if a.ChainId() != b.ChainId() {
		return false, fmt.Errorf("compare %s and %s: %w", Label(a), Label(b), ErrChainMismatch)
	}
	if a.Address == b.Address {
		return false, fmt.Errorf("compare %s and %s: %w", Label(a), Label(b), ErrSameAddress)
	}
	return a.SortsBefore(b)
}

// SortTokens returns the pair ordered as (token0, token1).
func SortTokens(a, b *entities.Token) (*entities.Token, *entities.Token, error) {
	before, err := SortsBefore(a, b)
	if err != nil {
		return nil, nil, err
	}
	if before {
		return a, b, nil
	}
	return b, a, nil
}

// Equal reports whether both tokens are the same contract on the same chain.
func Equal(a, b *entities.Token) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ChainId() == b.ChainId() && a.Address == b.Address
}

// Label is the token symbol, or its address when the symbol is empty.
func Label(t *entities.Token) string {
	if t.Symbol() != "" {
		return t.Symbol()
	}
	return t.Address.Hex()
}

// TokenOf narrows a currency to the token it wraps.
func TokenOf(c entities.Currency) (*entities.Token, error) {
	token, ok := c.(*entities.Token)
	if !ok || token == nil {
		return nil, ErrNotToken
	}
	return token, nil
}

// PairOf returns the base and quote tokens of a price.
func PairOf(p *entities.Price) (*entities.Token, *entities.Token, error) {
	base, err := TokenOf(p.BaseCurrency)
	if err != nil {
		return nil, nil, fmt.Errorf("base currency: %w", err)
	}
	quote, err := TokenOf(p.QuoteCurrency)
	if err != nil {
		return nil, nil, fmt.Errorf("quote currency: %w", err)
	}
	return base, quote, nil
}
