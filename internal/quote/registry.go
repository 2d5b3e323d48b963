package quote

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/daoleno/uniswap-sdk-core/entities"
	"github.com/ethereum/go-ethereum/common"

	"tickScope/internal/currency"
	"tickScope/internal/model"
)

// TokenRegistry resolves tokens by symbol or address.
type TokenRegistry struct {
	mu        sync.RWMutex
	bySymbol  map[string]*entities.Token
	byAddress map[common.Address]*entities.Token
}

func NewTokenRegistry() *TokenRegistry {
	return &TokenRegistry{
		bySymbol:  make(map[string]*entities.Token),
		byAddress: make(map[common.Address]*entities.Token),
	}
}

// Register adds a token. Re-registering a symbol for another address fails.
func (r *TokenRegistry) Register(token *entities.Token) error {
	if token == nil {
		return fmt.Errorf("token is nil")
	}
	key := strings.ToUpper(token.Symbol())

	r.mu.Lock()
	defer r.mu.Unlock()

	if key != "" {
		if existing, ok := r.bySymbol[key]; ok && !currency.Equal(existing, token) {
			return fmt.Errorf("symbol %s already registered for %s", token.Symbol(), existing.Address.Hex())
		}
		r.bySymbol[key] = token
	}
	r.byAddress[token.Address] = token
	return nil
}

func (r *TokenRegistry) Get(symbol string) (*entities.Token, bool) {
	r.mu.RLock()
	token, ok := r.bySymbol[strings.ToUpper(strings.TrimSpace(symbol))]
	r.mu.RUnlock()
	return token, ok
}

// Resolve accepts a registered symbol or the hex address of a registered token.
func (r *TokenRegistry) Resolve(ref string) (*entities.Token, error) {
	ref = strings.TrimSpace(ref)
	if token, ok := r.Get(ref); ok {
		return token, nil
	}
	if common.IsHexAddress(ref) {
		r.mu.RLock()
		token, ok := r.byAddress[common.HexToAddress(ref)]
		r.mu.RUnlock()
		if ok {
			return token, nil
		}
	}
	return nil, fmt.Errorf("unknown token: %s", ref)
}

// Tokens returns registered token metadata ordered by symbol.
func (r *TokenRegistry) Tokens() []model.TokenMeta {
	r.mu.RLock()
	out := make([]model.TokenMeta, 0, len(r.byAddress))
	for _, token := range r.byAddress {
		out = append(out, model.TokenMeta{
			ChainID:  uint64(token.ChainId()),
			Address:  token.Address.Hex(),
			Decimals: uint8(token.Decimals()),
			Symbol:   token.Symbol(),
			Name:     token.Name(),
		})
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Symbol != out[j].Symbol {
			return out[i].Symbol < out[j].Symbol
		}
		return out[i].Address < out[j].Address
	})
	return out
}
