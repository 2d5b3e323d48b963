package quote

import (
	"fmt"

	"github.com/daoleno/uniswap-sdk-core/entities"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"tickScope/internal/currency"
	"tickScope/internal/model"
	"tickScope/internal/pool"
	"tickScope/internal/pricetick"
	"tickScope/internal/tickmath"
)

const defaultSignificantDigits = 5

// Config holds quoting policy shared by all requests.
type Config struct {
	ChainID           uint64
	Tolerance         pricetick.Tolerance
	Factory           common.Address
	InitCodeHash      *common.Hash
	SignificantDigits int32
}

// Quoter converts between ticks and human prices for registered tokens.
type Quoter struct {
	cfg    Config
	tokens *TokenRegistry
	logger *zap.Logger
}

// NewQuoter builds a Quoter with its dependencies.
func NewQuoter(cfg Config, tokens *TokenRegistry, logger *zap.Logger) *Quoter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tokens == nil {
		tokens = NewTokenRegistry()
	}
	if cfg.SignificantDigits <= 0 {
		cfg.SignificantDigits = defaultSignificantDigits
	}
	if cfg.Factory == (common.Address{}) {
		cfg.Factory = pool.FactoryAddress
	}
	return &Quoter{cfg: cfg, tokens: tokens, logger: logger}
}

func (q *Quoter) Tokens() *TokenRegistry {
	return q.tokens
}

func (q *Quoter) checkChain(tokens ...*entities.Token) error {
	if q.cfg.ChainID == 0 {
		return nil
	}
	for _, token := range tokens {
		if uint64(token.ChainId()) != q.cfg.ChainID {
			return fmt.Errorf("token %s on chain %d, want %d: %w", currency.Label(token), token.ChainId(), q.cfg.ChainID, currency.ErrChainMismatch)
		}
	}
	return nil
}

// TickQuote prices base in quote at tick.
func (q *Quoter) TickQuote(base, quote *entities.Token, tick int32) (model.TickQuote, error) {
	if err := q.checkChain(base, quote); err != nil {
		return model.TickQuote{}, err
	}
	sqrtRatioX96, err := tickmath.GetSqrtRatioAtTick(tick)
	if err != nil {
		return model.TickQuote{}, err
	}
	price, err := pricetick.TickToPrice(base, quote, tick)
	if err != nil {
		return model.TickQuote{}, fmt.Errorf("tick %d to price: %w", tick, err)
	}

	return model.TickQuote{
		ChainID:      uint64(base.ChainId()),
		Base:         base.Symbol(),
		Quote:        quote.Symbol(),
		Tick:         tick,
		SqrtPriceX96: sqrtRatioX96.String(),
		Price:        price.ToSignificant(q.cfg.SignificantDigits),
		InversePrice: price.Invert().ToSignificant(q.cfg.SignificantDigits),
	}, nil
}

// ClosestTickOptions selects the rounding policy of ClosestTick.
type ClosestTickOptions struct {
	Tolerant bool
	// Tolerance overrides the configured tolerance when non-zero.
	Tolerance   pricetick.Tolerance
	TickSpacing int32
}

// ClosestTick snaps a human price onto the tick grid.
func (q *Quoter) ClosestTick(base, quote *entities.Token, human string, opts ClosestTickOptions) (model.PriceTick, error) {
	if err := q.checkChain(base, quote); err != nil {
		return model.PriceTick{}, err
	}
	price, err := currency.ParsePrice(base, quote, human)
	if err != nil {
		return model.PriceTick{}, err
	}

	tick, err := pricetick.PriceToClosestTick(price)
	if err != nil {
		return model.PriceTick{}, err
	}

	result := model.PriceTick{
		ChainID: uint64(base.ChainId()),
		Base:    base.Symbol(),
		Quote:   quote.Symbol(),
		Price:   human,
	}

	if opts.Tolerant {
		tolerance := opts.Tolerance
		if tolerance == 0 {
			tolerance = q.cfg.Tolerance
		}
		snapped, err := pricetick.PriceToClosestTick(price, pricetick.WithTolerance(tolerance))
		if err != nil {
			return model.PriceTick{}, err
		}
		if snapped != tick {
			q.logger.Debug("price snapped to next tick",
				zap.String("base", base.Symbol()),
				zap.String("quote", quote.Symbol()),
				zap.String("price", human),
				zap.Int32("floor_tick", tick),
				zap.Int32("tick", snapped),
				zap.Uint32("tolerance", uint32(tolerance)),
			)
		}
		tick = snapped
		result.Tolerance = uint32(tolerance)
	}
	result.Tick = tick

	tickPrice, err := pricetick.TickToPrice(base, quote, tick)
	if err != nil {
		return model.PriceTick{}, err
	}
	result.TickPrice = tickPrice.ToSignificant(q.cfg.SignificantDigits)

	if opts.TickSpacing > 0 {
		usable, err := pricetick.NearestUsableTick(tick, opts.TickSpacing)
		if err != nil {
			return model.PriceTick{}, err
		}
		result.TickSpacing = opts.TickSpacing
		result.UsableTick = &usable
	}

	return result, nil
}

// PoolAddress derives the pool of a pair. A zero tickSpacing uses the fee tier's spacing.
func (q *Quoter) PoolAddress(tokenA, tokenB *entities.Token, fee pool.FeeAmount, tickSpacing int32) (model.Pool, error) {
	if err := q.checkChain(tokenA, tokenB); err != nil {
		return model.Pool{}, err
	}
	if tickSpacing == 0 {
		spacing, err := fee.TickSpacing()
		if err != nil {
			return model.Pool{}, err
		}
		tickSpacing = spacing
	}

	address, err := pool.ComputePoolAddress(pool.Params{
		Factory:      q.cfg.Factory,
		TokenA:       tokenA,
		TokenB:       tokenB,
		TickSpacing:  tickSpacing,
		InitCodeHash: q.cfg.InitCodeHash,
	})
	if err != nil {
		return model.Pool{}, err
	}

	token0, token1, err := currency.SortTokens(tokenA, tokenB)
	if err != nil {
		return model.Pool{}, err
	}
	initCodeHash := pool.PoolInitCodeHash
	if q.cfg.InitCodeHash != nil {
		initCodeHash = *q.cfg.InitCodeHash
	}

	return model.Pool{
		ChainID:      uint64(tokenA.ChainId()),
		Address:      address.Hex(),
		Factory:      q.cfg.Factory.Hex(),
		Token0:       token0.Address.Hex(),
		Token1:       token1.Address.Hex(),
		Fee:          uint32(fee),
		TickSpacing:  tickSpacing,
		InitCodeHash: initCodeHash.Hex(),
	}, nil
}
