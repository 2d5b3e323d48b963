package model

// TickQuote is the price of Base in Quote at a single tick.
type TickQuote struct {
	ChainID      uint64 `json:"chain_id"`
	Base         string `json:"base"`
	Quote        string `json:"quote"`
	Tick         int32  `json:"tick"`
	SqrtPriceX96 string `json:"sqrt_price_x96"`
	Price        string `json:"price"`
	InversePrice string `json:"inverse_price"`
}

// PriceTick is the result of snapping a human price onto the tick grid.
type PriceTick struct {
	ChainID     uint64 `json:"chain_id"`
	Base        string `json:"base"`
	Quote       string `json:"quote"`
	Price       string `json:"price"`
	Tick        int32  `json:"tick"`
	TickPrice   string `json:"tick_price"`
	Tolerance   uint32 `json:"tolerance,omitempty"`
	TickSpacing int32  `json:"tick_spacing,omitempty"`
	UsableTick  *int32 `json:"usable_tick,omitempty"`
}
