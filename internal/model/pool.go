package model

// Pool represents a derived pool deployment record.
type Pool struct {
	ChainID      uint64 `json:"chain_id"`
	Address      string `json:"address"`
	Factory      string `json:"factory"`
	Token0       string `json:"token0"`
	Token1       string `json:"token1"`
	Fee          uint32 `json:"fee,omitempty"`
	TickSpacing  int32  `json:"tick_spacing"`
	InitCodeHash string `json:"init_code_hash"`
}
