package storage

import "tickScope/internal/model"

// Storage defines a sink for tick quotes.
type Storage interface {
	// Reset discards rows left by an earlier export.
	Reset() error
	PutTickQuotes(quotes []model.TickQuote) error
}
