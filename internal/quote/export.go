package quote

import (
	"context"
	"fmt"

	"github.com/daoleno/uniswap-sdk-core/entities"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tickScope/internal/currency"
	"tickScope/internal/model"
	"tickScope/internal/storage"
	"tickScope/internal/tickmath"
)

// ExportConfig holds settings for a tick table export.
type ExportConfig struct {
	From              int32
	To                int32
	Step              int32
	BatchSize         uint32
	Workers           int
	Out               string
	CheckpointPath    string
	CheckpointEnabled bool
}

// Exporter writes the price of every step-th tick in a range to storage.
type Exporter struct {
	cfg        ExportConfig
	quoter     *Quoter
	storage    storage.Storage
	logger     *zap.Logger
	checkpoint *CheckpointStore
}

// NewExporter builds an Exporter with its dependencies.
func NewExporter(cfg ExportConfig, quoter *Quoter, storageSink storage.Storage, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Step <= 0 {
		cfg.Step = 1
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Exporter{
		cfg:        cfg,
		quoter:     quoter,
		storage:    storageSink,
		logger:     logger,
		checkpoint: NewCheckpointStore(cfg.CheckpointPath, cfg.CheckpointEnabled),
	}
}

// Run exports the table for base/quote and returns the number of rows written.
func (e *Exporter) Run(ctx context.Context, base, quote *entities.Token) (int, error) {
	if e.quoter == nil {
		return 0, fmt.Errorf("quoter is nil")
	}
	if e.storage == nil {
		return 0, fmt.Errorf("storage is nil")
	}
	if e.cfg.BatchSize == 0 {
		return 0, fmt.Errorf("batch size must be greater than zero")
	}
	if e.cfg.From < tickmath.MinTick || e.cfg.To > tickmath.MaxTick {
		return 0, fmt.Errorf("%w: [%d, %d]", tickmath.ErrTickOutOfRange, e.cfg.From, e.cfg.To)
	}

	from, to := e.cfg.From, e.cfg.To
	current := Checkpoint{
		Base:  currency.Label(base),
		Quote: currency.Label(quote),
		From:  e.cfg.From,
		Step:  e.cfg.Step,
		Out:   e.cfg.Out,
	}
	cp, ok, err := e.checkpoint.Load()
	if err != nil {
		return 0, err
	}
	resumed := false
	if ok {
		if current.SameExport(cp) && cp.LastTick >= from {
			if cp.LastTick >= to {
				e.logger.Info("nothing to export", zap.Int32("last_tick", cp.LastTick), zap.Int32("to", to))
				return 0, nil
			}
			from = cp.LastTick + 1
			resumed = true
			e.logger.Info("resume from checkpoint", zap.Int32("last_tick", cp.LastTick), zap.Int32("from", from))
		} else {
			e.logger.Warn("checkpoint belongs to another export, ignoring",
				zap.String("base", cp.Base),
				zap.String("quote", cp.Quote),
				zap.Int32("from", cp.From),
				zap.Int32("step", cp.Step),
				zap.String("out", cp.Out),
			)
		}
	}

	ranges, err := SplitTickRange(from, to, e.cfg.BatchSize)
	if err != nil {
		return 0, err
	}

	if !resumed {
		if err := e.storage.Reset(); err != nil {
			return 0, fmt.Errorf("reset storage: %w", err)
		}
	}

	written := 0
	for _, tickRange := range ranges {
		select {
		case <-ctx.Done():
			return written, ctx.Err()
		default:
		}

		quotes, err := e.quoteBatch(ctx, base, quote, tickRange)
		if err != nil {
			return written, err
		}

		if err := e.storage.PutTickQuotes(quotes); err != nil {
			return written, fmt.Errorf("store tick quotes: %w", err)
		}
		written += len(quotes)

		current.LastTick = tickRange.To
		if err := e.checkpoint.Save(current); err != nil {
			return written, err
		}

		e.logger.Info("batch complete", zap.Int("rows", len(quotes)), zap.Int32("from", tickRange.From), zap.Int32("to", tickRange.To))
	}

	return written, nil
}

func (e *Exporter) quoteBatch(ctx context.Context, base, quote *entities.Token, tickRange TickRange) ([]model.TickQuote, error) {
	ticks := make([]int32, 0)
	for tick := e.firstOnGrid(tickRange.From); tick <= int64(tickRange.To); tick += int64(e.cfg.Step) {
		ticks = append(ticks, int32(tick))
	}

	quotes := make([]model.TickQuote, len(ticks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, tick := range ticks {
		i, tick := i, tick
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row, err := e.quoter.TickQuote(base, quote, tick)
			if err != nil {
				return fmt.Errorf("quote tick %d: %w", tick, err)
			}
			quotes[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return quotes, nil
}

// firstOnGrid returns the first tick >= tick that lies on the From + k*Step grid.
func (e *Exporter) firstOnGrid(tick int32) int64 {
	offset := int64(tick) - int64(e.cfg.From)
	step := int64(e.cfg.Step)
	if rem := offset % step; rem != 0 {
		offset += step - rem
	}
	return int64(e.cfg.From) + offset
}
