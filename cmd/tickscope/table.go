package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tickScope/internal/quote"
	"tickScope/internal/storage"
)

func runTable(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	base, quoteToken, err := e.resolvePair(cmd, "base", "quote")
	if err != nil {
		return err
	}

	from, _ := cmd.Flags().GetInt32("from")
	to, _ := cmd.Flags().GetInt32("to")
	step, _ := cmd.Flags().GetInt32("step")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exporter := quote.NewExporter(quote.ExportConfig{
		From:              from,
		To:                to,
		Step:              step,
		BatchSize:         e.cfg.BatchSize,
		Workers:           e.cfg.Workers,
		Out:               e.cfg.Out,
		CheckpointPath:    e.cfg.Checkpoint,
		CheckpointEnabled: e.cfg.CheckpointEnabled,
	}, e.quoter, storage.NewJsonlStorage(e.cfg.Out), e.logger)

	e.logger.Info("table export start",
		zap.String("base", base.Symbol()),
		zap.String("quote", quoteToken.Symbol()),
		zap.Int32("from", from),
		zap.Int32("to", to),
		zap.Int32("step", step),
		zap.Uint32("batch_size", e.cfg.BatchSize),
		zap.Int("workers", e.cfg.Workers),
		zap.String("out", e.cfg.Out),
		zap.Bool("checkpoint_enabled", e.cfg.CheckpointEnabled),
	)

	written, err := exporter.Run(ctx, base, quoteToken)
	if err != nil {
		return err
	}

	e.logger.Info("table export complete", zap.Int("rows", written))
	return nil
}
