package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tickScope/internal/pricetick"
	"tickScope/internal/quote"
)

func runTickToPrice(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	base, quoteToken, err := e.resolvePair(cmd, "base", "quote")
	if err != nil {
		return err
	}
	tick, _ := cmd.Flags().GetInt32("tick")

	row, err := e.quoter.TickQuote(base, quoteToken, tick)
	if err != nil {
		return err
	}
	return printJSON(cmd, row)
}

func runPriceToTick(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	base, quoteToken, err := e.resolvePair(cmd, "base", "quote")
	if err != nil {
		return err
	}

	price, _ := cmd.Flags().GetString("price")
	if price == "" {
		return fmt.Errorf("--price is required")
	}
	tolerant, _ := cmd.Flags().GetBool("tolerant")
	tickSpacing, _ := cmd.Flags().GetInt32("tick-spacing")

	result, err := e.quoter.ClosestTick(base, quoteToken, price, quote.ClosestTickOptions{
		Tolerant:    tolerant,
		Tolerance:   pricetick.Tolerance(e.cfg.Tolerance),
		TickSpacing: tickSpacing,
	})
	if err != nil {
		return err
	}

	e.logger.Debug("closest tick", zap.String("price", price), zap.Int32("tick", result.Tick), zap.Bool("tolerant", tolerant))
	return printJSON(cmd, result)
}

func runTokens(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	for _, token := range e.quoter.Tokens().Tokens() {
		if err := printJSON(cmd, token); err != nil {
			return err
		}
	}
	return nil
}
