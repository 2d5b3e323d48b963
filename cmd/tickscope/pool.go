package main

import (
	"github.com/spf13/cobra"

	"tickScope/internal/pool"
)

func runPoolAddress(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	tokenA, tokenB, err := e.resolvePair(cmd, "token-a", "token-b")
	if err != nil {
		return err
	}

	feeInput, _ := cmd.Flags().GetString("fee")
	fee, err := pool.ParseFeeAmount(feeInput)
	if err != nil {
		return err
	}
	tickSpacing, _ := cmd.Flags().GetInt32("tick-spacing")

	record, err := e.quoter.PoolAddress(tokenA, tokenB, fee, tickSpacing)
	if err != nil {
		return err
	}
	return printJSON(cmd, record)
}

func runFees(cmd *cobra.Command, _ []string) error {
	for _, fee := range pool.FeeAmounts() {
		spacing, err := fee.TickSpacing()
		if err != nil {
			return err
		}
		if err := printJSON(cmd, map[string]interface{}{
			"name":         fee.String(),
			"fee":          uint32(fee),
			"tick_spacing": spacing,
		}); err != nil {
			return err
		}
	}
	return nil
}
