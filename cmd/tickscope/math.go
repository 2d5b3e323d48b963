package main

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/spf13/cobra"

	"tickScope/internal/tickmath"
)

func parseBigInt(name, input string) (*big.Int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("--%s is required", name)
	}
	value, ok := new(big.Int).SetString(input, 0)
	if !ok {
		return nil, fmt.Errorf("invalid %s: %s", name, input)
	}
	return value, nil
}

func runSqrtRatio(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	tick, _ := cmd.Flags().GetInt32("tick")
	ratio, err := tickmath.GetSqrtRatioAtTick(tick)
	if err != nil {
		return err
	}

	return printJSON(cmd, map[string]interface{}{
		"tick":           tick,
		"sqrt_price_x96": ratio.String(),
	})
}

func runTick(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	input, _ := cmd.Flags().GetString("sqrt-ratio")
	ratio, err := parseBigInt("sqrt-ratio", input)
	if err != nil {
		return err
	}

	tick, err := tickmath.GetTickAtSqrtRatio(ratio)
	if err != nil {
		return err
	}

	return printJSON(cmd, map[string]interface{}{
		"sqrt_price_x96": ratio.String(),
		"tick":           tick,
	})
}

func runEncode(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	input1, _ := cmd.Flags().GetString("amount1")
	input0, _ := cmd.Flags().GetString("amount0")
	amount1, err := parseBigInt("amount1", input1)
	if err != nil {
		return err
	}
	amount0, err := parseBigInt("amount0", input0)
	if err != nil {
		return err
	}

	ratio, err := tickmath.EncodeSqrtRatioX96(amount1, amount0)
	if err != nil {
		return err
	}

	return printJSON(cmd, map[string]interface{}{
		"amount1":        amount1.String(),
		"amount0":        amount0.String(),
		"sqrt_price_x96": ratio.String(),
	})
}
