package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/daoleno/uniswap-sdk-core/entities"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tickScope/internal/config"
	"tickScope/internal/pool"
	"tickScope/internal/pricetick"
	"tickScope/internal/quote"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tickscope",
		Short:        "Concentrated liquidity tick and price toolkit",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().Uint64("chain-id", 1, "chain id of configured tokens")
	root.PersistentFlags().Int32("significant-digits", 5, "significant digits of formatted prices")

	sqrtRatioCmd := &cobra.Command{
		Use:   "sqrt-ratio",
		Short: "Print the Q64.96 sqrt price ratio of a tick",
		RunE:  runSqrtRatio,
	}
	sqrtRatioCmd.Flags().Int32("tick", 0, "tick")
	root.AddCommand(sqrtRatioCmd)

	tickCmd := &cobra.Command{
		Use:   "tick",
		Short: "Print the greatest tick at or below a Q64.96 sqrt price ratio",
		RunE:  runTick,
	}
	tickCmd.Flags().String("sqrt-ratio", "", "Q64.96 sqrt price ratio (decimal or 0x hex)")
	root.AddCommand(tickCmd)

	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode amount1/amount0 as a Q64.96 sqrt price ratio",
		RunE:  runEncode,
	}
	encodeCmd.Flags().String("amount1", "", "raw amount of token1")
	encodeCmd.Flags().String("amount0", "", "raw amount of token0")
	root.AddCommand(encodeCmd)

	tickToPriceCmd := &cobra.Command{
		Use:   "tick-to-price",
		Short: "Print the price of base in quote at a tick",
		RunE:  runTickToPrice,
	}
	tickToPriceCmd.Flags().String("base", "", "base token symbol or address")
	tickToPriceCmd.Flags().String("quote", "", "quote token symbol or address")
	tickToPriceCmd.Flags().Int32("tick", 0, "tick")
	root.AddCommand(tickToPriceCmd)

	priceToTickCmd := &cobra.Command{
		Use:   "price-to-tick",
		Short: "Find the tick closest to a human price",
		RunE:  runPriceToTick,
	}
	priceToTickCmd.Flags().String("base", "", "base token symbol or address")
	priceToTickCmd.Flags().String("quote", "", "quote token symbol or address")
	priceToTickCmd.Flags().String("price", "", "price of one base token in quote tokens")
	priceToTickCmd.Flags().Bool("tolerant", false, "snap to the next tick when within tolerance")
	priceToTickCmd.Flags().Uint32("tolerance", uint32(pricetick.DefaultTolerance), "tolerance in hundredths of a bip (1000000 = 100%)")
	priceToTickCmd.Flags().Int32("tick-spacing", 0, "also report the nearest usable tick for this spacing")
	root.AddCommand(priceToTickCmd)

	poolAddressCmd := &cobra.Command{
		Use:   "pool-address",
		Short: "Derive the CREATE2 address of a pool",
		RunE:  runPoolAddress,
	}
	poolAddressCmd.Flags().String("token-a", "", "first token symbol or address")
	poolAddressCmd.Flags().String("token-b", "", "second token symbol or address")
	poolAddressCmd.Flags().String("fee", "medium", "fee tier name or amount")
	poolAddressCmd.Flags().Int32("tick-spacing", 0, "tick spacing, 0 means the fee tier's spacing")
	poolAddressCmd.Flags().String("factory", pool.FactoryAddress.Hex(), "factory address")
	poolAddressCmd.Flags().String("init-code-hash", "", "pool init code hash override")
	root.AddCommand(poolAddressCmd)

	root.AddCommand(&cobra.Command{
		Use:   "fees",
		Short: "List fee tiers and their tick spacings",
		RunE:  runFees,
	})

	root.AddCommand(&cobra.Command{
		Use:   "tokens",
		Short: "List configured tokens",
		RunE:  runTokens,
	})

	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "Export tick prices of a pair to JSONL",
		RunE:  runTable,
	}
	tableCmd.Flags().String("base", "", "base token symbol or address")
	tableCmd.Flags().String("quote", "", "quote token symbol or address")
	tableCmd.Flags().Int32("from", 0, "first tick (inclusive)")
	tableCmd.Flags().Int32("to", 0, "last tick (inclusive)")
	tableCmd.Flags().Int32("step", 1, "tick step")
	tableCmd.Flags().Uint32("batch-size", 1000, "ticks per batch")
	tableCmd.Flags().Int("workers", 4, "concurrent quote workers per batch")
	tableCmd.Flags().String("out", "./data/ticks.jsonl", "output JSONL path")
	tableCmd.Flags().String("checkpoint", "./data/ticks_checkpoint.json", "checkpoint file path")
	tableCmd.Flags().Bool("checkpoint-enabled", false, "enable checkpointing")
	root.AddCommand(tableCmd)

	return root
}

// env bundles what every subcommand needs.
type env struct {
	cfg    config.Config
	logger *zap.Logger
	quoter *quote.Quoter
}

func setup(cmd *cobra.Command) (*env, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	registry := quote.NewTokenRegistry()
	for _, token := range cfg.Tokens {
		address, err := quote.ParseAddress(token.Address)
		if err != nil {
			return nil, fmt.Errorf("token %s: %w", token.Symbol, err)
		}
		if err := registry.Register(entities.NewToken(uint(token.ChainID), address, uint(token.Decimals), token.Symbol, token.Name)); err != nil {
			return nil, err
		}
	}

	factory, err := quote.ParseAddress(cfg.Factory)
	if err != nil {
		return nil, fmt.Errorf("factory: %w", err)
	}

	quoterCfg := quote.Config{
		ChainID:           cfg.ChainID,
		Tolerance:         pricetick.Tolerance(cfg.Tolerance),
		Factory:           factory,
		SignificantDigits: cfg.SignificantDigits,
	}
	if cfg.InitCodeHash != "" {
		hash, err := quote.ParseHash(cfg.InitCodeHash)
		if err != nil {
			return nil, fmt.Errorf("init code hash: %w", err)
		}
		quoterCfg.InitCodeHash = &hash
	}

	logger.Debug("config loaded",
		zap.Uint64("chain_id", cfg.ChainID),
		zap.Uint32("tolerance", cfg.Tolerance),
		zap.Int("tokens", len(cfg.Tokens)),
		zap.String("factory", factory.Hex()),
	)

	return &env{
		cfg:    cfg,
		logger: logger,
		quoter: quote.NewQuoter(quoterCfg, registry, logger),
	}, nil
}

func (e *env) resolvePair(cmd *cobra.Command, baseFlag, quoteFlag string) (*entities.Token, *entities.Token, error) {
	baseRef, _ := cmd.Flags().GetString(baseFlag)
	quoteRef, _ := cmd.Flags().GetString(quoteFlag)
	if baseRef == "" || quoteRef == "" {
		return nil, nil, fmt.Errorf("--%s and --%s are required", baseFlag, quoteFlag)
	}

	base, err := e.quoter.Tokens().Resolve(baseRef)
	if err != nil {
		return nil, nil, err
	}
	quoteToken, err := e.quoter.Tokens().Resolve(quoteRef)
	if err != nil {
		return nil, nil, err
	}
	return base, quoteToken, nil
}

func printJSON(cmd *cobra.Command, value interface{}) error {
	if err := json.NewEncoder(cmd.OutOrStdout()).Encode(value); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
