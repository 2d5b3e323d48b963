package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// TokenConfig describes a token known to the CLI.
type TokenConfig struct {
	Symbol   string `mapstructure:"symbol"`
	Name     string `mapstructure:"name"`
	Address  string `mapstructure:"address"`
	Decimals uint8  `mapstructure:"decimals"`
	ChainID  uint64 `mapstructure:"chain-id"`
}

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	LogLevel          string
	ChainID           uint64
	Tolerance         uint32
	SignificantDigits int32
	Factory           string
	InitCodeHash      string
	BatchSize         uint32
	Workers           int
	Out               string
	Checkpoint        string
	CheckpointEnabled bool
	Tokens            []TokenConfig
}

// DefaultTokens are registered when no tokens are configured. They carry no
// chain id and take the configured one.
func DefaultTokens() []TokenConfig {
	return []TokenConfig{
		{Symbol: "WETH", Name: "Wrapped Ether", Address: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", Decimals: 18},
		{Symbol: "USDC", Name: "USD Coin", Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Decimals: 6},
		{Symbol: "USDT", Name: "Tether USD", Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7", Decimals: 6},
		{Symbol: "DAI", Name: "Dai Stablecoin", Address: "0x6B175474E89094C44Da98b954EedeAC495271d0F", Decimals: 18},
		{Symbol: "WBTC", Name: "Wrapped BTC", Address: "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599", Decimals: 8},
	}
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TICKSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log-level", "info")
	v.SetDefault("chain-id", uint64(1))
	v.SetDefault("tolerance", uint32(10_000))
	v.SetDefault("significant-digits", 5)
	v.SetDefault("factory", "0xAA2cd7477c451E703f3B9Ba5663334914763edF8")
	v.SetDefault("init-code-hash", "")
	v.SetDefault("batch-size", uint32(1000))
	v.SetDefault("workers", 4)
	v.SetDefault("out", "./data/ticks.jsonl")
	v.SetDefault("checkpoint", "./data/ticks_checkpoint.json")
	v.SetDefault("checkpoint-enabled", false)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		LogLevel:          v.GetString("log-level"),
		ChainID:           v.GetUint64("chain-id"),
		Tolerance:         v.GetUint32("tolerance"),
		SignificantDigits: v.GetInt32("significant-digits"),
		Factory:           strings.TrimSpace(v.GetString("factory")),
		InitCodeHash:      strings.TrimSpace(v.GetString("init-code-hash")),
		BatchSize:         v.GetUint32("batch-size"),
		Workers:           v.GetInt("workers"),
		Out:               v.GetString("out"),
		Checkpoint:        v.GetString("checkpoint"),
		CheckpointEnabled: v.GetBool("checkpoint-enabled"),
	}

	tokens, err := getTokens(v, "tokens")
	if err != nil {
		return Config{}, err
	}
	if len(tokens) == 0 {
		tokens = DefaultTokens()
	}
	for i := range tokens {
		if tokens[i].ChainID == 0 {
			tokens[i].ChainID = cfg.ChainID
		}
	}
	cfg.Tokens = tokens

	if cfg.Tolerance > 1_000_000 {
		return Config{}, fmt.Errorf("tolerance %d exceeds 100%%", cfg.Tolerance)
	}

	return cfg, nil
}

func getTokens(v *viper.Viper, key string) ([]TokenConfig, error) {
	if !v.IsSet(key) {
		return nil, nil
	}

	var tokens []TokenConfig
	if err := v.UnmarshalKey(key, &tokens); err != nil {
		return nil, fmt.Errorf("parse %s: %w", key, err)
	}

	out := make([]TokenConfig, 0, len(tokens))
	for _, token := range tokens {
		token.Symbol = strings.TrimSpace(token.Symbol)
		token.Address = strings.TrimSpace(token.Address)
		if token.Address == "" {
			return nil, fmt.Errorf("token %q has no address", token.Symbol)
		}
		out = append(out, token)
	}
	return out, nil
}
