// Package config loads console settings from environment variables and an
// optional .orbitdex.yaml file.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the console configuration.
type Config struct {
	// RPCURL is the JSON-RPC endpoint reserves are read from. Optional when
	// every command runs against a pools file with embedded reserves.
	RPCURL  string
	ChainID uint64
	// SlippageBps is the default slippage tolerance in basis points.
	SlippageBps uint16
	// PoolsFile points at the JSON pool registry; commands may override it.
	PoolsFile string
	LogLevel  string
	LogJSON   bool
}

// Load reads configuration from environment variables and the config file.
func Load() (*Config, error) {
	viper.SetConfigName(".orbitdex")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	viper.SetDefault("chain_id", 1)
	viper.SetDefault("slippage_bps", 50)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("pools_file", "pools.json")

	viper.SetEnvPrefix("ORBITDEX")
	viper.AutomaticEnv()

	// Config file is optional.
	_ = viper.ReadInConfig()

	cfg := &Config{
		RPCURL:      viper.GetString("rpc_url"),
		ChainID:     viper.GetUint64("chain_id"),
		SlippageBps: uint16(viper.GetUint32("slippage_bps")),
		PoolsFile:   viper.GetString("pools_file"),
		LogLevel:    viper.GetString("log_level"),
		LogJSON:     viper.GetBool("log_json"),
	}
	if cfg.SlippageBps > 10000 {
		return nil, fmt.Errorf("slippage_bps %d exceeds 10000", cfg.SlippageBps)
	}
	return cfg, nil
}
