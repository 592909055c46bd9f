package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/orbitdex/orbitdex-engine-go/cmd/console/config"
)

var rootCmd = &cobra.Command{
	Use:   "orbitdex",
	Short: "Console for quoting trades against orbitdex pools",
	Long: `orbitdex quotes single and batch swaps against constant-product pools,
reading reserves over JSON-RPC or from a local pools file.

Examples:
  orbitdex quote 1.5 WETH USDC
  orbitdex quote 100 USDC WETH --exact-out
  orbitdex batch-quote 10 WETH USDC:60 DAI:40
  orbitdex pairs --pools pools.json`,
	Version: "0.1.0",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("pools", "", "Path to the JSON pool registry (overrides config)")
	rootCmd.PersistentFlags().Uint16("slippage-bps", 0, "Slippage tolerance in basis points (overrides config)")
}

// loadConfig merges persistent flag overrides onto the viper-backed config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if path, _ := cmd.Flags().GetString("pools"); path != "" {
		cfg.PoolsFile = path
	}
	if bps, _ := cmd.Flags().GetUint16("slippage-bps"); bps > 0 {
		cfg.SlippageBps = bps
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func printError(err error) {
	color.Red("\nError: %v\n", err)
}

func printWarning(msg string) {
	color.Yellow("\n%s\n", msg)
}

func printField(label, value string) {
	fmt.Printf("  %-18s %s\n", label+":", value)
}
