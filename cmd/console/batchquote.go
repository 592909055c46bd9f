package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/orbitdex/orbitdex-engine-go/batchswap"
	"github.com/orbitdex/orbitdex-engine-go/router"
	"github.com/orbitdex/orbitdex-engine-go/swap"
)

var batchQuoteCmd = &cobra.Command{
	Use:   "batch-quote AMOUNT INPUT OUTPUT:PCT [OUTPUT:PCT...]",
	Short: "Quote one input split across several outputs",
	Long: `Quote a batch swap: AMOUNT of INPUT split by percentage across two or
more output tokens. Percentages must sum to exactly 100.

Examples:
  orbitdex batch-quote 10 WETH USDC:60 DAI:40
  orbitdex batch-quote 5000 USDC WETH:50 WBTC:30 DAI:20`,
	Args: cobra.MinimumNArgs(4),
	RunE: runBatchQuote,
}

func init() {
	rootCmd.AddCommand(batchQuoteCmd)
}

func runBatchQuote(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	ctx := cmd.Context()

	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	input, ok := reg.lookup(args[1])
	if !ok {
		return fmt.Errorf("unknown token %q", args[1])
	}

	slots := make([]batchswap.OutputSlot, 0, len(args)-2)
	for i, arg := range args[2:] {
		sym, pctStr, found := strings.Cut(arg, ":")
		if !found {
			return fmt.Errorf("output %q: expected OUTPUT:PCT", arg)
		}
		c, ok := reg.lookup(sym)
		if !ok {
			return fmt.Errorf("unknown token %q", sym)
		}
		pct, err := strconv.Atoi(pctStr)
		if err != nil || pct < 0 || pct > 100 {
			return fmt.Errorf("output %q: bad percentage %q", arg, pctStr)
		}
		cc := c
		slots = append(slots, batchswap.OutputSlot{
			Field:      swap.BatchOutput(i + 1),
			Currency:   &cc,
			Percentage: pct,
		})
	}

	oracle, err := newOracle(ctx, cfg, reg, logger)
	if err != nil {
		return err
	}
	snap := oracle.SnapshotFor(ctx, reg.keys())
	finder := router.NewFinder(snap, reg.bridges(cfg.ChainID), 0, cfg.ChainID)

	account := common.Address{}
	res := batchswap.Derive(batchswap.Inputs{
		ChainID:       cfg.ChainID,
		Account:       &account,
		InputCurrency: &input,
		TypedValue:    args[0],
		Outputs:       slots,
		SlippageBps:   cfg.SlippageBps,
	}, finder)

	printBatchQuote(&res)
	return nil
}

func printBatchQuote(res *batchswap.Result) {
	if res.Err != nil {
		printWarning(res.Err.Message)
	}
	if res.ParsedInput == nil {
		return
	}

	fmt.Println()
	printField("Input", res.ParsedInput.Decimal(6)+" "+res.ParsedInput.Currency().Symbol())
	for _, slot := range res.Outputs {
		if slot.Currency == nil {
			continue
		}
		label := fmt.Sprintf("%s (%d%%)", slot.Currency.Symbol(), slot.Percentage)
		if !slot.HasTrade || slot.Amount == nil {
			printField(label, "no route")
			continue
		}
		value := slot.Amount.Decimal(6) + " " + slot.Currency.Symbol()
		if slot.AmountMin != nil {
			value += " (min " + slot.AmountMin.Decimal(6) + ")"
		}
		printField(label, value)
	}
	fmt.Println()
}
