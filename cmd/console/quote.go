package main

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/orbitdex/orbitdex-engine-go/currency"
	"github.com/orbitdex/orbitdex-engine-go/engine"
	"github.com/orbitdex/orbitdex-engine-go/swap"
)

var quoteCmd = &cobra.Command{
	Use:   "quote AMOUNT INPUT OUTPUT",
	Short: "Quote a single swap",
	Long: `Quote a swap of AMOUNT of INPUT for OUTPUT against current reserves.

By default AMOUNT is the input side; with --exact-out it is the desired
output and the required input is derived.

Examples:
  orbitdex quote 1.5 WETH USDC
  orbitdex quote 3000 USDC WETH --exact-out`,
	Args: cobra.ExactArgs(3),
	RunE: runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)
	quoteCmd.Flags().Bool("exact-out", false, "Treat AMOUNT as the desired output amount")
}

func runQuote(cmd *cobra.Command, args []string) error {
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
	output, ok := reg.lookup(args[2])
	if !ok {
		return fmt.Errorf("unknown token %q", args[2])
	}

	oracle, err := newOracle(ctx, cfg, reg, logger)
	if err != nil {
		return err
	}
	quoter, err := engine.NewSnapshotQuoter(engine.SnapshotQuoterConfig{
		Oracle:  oracle,
		Keys:    reg.keys(),
		Bridges: reg.bridges(cfg.ChainID),
		ChainID: cfg.ChainID,
	})
	if err != nil {
		return err
	}
	eng, err := engine.New(engine.Config{
		Quoter:     quoter,
		Logger:     logger,
		Registerer: prometheus.NewRegistry(),
	})
	if err != nil {
		return err
	}

	field := swap.FieldInput
	if exactOut, _ := cmd.Flags().GetBool("exact-out"); exactOut {
		field = swap.FieldOutput
	}
	account := common.Address{}
	in := swap.Inputs{
		ChainID:          cfg.ChainID,
		Account:          &account,
		IndependentField: field,
		TypedValue:       args[0],
		InputCurrency:    &input,
		OutputCurrency:   &output,
		SlippageBps:      cfg.SlippageBps,
	}

	res, _, err := eng.Recompute(ctx, in)
	if err != nil {
		return err
	}
	printQuote(res, cfg.SlippageBps)
	return nil
}

func printQuote(res *swap.Result, slippageBps uint16) {
	if res.Err != nil {
		printWarning(res.Err.Message)
	}

	amtIn := res.Amounts[swap.FieldInput]
	amtOut := res.Amounts[swap.FieldOutput]
	if amtIn == nil || amtOut == nil {
		return
	}

	fmt.Println()
	if res.WrapKind != swap.WrapNone {
		verb := "Wrap"
		if res.WrapKind == swap.Unwrap {
			verb = "Unwrap"
		}
		color.Green("%s %s %s to %s %s (1:1)",
			verb, amtIn.Decimal(6), amtIn.Currency().Symbol(),
			amtOut.Decimal(6), amtOut.Currency().Symbol())
		fmt.Println()
		return
	}

	printField("Input", amtIn.Decimal(6)+" "+amtIn.Currency().Symbol())
	printField("Output", amtOut.Decimal(6)+" "+amtOut.Currency().Symbol())
	printField("Price", humanPrice(amtIn, amtOut))
	if res.Trade != nil {
		printField("Route", routeString(res))
	}
	printField("Price impact", impactString(res.PriceImpactBps, res.Severity))
	printField("Slippage", fmt.Sprintf("%d bps", slippageBps))
	if res.MinimumOut != nil {
		printField("Minimum received", res.MinimumOut.Decimal(6)+" "+res.MinimumOut.Currency().Symbol())
	}
	if res.MaximumIn != nil {
		printField("Maximum sold", res.MaximumIn.Decimal(6)+" "+res.MaximumIn.Currency().Symbol())
	}
	fmt.Println()
}

// humanPrice renders output per one whole input unit, decimals adjusted.
func humanPrice(in, out *currency.Amount) string {
	if in.Sign() == 0 {
		return "-"
	}
	price := new(big.Rat).SetFrac(out.Raw(), in.Raw())
	scale := new(big.Rat).SetFrac(
		currency.DecimalScale(in.Currency().Decimals()),
		currency.DecimalScale(out.Currency().Decimals()))
	price.Mul(price, scale)
	return fmt.Sprintf("%s %s per %s",
		price.FloatString(6), out.Currency().Symbol(), in.Currency().Symbol())
}

func routeString(res *swap.Result) string {
	syms := make([]string, len(res.Trade.Route.Path))
	for i, c := range res.Trade.Route.Path {
		syms[i] = c.Symbol()
	}
	return strings.Join(syms, " > ")
}

func impactString(bps int64, severity int) string {
	s := fmt.Sprintf("%d.%02d%%", bps/100, bps%100)
	switch {
	case severity >= 4:
		return color.RedString(s)
	case severity >= 2:
		return color.YellowString(s)
	default:
		return color.GreenString(s)
	}
}
