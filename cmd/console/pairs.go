package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "List known pools and their reserves",
	Args:  cobra.NoArgs,
	RunE:  runPairs,
}

func init() {
	rootCmd.AddCommand(pairsCmd)
}

func runPairs(cmd *cobra.Command, args []string) error {
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
	oracle, err := newOracle(ctx, cfg, reg, logger)
	if err != nil {
		return err
	}
	snap := oracle.SnapshotFor(ctx, reg.keys())

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PAIR\tRESERVE0\tRESERVE1\tFEE\tBLOCK")
	for _, p := range snap.Pairs() {
		fmt.Fprintf(w, "%s/%s\t%s\t%s\t%d bps\t%d\n",
			p.Token0.Symbol(), p.Token1.Symbol(),
			p.Reserve0.String(), p.Reserve1.String(),
			p.FeeBps, p.UpdatedAt)
	}
	return w.Flush()
}
