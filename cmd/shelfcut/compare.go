package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/piwi3910/ShelfCut/internal/engine"
	"github.com/piwi3910/ShelfCut/internal/model"
	"github.com/piwi3910/ShelfCut/internal/project"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <input>",
	Short: "Nest a job on every stock preset and pick the best",
	Long:  "Nests the job once per stock preset in the inventory, plus the --stock size when given, and reports sheets, waste and cost for each. The best stock uses the fewest sheets, then wastes the least.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompare,
}

var compareFlags jobFlags

func init() {
	compareCmd.Flags().StringVar(&compareFlags.stock, "stock", "", "extra stock size as WIDTHxHEIGHT in cm")
	compareCmd.Flags().Float64Var(&compareFlags.margin, "margin", 0, "clearance between pieces in cm")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	j, err := loadJob(cmd, args[0], &compareFlags)
	if err != nil {
		return err
	}

	inv, _, err := project.LoadOrCreateInventory()
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	stocks := inv.StockSizes()
	prices := make([]float64, len(inv.Stocks))
	for i, s := range inv.Stocks {
		prices[i] = s.PricePerSheet
	}
	if compareFlags.stock != "" {
		stocks = append(stocks, j.Project.Stock)
		prices = append(prices, j.Project.Settings.PricePerSheet)
	}
	if len(stocks) == 0 {
		return errors.New("inventory has no stock presets")
	}

	results := engine.New(j.Project.Settings).CompareStocks(j.Pieces, stocks)

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STOCK\tSIZE\tSHEETS\tWASTE\tCOST")
	for i, r := range results {
		size := fmt.Sprintf("%.0f x %.0f", r.Stock.Width, r.Stock.Height)
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\t%s\t-\t-\t%s\n", stockName(r.Stock), size, failure(r.Err))
			continue
		}
		cost := "-"
		if prices[i] > 0 {
			cost = fmt.Sprintf("%.2f", float64(r.SheetsUsed())*prices[i])
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f%%\t%s\n", stockName(r.Stock), size, r.SheetsUsed(), r.Utilization.WastePercent, cost)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	best, ok := engine.BestComparison(results)
	if !ok {
		return errors.New("no stock size fits every piece")
	}
	_, err = fmt.Fprintf(out, "\nBest: %s (%d sheet(s), waste %.1f%%)\n",
		stockName(best.Stock), best.SheetsUsed(), best.Utilization.WastePercent)
	return err
}

// failure shortens a nesting error for the comparison table.
func failure(err error) string {
	var tooLarge *model.PieceTooLargeError
	if errors.As(err, &tooLarge) {
		return tooLarge.Label + " does not fit"
	}
	return err.Error()
}
