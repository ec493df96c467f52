package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/piwi3910/ShelfCut/internal/engine"
	"github.com/piwi3910/ShelfCut/internal/model"
	"github.com/piwi3910/ShelfCut/internal/project"
	"github.com/spf13/cobra"
)

var quoteCmd = &cobra.Command{
	Use:   "quote <input>",
	Short: "Estimate material and cost for a job",
	Long:  "Nests the job and reports piece area, steel weight, sheets used, waste and cost. Usable offcuts can be saved to the stock inventory for later jobs.",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuote,
}

var (
	quoteFlags       jobFlags
	quotePrice       float64
	quoteJSON        bool
	quoteSaveOffcuts bool
)

func init() {
	quoteFlags.register(quoteCmd)
	quoteCmd.Flags().Float64Var(&quotePrice, "price", 0, "price per stock sheet")
	quoteCmd.Flags().BoolVar(&quoteJSON, "json", false, "print the estimate as JSON")
	quoteCmd.Flags().BoolVar(&quoteSaveOffcuts, "save-offcuts", false, "add usable offcuts to the stock inventory")

	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	j, err := loadJob(cmd, args[0], &quoteFlags)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("price") {
		j.Project.Settings.PricePerSheet = quotePrice
	}
	settings := j.Project.Settings

	result, err := j.nest()
	if err != nil {
		return err
	}
	est := model.CalculateMaterialEstimate(j.Pieces, engine.ReportResult(result), result.Stock, settings)
	offcuts := model.DetectAllOffcuts(result, settings.PricePerSheet)

	if quoteSaveOffcuts && len(offcuts) > 0 {
		if err := saveOffcuts(offcuts, settings.SteelThickness); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if quoteJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Estimate model.MaterialEstimate `json:"estimate"`
			Offcuts  []model.Offcut         `json:"offcuts"`
		}{est, offcuts})
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Stock\t%s\n", stockName(result.Stock))
	fmt.Fprintf(tw, "Pieces\t%d (%d holes)\n", est.PieceCount, est.HoleCount)
	fmt.Fprintf(tw, "Piece area\t%.0f cm²\n", est.TotalPieceArea)
	fmt.Fprintf(tw, "Steel weight\t%.2f kg net, %.2f kg stock\n", est.SteelWeightKg, est.StockWeightKg)
	fmt.Fprintf(tw, "Sheets\t%d (%.2f exact)\n", est.SheetsUsed, est.SheetsExact)
	fmt.Fprintf(tw, "Waste\t%.1f%%\n", est.WastePercent)
	fmt.Fprintf(tw, "Offcuts\t%d usable, %.0f cm²\n", len(offcuts), model.TotalOffcutArea(offcuts))
	if est.PricePerSheet > 0 {
		fmt.Fprintf(tw, "Cost\t%.2f (%.2f per sheet)\n", est.EstimatedCost, est.PricePerSheet)
	}
	return tw.Flush()
}

func saveOffcuts(offcuts []model.Offcut, thickness float64) error {
	inv, path, err := project.LoadOrCreateInventory()
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	for _, o := range offcuts {
		preset := o.ToStockPreset(thickness)
		preset.Name = fmt.Sprintf("Offcut %.0fx%.0f (sheet %d)", o.Width, o.Height, o.SheetSequence)
		inv.Stocks = append(inv.Stocks, preset)
	}
	if err := project.SaveInventory(path, inv); err != nil {
		return fmt.Errorf("save inventory: %w", err)
	}
	return nil
}
