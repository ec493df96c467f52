package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/piwi3910/ShelfCut/internal/engine"
	"github.com/piwi3910/ShelfCut/internal/model"
	"github.com/spf13/cobra"
)

var nestCmd = &cobra.Command{
	Use:   "nest <input>",
	Short: "Lay out the uprights of a job on stock sheets",
	Long:  "Derives the uprights of every module, turns each one to fit the stock and packs them row by row. Prints every sheet with its placements and the overall material utilization.",
	Args:  cobra.ExactArgs(1),
	RunE:  runNest,
}

var (
	nestFlags jobFlags
	nestJSON  bool
)

func init() {
	nestFlags.register(nestCmd)
	nestCmd.Flags().BoolVar(&nestJSON, "json", false, "print the layout as JSON")

	rootCmd.AddCommand(nestCmd)
}

func runNest(cmd *cobra.Command, args []string) error {
	j, err := loadJob(cmd, args[0], &nestFlags)
	if err != nil {
		return err
	}
	result, err := j.nest()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if nestJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return printLayout(out, result)
}

func printLayout(out io.Writer, result model.NestResult) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, s := range result.Sheets {
		fmt.Fprintf(tw, "Sheet %d\t%.0f x %.0f cm\t%d pieces\t%.1f%% used\n",
			s.Sequence, s.Width, s.Height, len(s.Placements), s.Efficiency())
		for _, pl := range s.Placements {
			rot := ""
			if pl.Piece.Rotated {
				rot = "rotated"
			}
			fmt.Fprintf(tw, "  %s\tat %.1f, %.1f\t%.1f x %.1f\t%d holes\t%s\n",
				pl.Piece.Label, pl.X, pl.Y, pl.Piece.Width, pl.Piece.Height, len(pl.Piece.Holes), rot)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	u := engine.ReportResult(result)
	_, err := fmt.Fprintf(out, "\n%d pieces on %d sheet(s) of %s, waste %.1f%%\n",
		u.PieceCount, u.SheetCount, stockName(result.Stock), u.WastePercent)
	return err
}

func stockName(s model.StockSize) string {
	if s.Label != "" {
		return s.Label
	}
	return fmt.Sprintf("%.0fx%.0f", s.Width, s.Height)
}
