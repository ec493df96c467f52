package export

import (
	"fmt"
	"math"

	"github.com/piwi3910/ShelfCut/internal/engine"
	"github.com/piwi3910/ShelfCut/internal/model"
	"github.com/xuri/excelize/v2"
)

// Worksheet names of the cut list workbook.
const (
	SheetPieces  = "Pieces"
	SheetHoles   = "Holes"
	SheetLayout  = "Sheets"
	SheetSummary = "Summary"
)

var (
	piecesHeader = []interface{}{"Label", "Module", "Side", "Width (cm)", "Height (cm)", "Holes", "Sheet", "X (cm)", "Y (cm)", "Rotated"}
	holesHeader  = []interface{}{"Label", "Hole", "Sheet", "X (cm)", "Y (cm)", "Diameter (cm)"}
	layoutHeader = []interface{}{"Sheet", "Width (cm)", "Height (cm)", "Pieces", "Used (cm²)", "Total (cm²)", "Efficiency (%)"}
)

// ExportXLSX writes the cut list of a nesting run as a workbook with one
// row per piece, one per hole in sheet coordinates, one per sheet and a
// summary of utilization and material.
func ExportXLSX(path string, result model.NestResult, settings model.Settings) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPieces); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetHoles, SheetLayout, SheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	w := &rowWriter{f: f, style: headerStyle}
	w.header(SheetPieces, piecesHeader)
	w.header(SheetHoles, holesHeader)
	w.header(SheetLayout, layoutHeader)

	pieceRow, holeRow := 2, 2
	for _, sheet := range result.Sheets {
		for _, pl := range sheet.Placements {
			p := pl.Piece
			side := ""
			if p.Module > 0 {
				side = p.Side.String()
			}
			w.row(SheetPieces, pieceRow, []interface{}{
				p.Label, p.Module, side, p.Width, p.Height, len(p.Holes), sheet.Sequence, pl.X, pl.Y, p.Rotated,
			})
			pieceRow++

			for i, h := range pl.AbsoluteHoles() {
				w.row(SheetHoles, holeRow, []interface{}{p.Label, i + 1, sheet.Sequence, h.X, h.Y, p.HoleDiameter})
				holeRow++
			}
		}
	}

	for i, sheet := range result.Sheets {
		w.row(SheetLayout, i+2, []interface{}{
			sheet.Sequence, sheet.Width, sheet.Height, len(sheet.Placements),
			sheet.UsedArea, sheet.TotalArea(), round2(sheet.Efficiency()),
		})
	}

	util := engine.Report(result.Sheets)
	est := model.CalculateMaterialEstimate(placedPieces(result), util, result.Stock, settings)
	summary := [][]interface{}{
		{"Stock", result.Stock.Label},
		{"Stock Width (cm)", result.Stock.Width},
		{"Stock Height (cm)", result.Stock.Height},
		{"Margin (cm)", result.Margin},
		{"Sheets Used", util.SheetCount},
		{"Pieces", util.PieceCount},
		{"Holes", est.HoleCount},
		{"Stock Area (cm²)", util.StockArea},
		{"Used Area (cm²)", util.UsedArea},
		{"Waste (%)", round2(util.WastePercent)},
		{"Net Steel Weight (kg)", est.SteelWeightKg},
		{"Stock Weight (kg)", est.StockWeightKg},
		{"Estimated Cost", est.EstimatedCost},
	}
	for i, r := range summary {
		w.row(SheetSummary, i+1, r)
	}
	if w.err == nil {
		w.err = f.SetColWidth(SheetSummary, "A", "A", 24)
	}
	if w.err != nil {
		return fmt.Errorf("write cut list: %w", w.err)
	}

	return f.SaveAs(path)
}

// rowWriter remembers the first error so row loops stay flat.
type rowWriter struct {
	f     *excelize.File
	style int
	err   error
}

func (w *rowWriter) row(sheet string, row int, values []interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &values)
}

func (w *rowWriter) header(sheet string, values []interface{}) {
	w.row(sheet, 1, values)
	if w.err != nil {
		return
	}
	last, err := excelize.CoordinatesToCellName(len(values), 1)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(sheet, "A1", last, w.style)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
