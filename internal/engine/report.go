package engine

import "github.com/piwi3910/ShelfCut/internal/model"

// Report sums stock and used area over a sheet sequence. Waste is the
// share of stock area not covered by piece footprints; with no sheets it
// is zero.
func Report(sheets []model.Sheet) model.Utilization {
	u := model.Utilization{SheetCount: len(sheets)}
	for _, s := range sheets {
		u.StockArea += s.TotalArea()
		u.UsedArea += s.UsedArea
		u.PieceCount += len(s.Placements)
	}
	if u.StockArea > 0 {
		u.WastePercent = (u.StockArea - u.UsedArea) / u.StockArea * 100.0
	}
	return u
}

// ReportResult is Report applied to a nesting result.
func ReportResult(r model.NestResult) model.Utilization {
	return Report(r.Sheets)
}
