package model

import "math"

// MaterialEstimate holds the aggregates handed to costing: piece counts,
// steel weight and sheet usage of one nesting run.
type MaterialEstimate struct {
	PieceCount     int     `json:"piece_count"`
	HoleCount      int     `json:"hole_count"`
	TotalPieceArea float64 `json:"total_piece_area"` // cm²
	SteelWeightKg  float64 `json:"steel_weight_kg"`  // Net weight of all pieces, holes removed
	SheetsUsed     int     `json:"sheets_used"`
	SheetsExact    float64 `json:"sheets_exact"`    // Piece area divided by sheet area
	StockWeightKg  float64 `json:"stock_weight_kg"` // Gross weight of the sheets consumed
	WastePercent   float64 `json:"waste_percent"`
	PricePerSheet  float64 `json:"price_per_sheet"`
	EstimatedCost  float64 `json:"estimated_cost"`
}

// CalculateMaterialEstimate combines the pieces of a job with the
// utilization of its nesting run.
func CalculateMaterialEstimate(pieces []Piece, util Utilization, stock StockSize, settings Settings) MaterialEstimate {
	est := MaterialEstimate{
		PieceCount:    len(pieces),
		SheetsUsed:    util.SheetCount,
		WastePercent:  util.WastePercent,
		PricePerSheet: settings.PricePerSheet,
	}

	for _, p := range pieces {
		est.HoleCount += len(p.Holes)
		est.TotalPieceArea += p.Area()
		thickness := p.Thickness
		if thickness <= 0 {
			thickness = settings.SteelThickness
		}
		cp := p
		cp.Thickness = thickness
		est.SteelWeightKg += cp.Weight(settings.SteelDensity)
	}

	sheetArea := stock.Area()
	if sheetArea > 0 {
		est.SheetsExact = est.TotalPieceArea / sheetArea
	}
	est.StockWeightKg = float64(util.SheetCount) * sheetArea * settings.SteelThickness * settings.SteelDensity / 1000.0
	est.EstimatedCost = float64(util.SheetCount) * settings.PricePerSheet

	// Round to grams / cents for stable reporting
	est.SteelWeightKg = math.Round(est.SteelWeightKg*1000) / 1000
	est.StockWeightKg = math.Round(est.StockWeightKg*1000) / 1000
	est.EstimatedCost = math.Round(est.EstimatedCost*100) / 100

	return est
}
