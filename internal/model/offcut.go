package model

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Offcut represents a usable rectangular remnant area left over after cutting.
type Offcut struct {
	ID            string  `json:"id"`
	SheetSequence int     `json:"sheet_sequence"`  // Sequence of the source sheet
	X             float64 `json:"x"`               // Position on the sheet (cm from left)
	Y             float64 `json:"y"`               // Position on the sheet (cm from bottom)
	Width         float64 `json:"width"`           // Usable width (cm)
	Height        float64 `json:"height"`          // Usable height (cm)
	PricePerSheet float64 `json:"price_per_sheet"` // Inherited price proportional to area (0 if not set)
}

// Area returns the area of the offcut in cm².
func (o Offcut) Area() float64 {
	return o.Width * o.Height
}

// ToStockPreset converts an offcut into a stock preset for reuse in future projects.
func (o Offcut) ToStockPreset(thickness float64) StockPreset {
	return NewStockPreset("Offcut", o.Width, o.Height, thickness, o.PricePerSheet)
}

// MinOffcutDimension is the minimum width or height (in cm) for a remnant
// to be considered a usable offcut. Remnants smaller than this are waste.
const MinOffcutDimension = 10.0

// MinOffcutArea is the minimum area (in cm²) for a remnant to be considered usable.
const MinOffcutArea = 200.0

// DetectOffcuts identifies the remnants a row-packed sheet leaves behind:
// the strip above the last row and the unused end of the last row.
// Margins are treated as consumed material.
func DetectOffcuts(s Sheet, margin, pricePerSheet float64) []Offcut {
	if len(s.Placements) == 0 {
		return []Offcut{{
			ID:            uuid.New().String()[:8],
			SheetSequence: s.Sequence,
			Width:         s.Width,
			Height:        s.Height,
			PricePerSheet: pricePerSheet,
		}}
	}

	var top, lastRowY float64
	for _, p := range s.Placements {
		top = math.Max(top, p.Top()+margin)
		lastRowY = math.Max(lastRowY, p.Y)
	}
	top = math.Min(top, s.Height)

	var rowRight float64
	for _, p := range s.Placements {
		if p.Y == lastRowY {
			rowRight = math.Max(rowRight, p.Right()+margin)
		}
	}
	rowRight = math.Min(rowRight, s.Width)

	candidates := []Offcut{
		{X: 0, Y: top, Width: s.Width, Height: s.Height - top},
		{X: rowRight, Y: lastRowY, Width: s.Width - rowRight, Height: top - lastRowY},
	}

	var offcuts []Offcut
	for _, c := range candidates {
		if c.Width < MinOffcutDimension || c.Height < MinOffcutDimension || c.Area() < MinOffcutArea {
			continue
		}
		c.ID = uuid.New().String()[:8]
		c.SheetSequence = s.Sequence
		if pricePerSheet > 0 && s.TotalArea() > 0 {
			c.PricePerSheet = (c.Area() / s.TotalArea()) * pricePerSheet
		}
		offcuts = append(offcuts, c)
	}

	// Sort by area descending (largest offcuts first)
	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})

	return offcuts
}

// DetectAllOffcuts finds offcuts across all sheets in a nesting result.
func DetectAllOffcuts(result NestResult, pricePerSheet float64) []Offcut {
	var all []Offcut
	for _, sheet := range result.Sheets {
		all = append(all, DetectOffcuts(sheet, result.Margin, pricePerSheet)...)
	}
	return all
}

// TotalOffcutArea returns the total area of all offcuts in cm².
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}
