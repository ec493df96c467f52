package model

import "fmt"

// PieceTooLargeError reports a piece that fits the stock in neither
// orientation. It is fatal for the stock size of the current run.
type PieceTooLargeError struct {
	Label       string  // Piece label
	Width       float64 // Piece footprint width as generated (cm)
	Height      float64 // Piece footprint height as generated (cm)
	StockWidth  float64 // Available stock width (cm)
	StockHeight float64 // Available stock height (cm)
	Margin      float64 // Clearance added to each piece dimension (cm)
}

func (e *PieceTooLargeError) Error() string {
	return fmt.Sprintf("piece %q (%.1f x %.1f cm, %.1f cm margin) does not fit stock %.1f x %.1f cm in either orientation",
		e.Label, e.Width, e.Height, e.Margin, e.StockWidth, e.StockHeight)
}

// InvalidGeometryError reports input rejected before nesting begins:
// non-positive footprints, holes outside the footprint, duplicate labels,
// or invalid stock dimensions.
type InvalidGeometryError struct {
	Label  string
	Reason string
}

func (e *InvalidGeometryError) Error() string {
	if e.Label == "" {
		return "invalid geometry: " + e.Reason
	}
	return fmt.Sprintf("invalid geometry for %q: %s", e.Label, e.Reason)
}
