package engine

import (
	"log"

	"github.com/piwi3910/ShelfCut/internal/model"
)

// Nester lays out upright pieces on stock sheets.
type Nester struct {
	Settings model.Settings
}

func New(settings model.Settings) *Nester {
	return &Nester{Settings: settings}
}

// Nest validates the pieces, resolves their orientation and packs them onto
// sheets of the given stock size. Nesting is all or nothing: on any error
// no sheets are returned.
func (n *Nester) Nest(pieces []model.Piece, stock model.StockSize) (model.NestResult, error) {
	if err := n.Settings.Validate(); err != nil {
		return model.NestResult{}, err
	}
	if err := stock.Validate(); err != nil {
		return model.NestResult{}, err
	}
	if err := ValidatePieces(pieces, n.Settings); err != nil {
		return model.NestResult{}, err
	}

	oriented, err := OrientAll(pieces, stock, n.Settings.Margin)
	if err != nil {
		return model.NestResult{}, err
	}

	sheets, err := Pack(oriented, stock, n.Settings.Margin)
	if err != nil {
		return model.NestResult{}, err
	}

	log.Printf("nested %d pieces on %d sheet(s) of %.0fx%.0f cm", len(pieces), len(sheets), stock.Width, stock.Height)
	return model.NestResult{
		Stock:  stock,
		Margin: n.Settings.Margin,
		Sheets: sheets,
	}, nil
}

// RunNesting is a convenience wrapper that nests on an unlabelled stock size
// and returns only the sheets.
func RunNesting(pieces []model.Piece, stockWidth, stockHeight float64, settings model.Settings) ([]model.Sheet, error) {
	result, err := New(settings).Nest(pieces, model.StockSize{Width: stockWidth, Height: stockHeight})
	if err != nil {
		return nil, err
	}
	return result.Sheets, nil
}
