package engine

import "github.com/piwi3910/ShelfCut/internal/model"

// epsilon absorbs floating point noise in boundary comparisons.
const epsilon = 1e-9

// fits reports whether a w x h footprint plus margin lies within the stock.
func fits(w, h float64, stock model.StockSize, margin float64) bool {
	return w+margin <= stock.Width+epsilon && h+margin <= stock.Height+epsilon
}

// Orient decides how a piece must be laid on the given stock. A piece that
// fits as generated is returned unchanged; one that fits only after a 90°
// turn is returned rotated, holes included; anything else is a
// PieceTooLargeError. The decision depends only on the dimensions involved.
func Orient(p model.Piece, stock model.StockSize, margin float64) (model.Piece, error) {
	if fits(p.Width, p.Height, stock, margin) {
		return p.Clone(), nil
	}
	if fits(p.Height, p.Width, stock, margin) {
		return p.Rotate(), nil
	}
	return model.Piece{}, &model.PieceTooLargeError{
		Label:       p.Label,
		Width:       p.Width,
		Height:      p.Height,
		StockWidth:  stock.Width,
		StockHeight: stock.Height,
		Margin:      margin,
	}
}

// OrientAll orients every piece, stopping at the first piece that cannot be
// placed on the stock in either orientation.
func OrientAll(pieces []model.Piece, stock model.StockSize, margin float64) ([]model.Piece, error) {
	oriented := make([]model.Piece, 0, len(pieces))
	for _, p := range pieces {
		op, err := Orient(p, stock, margin)
		if err != nil {
			return nil, err
		}
		oriented = append(oriented, op)
	}
	return oriented, nil
}
