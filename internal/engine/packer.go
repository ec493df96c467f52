package engine

import (
	"sort"

	"github.com/piwi3910/ShelfCut/internal/model"
)

// shelfPacker lays oriented pieces onto sheets in horizontal rows. Pieces
// advance left to right along a row; a piece that would cross the right
// edge starts a new row above the tallest piece of the current one; a row
// that would cross the top edge starts a new sheet. Placement is forward
// only: earlier rows and sheets are never revisited.
type shelfPacker struct {
	stock  model.StockSize
	margin float64
	sheets []model.Sheet

	cursorX   float64
	cursorY   float64
	rowHeight float64
}

func newShelfPacker(stock model.StockSize, margin float64) *shelfPacker {
	return &shelfPacker{stock: stock, margin: margin}
}

func (sp *shelfPacker) openSheet() {
	sp.sheets = append(sp.sheets, model.Sheet{
		Sequence:   len(sp.sheets) + 1,
		Width:      sp.stock.Width,
		Height:     sp.stock.Height,
		Placements: []model.Placement{},
	})
	sp.cursorX, sp.cursorY, sp.rowHeight = 0, 0, 0
}

func (sp *shelfPacker) current() *model.Sheet {
	return &sp.sheets[len(sp.sheets)-1]
}

// place puts one oriented piece at the next free slot.
func (sp *shelfPacker) place(p model.Piece) error {
	iw := p.Width + sp.margin
	ih := p.Height + sp.margin

	if len(sp.sheets) == 0 {
		sp.openSheet()
	}

	if sp.cursorX+iw > sp.stock.Width+epsilon {
		sp.cursorY += sp.rowHeight
		sp.cursorX = 0
		sp.rowHeight = 0
	}

	if sp.cursorY+ih > sp.stock.Height+epsilon {
		sp.openSheet()
		// An empty sheet must take any piece that passed orientation.
		if iw > sp.stock.Width+epsilon || ih > sp.stock.Height+epsilon {
			return &model.PieceTooLargeError{
				Label:       p.Label,
				Width:       p.Width,
				Height:      p.Height,
				StockWidth:  sp.stock.Width,
				StockHeight: sp.stock.Height,
				Margin:      sp.margin,
			}
		}
	}

	sheet := sp.current()
	sheet.Placements = append(sheet.Placements, model.Placement{
		Piece: p,
		X:     sp.cursorX,
		Y:     sp.cursorY,
	})
	sheet.UsedArea += p.Area()

	sp.cursorX += iw
	if ih > sp.rowHeight {
		sp.rowHeight = ih
	}
	return nil
}

// sortByHeight orders pieces tallest first. The sort is stable so equal
// heights keep their input order.
func sortByHeight(pieces []model.Piece) []model.Piece {
	sorted := make([]model.Piece, len(pieces))
	copy(sorted, pieces)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Height > sorted[j].Height
	})
	return sorted
}

// Pack places already oriented pieces onto as many stock sheets as needed.
// Zero pieces produce zero sheets.
func Pack(pieces []model.Piece, stock model.StockSize, margin float64) ([]model.Sheet, error) {
	sp := newShelfPacker(stock, margin)
	for _, p := range sortByHeight(pieces) {
		if err := sp.place(p); err != nil {
			return nil, err
		}
	}
	if sp.sheets == nil {
		return []model.Sheet{}, nil
	}
	return sp.sheets, nil
}
