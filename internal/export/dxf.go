package export

import (
	"fmt"

	"github.com/piwi3910/ShelfCut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names shared with the importer.
const (
	LayerCut   = "CUT"
	LayerHoles = "HOLES"
	LayerText  = "TEXT"
	LayerStock = "STOCK"
)

// StripGap is the horizontal spacing between pieces in a strip drawing, cm.
const StripGap = 10.0

const (
	pieceTextHeight = 2.5
	stripTextHeight = 5.0
	textInset       = 2.0
)

type layerDef struct {
	name string
	cl   color.ColorNumber
}

var pieceLayers = []layerDef{
	{LayerCut, color.Red},
	{LayerHoles, color.Blue},
	{LayerText, color.Green},
}

func newDrawing(withStock bool) (*drawing.Drawing, error) {
	d := dxf.NewDrawing()
	layers := pieceLayers
	if withStock {
		layers = append([]layerDef{{LayerStock, color.White}}, pieceLayers...)
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.cl, dxf.DefaultLineType, false); err != nil {
			return nil, fmt.Errorf("add layer %s: %w", l.name, err)
		}
	}
	return d, nil
}

// drawPiece renders a piece outline and its holes with the lower-left
// corner at (ox, oy).
func drawPiece(d *drawing.Drawing, p model.Piece, ox, oy float64) error {
	if err := d.ChangeLayer(LayerCut); err != nil {
		return err
	}
	if _, err := d.LwPolyline(true,
		[]float64{ox, oy},
		[]float64{ox + p.Width, oy},
		[]float64{ox + p.Width, oy + p.Height},
		[]float64{ox, oy + p.Height},
	); err != nil {
		return fmt.Errorf("outline %s: %w", p.Label, err)
	}

	if err := d.ChangeLayer(LayerHoles); err != nil {
		return err
	}
	r := p.HoleDiameter / 2
	for _, h := range p.Holes {
		if _, err := d.Circle(ox+h.X, oy+h.Y, 0, r); err != nil {
			return fmt.Errorf("hole on %s: %w", p.Label, err)
		}
	}
	return nil
}

func drawText(d *drawing.Drawing, s string, x, y, height float64) error {
	if err := d.ChangeLayer(LayerText); err != nil {
		return err
	}
	_, err := d.Text(s, x, y, 0, height)
	return err
}

// ExportPieceDXF writes a single piece in its own coordinate frame, drawn
// exactly as oriented by the nester.
func ExportPieceDXF(path string, p model.Piece) error {
	d, err := newDrawing(false)
	if err != nil {
		return err
	}
	if err := drawPiece(d, p, 0, 0); err != nil {
		return err
	}
	if err := drawText(d, p.Label, textInset, textInset, pieceTextHeight); err != nil {
		return err
	}
	return d.SaveAs(path)
}

// ExportStripDXF writes every piece in one row, as oriented, separated by
// StripGap, with each label above its piece.
func ExportStripDXF(path string, pieces []model.Piece) error {
	if len(pieces) == 0 {
		return fmt.Errorf("no pieces to export")
	}
	d, err := newDrawing(false)
	if err != nil {
		return err
	}

	cursorX := 0.0
	for _, p := range pieces {
		if err := drawPiece(d, p, cursorX, 0); err != nil {
			return err
		}
		if err := drawText(d, p.Label, cursorX+textInset, p.Height+textInset, stripTextHeight); err != nil {
			return err
		}
		cursorX += p.Width + StripGap
	}
	return d.SaveAs(path)
}

// ExportSheetDXF writes one nested sheet: the stock outline and every
// placed piece at its sheet position.
func ExportSheetDXF(path string, sheet model.Sheet) error {
	d, err := newDrawing(true)
	if err != nil {
		return err
	}

	if err := d.ChangeLayer(LayerStock); err != nil {
		return err
	}
	if _, err := d.LwPolyline(true,
		[]float64{0, 0},
		[]float64{sheet.Width, 0},
		[]float64{sheet.Width, sheet.Height},
		[]float64{0, sheet.Height},
	); err != nil {
		return fmt.Errorf("stock outline: %w", err)
	}

	for _, pl := range sheet.Placements {
		if err := drawPiece(d, pl.Piece, pl.X, pl.Y); err != nil {
			return err
		}
		if err := drawText(d, pl.Piece.Label, pl.X+textInset, pl.Y+textInset, pieceTextHeight); err != nil {
			return err
		}
	}
	return d.SaveAs(path)
}
