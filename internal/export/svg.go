package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	svg "github.com/ajstarks/svgo"
	"github.com/piwi3910/ShelfCut/internal/model"
)

// svgScale converts cm to SVG user units (mm) so that sub-centimetre holes
// survive svgo's integer coordinates.
const svgScale = 10

// WriteSheetSVG renders a sheet preview: the stock, every placed piece
// with its label and every hole. The y axis is flipped so the drawing
// matches the DXF and the machine frame.
func WriteSheetSVG(w io.Writer, sheet model.Sheet) {
	width := cm(sheet.Width)
	height := cm(sheet.Height)

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#c8c8cd;stroke:#646464;stroke-width:2")

	for i, pl := range sheet.Placements {
		col := pieceColors[i%len(pieceColors)]
		x := cm(pl.X)
		y := height - cm(pl.Top())
		pw := cm(pl.Piece.Width)
		ph := cm(pl.Piece.Height)

		canvas.Gid(pl.Piece.Label)
		canvas.Rect(x, y, pw, ph, fmt.Sprintf("fill:rgb(%d,%d,%d);stroke:#1e1e1e;stroke-width:1", col.R, col.G, col.B))

		r := cm(pl.Piece.HoleDiameter / 2)
		if r < 1 {
			r = 1
		}
		for _, h := range pl.AbsoluteHoles() {
			canvas.Circle(cm(h.X), height-cm(h.Y), r, "fill:white;stroke:#0000a0;stroke-width:0.5")
		}

		fontSize := 30
		if ph < 3*fontSize {
			fontSize = ph / 3
		}
		canvas.Text(x+pw/2, y+ph/2, pl.Piece.Label,
			fmt.Sprintf("text-anchor:middle;dominant-baseline:middle;font-family:Helvetica;font-size:%dpx;fill:#000", fontSize))
		canvas.Gend()
	}

	canvas.End()
}

// ExportSVG writes one SVG file per sheet into dir, named
// <name>_sheet_<n>.svg (sheet_<n>.svg without a name), and returns the
// paths written.
func ExportSVG(dir, name string, result model.NestResult) ([]string, error) {
	prefix := "sheet_"
	if name != "" {
		prefix = name + "_sheet_"
	}
	paths := make([]string, 0, len(result.Sheets))
	for _, sheet := range result.Sheets {
		path := filepath.Join(dir, fmt.Sprintf("%s%d.svg", prefix, sheet.Sequence))
		f, err := os.Create(path)
		if err != nil {
			return paths, fmt.Errorf("create %s: %w", path, err)
		}
		WriteSheetSVG(f, sheet)
		if err := f.Close(); err != nil {
			return paths, fmt.Errorf("close %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func cm(v float64) int {
	return int(v*svgScale + 0.5)
}
