package export

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/ShelfCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

type dxfCounts struct {
	polylines [][][]float64
	circles   []*entity.Circle
}

func readDXF(t *testing.T, path string) dxfCounts {
	t.Helper()
	d, err := dxf.Open(path)
	require.NoError(t, err)

	var c dxfCounts
	for _, e := range d.Entities() {
		switch v := e.(type) {
		case *entity.LwPolyline:
			c.polylines = append(c.polylines, v.Vertices)
		case *entity.Circle:
			c.circles = append(c.circles, v)
		}
	}
	return c
}

func bounds(vertices [][]float64) (minX, minY, maxX, maxY float64) {
	minX, minY = vertices[0][0], vertices[0][1]
	maxX, maxY = minX, minY
	for _, v := range vertices[1:] {
		minX = min(minX, v[0])
		minY = min(minY, v[1])
		maxX = max(maxX, v[0])
		maxY = max(maxY, v[1])
	}
	return
}

func testPiece() model.Piece {
	p := model.NewPiece("M1_SX", 30, 200)
	p.HoleDiameter = 0.6
	p.Holes = []model.Point2D{{X: 3, Y: 2}, {X: 15, Y: 2}, {X: 27, Y: 2}}
	return p
}

func TestExportPieceDXF_KeepsOrientation(t *testing.T) {
	tests := []struct {
		name       string
		piece      model.Piece
		maxX, maxY float64
		hole       model.Point2D
	}{
		{"upright", testPiece(), 30, 200, model.Point2D{X: 3, Y: 2}},
		{"rotated", testPiece().Rotate(), 200, 30, model.Point2D{X: 2, Y: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "piece.dxf")
			require.NoError(t, ExportPieceDXF(path, tt.piece))

			c := readDXF(t, path)
			require.Len(t, c.polylines, 1)
			_, _, maxX, maxY := bounds(c.polylines[0])
			assert.InDelta(t, tt.maxX, maxX, 1e-6)
			assert.InDelta(t, tt.maxY, maxY, 1e-6)

			require.Len(t, c.circles, 3)
			assert.InDelta(t, 0.3, c.circles[0].Radius, 1e-9)
			assert.InDelta(t, tt.hole.X, c.circles[0].Center[0], 1e-6)
			assert.InDelta(t, tt.hole.Y, c.circles[0].Center[1], 1e-6)
		})
	}
}

func TestExportPieceDXF_NoHoles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.dxf")
	require.NoError(t, ExportPieceDXF(path, model.NewPiece("bare", 25, 90)))

	c := readDXF(t, path)
	assert.Len(t, c.polylines, 1)
	assert.Empty(t, c.circles)
}

func TestExportStripDXF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strip.dxf")
	rotated := testPiece().Rotate()
	rotated.Label = "M1_DX"
	require.NoError(t, ExportStripDXF(path, []model.Piece{testPiece(), rotated}))

	c := readDXF(t, path)
	require.Len(t, c.polylines, 2)
	_, _, maxX, maxY := bounds(c.polylines[0])
	assert.InDelta(t, 30, maxX, 1e-6)
	assert.InDelta(t, 200, maxY, 1e-6)

	minX, _, maxX, maxY := bounds(c.polylines[1])
	assert.InDelta(t, 30+StripGap, minX, 1e-6)
	assert.InDelta(t, 30+StripGap+200, maxX, 1e-6)
	assert.InDelta(t, 30, maxY, 1e-6)
	assert.Len(t, c.circles, 6)

	assert.Error(t, ExportStripDXF(path, nil))
}

func TestExportSheetDXF(t *testing.T) {
	result := buildTestResult(t)
	sheet := result.Sheets[0]
	path := filepath.Join(t.TempDir(), "sheet.dxf")
	require.NoError(t, ExportSheetDXF(path, sheet))

	c := readDXF(t, path)
	// Stock outline plus one outline per placement
	require.Len(t, c.polylines, len(sheet.Placements)+1)

	holes := 0
	for _, pl := range sheet.Placements {
		holes += len(pl.Piece.Holes)
	}
	assert.Len(t, c.circles, holes)

	for _, circle := range c.circles {
		assert.True(t, circle.Center[0] >= 0 && circle.Center[0] <= sheet.Width)
		assert.True(t, circle.Center[1] >= 0 && circle.Center[1] <= sheet.Height)
	}
}
