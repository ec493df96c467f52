package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/ShelfCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSheetSVG(t *testing.T) {
	p := testPiece().Rotate()
	sheet := model.Sheet{
		Sequence: 1, Width: 300, Height: 150,
		Placements: []model.Placement{{Piece: p, X: 0, Y: 0}},
		UsedArea:   p.Area(),
	}

	var buf bytes.Buffer
	WriteSheetSVG(&buf, sheet)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `width="3000"`)
	assert.Contains(t, out, `id="M1_SX"`)
	assert.Equal(t, 3, strings.Count(out, "<circle"))
	assert.Contains(t, out, "</svg>")
}

func TestExportSVG_SeparatePrefixes(t *testing.T) {
	result := buildTestResult(t)
	dir := t.TempDir()

	first, err := ExportSVG(dir, "garage", result)
	require.NoError(t, err)
	second, err := ExportSVG(dir, "cellar", result)
	require.NoError(t, err)
	assert.NotEqual(t, first[0], second[0])
	assert.FileExists(t, first[0])
	assert.FileExists(t, second[0])

	bare, err := ExportSVG(dir, "", result)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sheet_1.svg"), bare[0])
}

func TestExportSVG(t *testing.T) {
	result := buildTestResult(t)
	dir := t.TempDir()

	paths, err := ExportSVG(dir, "garage", result)
	require.NoError(t, err)
	require.Len(t, paths, len(result.Sheets))
	assert.Equal(t, filepath.Join(dir, "garage_sheet_1.svg"), paths[0])

	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<svg")
	}
}
