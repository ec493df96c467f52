package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Width,Depth,Height,Shelves\n80,30,200,4\n60,30,180,3\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Width;Depth;Height;Shelves\n80;30;200;4\n60;30;180;3\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Width\tDepth\tHeight\tShelves\n80\t30\t200\t4\n60\t30\t180\t3\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Width|Depth|Height|Shelves\n80|30|200|4\n60|30|180|3\n")
	got := DetectCSVDelimiter(data)
	if got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Width", "Depth", "Height", "Shelves", "Heights", "Quantity"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	want := ColumnMapping{Width: 0, Depth: 1, Height: 2, Shelves: 3, Heights: 4, Quantity: 5}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_ShortKeys(t *testing.T) {
	row := []string{"W", "D", "H", "R", "MH"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Width != 0 || mapping.Depth != 1 || mapping.Height != 2 {
		t.Errorf("unexpected dimension columns: %+v", mapping)
	}
	if mapping.Shelves != 3 {
		t.Errorf("expected Shelves at 3, got %d", mapping.Shelves)
	}
	if mapping.Heights != 4 {
		t.Errorf("expected Heights at 4, got %d", mapping.Heights)
	}
	if mapping.Quantity != -1 {
		t.Errorf("expected no Quantity column, got %d", mapping.Quantity)
	}
}

func TestDetectColumns_AlternativeNames(t *testing.T) {
	row := []string{"Qty", "Altezza", "Profondità", "Larghezza", "Ripiani"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Quantity != 0 {
		t.Errorf("expected Quantity at 0, got %d", mapping.Quantity)
	}
	if mapping.Height != 1 {
		t.Errorf("expected Height at 1, got %d", mapping.Height)
	}
	if mapping.Depth != 2 {
		t.Errorf("expected Depth at 2, got %d", mapping.Depth)
	}
	if mapping.Width != 3 {
		t.Errorf("expected Width at 3, got %d", mapping.Width)
	}
	if mapping.Shelves != 4 {
		t.Errorf("expected Shelves at 4, got %d", mapping.Shelves)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	row := []string{"80", "30", "200", "4"}
	mapping, isHeader := DetectColumns(row)

	if isHeader {
		t.Error("expected no header for numeric data")
	}
	want := ColumnMapping{Width: 0, Depth: 1, Height: 2, Shelves: 3, Heights: 4, Quantity: 5}
	if mapping != want {
		t.Errorf("expected positional mapping %+v, got %+v", want, mapping)
	}
}

// ─── ImportCSVFromReader Tests ─────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Width,Depth,Height,Shelves\n80,30,200,4\n60,25,180,3\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(result.Modules))
	}

	m := result.Modules[1]
	if m.Width != 60 || m.Depth != 25 || m.Height != 180 {
		t.Errorf("unexpected dimensions %vx%vx%v", m.Width, m.Depth, m.Height)
	}
	if m.Shelves != 3 {
		t.Errorf("expected 3 shelves, got %d", m.Shelves)
	}
	if m.Manual {
		t.Error("expected evenly spaced module")
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "80,30,200,4\n60,30,180\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(result.Modules))
	}
	if result.Modules[1].Shelves != 0 {
		t.Errorf("expected missing shelf count to default to 0, got %d", result.Modules[1].Shelves)
	}
}

func TestImportCSVFromReader_UnknownHeaderSkipped(t *testing.T) {
	data := "a,b,c\n80,30,200\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Modules) != 1 {
		t.Fatalf("expected 1 module, got %d", len(result.Modules))
	}
}

func TestImportCSVFromReader_ReorderedColumns(t *testing.T) {
	data := "Qty,Height,Depth,Width\n2,200,30,80\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(result.Modules))
	}
	if result.Modules[0].Width != 80 {
		t.Errorf("expected width 80, got %f", result.Modules[0].Width)
	}
	if result.Modules[0].Height != 200 {
		t.Errorf("expected height 200, got %f", result.Modules[0].Height)
	}
}

func TestImportCSVFromReader_SemicolonDecimalComma(t *testing.T) {
	data := "Width;Depth;Height\n80,5;30;200,25\n"
	result := ImportCSVFromReader(strings.NewReader(data), ';')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Modules) != 1 {
		t.Fatalf("expected 1 module, got %d", len(result.Modules))
	}
	if result.Modules[0].Width != 80.5 {
		t.Errorf("expected width 80.5, got %f", result.Modules[0].Width)
	}
	if result.Modules[0].Height != 200.25 {
		t.Errorf("expected height 200.25, got %f", result.Modules[0].Height)
	}
}

func TestImportCSVFromReader_ManualHeights(t *testing.T) {
	data := "Width,Depth,Height,Shelves,Heights\n80,30,200,3,0 60/120\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	m := result.Modules[0]
	if !m.Manual {
		t.Error("expected manual module")
	}
	want := []float64{0, 60, 120}
	if len(m.ShelfHeights) != len(want) {
		t.Fatalf("expected heights %v, got %v", want, m.ShelfHeights)
	}
	for i := range want {
		if m.ShelfHeights[i] != want[i] {
			t.Errorf("height %d: expected %v, got %v", i, want[i], m.ShelfHeights[i])
		}
	}
}

func TestImportCSVFromReader_HeightsOverrideShelfCount(t *testing.T) {
	data := "Width,Depth,Height,Shelves,Heights\n80,30,200,5,0 100\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Modules[0].Shelves != 2 {
		t.Errorf("expected shelf count from heights, got %d", result.Modules[0].Shelves)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "2 shelf heights given for 5 shelves") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected mismatch warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_ShelfAboveModule(t *testing.T) {
	data := "Width,Depth,Height,Heights\n80,30,200,0 250\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if len(result.Modules) != 0 {
		t.Errorf("expected no modules, got %d", len(result.Modules))
	}
}

func TestImportCSVFromReader_QuantityCopiesAreIndependent(t *testing.T) {
	data := "Width,Depth,Height,Heights,Quantity\n80,30,200,0 100,3\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Modules) != 3 {
		t.Fatalf("expected 3 modules, got %d (errors: %v)", len(result.Modules), result.Errors)
	}
	result.Modules[0].ShelfHeights[1] = 42
	if result.Modules[1].ShelfHeights[1] != 100 {
		t.Error("expected repeated modules not to share shelf heights")
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

func TestImportCSVFromReader_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"invalid width", "abc,30,200,4,,1"},
		{"negative depth", "80,-30,200,4,,1"},
		{"zero height", "80,30,0,4,,1"},
		{"negative shelves", "80,30,200,-1,,1"},
		{"fractional shelves", "80,30,200,2.5,,1"},
		{"bad heights", "80,30,200,,0 x,1"},
		{"zero quantity", "80,30,200,4,,0"},
		{"invalid quantity", "80,30,200,4,,abc"},
		{"missing depth", "80,,200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := "Width,Depth,Height,Shelves,Heights,Quantity\n" + tt.row + "\n"
			result := ImportCSVFromReader(strings.NewReader(data), ',')
			if len(result.Errors) != 1 {
				t.Errorf("expected 1 error, got %v", result.Errors)
			}
			if len(result.Modules) != 0 {
				t.Errorf("expected 0 modules, got %d", len(result.Modules))
			}
		})
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	data := "Width,Depth,Height\n80,30,200\nabc,30,200\n60,30,180\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Modules) != 2 {
		t.Errorf("expected 2 valid modules, got %d", len(result.Modules))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %d", len(result.Errors))
	}
	if !strings.HasPrefix(result.Errors[0], "Line 3") {
		t.Errorf("expected error to name line 3, got %q", result.Errors[0])
	}
}

func TestImportCSVFromReader_EmptyRows(t *testing.T) {
	data := "Width,Depth,Height\n80,30,200\n\n\n60,30,180\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Modules) != 2 {
		t.Errorf("expected 2 modules (skipping empty rows), got %d (errors: %v)", len(result.Modules), result.Errors)
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	data := "Width,Height,Quantity\n80,200,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) == 0 {
		t.Fatal("expected error for missing depth column")
	}
	if !strings.Contains(result.Errors[0], "Depth") {
		t.Errorf("expected error to mention Depth, got: %s", result.Errors[0])
	}
}

func TestImportCSVFromReader_OnlyHeaders(t *testing.T) {
	data := "Width,Depth,Height\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Modules) != 0 {
		t.Errorf("expected 0 modules, got %d", len(result.Modules))
	}
}

func TestImportCSVFromReader_WhitespaceInValues(t *testing.T) {
	data := "Width,Depth,Height,Shelves\n  80 , 30 , 200 , 4 \n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Modules) != 1 {
		t.Fatalf("expected 1 module, got %d", len(result.Modules))
	}
	if result.Modules[0].Shelves != 4 {
		t.Errorf("expected 4 shelves, got %d", result.Modules[0].Shelves)
	}
}

// ─── ImportCSV File Tests ──────────────────────────────────

func TestImportCSV_SemicolonFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "modules.csv")
	content := "Width;Depth;Height;Shelves\n80;30;200;4\n60;30;180;3\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(result.Modules))
	}

	hasDelimWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			hasDelimWarning = true
		}
	}
	if !hasDelimWarning {
		t.Error("expected a warning about semicolon delimiter detection")
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/path/file.csv")

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)
	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "modules.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Width", "Depth", "Height", "Shelves", "Heights", "Quantity"},
		{80, 30, 200, 4, "", 2},
		{60, 30, 180, 0, "0 90", 1},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Modules) != 3 {
		t.Fatalf("expected 3 modules, got %d", len(result.Modules))
	}
	if result.Modules[0].Width != 80 {
		t.Errorf("expected width 80, got %f", result.Modules[0].Width)
	}
	if !result.Modules[2].Manual || result.Modules[2].Shelves != 2 {
		t.Errorf("expected manual module with 2 shelves, got %+v", result.Modules[2])
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{80, 30, 200, 4},
		{60, 30, 180, 3},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(result.Modules))
	}
}

func TestImportExcel_InvalidData(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Width", "Depth", "Height"},
		{"abc", 30, 200},
		{80, 30, 200},
	})

	result := ImportExcel(path)

	if len(result.Modules) != 1 {
		t.Errorf("expected 1 valid module, got %d", len(result.Modules))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(result.Errors))
	}
	if !strings.HasPrefix(result.Errors[0], "Row 2") {
		t.Errorf("expected error to name row 2, got %q", result.Errors[0])
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/path/file.xlsx")

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}
