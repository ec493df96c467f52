// Package importer reads shelving module lists from CSV and Excel files and
// uprights back from DXF drawings. Column headers are matched
// case-insensitively against known aliases and the CSV delimiter is
// detected automatically.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/ShelfCut/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of a module list import.
type ImportResult struct {
	Modules  []model.ShelvingModule
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Width    int
	Depth    int
	Height   int
	Shelves  int
	Heights  int
	Quantity int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
// The short forms match the keys of the configurator's JSON export.
var headerAliases = map[string][]string{
	"width":    {"width", "w", "module width", "larghezza"},
	"depth":    {"depth", "d", "profondita", "profondità"},
	"height":   {"height", "h", "altezza"},
	"shelves":  {"shelves", "shelf count", "r", "n", "ripiani"},
	"heights":  {"heights", "shelf heights", "mh", "man_heights", "manual heights"},
	"quantity": {"quantity", "qty", "count", "pcs", "modules"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping (width, depth, height, shelves, heights, quantity) and false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{-1, -1, -1, -1, -1, -1}
	roles := map[string]*int{
		"width":    &mapping.Width,
		"depth":    &mapping.Depth,
		"height":   &mapping.Height,
		"shelves":  &mapping.Shelves,
		"heights":  &mapping.Heights,
		"quantity": &mapping.Quantity,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if idx := roles[role]; *idx == -1 {
						*idx = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Width: 0, Depth: 1, Height: 2, Shelves: 3, Heights: 4, Quantity: 5}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber accepts both decimal points and decimal commas.
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
}

// parseHeights splits a manual shelf height list such as "0 40 80" or
// "0/40/80".
func parseHeights(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '/' || r == '|'
	})
	heights := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := parseNumber(f)
		if err != nil {
			return nil, fmt.Errorf("invalid shelf height '%s'", f)
		}
		heights = append(heights, v)
	}
	return heights, nil
}

// parseRow extracts a module and its repeat count from a row.
// Returns the module, the count, any error message and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.ShelvingModule, int, string, string) {
	var dims [3]float64
	for i, col := range []struct {
		name string
		idx  int
	}{{"width", mapping.Width}, {"depth", mapping.Depth}, {"height", mapping.Height}} {
		s := getCell(row, col.idx)
		if s == "" {
			return model.ShelvingModule{}, 0, fmt.Sprintf("%s: Missing %s value", rowLabel, col.name), ""
		}
		v, err := parseNumber(s)
		if err != nil {
			return model.ShelvingModule{}, 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, col.name, s), ""
		}
		dims[i] = v
	}
	if dims[0] <= 0 || dims[1] <= 0 || dims[2] <= 0 {
		return model.ShelvingModule{}, 0, fmt.Sprintf("%s: Width, depth, and height must be positive", rowLabel), ""
	}

	shelves := 0
	if s := getCell(row, mapping.Shelves); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return model.ShelvingModule{}, 0, fmt.Sprintf("%s: Invalid shelf count '%s'", rowLabel, s), ""
		}
		shelves = n
	}

	m := model.NewShelvingModule(dims[0], dims[1], dims[2], shelves)

	var warning string
	if s := getCell(row, mapping.Heights); s != "" {
		heights, err := parseHeights(s)
		if err != nil {
			return model.ShelvingModule{}, 0, fmt.Sprintf("%s: %v", rowLabel, err), ""
		}
		m.Manual = true
		m.ShelfHeights = heights
		if shelves != 0 && shelves != len(heights) {
			warning = fmt.Sprintf("%s: %d shelf heights given for %d shelves, using the heights", rowLabel, len(heights), shelves)
		}
		m.Shelves = len(heights)
	}

	if err := m.Validate(rowLabel); err != nil {
		return model.ShelvingModule{}, 0, err.Error(), ""
	}

	qty := 1
	if s := getCell(row, mapping.Quantity); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return model.ShelvingModule{}, 0, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, s), ""
		}
		qty = n
	}

	return m, qty, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports modules from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports modules from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	records, err := readCSV(reader, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	if len(records) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}
	return importFromRows(records, "Line", nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// ImportExcel imports modules from the first sheet of an Excel workbook.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Depth == -1 {
			missing = append(missing, "Depth")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if _, err := parseNumber(getCell(rows[0], 0)); err != nil {
		// Unrecognized header: skip it and read the rest positionally
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		m, qty, errMsg, warning := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		for n := 0; n < qty; n++ {
			cp := m
			cp.ShelfHeights = append([]float64{}, m.ShelfHeights...)
			result.Modules = append(result.Modules, cp)
		}
	}

	return result
}
