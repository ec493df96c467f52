// Package export writes nesting results to the file formats used in the
// workshop: DXF cut drawings, PDF technical sheets, QR piece labels, an
// XLSX cut list and SVG previews.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/ShelfCut/internal/engine"
	"github.com/piwi3910/ShelfCut/internal/model"
)

// pieceColor represents an RGB fill for a placed piece.
type pieceColor struct {
	R, G, B int
}

// pieceColors cycles by placement order.
var pieceColors = []pieceColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates the technical sheets of a nesting run: one page per
// sheet with the piece layout and its holes, followed by a summary page
// with utilization, offcuts and the material estimate.
func ExportPDF(path string, result model.NestResult, settings model.Settings) error {
	if len(result.Sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, sheet := range result.Sheets {
		pdf.AddPage()
		renderSheetPage(pdf, sheet, result.Stock)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result, settings)

	return pdf.OutputFileAndClose(path)
}

// renderSheetPage draws a single sheet on the current PDF page. Sheet
// coordinates have y pointing up, so rows are flipped onto the page.
func renderSheetPage(pdf *fpdf.Fpdf, sheet model.Sheet, stock model.StockSize) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Sheet %d: %s (%.0f x %.0f cm)", sheet.Sequence, stock.Label, sheet.Width, sheet.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Pieces: %d | Used area: %.0f cm² | Total area: %.0f cm² | Efficiency: %.1f%%",
		len(sheet.Placements), sheet.UsedArea, sheet.TotalArea(), sheet.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight
	scale := math.Min(drawWidth/sheet.Width, drawHeight/sheet.Height)

	canvasW := sheet.Width * scale
	canvasH := sheet.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Steel background
	pdf.SetFillColor(200, 200, 205)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, pl := range sheet.Placements {
		col := pieceColors[i%len(pieceColors)]
		pw := pl.Piece.Width * scale
		ph := pl.Piece.Height * scale
		px := offsetX + pl.X*scale
		py := offsetY + (sheet.Height-pl.Top())*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		drawHoles(pdf, pl, sheet.Height, scale, offsetX, offsetY)

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := pl.Piece.Label
			dims := fmt.Sprintf("%.0fx%.0f", pl.Piece.Width, pl.Piece.Height)
			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, sheet, offsetX, offsetY, canvasW, canvasH)
	drawPiecesLegend(pdf, sheet, offsetY+canvasH+5)
}

// drawHoles marks every hole of a placement. Holes smaller than a printable
// dot are drawn at a fixed minimum size.
func drawHoles(pdf *fpdf.Fpdf, pl model.Placement, sheetHeight, scale, offsetX, offsetY float64) {
	r := math.Max(pl.Piece.HoleDiameter/2*scale, 0.4)
	pdf.SetFillColor(255, 255, 255)
	pdf.SetDrawColor(0, 0, 160)
	pdf.SetLineWidth(0.15)
	for _, h := range pl.AbsoluteHoles() {
		pdf.Circle(offsetX+h.X*scale, offsetY+(sheetHeight-h.Y)*scale, r, "FD")
	}
}

// drawDimensionAnnotations adds width and height labels outside the sheet rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, sheet model.Sheet, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f cm", sheet.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f cm", sheet.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPiecesLegend renders a compact legend of placed pieces below the sheet.
func drawPiecesLegend(pdf *fpdf.Fpdf, sheet model.Sheet, startY float64) {
	if len(sheet.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Pieces placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, pl := range sheet.Placements {
		col := pieceColors[i%len(pieceColors)]
		label := fmt.Sprintf("%s (%.0fx%.0f, %d holes)", pl.Piece.Label, pl.Piece.Width, pl.Piece.Height, len(pl.Piece.Holes))
		if pl.Piece.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.NestResult, settings model.Settings) {
	util := engine.Report(result.Sheets)
	est := model.CalculateMaterialEstimate(placedPieces(result), util, result.Stock, settings)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Nesting Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	y = renderKeyValues(pdf, y, "Utilization", [][2]string{
		{"Sheets Used", fmt.Sprintf("%d", util.SheetCount)},
		{"Pieces Placed", fmt.Sprintf("%d", util.PieceCount)},
		{"Stock Area", fmt.Sprintf("%.0f cm²", util.StockArea)},
		{"Used Area", fmt.Sprintf("%.0f cm²", util.UsedArea)},
		{"Waste", fmt.Sprintf("%.1f%%", util.WastePercent)},
	})

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Sheet Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 50, 30, 35, 60}
	headers := []string{"Sheet", "Dimensions", "Pieces", "Efficiency", "Used / Total Area"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, sheet := range result.Sheets {
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", sheet.Sequence),
			fmt.Sprintf("%.0f x %.0f cm", sheet.Width, sheet.Height),
			fmt.Sprintf("%d", len(sheet.Placements)),
			fmt.Sprintf("%.1f%%", sheet.Efficiency()),
			fmt.Sprintf("%.0f / %.0f cm²", sheet.UsedArea, sheet.TotalArea()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
		// Long jobs continue the table on a fresh page
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
	}

	offcuts := model.DetectAllOffcuts(result, settings.PricePerSheet)
	if len(offcuts) > 0 {
		y += 6
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, fmt.Sprintf("Usable Offcuts (%.0f cm² total)", model.TotalOffcutArea(offcuts)), "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		for _, o := range offcuts {
			if y > pageHeight-marginBottom-10 {
				pdf.AddPage()
				y = marginTop
			}
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- Sheet %d: %.0f x %.0f cm at (%.0f, %.0f)", o.SheetSequence, o.Width, o.Height, o.X, o.Y)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	if y > pageHeight-marginBottom-50 {
		pdf.AddPage()
		y = marginTop
	}
	y += 6
	renderKeyValues(pdf, y, "Material", [][2]string{
		{"Holes", fmt.Sprintf("%d", est.HoleCount)},
		{"Steel Thickness", fmt.Sprintf("%.1f mm", settings.SteelThickness*10)},
		{"Net Steel Weight", fmt.Sprintf("%.2f kg", est.SteelWeightKg)},
		{"Sheet Stock Weight", fmt.Sprintf("%.2f kg", est.StockWeightKg)},
		{"Estimated Cost", fmt.Sprintf("%.2f", est.EstimatedCost)},
	})

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by ShelfCut - Shelving Upright Nesting", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// renderKeyValues prints a titled block of label/value rows and returns the
// y position below it.
func renderKeyValues(pdf *fpdf.Fpdf, y float64, title string, items [][2]string) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, title, "", 0, "L", false, 0, "")
	y += 9

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item[1], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	return y
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

// placedPieces returns every placed piece in sheet order.
func placedPieces(result model.NestResult) []model.Piece {
	pieces := make([]model.Piece, 0, result.PieceCount())
	for _, s := range result.Sheets {
		for _, pl := range s.Placements {
			pieces = append(pieces, pl.Piece)
		}
	}
	return pieces
}
