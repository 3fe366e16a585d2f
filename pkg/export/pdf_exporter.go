package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const lineHeight = 5.0

// PDFExporter renders datasets into a tabular PDF. Cell values may span
// several lines; every row is as tall as its tallest cell.
type PDFExporter struct {
	// Orientation is "P" (default) or "L".
	Orientation string
}

// NewPDFExporter constructs a portrait PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{Orientation: "P"}
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	orientation := e.Orientation
	if orientation != "L" {
		orientation = "P"
	}

	pdf := gofpdf.New(orientation, "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(data.Headers))

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(strings.ToUpper(title)), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, tr(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for i, row := range data.Rows {
		lines := 1
		for _, header := range data.Headers {
			if n := len(pdf.SplitLines([]byte(tr(row[header])), colWidth-2)); n > lines {
				lines = n
			}
		}
		height := float64(lines)*lineHeight + 2

		x, y := pdf.GetXY()
		for j, header := range data.Headers {
			cx := x + float64(j)*colWidth
			style := "D"
			if f, ok := data.fill(i, header); ok {
				pdf.SetFillColor(f.R, f.G, f.B)
				style = "FD"
			}
			pdf.Rect(cx, y, colWidth, height, style)
			pdf.SetXY(cx+1, y+1)
			pdf.MultiCell(colWidth-2, lineHeight, tr(row[header]), "", "L", false)
		}
		pdf.SetXY(x, y+height)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
