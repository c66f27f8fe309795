package formatter

import (
	"bytes"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// In Docker runtime fonts are copied to /app/ttf.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"
	pdfFontSourcePath  = "internal/pkg/formatter/ttf/DejaVuSans.ttf"

	pdfLineHeight = 5.0
	pdfFontSize   = 8.0
)

// pdfColumnWeights sizes the columns of a generated question table;
// other tables are split evenly
var pdfColumnWeights = []float64{1, 6, 1.2, 2.5, 1.5, 2.5, 2.5, 3}

type PDFFormatter struct {
	fontPath string
}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{fontPath: resolveFontPath()}
}

// resolveFontPath tries to find the DejaVuSans font in
// runtime layout (next to the binary) or source layout.
func resolveFontPath() string {
	for _, p := range []string{pdfFontRuntimePath, pdfFontSourcePath} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (pf *PDFFormatter) Format(table *Table) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetCreationDate(time.Unix(0, 0).UTC())
	pdf.SetCatalogSort(true)
	pdf.AddPage()

	fontName := "Arial"
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	if pf.fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", pf.fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", pf.fontPath)
		fontName = pdfFontName
		translate = func(s string) string { return s }
	}

	pdf.SetFont(fontName, "B", 16)
	pdf.Cell(0, 10, translate(table.Title))
	pdf.Ln(12)

	widths := columnWidths(pdf, len(table.Header))

	drawHeader := func() {
		pdf.SetFont(fontName, "B", pdfFontSize)
		drawRow(pdf, widths, translateAll(translate, table.Header))
		pdf.SetFont(fontName, "", pdfFontSize)
	}
	drawHeader()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()

	for _, row := range table.StringRows() {
		cells := translateAll(translate, row)
		if pdf.GetY()+rowHeight(pdf, widths, cells) > pageHeight-bottom {
			pdf.AddPage()
			drawHeader()
		}
		drawRow(pdf, widths, cells)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func columnWidths(pdf *gofpdf.Fpdf, columns int) []float64 {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	weights := pdfColumnWeights
	if columns != len(weights) {
		weights = make([]float64, columns)
		for i := range weights {
			weights[i] = 1
		}
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}

	widths := make([]float64, columns)
	for i, w := range weights {
		widths[i] = usable * w / total
	}
	return widths
}

func rowHeight(pdf *gofpdf.Fpdf, widths []float64, cells []string) float64 {
	lines := 1
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		if n := len(pdf.SplitText(cell, widths[i]-2)); n > lines {
			lines = n
		}
	}
	return float64(lines) * pdfLineHeight
}

func drawRow(pdf *gofpdf.Fpdf, widths []float64, cells []string) {
	height := rowHeight(pdf, widths, cells)
	left, _, _, _ := pdf.GetMargins()
	y := pdf.GetY()
	x := left

	for i, w := range widths {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		pdf.Rect(x, y, w, height, "D")
		pdf.SetXY(x, y)
		pdf.MultiCell(w, pdfLineHeight, text, "", "L", false)
		x += w
	}
	pdf.SetXY(left, y+height)
}

func translateAll(translate func(string) string, values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = translate(v)
	}
	return out
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
