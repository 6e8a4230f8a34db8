package document

import (
	"bytes"
	"dropoff-route-planner/internal/domain"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	utf8Family = "sheet"
	coreFamily = "Helvetica"
)

// PDFOption configures a PDFExporter.
type PDFOption func(*PDFExporter)

// WithFont embeds a TrueType font so non-Latin sheets (e.g. Japanese) render.
// Without it the core Helvetica font is used and text is limited to cp1252.
func WithFont(path string) PDFOption {
	return func(e *PDFExporter) { e.fontPath = strings.TrimSpace(path) }
}

// WithCreationDate fixes the document timestamp so output is reproducible.
func WithCreationDate(t time.Time) PDFOption {
	return func(e *PDFExporter) { e.created = t }
}

// PDFExporter lays a route sheet out as a single A4 page.
type PDFExporter struct {
	fontPath string
	created  time.Time
}

func NewPDFExporter(opts ...PDFOption) *PDFExporter {
	e := &PDFExporter{}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *PDFExporter) ContentType() string   { return "application/pdf" }
func (e *PDFExporter) FileExtension() string { return ".pdf" }

func (e *PDFExporter) Export(sheet domain.RouteSheet) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	if !e.created.IsZero() {
		pdf.SetCreationDate(e.created)
		pdf.SetModificationDate(e.created)
		pdf.SetCatalogSort(true)
	}

	family := coreFamily
	text := coreText(pdf)
	if e.fontPath != "" {
		pdf.AddUTF8Font(utf8Family, "", e.fontPath)
		family = utf8Family
		text = func(s string) string { return s }
	}
	bold := "B"
	if family == utf8Family {
		// Only the regular style is registered for the embedded font.
		bold = ""
	}

	pdf.SetTitle(sheet.Title, true)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont(family, bold, 18)
	pdf.CellFormat(0, 12, text(sheet.Title), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeFields(pdf, family, bold, text, sheet.Fields)

	if len(sheet.Stops) > 0 {
		pdf.Ln(6)
		pdf.SetFont(family, bold, 13)
		pdf.CellFormat(0, 9, text(sheet.StopsHeading), "B", 1, "L", false, 0, "")
		pdf.Ln(2)
		writeFields(pdf, family, bold, text, sheet.Stops)
	}

	if len(sheet.Notes) > 0 {
		pdf.Ln(6)
		pdf.SetFont(family, "", 10)
		for _, n := range sheet.Notes {
			pdf.MultiCell(0, 6, text(n), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("export pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeFields(pdf *fpdf.Fpdf, family, bold string, text func(string) string, fields []domain.SheetField) {
	for _, f := range fields {
		pdf.SetFont(family, bold, 11)
		pdf.CellFormat(55, 8, text(f.Label), "", 0, "L", false, 0, "")
		pdf.SetFont(family, "", 11)
		pdf.MultiCell(0, 8, text(f.Value), "", "L", false)
	}
}

// coreText adapts UTF-8 text for the cp1252 core fonts.
func coreText(pdf *fpdf.Fpdf) func(string) string {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	arrows := strings.NewReplacer("→", "->")
	return func(s string) string { return tr(arrows.Replace(s)) }
}
