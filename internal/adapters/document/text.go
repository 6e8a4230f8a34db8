package document

import (
	"bytes"
	"dropoff-route-planner/internal/domain"
	"fmt"
	"strings"
	"text/tabwriter"
)

// TextExporter renders a route sheet as aligned plain text for terminals and logs.
type TextExporter struct{}

func NewTextExporter() *TextExporter { return &TextExporter{} }

func (TextExporter) ContentType() string   { return "text/plain; charset=utf-8" }
func (TextExporter) FileExtension() string { return ".txt" }

func (TextExporter) Export(sheet domain.RouteSheet) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, sheet.Title)
	fmt.Fprintln(&buf, strings.Repeat("=", len([]rune(sheet.Title))))

	if err := writeTable(&buf, sheet.Fields); err != nil {
		return nil, err
	}

	if len(sheet.Stops) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, sheet.StopsHeading)
		if err := writeTable(&buf, sheet.Stops); err != nil {
			return nil, err
		}
	}

	if len(sheet.Notes) > 0 {
		fmt.Fprintln(&buf)
		for _, n := range sheet.Notes {
			fmt.Fprintf(&buf, "* %s\n", n)
		}
	}

	return buf.Bytes(), nil
}

func writeTable(buf *bytes.Buffer, fields []domain.SheetField) error {
	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	for _, f := range fields {
		fmt.Fprintf(tw, "%s:\t%s\n", f.Label, f.Value)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("export text: %w", err)
	}
	return nil
}
