package document

import (
	"bytes"
	"dropoff-route-planner/internal/domain"
	"dropoff-route-planner/internal/ports"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ports.DocumentExporter = (*PDFExporter)(nil)
	_ ports.DocumentExporter = (*TextExporter)(nil)
)

func sampleSheet() domain.RouteSheet {
	return domain.RouteSheet{
		Title: "Selected route",
		Fields: []domain.SheetField{
			{Label: "Route", Value: "Home → A → B"},
			{Label: "Departure", Value: "08:00:00"},
			{Label: "Total distance", Value: "3.00 km"},
			{Label: "Total duration", Value: "25 min 0 sec"},
		},
		StopsHeading: "Arrivals",
		Stops: []domain.SheetField{
			{Label: "A", Value: "08:10:00"},
			{Label: "B", Value: "08:25:00"},
		},
		Notes: []string{"Arrival at B is after the requested time."},
	}
}

func TestPDFExporter(t *testing.T) {
	fixed := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	e := NewPDFExporter(WithCreationDate(fixed))

	out, err := e.Export(sampleSheet())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Equal(t, "application/pdf", e.ContentType())
	assert.Equal(t, ".pdf", e.FileExtension())

	again, err := e.Export(sampleSheet())
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestPDFExporterMissingFont(t *testing.T) {
	e := NewPDFExporter(WithFont("/nonexistent/font.ttf"))

	_, err := e.Export(sampleSheet())
	assert.Error(t, err)
}

func TestTextExporter(t *testing.T) {
	out, err := NewTextExporter().Export(sampleSheet())
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "Selected route\n==============\n")
	assert.Contains(t, s, "Route:           Home → A → B\n")
	assert.Contains(t, s, "Arrivals\nA:  08:10:00\nB:  08:25:00\n")
	assert.Contains(t, s, "* Arrival at B is after the requested time.\n")
}
