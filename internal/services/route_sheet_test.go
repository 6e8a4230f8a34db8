package services

import (
	"context"
	"dropoff-route-planner/internal/domain"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExporter struct {
	sheets []domain.RouteSheet
	err    error
}

func (e *recordingExporter) Export(sheet domain.RouteSheet) ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.sheets = append(e.sheets, sheet)
	return []byte(sheet.Title), nil
}

func (e *recordingExporter) ContentType() string   { return "text/plain" }
func (e *recordingExporter) FileExtension() string { return ".txt" }

func TestFormatterEnglish(t *testing.T) {
	f := NewSheetFormatter("en-US")

	assert.Equal(t, "3.00 km", f.Distance(3000))
	assert.Equal(t, "12.34 km", f.Distance(12340))
	assert.Equal(t, "25 min 0 sec", f.Duration(1500))
	assert.Equal(t, "0 min 59 sec", f.Duration(59))
	assert.Equal(t, "1 hr 2 min", f.Duration(3725))
	assert.InDelta(t, 12.35, KilometersRounded(12349), 1e-9)
}

func TestFormatterJapanese(t *testing.T) {
	f := NewSheetFormatter("ja")

	assert.Equal(t, "1時間2分", f.Duration(3725))
	assert.Equal(t, "25分0秒", f.Duration(1500))

	sheet := f.Sheet(*testRequest("A"), domain.Entry{
		Candidate: EnumerateCandidates(testRequest("A"))[0],
		Schedule:  domain.FailedSchedule(domain.FailureResolution, "x"),
	})
	assert.Equal(t, "選択されたルート", sheet.Title)
	assert.Equal(t, "エラー", sheet.Fields[2].Value)
}

func TestFormatterUnknownLanguageFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, "Selected route", NewSheetFormatter("not a tag").Sheet(*testRequest(), domain.Entry{}).Title)
}

func TestSheetComputedRoute(t *testing.T) {
	b, _, _ := testBuilder()
	req := testRequest("A", "B")
	by := clock(8, 20)
	req.Destinations[1].RequestedBy = &by

	result, err := NewPlanner(b, 1, 0).Plan(context.Background(), req)
	require.NoError(t, err)

	entry, err := result.Select(0)
	require.NoError(t, err)
	sheet := NewSheetFormatter("en").Sheet(result.Request, entry)

	assert.Equal(t, []domain.SheetField{
		{Label: "Route", Value: "Home → A → B"},
		{Label: "Departure", Value: "08:00"},
		{Label: "Total distance", Value: "3.00 km"},
		{Label: "Total duration", Value: "25 min 0 sec"},
	}, sheet.Fields)
	assert.Equal(t, []domain.SheetField{
		{Label: "A", Value: "08:10:00"},
		{Label: "B", Value: "08:25:00 (late, requested by 08:20)"},
	}, sheet.Stops)
	assert.Empty(t, sheet.Notes)
}

func TestSheetFailedRouteRendersSentinel(t *testing.T) {
	b, _, _ := testBuilder("addrB")
	req := testRequest("A", "B")

	result, err := NewPlanner(b, 1, 0).Plan(context.Background(), req)
	require.NoError(t, err)

	sheet := NewSheetFormatter("en").Sheet(result.Request, result.Entries[1])
	assert.Equal(t, ErrorSentinel, sheet.Fields[2].Value)
	assert.Equal(t, ErrorSentinel, sheet.Fields[3].Value)
	for _, s := range sheet.Stops {
		assert.Equal(t, ErrorSentinel, s.Value)
	}
	require.Len(t, sheet.Notes, 1)
	assert.Contains(t, sheet.Notes[0], "an address could not be resolved")
	assert.Contains(t, sheet.Notes[0], "addrB")

	ja := NewSheetFormatter("ja").Sheet(result.Request, result.Entries[1])
	require.Len(t, ja.Notes, 1)
	assert.Contains(t, ja.Notes[0], "住所を座標に変換できませんでした")
	assert.Contains(t, ja.Notes[0], "addrB")
}

func TestSheetTimeoutNoteCarriesReason(t *testing.T) {
	req := testRequest("A")
	entry := domain.Entry{
		Candidate: domain.NewCandidate(0, req.OriginName, req.Destinations),
		Schedule:  domain.FailedSchedule(domain.FailureTimeout, "context deadline exceeded"),
	}

	sheet := NewSheetFormatter("en").Sheet(*req, entry)
	require.Len(t, sheet.Notes, 1)
	assert.Equal(t,
		"This route could not be computed: planning timed out before this route finished (context deadline exceeded)",
		sheet.Notes[0])
}

func TestSheetAggregateRouteMarksUnknownArrivals(t *testing.T) {
	b, _, provider := testBuilder()
	provider.AggregateOnly = true
	req := testRequest("A", "B")

	result, err := NewPlanner(b, 1, 0).Plan(context.Background(), req)
	require.NoError(t, err)

	sheet := NewSheetFormatter("en").Sheet(result.Request, result.Entries[0])
	assert.Equal(t, unknownClock, sheet.Stops[0].Value)
	assert.Equal(t, "08:25:00", sheet.Stops[1].Value)
	require.Len(t, sheet.Notes, 1)
	assert.True(t, strings.HasPrefix(sheet.Notes[0], "Only the final arrival"))
}

func TestExportRoute(t *testing.T) {
	b, _, _ := testBuilder()
	result, err := NewPlanner(b, 1, 0).Plan(context.Background(), testRequest("A", "B"))
	require.NoError(t, err)

	exp := &recordingExporter{}
	f := NewSheetFormatter("en")

	doc, err := ExportRoute(result, 1, f, exp)
	require.NoError(t, err)
	assert.Equal(t, "Selected route", string(doc))
	require.Len(t, exp.sheets, 1)
	assert.Equal(t, "Home → B → A", exp.sheets[0].Fields[0].Value)

	for _, idx := range []int{-1, 2, 100} {
		_, err := ExportRoute(result, idx, f, exp)
		assert.ErrorIs(t, err, domain.ErrSelectionNotFound)
	}
	assert.Equal(t, 2, result.Len())

	_, err = ExportRoute(nil, 0, f, exp)
	assert.ErrorIs(t, err, domain.ErrSelectionNotFound)

	_, err = ExportRoute(result, 0, f, &recordingExporter{err: errors.New("disk full")})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSelectionNotFound)
}
