package services

import (
	"dropoff-route-planner/internal/domain"
	"dropoff-route-planner/internal/ports"
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrorSentinel is printed in place of values a failed candidate does not have.
const ErrorSentinel = "Error"

const unknownClock = "--:--:--"

var sheetTranslations = map[language.Tag]map[string]string{
	language.Japanese: {
		"Selected route":                       "選択されたルート",
		"Route":                                "ルート",
		"Total distance":                       "総距離",
		"Total duration":                       "総時間",
		"Departure":                            "出発時刻",
		"Arrival times":                        "各地点の到着時刻",
		ErrorSentinel:                          "エラー",
		"%d hr %d min":                         "%d時間%d分",
		"%d min %d sec":                        "%d分%d秒",
		"%.2f km":                              "%.2f km",
		"%s (late, requested by %s)":           "%s（希望 %s に遅れ）",
		"This route could not be computed: %s": "このルートは計算できませんでした: %s",
		"an address could not be resolved":     "住所を座標に変換できませんでした",
		"the routing provider returned no usable route":                         "経路プロバイダーから有効な経路を取得できませんでした",
		"planning timed out before this route finished":                         "このルートの計算中に時間切れになりました",
		"Only the final arrival is known; the provider returned a route total.": "経路全体の合計のみ取得できたため、最終到着時刻のみ表示しています。",
	},
}

func init() {
	for tag, msgs := range sheetTranslations {
		for key, msg := range msgs {
			if err := message.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("route sheet catalog %s %q: %v", tag, key, err))
			}
		}
	}
}

// SheetFormatter turns a selected entry into a localized RouteSheet.
// Internal figures stay in meters/seconds; conversion happens only here.
type SheetFormatter struct {
	Lang language.Tag
}

// NewSheetFormatter parses a BCP 47 language; unknown values fall back to English.
func NewSheetFormatter(lang string) SheetFormatter {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	matcher := language.NewMatcher([]language.Tag{language.English, language.Japanese})
	_, idx, _ := matcher.Match(tag)
	if idx == 1 {
		return SheetFormatter{Lang: language.Japanese}
	}
	return SheetFormatter{Lang: language.English}
}

func (f SheetFormatter) printer() *message.Printer {
	tag := f.Lang
	if tag == language.Und {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

func (f SheetFormatter) Distance(meters int) string {
	return f.printer().Sprintf("%.2f km", float64(meters)/1000)
}

// Duration renders "H hr M min" from one hour up, else "M min S sec".
func (f SheetFormatter) Duration(seconds int) string {
	p := f.printer()
	if seconds >= 3600 {
		return p.Sprintf("%d hr %d min", seconds/3600, (seconds%3600)/60)
	}
	return p.Sprintf("%d min %d sec", seconds/60, seconds%60)
}

// Sheet builds the printable view of one entry. Failed schedules render the
// error sentinel for every figure instead of numbers.
func (f SheetFormatter) Sheet(req domain.PlanningRequest, e domain.Entry) domain.RouteSheet {
	p := f.printer()
	s := e.Schedule
	errText := p.Sprintf(ErrorSentinel)

	distance, duration := errText, errText
	if !s.Failed() {
		distance = f.Distance(s.TotalDistanceMeters)
		duration = f.Duration(s.TotalDurationSeconds)
	}

	sheet := domain.RouteSheet{
		Title: p.Sprintf("Selected route"),
		Fields: []domain.SheetField{
			{Label: p.Sprintf("Route"), Value: e.Candidate.Label},
			{Label: p.Sprintf("Departure"), Value: req.DepartAt.Format(domain.ClockLayout)},
			{Label: p.Sprintf("Total distance"), Value: distance},
			{Label: p.Sprintf("Total duration"), Value: duration},
		},
		StopsHeading: p.Sprintf("Arrival times"),
		Stops:        make([]domain.SheetField, 0, len(e.Candidate.Stops)),
	}

	for i, stop := range e.Candidate.Stops {
		value := errText
		if !s.Failed() && i < len(s.Arrivals) {
			a := s.Arrivals[i]
			value = unknownClock
			if a.Known {
				value = a.ArriveAt.Format(domain.ArrivalLayout)
				if a.Late && stop.RequestedBy != nil {
					value = p.Sprintf("%s (late, requested by %s)", value, stop.RequestedBy.Format(domain.ClockLayout))
				}
			}
		}
		sheet.Stops = append(sheet.Stops, domain.SheetField{Label: stop.Name, Value: value})
	}

	switch {
	case s.Failed():
		sheet.Notes = append(sheet.Notes, p.Sprintf("This route could not be computed: %s", failureText(p, s)))
	case s.Precision == domain.PrecisionAggregate:
		sheet.Notes = append(sheet.Notes, p.Sprintf("Only the final arrival is known; the provider returned a route total."))
	}

	return sheet
}

// failureText describes a failed schedule in the sheet's language, followed
// by the underlying reason when one was recorded.
func failureText(p *message.Printer, s domain.Schedule) string {
	var text string
	switch s.Failure {
	case domain.FailureResolution:
		text = p.Sprintf("an address could not be resolved")
	case domain.FailureCostProvider:
		text = p.Sprintf("the routing provider returned no usable route")
	case domain.FailureTimeout:
		text = p.Sprintf("planning timed out before this route finished")
	default:
		text = string(s.Failure)
	}
	if s.Reason != "" {
		text += " (" + s.Reason + ")"
	}
	return text
}

// ExportRoute selects the entry at index and renders it with exporter.
// An absent index fails with domain.ErrSelectionNotFound and leaves result untouched.
func ExportRoute(
	result *domain.PlanningResult,
	index int,
	formatter SheetFormatter,
	exporter ports.DocumentExporter,
) ([]byte, error) {
	entry, err := result.Select(index)
	if err != nil {
		return nil, fmt.Errorf("export route: %w", err)
	}

	doc, err := exporter.Export(formatter.Sheet(result.Request, entry))
	if err != nil {
		return nil, fmt.Errorf("export route %d: %w", index, err)
	}
	return doc, nil
}

// KilometersRounded is the total distance in km rounded to two decimals.
func KilometersRounded(meters int) float64 {
	return math.Round(float64(meters)/10) / 100
}
