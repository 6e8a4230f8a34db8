package domain

// SheetField is one labelled, pre-formatted line of a route sheet.
type SheetField struct {
	Label string
	Value string
}

// RouteSheet is the printable, already localized view of one selected candidate.
// Exporters lay it out; they never interpret the values.
type RouteSheet struct {
	Title        string
	Fields       []SheetField
	StopsHeading string
	Stops        []SheetField
	Notes        []string
}
