package domain

import "strings"

// LabelSeparator joins stop names in a candidate label.
const LabelSeparator = " → "

// Candidate is one visiting order of the request's destinations.
// Index is assigned before any schedule is computed and never changes.
type Candidate struct {
	Index int           `json:"index"`
	Label string        `json:"label"`
	Stops []Destination `json:"stops"`
}

func NewCandidate(index int, originName string, stops []Destination) Candidate {
	names := make([]string, 0, 1+len(stops))
	names = append(names, originName)
	for _, s := range stops {
		names = append(names, s.Name)
	}

	return Candidate{
		Index: index,
		Label: strings.Join(names, LabelSeparator),
		Stops: stops,
	}
}

// Waypoints returns the origin address followed by each stop address in visiting order.
func (c Candidate) Waypoints(originAddress string) []string {
	out := make([]string, 0, 1+len(c.Stops))
	out = append(out, originAddress)
	for _, s := range c.Stops {
		out = append(out, s.Address)
	}
	return out
}
