package domain

import "time"

// Entry pairs a candidate with its schedule (or failure).
type Entry struct {
	Candidate Candidate `json:"candidate"`
	Schedule  Schedule  `json:"schedule"`
}

// PlanningResult holds every candidate computed for one request, addressable by index.
// It is created per planning run, read on selection, then discarded by its owner.
type PlanningResult struct {
	ID        string          `json:"id"`
	Request   PlanningRequest `json:"request"`
	CreatedAt time.Time       `json:"created_at"`
	Entries   []Entry         `json:"entries"`
}

func (r *PlanningResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Entries)
}

// Select returns the entry at index without modifying the result.
// A nil or empty result, or an index outside [0, Len()), yields a *SelectionError.
func (r *PlanningResult) Select(index int) (Entry, error) {
	n := r.Len()
	if index < 0 || index >= n {
		return Entry{}, &SelectionError{Index: index, Size: n}
	}
	return r.Entries[index], nil
}

// Failed counts entries whose schedule could not be computed.
func (r *PlanningResult) Failed() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, e := range r.Entries {
		if e.Schedule.Failed() {
			n++
		}
	}
	return n
}
