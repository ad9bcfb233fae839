package datemath

import "time"

// Range is a half-open [Start, End) window resolved from a relative phrase.
type Range struct {
	Start time.Time
	End   time.Time
	Label string
}

// Contains reports whether t falls inside the range.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}
