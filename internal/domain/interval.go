package domain

import "time"

// Interval represents a half-open time interval [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// IsValid returns true if the interval has a positive length
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Overlaps returns true if two half-open intervals intersect.
// Touching endpoints (a.End == b.Start) do not count as an overlap.
//
// Примеры:
// - [10:00, 11:00) и [10:30, 11:30) → пересекаются
// - [10:00, 11:00) и [11:00, 12:00) → НЕ пересекаются (граничат)
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains returns true if the interval fully contains the other one
func (i Interval) Contains(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// Duration returns the interval length
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}
