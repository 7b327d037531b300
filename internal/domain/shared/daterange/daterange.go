package daterange

import (
	"errors"
	"time"
)

var ErrStartNotBeforeEnd = errors.New("daterange: start date must be before end date")

// DateRange is a stay period between two calendar dates, start exclusive of
// end. Both bounds are normalized to midnight UTC.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// New constructs a range, failing unless start is strictly before end once
// both are truncated to their calendar dates.
func New(start, end time.Time) (DateRange, error) {
	s := DateOf(start)
	e := DateOf(end)
	if !s.Before(e) {
		return DateRange{}, ErrStartNotBeforeEnd
	}
	return DateRange{Start: s, End: e}, nil
}

// Must builds a range and panics on invalid bounds; useful in tests and fixtures.
func Must(start, end time.Time) DateRange {
	dr, err := New(start, end)
	if err != nil {
		panic(err)
	}
	return dr
}

// DurationInDays returns the whole number of days covered by the range.
func (d DateRange) DurationInDays() int {
	return int(d.End.Sub(d.Start) / (24 * time.Hour))
}

// Overlaps reports whether two ranges share at least one night.
func (d DateRange) Overlaps(other DateRange) bool {
	return d.Start.Before(other.End) && other.Start.Before(d.End)
}

// DateOf truncates an instant to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
