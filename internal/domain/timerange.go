package domain

import (
	"fmt"
	"time"
)

// TimeRange is an immutable interval with a strictly positive duration.
// Overlap semantics are half-open: two ranges that only touch at a
// boundary do not overlap, so back-to-back bookings are legal.
type TimeRange struct {
	start time.Time
	end   time.Time
}

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !end.After(start) {
		return TimeRange{}, fmt.Errorf("%w: end must be after start", ErrInvalidTimeRange)
	}
	return TimeRange{start: start.UTC(), end: end.UTC()}, nil
}

func (tr TimeRange) Start() time.Time { return tr.start }

func (tr TimeRange) End() time.Time { return tr.end }

func (tr TimeRange) Duration() time.Duration { return tr.end.Sub(tr.start) }

func (tr TimeRange) Overlaps(other TimeRange) bool {
	return tr.start.Before(other.end) && other.start.Before(tr.end)
}

// Contains reports whether the instant falls inside the range, boundaries included.
func (tr TimeRange) Contains(instant time.Time) bool {
	return !instant.Before(tr.start) && !instant.After(tr.end)
}

func (tr TimeRange) Shift(delta time.Duration) TimeRange {
	return TimeRange{start: tr.start.Add(delta), end: tr.end.Add(delta)}
}

// Expand extends the end of the range, keeping the start fixed.
func (tr TimeRange) Expand(delta time.Duration) (TimeRange, error) {
	return NewTimeRange(tr.start, tr.end.Add(delta))
}

func (tr TimeRange) Equal(other TimeRange) bool {
	return tr.start.Equal(other.start) && tr.end.Equal(other.end)
}

func (tr TimeRange) IsZero() bool {
	return tr.start.IsZero() && tr.end.IsZero()
}
