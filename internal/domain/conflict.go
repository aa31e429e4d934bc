package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Interval is a screening's occupation of its room in minutes from midnight
// of the screening date, half-open: [Start, End).
type Interval struct {
	Start int
	End   int
}

// NewInterval builds the interval of a screening starting at clock for a movie
// of durationMinutes. Seconds of the start time are ignored.
func NewInterval(clock time.Duration, durationMinutes int) Interval {
	start := int(clock / time.Minute)
	return Interval{Start: start, End: start + durationMinutes}
}

// Overlaps reports whether a and b share at least one minute. Intervals that
// only touch (a.End == b.Start) do not overlap.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

func (a Interval) String() string {
	return fmt.Sprintf("[%s, %s)",
		FormatClock(time.Duration(a.Start)*time.Minute),
		FormatClock(time.Duration(a.End)*time.Minute))
}

// ScheduledInterval is an existing screening as seen by the conflict check.
type ScheduledInterval struct {
	ScreeningID uuid.UUID
	Interval    Interval
}

// FindConflict returns the first existing screening overlapping candidate.
// The screening identified by self is skipped so an update never conflicts
// with its own previous state; pass uuid.Nil on create.
func FindConflict(candidate Interval, existing []ScheduledInterval, self uuid.UUID) (ScheduledInterval, bool) {
	for _, other := range existing {
		if self != uuid.Nil && other.ScreeningID == self {
			continue
		}
		if candidate.Overlaps(other.Interval) {
			return other, true
		}
	}
	return ScheduledInterval{}, false
}

// CheckSchedule wraps FindConflict into an ErrSchedulingConflict error.
func CheckSchedule(candidate Interval, existing []ScheduledInterval, self uuid.UUID) error {
	if other, found := FindConflict(candidate, existing, self); found {
		return fmt.Errorf("screening %s overlaps screening %s at %s: %w",
			candidate, other.ScreeningID, other.Interval, ErrSchedulingConflict)
	}
	return nil
}

// CheckResized re-checks the screenings in resized after their movie's
// duration changed. sameDay holds every screening of the room that day with
// the new durations, resized ones included.
func CheckResized(resized, sameDay []ScheduledInterval) error {
	for _, screening := range resized {
		if err := CheckSchedule(screening.Interval, sameDay, screening.ScreeningID); err != nil {
			return err
		}
	}
	return nil
}

// ReservationTotal is seatCount times the unit price, rounded to cents.
func ReservationTotal(seatCount int, price float64) float64 {
	return math.Round(float64(seatCount)*price*100) / 100
}
