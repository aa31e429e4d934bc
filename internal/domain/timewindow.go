package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	StatusAvailable    = "AVAILABLE"
	StatusNotAvailable = "NOT_AVAILABLE"

	DateLayout = "2006-01-02"
)

// Clock returns the current instant. Services call it once per request.
type Clock func() time.Time

// NewClock returns a Clock reporting wall time in loc.
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}

// Snapshot is the single "now" used for every availability decision made
// while serving one request.
type Snapshot struct {
	now time.Time
}

func NewSnapshot(now time.Time) Snapshot {
	return Snapshot{now: now}
}

func (s Snapshot) Now() time.Time { return s.now }

// Today is the snapshot's calendar date as a UTC midnight, the form DATE
// columns are read and written in.
func (s Snapshot) Today() time.Time { return DateOf(s.now) }

// TimeOfDay is the offset of the snapshot from its local midnight.
func (s Snapshot) TimeOfDay() time.Duration { return TimeOfDay(s.now) }

// IsFutureOrNow reports whether a date/time pair is not strictly before the
// snapshot: date after today, or today with clock at or after now.
func (s Snapshot) IsFutureOrNow(date time.Time, clock time.Duration) bool {
	d, today := dateKey(date), dateKey(s.now)
	if d != today {
		return d > today
	}
	return clock >= s.TimeOfDay()
}

// Status maps IsFutureOrNow to AVAILABLE / NOT_AVAILABLE.
func (s Snapshot) Status(date time.Time, clock time.Duration) string {
	return Status(s.IsFutureOrNow(date, clock))
}

func Status(available bool) string {
	if available {
		return StatusAvailable
	}
	return StatusNotAvailable
}

// LastWeek returns the seven calendar days before today, oldest first.
func (s Snapshot) LastWeek() []time.Time {
	today := s.Today()
	days := make([]time.Time, 0, 7)
	for i := 7; i >= 1; i-- {
		days = append(days, today.AddDate(0, 0, -i))
	}
	return days
}

// Midnight returns the start of the day offset by days from the snapshot's
// date, in the snapshot's location.
func (s Snapshot) Midnight(days int) time.Time {
	y, m, d := s.now.Date()
	return time.Date(y, m, d+days, 0, 0, 0, 0, s.now.Location())
}

func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TimeOfDay(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond())
}

// ParseDate parses YYYY-MM-DD into a UTC midnight.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, ErrValidation)
	}
	return t, nil
}

// ParseClock accepts HH:MM or HH:MM:SS and returns the offset from midnight.
func ParseClock(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return TimeOfDay(t), nil
		}
	}
	return 0, fmt.Errorf("invalid time %q: %w", value, ErrValidation)
}

// FormatClock renders an offset from midnight as HH:MM:SS.
func FormatClock(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	return fmt.Sprintf("%02d:%02d:%02d", h, m, d/time.Second)
}

func dateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
