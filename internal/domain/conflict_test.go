package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// itemizedConflict is the five-clause overlap rule screenings were originally
// checked with. It is kept here to compare against Interval.Overlaps.
func itemizedConflict(candidate, existing Interval) bool {
	start, end := candidate.Start, candidate.End
	start2, end2 := existing.Start, existing.End

	return start == start2 ||
		end == end2 ||
		(start2 <= start && start < end2) ||
		(start2 <= end && end < end2) ||
		(start < start2 && end > end2)
}

func clock(hour, minute int) time.Duration {
	return time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute
}

func TestNewInterval(t *testing.T) {
	tests := []struct {
		name     string
		clock    time.Duration
		duration int
		want     Interval
	}{
		{"Afternoon", clock(14, 0), 120, Interval{840, 960}},
		{"Midnight", 0, 90, Interval{0, 90}},
		{"Seconds ignored", clock(9, 30) + 45*time.Second, 100, Interval{570, 670}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewInterval(tt.clock, tt.duration); got != tt.want {
				t.Errorf("NewInterval(%v, %d) = %+v, want %+v", tt.clock, tt.duration, got, tt.want)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	a := NewInterval(clock(14, 0), 120)

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"Same start", NewInterval(clock(14, 0), 30), true},
		{"Starts inside", NewInterval(clock(15, 30), 120), true},
		{"Ends inside", NewInterval(clock(13, 0), 90), true},
		{"Encloses", NewInterval(clock(13, 0), 240), true},
		{"Enclosed", NewInterval(clock(14, 30), 30), true},
		{"Same end", NewInterval(clock(15, 0), 60), true},
		{"Back to back after", NewInterval(clock(16, 0), 120), false},
		{"Back to back before", NewInterval(clock(12, 0), 120), false},
		{"Far apart", NewInterval(clock(20, 0), 90), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.other); got != tt.want {
				t.Errorf("%v.Overlaps(%v) = %v, want %v", a, tt.other, got, tt.want)
			}
			if got := tt.other.Overlaps(a); got != tt.want {
				t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.other, a, got, tt.want)
			}
		})
	}
}

func TestOverlapsMatchesItemizedRule(t *testing.T) {
	for start := 0; start < 24; start++ {
		for duration := 1; duration <= 8; duration++ {
			candidate := Interval{start, start + duration}
			for start2 := 0; start2 < 24; start2++ {
				for duration2 := 1; duration2 <= 8; duration2++ {
					existing := Interval{start2, start2 + duration2}

					got := candidate.Overlaps(existing)
					want := itemizedConflict(candidate, existing)
					if got == want {
						continue
					}
					// The only disagreement: the itemized rule flags a
					// candidate that ends exactly when the existing one starts.
					if !got && want && candidate.End == existing.Start {
						continue
					}
					t.Errorf("candidate %+v existing %+v: Overlaps = %v, itemized = %v", candidate, existing, got, want)
				}
			}
		}
	}
}

func TestFindConflict(t *testing.T) {
	screeningA := uuid.New()
	existing := []ScheduledInterval{
		{ScreeningID: screeningA, Interval: NewInterval(clock(14, 0), 120)},
	}

	tests := []struct {
		name      string
		candidate Interval
		self      uuid.UUID
		wantFound bool
	}{
		{"B at 16:00 accepted", NewInterval(clock(16, 0), 120), uuid.Nil, false},
		{"C at 15:30 rejected", NewInterval(clock(15, 30), 120), uuid.Nil, true},
		{"Ends when A starts", NewInterval(clock(12, 0), 120), uuid.Nil, false},
		{"A moved onto itself", NewInterval(clock(14, 30), 120), screeningA, false},
		{"Other screening moved onto A", NewInterval(clock(14, 30), 120), uuid.New(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other, found := FindConflict(tt.candidate, existing, tt.self)
			if found != tt.wantFound {
				t.Fatalf("FindConflict(%v) found = %v, want %v", tt.candidate, found, tt.wantFound)
			}
			if found && other.ScreeningID != screeningA {
				t.Errorf("FindConflict returned %s, want %s", other.ScreeningID, screeningA)
			}
		})
	}
}

func TestCheckSchedule(t *testing.T) {
	existing := []ScheduledInterval{
		{ScreeningID: uuid.New(), Interval: NewInterval(clock(14, 0), 120)},
	}

	if err := CheckSchedule(NewInterval(clock(16, 0), 90), existing, uuid.Nil); err != nil {
		t.Errorf("CheckSchedule back to back = %v, want nil", err)
	}

	err := CheckSchedule(NewInterval(clock(15, 30), 90), existing, uuid.Nil)
	if !errors.Is(err, ErrSchedulingConflict) {
		t.Errorf("CheckSchedule overlap = %v, want ErrSchedulingConflict", err)
	}
}

func TestCheckResized(t *testing.T) {
	dune, arrival := uuid.New(), uuid.New()
	sameDay := func(duneMinutes int) []ScheduledInterval {
		return []ScheduledInterval{
			{ScreeningID: dune, Interval: NewInterval(clock(14, 0), duneMinutes)},
			{ScreeningID: arrival, Interval: NewInterval(clock(16, 0), 116)},
		}
	}
	resized := func(duneMinutes int) []ScheduledInterval {
		return sameDay(duneMinutes)[:1]
	}

	tests := []struct {
		name    string
		minutes int
		wantErr error
	}{
		{"shorter", 100, nil},
		{"still back to back", 120, nil},
		{"runs into the next screening", 180, ErrSchedulingConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckResized(resized(tt.minutes), sameDay(tt.minutes))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckResized(%d min) = %v, want %v", tt.minutes, err, tt.wantErr)
			}
		})
	}
}

func TestReservationTotal(t *testing.T) {
	tests := []struct {
		name  string
		seats int
		price float64
		want  float64
	}{
		{"Two seats at 10", 2, 10.0, 20.0},
		{"Three seats at 7.5", 3, 7.5, 22.5},
		{"Rounded to cents", 3, 0.1, 0.3},
		{"Free screening", 4, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReservationTotal(tt.seats, tt.price); got != tt.want {
				t.Errorf("ReservationTotal(%d, %v) = %v, want %v", tt.seats, tt.price, got, tt.want)
			}
		})
	}
}
