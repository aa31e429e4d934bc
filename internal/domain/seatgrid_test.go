package domain

import "testing"

func TestSeatGrid(t *testing.T) {
	tests := []struct {
		name      string
		rows      int
		columns   int
		wantCount int
	}{
		{"Single seat", 1, 1, 1},
		{"Two by three", 2, 3, 6},
		{"Wide room", 4, 12, 48},
		{"Zero rows", 0, 5, 0},
		{"Zero columns", 5, 0, 0},
		{"Negative rows", -1, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := SeatGrid(tt.rows, tt.columns)
			if len(grid) != tt.wantCount {
				t.Fatalf("SeatGrid(%d, %d) returned %d seats, want %d", tt.rows, tt.columns, len(grid), tt.wantCount)
			}

			seen := make(map[SeatPosition]bool, len(grid))
			for _, pos := range grid {
				if pos.Row < 1 || pos.Row > tt.rows || pos.Number < 1 || pos.Number > tt.columns {
					t.Errorf("seat %+v outside [1,%d]x[1,%d]", pos, tt.rows, tt.columns)
				}
				if seen[pos] {
					t.Errorf("seat %+v generated twice", pos)
				}
				seen[pos] = true
			}
		})
	}
}

func TestSeatGridOrder(t *testing.T) {
	want := []SeatPosition{{1, 1}, {1, 2}, {1, 3}, {2, 1}, {2, 2}, {2, 3}}

	got := SeatGrid(2, 3)
	if len(got) != len(want) {
		t.Fatalf("SeatGrid(2, 3) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SeatGrid(2, 3)[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
