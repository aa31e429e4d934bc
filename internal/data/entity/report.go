package entity

import "time"

// NamedCount is a label with a count, the shape every dashboard chart uses.
type NamedCount struct {
	Name  string `db:"name"`
	Value int    `db:"value"`
}

type ReservationTotals struct {
	TotalNumber int     `db:"total_number"`
	TotalIncome float64 `db:"total_income"`
}

// CategorySeats is the number of seats one reservation claimed for a movie
// of one category.
type CategorySeats struct {
	Category   string    `db:"category"`
	ReservedAt time.Time `db:"created_at"`
	Seats      int       `db:"seats"`
}
