package entity

import "github.com/google/uuid"

type Reservation struct {
	BaseSimple
	UserID      uuid.UUID `db:"user_id"`
	ScreeningID uuid.UUID `db:"screening_id"`
	Total       float64   `db:"total"`
}

// SeatReserved is the claim of one seat of a screening by a reservation.
type SeatReserved struct {
	ID            uuid.UUID `db:"id"`
	ScreeningID   uuid.UUID `db:"screening_id"`
	SeatID        uuid.UUID `db:"seat_id"`
	ReservationID uuid.UUID `db:"reservation_id"`
}

// ReservationView is a reservation with its screening and claimed seats.
type ReservationView struct {
	Reservation
	Screening ScreeningView
	Seats     []Seat
	UserEmail string `db:"user_email"`
}
