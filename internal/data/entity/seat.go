package entity

import "github.com/google/uuid"

type Seat struct {
	ID     uuid.UUID `db:"id"`
	RoomID uuid.UUID `db:"room_id"`
	Row    int       `db:"row"`
	Number int       `db:"number"`
}

// SeatAvailability is a seat of a screening's room and whether it is claimed
// for that screening.
type SeatAvailability struct {
	Seat
	Taken bool `db:"taken"`
}
