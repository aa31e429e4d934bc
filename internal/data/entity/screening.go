package entity

import (
	"time"

	"github.com/google/uuid"
)

type Screening struct {
	Base
	MovieID uuid.UUID     `db:"movie_id"`
	RoomID  uuid.UUID     `db:"room_id"`
	Price   float64       `db:"price"`
	Date    time.Time     `db:"date"`
	Time    time.Duration `db:"time"` // offset from midnight
}

// ScreeningView is a screening joined with its movie and room.
type ScreeningView struct {
	Screening
	MovieTitle    string `db:"movie_title"`
	MovieDuration int    `db:"movie_duration"`
	RoomName      string `db:"room_name"`
}
