package entity

import (
	"time"

	"github.com/google/uuid"
)

type Movie struct {
	Base
	Title       string    `db:"title"`
	Slug        string    `db:"slug"`
	Director    string    `db:"director"`
	Cast        *string   `db:"cast"`
	Duration    int       `db:"duration"` // minutes
	Description *string   `db:"description"`
	Image       *string   `db:"image"`
	Landscape   *string   `db:"landscape"`
	Trailer     *string   `db:"trailer"`
	ReleaseDate time.Time `db:"release_date"`

	CategoryIDs []uuid.UUID `db:"-"`
}

// MovieView is a movie with the values derived from its screenings.
type MovieView struct {
	Movie
	Categories []Category
	Available  bool `db:"available"`
	Viewers    int  `db:"viewers"`
}
