package repository

import (
	"cinema-reservation/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	DB          database.PgxIface
	User        UserRepository
	Session     SessionRepository
	Category    CategoryRepository
	Movie       MovieRepository
	Room        RoomRepository
	Seat        SeatRepository
	Screening   ScreeningRepository
	Reservation ReservationRepository
	Report      ReportRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		DB:          db,
		User:        NewUserRepository(db, log),
		Session:     NewSessionRepository(db, log),
		Category:    NewCategoryRepository(db, log),
		Movie:       NewMovieRepository(db, log),
		Room:        NewRoomRepository(db, log),
		Seat:        NewSeatRepository(db, log),
		Screening:   NewScreeningRepository(db, log),
		Reservation: NewReservationRepository(db, log),
		Report:      NewReportRepository(db, log),
	}
}

// rowScanner is implemented by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
