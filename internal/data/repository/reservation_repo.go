package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/domain"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const seatLockConstraint = "seats_reserved_screening_seat_key"

// ReservationFilter narrows a reservation listing; an empty filter lists
// every reservation.
type ReservationFilter struct {
	ID     *uuid.UUID
	UserID *uuid.UUID
}

type ReservationRepository interface {
	// CreateWithSeats writes the reservation and every seat claim in one
	// transaction. If any seat is already claimed for the screening nothing
	// is written and the error wraps domain.ErrSeatAlreadyReserved. Seats
	// outside the screening's room wrap domain.ErrValidation.
	CreateWithSeats(ctx context.Context, reservation *entity.Reservation, claims []entity.SeatReserved) error
	// DeleteOwned removes a reservation of userID, releasing its seats.
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) (*entity.Reservation, error)
	FindViews(ctx context.Context, filter ReservationFilter) ([]*entity.ReservationView, error)
}

type reservationRepository struct {
	db    database.PgxIface
	seats SeatRepository
	log   *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:    db,
		seats: NewSeatRepository(db, log),
		log:   log.With(zap.String("repository", "reservation")),
	}
}

func (r *reservationRepository) CreateWithSeats(ctx context.Context, reservation *entity.Reservation, claims []entity.SeatReserved) error {
	query := `
		INSERT INTO reservations (id, user_id, screening_id, total, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := checkSeatsInRoom(ctx, tx, reservation.ScreeningID, claims); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, query,
			reservation.ID,
			reservation.UserID,
			reservation.ScreeningID,
			reservation.Total,
			reservation.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert reservation: %w", err)
		}

		// Build batch insert
		var claimQuery strings.Builder
		claimQuery.WriteString(`INSERT INTO seats_reserved (id, screening_id, seat_id, reservation_id) VALUES `)
		args := make([]any, 0, len(claims)*4)
		for i, claim := range claims {
			if i > 0 {
				claimQuery.WriteString(", ")
			}
			n := i * 4
			claimQuery.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4))
			args = append(args, claim.ID, claim.ScreeningID, claim.SeatID, reservation.ID)
		}

		if _, err := tx.Exec(ctx, claimQuery.String(), args...); err != nil {
			if database.IsUniqueViolation(err, seatLockConstraint) {
				return fmt.Errorf("screening %s: %w", reservation.ScreeningID, domain.ErrSeatAlreadyReserved)
			}
			return fmt.Errorf("insert seat claims: %w", err)
		}
		return nil
	})

	if errors.Is(err, domain.ErrSeatAlreadyReserved) {
		r.log.Warn("Seat already reserved",
			zap.String("screening_id", reservation.ScreeningID.String()),
			zap.String("user_id", reservation.UserID.String()),
		)
		return err
	}
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) {
		r.log.Warn("Reservation rejected",
			zap.Error(err),
			zap.String("screening_id", reservation.ScreeningID.String()),
		)
		return err
	}
	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("screening_id", reservation.ScreeningID.String()),
			zap.String("user_id", reservation.UserID.String()),
		)
		return fmt.Errorf("create reservation: %w", err)
	}

	return nil
}

// checkSeatsInRoom holds a share lock on the screening row, which blocks a
// concurrent room change until commit, and verifies every claimed seat is in
// the screening's room.
func checkSeatsInRoom(ctx context.Context, tx pgx.Tx, screeningID uuid.UUID, claims []entity.SeatReserved) error {
	var roomID uuid.UUID
	err := tx.QueryRow(ctx, `SELECT room_id FROM screenings WHERE id = $1 FOR SHARE`, screeningID).Scan(&roomID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("screening %s: %w", screeningID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("lock screening: %w", err)
	}

	seatIDs := make([]uuid.UUID, 0, len(claims))
	for _, claim := range claims {
		seatIDs = append(seatIDs, claim.SeatID)
	}

	var inRoom int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM seats WHERE room_id = $1 AND id = ANY($2)`, roomID, seatIDs).Scan(&inRoom)
	if err != nil {
		return fmt.Errorf("count seats in room: %w", err)
	}
	if inRoom != len(seatIDs) {
		return fmt.Errorf("seats %v are not all in room %s: %w", seatIDs, roomID, domain.ErrValidation)
	}
	return nil
}

func (r *reservationRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (*entity.Reservation, error) {
	query := `
		DELETE FROM reservations
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, screening_id, total, created_at
	`

	var reservation entity.Reservation
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.ScreeningID,
		&reservation.Total,
		&reservation.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("reservation %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to delete reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("delete reservation %s: %w", id, err)
	}

	r.log.Info("Reservation deleted", zap.String("reservation_id", id.String()))
	return &reservation, nil
}

func (r *reservationRepository) FindViews(ctx context.Context, filter ReservationFilter) ([]*entity.ReservationView, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT s.id, s.movie_id, s.room_id, s.price, s.date, s.time, s.created_at, s.updated_at,
		       m.title, m.duration, rm.name,
		       r.id, r.user_id, r.screening_id, r.total, r.created_at, u.email
		FROM reservations r
		INNER JOIN screenings s ON s.id = r.screening_id
		INNER JOIN movies m ON m.id = s.movie_id
		INNER JOIN rooms rm ON rm.id = s.room_id
		INNER JOIN users u ON u.id = r.user_id
		WHERE TRUE
	`)

	var args []any
	argCount := 1

	if filter.ID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND r.id = $%d", argCount))
		args = append(args, *filter.ID)
		argCount++
	}
	if filter.UserID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND r.user_id = $%d", argCount))
		args = append(args, *filter.UserID)
	}
	queryBuilder.WriteString(" ORDER BY r.created_at")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find reservations", zap.Error(err))
		return nil, fmt.Errorf("find reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*entity.ReservationView
	var ids []uuid.UUID
	for rows.Next() {
		var reservation entity.ReservationView
		screening, err := scanScreeningView(rows,
			&reservation.ID,
			&reservation.UserID,
			&reservation.ScreeningID,
			&reservation.Total,
			&reservation.CreatedAt,
			&reservation.UserEmail,
		)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservation.Screening = *screening
		reservations = append(reservations, &reservation)
		ids = append(ids, reservation.ID)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate reservation rows: %w", err)
	}
	rows.Close()

	seats, err := r.seats.FindByReservationIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, reservation := range reservations {
		reservation.Seats = seats[reservation.ID]
	}

	return reservations, nil
}
