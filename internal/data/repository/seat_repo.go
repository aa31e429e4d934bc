package repository

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SeatRepository interface {
	FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.Seat, error)
	// FindForScreening lists the seats of the screening's room ordered by
	// row and number, each marked taken when claimed for that screening.
	FindForScreening(ctx context.Context, screeningID uuid.UUID) ([]*entity.SeatAvailability, error)
	FindByReservationIDs(ctx context.Context, reservationIDs []uuid.UUID) (map[uuid.UUID][]entity.Seat, error)
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT id, room_id, "row", number
		FROM seats
		WHERE room_id = $1
		ORDER BY "row", number
	`

	rows, err := r.db.Query(ctx, query, roomID)
	if err != nil {
		r.log.Error("Failed to find seats by room ID",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return nil, fmt.Errorf("failed to find seats: %w", err)
	}
	defer rows.Close()

	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		if err := rows.Scan(&seat.ID, &seat.RoomID, &seat.Row, &seat.Number); err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan seat: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, rows.Err()
}

func (r *seatRepository) FindForScreening(ctx context.Context, screeningID uuid.UUID) ([]*entity.SeatAvailability, error) {
	query := `
		SELECT st.id, st.room_id, st."row", st.number,
		       EXISTS (
		           SELECT 1 FROM seats_reserved sr
		           WHERE sr.screening_id = sc.id AND sr.seat_id = st.id
		       ) AS taken
		FROM screenings sc
		INNER JOIN seats st ON st.room_id = sc.room_id
		WHERE sc.id = $1
		ORDER BY st."row", st.number
	`

	rows, err := r.db.Query(ctx, query, screeningID)
	if err != nil {
		r.log.Error("Failed to find seats for screening",
			zap.Error(err),
			zap.String("screening_id", screeningID.String()),
		)
		return nil, fmt.Errorf("failed to find seats for screening: %w", err)
	}
	defer rows.Close()

	var seats []*entity.SeatAvailability
	for rows.Next() {
		var seat entity.SeatAvailability
		if err := rows.Scan(&seat.ID, &seat.RoomID, &seat.Row, &seat.Number, &seat.Taken); err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan seat: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, rows.Err()
}

func (r *seatRepository) FindByReservationIDs(ctx context.Context, reservationIDs []uuid.UUID) (map[uuid.UUID][]entity.Seat, error) {
	result := make(map[uuid.UUID][]entity.Seat, len(reservationIDs))
	if len(reservationIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT sr.reservation_id, st.id, st.room_id, st."row", st.number
		FROM seats_reserved sr
		INNER JOIN seats st ON st.id = sr.seat_id
		WHERE sr.reservation_id = ANY($1)
		ORDER BY st."row", st.number
	`

	rows, err := r.db.Query(ctx, query, reservationIDs)
	if err != nil {
		r.log.Error("Failed to find reserved seats", zap.Error(err))
		return nil, fmt.Errorf("failed to find reserved seats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var reservationID uuid.UUID
		var seat entity.Seat
		if err := rows.Scan(&reservationID, &seat.ID, &seat.RoomID, &seat.Row, &seat.Number); err != nil {
			r.log.Error("Failed to scan reserved seat row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan reserved seat: %w", err)
		}
		result[reservationID] = append(result[reservationID], seat)
	}

	return result, rows.Err()
}
