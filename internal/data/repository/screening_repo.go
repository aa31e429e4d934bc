package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/domain"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

// ScheduleCheck decides whether a screening of a movie lasting
// movieDuration minutes fits among the screenings already in the room that
// day. A non-nil error aborts the write.
type ScheduleCheck func(movieDuration int, sameDay []domain.ScheduledInterval) error

// ScreeningFilter narrows a screening listing. Today and TimeOfDay are the
// request's "now".
type ScreeningFilter struct {
	Today     time.Time
	TimeOfDay time.Duration

	ID            *uuid.UUID
	MovieID       *uuid.UUID
	AvailableOnly bool
}

type ScreeningRepository interface {
	// Create and Update lock the target room, run check against that day's
	// screenings and write only if it passes. Update also refuses to change the
	// room of a screening with seat claims (domain.ErrHasReservations).
	Create(ctx context.Context, screening *entity.Screening, check ScheduleCheck) error
	Update(ctx context.Context, screening *entity.Screening, check ScheduleCheck) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ScreeningView, error)
	FindViews(ctx context.Context, filter ScreeningFilter) ([]*entity.ScreeningView, error)
}

type screeningRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScreeningRepository(db database.PgxIface, log *zap.Logger) ScreeningRepository {
	return &screeningRepository{
		db:  db,
		log: log.With(zap.String("repository", "screening")),
	}
}

func (r *screeningRepository) Create(ctx context.Context, screening *entity.Screening, check ScheduleCheck) error {
	query := `
		INSERT INTO screenings (id, movie_id, room_id, price, date, time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := r.checkSchedule(ctx, tx, screening, check); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, query,
			screening.ID,
			screening.MovieID,
			screening.RoomID,
			screening.Price,
			screening.Date,
			clockParam(screening.Time),
			screening.CreatedAt,
			screening.UpdatedAt,
		)
		return err
	})

	if err != nil {
		r.logWriteError("Failed to create screening", err, screening)
		return fmt.Errorf("create screening for movie %s room %s: %w",
			screening.MovieID, screening.RoomID, err)
	}

	return nil
}

func (r *screeningRepository) Update(ctx context.Context, screening *entity.Screening, check ScheduleCheck) error {
	query := `
		UPDATE screenings
		SET movie_id = $2, room_id = $3, price = $4, date = $5, time = $6, updated_at = $7
		WHERE id = $1
	`

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := r.guardRoomChange(ctx, tx, screening); err != nil {
			return err
		}
		if err := r.checkSchedule(ctx, tx, screening, check); err != nil {
			return err
		}

		result, err := tx.Exec(ctx, query,
			screening.ID,
			screening.MovieID,
			screening.RoomID,
			screening.Price,
			screening.Date,
			clockParam(screening.Time),
			screening.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("screening %s: %w", screening.ID, domain.ErrNotFound)
		}
		return nil
	})

	if err != nil {
		r.logWriteError("Failed to update screening", err, screening)
		return fmt.Errorf("update screening %s: %w", screening.ID, err)
	}

	return nil
}

// checkSchedule runs inside the write transaction. The room row stays locked
// until commit, so writers for the same room are serialized.
func (r *screeningRepository) checkSchedule(ctx context.Context, tx pgx.Tx, screening *entity.Screening, check ScheduleCheck) error {
	if err := lockRooms(ctx, tx, []uuid.UUID{screening.RoomID}); err != nil {
		return err
	}

	var duration int
	err := tx.QueryRow(ctx, `SELECT duration FROM movies WHERE id = $1`, screening.MovieID).Scan(&duration)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("movie %s: %w", screening.MovieID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("find movie duration: %w", err)
	}

	sameDay, err := screeningsOfDay(ctx, tx, screening.RoomID, screening.Date)
	if err != nil {
		return err
	}

	intervals := make([]domain.ScheduledInterval, 0, len(sameDay))
	for _, other := range sameDay {
		intervals = append(intervals, other.ScheduledInterval)
	}
	return check(duration, intervals)
}

// guardRoomChange locks the screening row and refuses to move it to another
// room once seats are claimed, since claims point at seats of the old room.
func (r *screeningRepository) guardRoomChange(ctx context.Context, tx pgx.Tx, screening *entity.Screening) error {
	var currentRoom uuid.UUID
	err := tx.QueryRow(ctx, `SELECT room_id FROM screenings WHERE id = $1 FOR UPDATE`, screening.ID).Scan(&currentRoom)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("screening %s: %w", screening.ID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("lock screening: %w", err)
	}
	if currentRoom == screening.RoomID {
		return nil
	}

	var reserved bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM seats_reserved WHERE screening_id = $1)`, screening.ID).Scan(&reserved)
	if err != nil {
		return fmt.Errorf("check seat claims: %w", err)
	}
	if reserved {
		return fmt.Errorf("screening %s cannot leave room %s: %w", screening.ID, currentRoom, domain.ErrHasReservations)
	}
	return nil
}

// dayScreening is a screening already booked in a room, as the schedule
// checks see it.
type dayScreening struct {
	domain.ScheduledInterval
	MovieID uuid.UUID
}

// lockRooms takes FOR UPDATE locks on the rooms in id order, so concurrent
// writers never lock the same pair of rooms in opposite orders.
func lockRooms(ctx context.Context, tx pgx.Tx, roomIDs []uuid.UUID) error {
	rows, err := tx.Query(ctx, `SELECT id FROM rooms WHERE id = ANY($1) ORDER BY id FOR UPDATE`, roomIDs)
	if err != nil {
		return fmt.Errorf("lock rooms: %w", err)
	}
	defer rows.Close()

	locked := 0
	for rows.Next() {
		locked++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("lock rooms: %w", err)
	}
	if locked != len(roomIDs) {
		return fmt.Errorf("room %v: %w", roomIDs, domain.ErrNotFound)
	}
	return nil
}

func screeningsOfDay(ctx context.Context, tx pgx.Tx, roomID uuid.UUID, date time.Time) ([]dayScreening, error) {
	rows, err := tx.Query(ctx, `
		SELECT s.id, s.movie_id, s.time, m.duration
		FROM screenings s
		INNER JOIN movies m ON m.id = s.movie_id
		WHERE s.room_id = $1 AND s.date = $2
		ORDER BY s.time
	`, roomID, date)
	if err != nil {
		return nil, fmt.Errorf("find screenings of the day: %w", err)
	}
	defer rows.Close()

	var sameDay []dayScreening
	for rows.Next() {
		var screening dayScreening
		var clock pgtype.Time
		var duration int
		if err := rows.Scan(&screening.ScreeningID, &screening.MovieID, &clock, &duration); err != nil {
			return nil, fmt.Errorf("scan screening of the day: %w", err)
		}
		screening.Interval = domain.NewInterval(clockValue(clock), duration)
		sameDay = append(sameDay, screening)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate screenings of the day: %w", err)
	}
	return sameDay, nil
}

func (r *screeningRepository) logWriteError(msg string, err error, screening *entity.Screening) {
	fields := []zap.Field{
		zap.Error(err),
		zap.String("screening_id", screening.ID.String()),
		zap.String("room_id", screening.RoomID.String()),
		zap.String("date", screening.Date.Format(domain.DateLayout)),
		zap.String("time", domain.FormatClock(screening.Time)),
	}
	// Rejections by the schedule check or missing references are client errors.
	if errors.Is(err, domain.ErrSchedulingConflict) ||
		errors.Is(err, domain.ErrHasReservations) ||
		errors.Is(err, domain.ErrNotFound) {
		r.log.Warn(msg, fields...)
		return
	}
	r.log.Error(msg, fields...)
}

func (r *screeningRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM screenings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete screening",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return fmt.Errorf("delete screening %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("screening %s: %w", id, domain.ErrNotFound)
	}

	r.log.Info("Screening deleted", zap.String("screening_id", id.String()))
	return nil
}

func (r *screeningRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ScreeningView, error) {
	screenings, err := r.FindViews(ctx, ScreeningFilter{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(screenings) == 0 {
		return nil, nil
	}
	return screenings[0], nil
}

func (r *screeningRepository) FindViews(ctx context.Context, filter ScreeningFilter) ([]*entity.ScreeningView, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT s.id, s.movie_id, s.room_id, s.price, s.date, s.time, s.created_at, s.updated_at,
		       m.title, m.duration, rm.name
		FROM screenings s
		INNER JOIN movies m ON m.id = s.movie_id
		INNER JOIN rooms rm ON rm.id = s.room_id
		WHERE TRUE
	`)

	var args []any
	argCount := 1

	if filter.ID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.id = $%d", argCount))
		args = append(args, *filter.ID)
		argCount++
	}
	if filter.MovieID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.movie_id = $%d", argCount))
		args = append(args, *filter.MovieID)
		argCount++
	}
	if filter.AvailableOnly {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND (s.date > $%[1]d OR (s.date = $%[1]d AND s.time >= $%[2]d))", argCount, argCount+1))
		args = append(args, filter.Today, clockParam(filter.TimeOfDay))
	}

	queryBuilder.WriteString(" ORDER BY s.date, s.time, rm.name")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find screenings",
			zap.Error(err),
			zap.Bool("available_only", filter.AvailableOnly),
		)
		return nil, fmt.Errorf("find screenings: %w", err)
	}
	defer rows.Close()

	var screenings []*entity.ScreeningView
	for rows.Next() {
		screening, err := scanScreeningView(rows)
		if err != nil {
			r.log.Error("Failed to scan screening row", zap.Error(err))
			return nil, fmt.Errorf("scan screening row: %w", err)
		}
		screenings = append(screenings, screening)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate screening rows: %w", err)
	}

	return screenings, nil
}

func scanScreeningView(row rowScanner, extra ...any) (*entity.ScreeningView, error) {
	var screening entity.ScreeningView
	var clock pgtype.Time
	dest := []any{
		&screening.ID,
		&screening.MovieID,
		&screening.RoomID,
		&screening.Price,
		&screening.Date,
		&clock,
		&screening.CreatedAt,
		&screening.UpdatedAt,
		&screening.MovieTitle,
		&screening.MovieDuration,
		&screening.RoomName,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	screening.Time = clockValue(clock)
	return &screening, nil
}

func clockValue(t pgtype.Time) time.Duration {
	if !t.Valid {
		return 0
	}
	return time.Duration(t.Microseconds) * time.Microsecond
}
