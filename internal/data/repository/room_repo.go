package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/domain"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RoomRepository interface {
	// CreateWithSeats writes the room and its whole seat grid in one
	// transaction.
	CreateWithSeats(ctx context.Context, room *entity.Room, seats []entity.Seat) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	FindAll(ctx context.Context) ([]*entity.Room, error)
	// UpdateName changes the name only. The grid is fixed at creation.
	UpdateName(ctx context.Context, room *entity.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type roomRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoomRepository(db database.PgxIface, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

func (r *roomRepository) CreateWithSeats(ctx context.Context, room *entity.Room, seats []entity.Seat) error {
	query := `
		INSERT INTO rooms (id, name, nb_rows, nb_columns, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query,
			room.ID,
			room.Name,
			room.NbRows,
			room.NbColumns,
			room.CreatedAt,
			room.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert room: %w", err)
		}

		copied, err := tx.CopyFrom(ctx,
			pgx.Identifier{"seats"},
			[]string{"id", "room_id", "row", "number"},
			pgx.CopyFromSlice(len(seats), func(i int) ([]any, error) {
				return []any{seats[i].ID, room.ID, seats[i].Row, seats[i].Number}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("insert seats: %w", err)
		}
		if int(copied) != len(seats) {
			return fmt.Errorf("inserted %d seats, want %d", copied, len(seats))
		}
		return nil
	})

	if err != nil {
		r.log.Error("Failed to create room",
			zap.Error(err),
			zap.String("name", room.Name),
			zap.Int("seats", len(seats)),
		)
		return fmt.Errorf("create room %s: %w", room.Name, err)
	}

	return nil
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	query := `
		SELECT id, name, nb_rows, nb_columns, created_at, updated_at
		FROM rooms
		WHERE id = $1
	`

	var room entity.Room
	err := r.db.QueryRow(ctx, query, id).Scan(
		&room.ID,
		&room.Name,
		&room.NbRows,
		&room.NbColumns,
		&room.CreatedAt,
		&room.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by ID",
			zap.Error(err),
			zap.String("room_id", id.String()),
		)
		return nil, fmt.Errorf("find room by ID %s: %w", id, err)
	}

	return &room, nil
}

func (r *roomRepository) FindAll(ctx context.Context) ([]*entity.Room, error) {
	query := `
		SELECT id, name, nb_rows, nb_columns, created_at, updated_at
		FROM rooms
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list rooms", zap.Error(err))
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*entity.Room
	for rows.Next() {
		var room entity.Room
		err := rows.Scan(
			&room.ID,
			&room.Name,
			&room.NbRows,
			&room.NbColumns,
			&room.CreatedAt,
			&room.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan room row", zap.Error(err))
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		rooms = append(rooms, &room)
	}

	return rooms, rows.Err()
}

func (r *roomRepository) UpdateName(ctx context.Context, room *entity.Room) error {
	result, err := r.db.Exec(ctx,
		`UPDATE rooms SET name = $2, updated_at = $3 WHERE id = $1`,
		room.ID, room.Name, room.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update room",
			zap.Error(err),
			zap.String("room_id", room.ID.String()),
		)
		return fmt.Errorf("update room %s: %w", room.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("room %s: %w", room.ID, domain.ErrNotFound)
	}

	return nil
}

func (r *roomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete room",
			zap.Error(err),
			zap.String("room_id", id.String()),
		)
		return fmt.Errorf("delete room %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("room %s: %w", id, domain.ErrNotFound)
	}

	r.log.Info("Room deleted", zap.String("room_id", id.String()))
	return nil
}
