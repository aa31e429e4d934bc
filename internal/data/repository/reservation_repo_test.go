package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/domain"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// stubRow answers one QueryRow call with fixed values.
type stubRow struct {
	values []any
	err    error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *uuid.UUID:
			*p = r.values[i].(uuid.UUID)
		case *int:
			*p = r.values[i].(int)
		default:
			return fmt.Errorf("unsupported scan target %T", d)
		}
	}
	return nil
}

// stubTx replays queued QueryRow answers and fails Exec for statements
// starting with failOn.
type stubTx struct {
	pgx.Tx
	rows       []stubRow
	failOn     string
	execErr    error
	execs      []string
	committed  bool
	rolledBack bool
}

func (tx *stubTx) QueryRow(context.Context, string, ...any) pgx.Row {
	row := tx.rows[0]
	tx.rows = tx.rows[1:]
	return row
}

func (tx *stubTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	sql = strings.TrimSpace(sql)
	tx.execs = append(tx.execs, sql)
	if tx.failOn != "" && strings.HasPrefix(sql, tx.failOn) {
		return pgconn.CommandTag{}, tx.execErr
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (tx *stubTx) Commit(context.Context) error {
	tx.committed = true
	return nil
}

func (tx *stubTx) Rollback(context.Context) error {
	if tx.committed {
		return pgx.ErrTxClosed
	}
	tx.rolledBack = true
	return nil
}

type stubDB struct {
	database.PgxIface
	tx *stubTx
}

func (db *stubDB) Begin(context.Context) (pgx.Tx, error) {
	return db.tx, nil
}

func TestCreateWithSeatsSeatLock(t *testing.T) {
	roomID := uuid.New()
	reservation := &entity.Reservation{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC)},
		UserID:      uuid.New(),
		ScreeningID: uuid.New(),
		Total:       20,
	}
	claims := []entity.SeatReserved{
		{ID: uuid.New(), ScreeningID: reservation.ScreeningID, SeatID: uuid.New(), ReservationID: reservation.ID},
		{ID: uuid.New(), ScreeningID: reservation.ScreeningID, SeatID: uuid.New(), ReservationID: reservation.ID},
	}
	inRoom := func(count int) []stubRow {
		return []stubRow{{values: []any{roomID}}, {values: []any{count}}}
	}

	tests := []struct {
		name      string
		rows      []stubRow
		failOn    string
		execErr   error
		wantErr   error
		wantExecs int
	}{
		{
			name:      "claims written",
			rows:      inRoom(2),
			wantExecs: 2,
		},
		{
			name:      "seat already claimed",
			rows:      inRoom(2),
			failOn:    "INSERT INTO seats_reserved",
			execErr:   &pgconn.PgError{Code: "23505", ConstraintName: "seats_reserved_screening_seat_key"},
			wantErr:   domain.ErrSeatAlreadyReserved,
			wantExecs: 2,
		},
		{
			name:      "seat outside the screening's room",
			rows:      inRoom(1),
			wantErr:   domain.ErrValidation,
			wantExecs: 0,
		},
		{
			name:      "screening gone",
			rows:      []stubRow{{err: pgx.ErrNoRows}},
			wantErr:   domain.ErrNotFound,
			wantExecs: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &stubTx{rows: tt.rows, failOn: tt.failOn, execErr: tt.execErr}
			repo := NewReservationRepository(&stubDB{tx: tx}, zap.NewNop())

			err := repo.CreateWithSeats(context.Background(), reservation, claims)

			if tt.wantErr == nil && err != nil {
				t.Fatalf("CreateWithSeats() error = %v", err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateWithSeats() error = %v, want %v", err, tt.wantErr)
			}
			if len(tx.execs) != tt.wantExecs {
				t.Errorf("statements executed = %d, want %d", len(tx.execs), tt.wantExecs)
			}
			if tt.wantErr == nil {
				if !tx.committed {
					t.Error("transaction not committed")
				}
				return
			}
			if tx.committed {
				t.Error("transaction committed after a failure")
			}
			if !tx.rolledBack {
				t.Error("transaction not rolled back")
			}
		})
	}
}

func TestCreateWithSeatsOtherUniqueViolation(t *testing.T) {
	reservation := &entity.Reservation{BaseSimple: entity.BaseSimple{ID: uuid.New()}, UserID: uuid.New(), ScreeningID: uuid.New()}
	claims := []entity.SeatReserved{{ID: uuid.New(), ScreeningID: reservation.ScreeningID, SeatID: uuid.New()}}
	tx := &stubTx{
		rows:    []stubRow{{values: []any{uuid.New()}}, {values: []any{1}}},
		failOn:  "INSERT INTO reservations",
		execErr: &pgconn.PgError{Code: "23505", ConstraintName: "reservations_pkey"},
	}

	err := NewReservationRepository(&stubDB{tx: tx}, zap.NewNop()).CreateWithSeats(context.Background(), reservation, claims)

	if err == nil || errors.Is(err, domain.ErrSeatAlreadyReserved) {
		t.Errorf("CreateWithSeats() error = %v, want a plain storage error", err)
	}
	if tx.committed {
		t.Error("transaction committed after a failure")
	}
}
