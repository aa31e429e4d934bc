package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
)

type stubTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
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
	PgxIface
	tx       *stubTx
	beginErr error
}

func (db *stubDB) Begin(context.Context) (pgx.Tx, error) {
	if db.beginErr != nil {
		return nil, db.beginErr
	}
	return db.tx, nil
}

func TestWithTx(t *testing.T) {
	failed := errors.New("insert failed")

	tests := []struct {
		name           string
		fnErr          error
		beginErr       error
		wantErr        error
		wantCommit     bool
		wantRolledBack bool
		wantCalled     bool
	}{
		{"commits on success", nil, nil, nil, true, false, true},
		{"rolls back on error", failed, nil, failed, false, true, true},
		{"begin fails", nil, failed, failed, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &stubDB{tx: &stubTx{}, beginErr: tt.beginErr}
			called := false

			err := WithTx(context.Background(), db, func(pgx.Tx) error {
				called = true
				return tt.fnErr
			})

			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil && err != nil) {
				t.Errorf("WithTx() error = %v, want %v", err, tt.wantErr)
			}
			if called != tt.wantCalled {
				t.Errorf("fn called = %v, want %v", called, tt.wantCalled)
			}
			if db.tx.committed != tt.wantCommit {
				t.Errorf("committed = %v, want %v", db.tx.committed, tt.wantCommit)
			}
			if db.tx.rolledBack != tt.wantRolledBack {
				t.Errorf("rolled back = %v, want %v", db.tx.rolledBack, tt.wantRolledBack)
			}
		})
	}
}
