package usecase

import (
	"context"
	"errors"
	"testing"

	"cinema-reservation/internal/domain"
	"cinema-reservation/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestCreateRoomGeneratesSeatGrid(t *testing.T) {
	db := newFakeDB()
	svc := NewRoomService(db.repository(), fixedClock(testNow), zap.NewNop())

	room, err := svc.CreateRoom(context.Background(), &request.RoomRequest{Name: " Studio 2 ", NbRows: 2, NbColumns: 3})
	if err != nil {
		t.Fatalf("CreateRoom() error = %v", err)
	}
	if room.Name != "Studio 2" || room.NbRows != 2 || room.NbColumns != 3 {
		t.Errorf("CreateRoom() = %+v", room)
	}

	roomID := uuid.MustParse(room.ID)
	seats, _ := fakeSeatRepo{db}.FindByRoomID(context.Background(), roomID)
	if len(seats) != 6 {
		t.Fatalf("seats = %d, want 6", len(seats))
	}
	seen := map[[2]int]bool{}
	for _, seat := range seats {
		key := [2]int{seat.Row, seat.Number}
		if seen[key] {
			t.Errorf("duplicate seat %v", key)
		}
		seen[key] = true
	}
}

func TestCreateRoomValidation(t *testing.T) {
	db := newFakeDB()
	svc := NewRoomService(db.repository(), fixedClock(testNow), zap.NewNop())

	tests := []request.RoomRequest{
		{Name: "", NbRows: 2, NbColumns: 2},
		{Name: "Empty", NbRows: 0, NbColumns: 2},
		{Name: "Empty", NbRows: 2, NbColumns: 0},
	}
	for _, req := range tests {
		if _, err := svc.CreateRoom(context.Background(), &req); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("CreateRoom(%+v) error = %v, want ErrValidation", req, err)
		}
	}
	if len(db.rooms) != 0 || len(db.seats) != 0 {
		t.Errorf("rooms = %d, seats = %d, want none", len(db.rooms), len(db.seats))
	}
}

func TestUpdateRoomKeepsGrid(t *testing.T) {
	f := newCinemaFixture()
	svc := NewRoomService(f.db.repository(), fixedClock(testNow), zap.NewNop())

	got, err := svc.UpdateRoom(context.Background(), f.room.ID.String(), &request.RoomUpdateRequest{Name: "IMAX"})
	if err != nil {
		t.Fatalf("UpdateRoom() error = %v", err)
	}
	if got.Name != "IMAX" || got.NbRows != 2 || got.NbColumns != 3 {
		t.Errorf("UpdateRoom() = %+v", got)
	}

	if _, err := svc.UpdateRoom(context.Background(), uuid.NewString(), &request.RoomUpdateRequest{Name: "X"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("UpdateRoom(unknown) error = %v, want ErrNotFound", err)
	}
}
