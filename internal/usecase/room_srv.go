package usecase

import (
	"context"
	"fmt"
	"strings"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/domain"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/utils"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

type RoomService interface {
	GetRooms(ctx context.Context) ([]response.RoomResponse, error)
	GetRoomByID(ctx context.Context, roomID string) (*response.RoomResponse, error)
	// CreateRoom also creates the nbRows x nbColumns seat grid.
	CreateRoom(ctx context.Context, req *request.RoomRequest) (*response.RoomResponse, error)
	UpdateRoom(ctx context.Context, roomID string, req *request.RoomUpdateRequest) (*response.RoomResponse, error)
	DeleteRoom(ctx context.Context, roomID string) error
}

type roomService struct {
	repo  *repository.Repository
	clock domain.Clock
	log   *zap.Logger
}

func NewRoomService(repo *repository.Repository, clock domain.Clock, log *zap.Logger) RoomService {
	return &roomService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "room")),
	}
}

func (s *roomService) GetRooms(ctx context.Context) ([]response.RoomResponse, error) {
	rooms, err := s.repo.Room.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get rooms: %w", err)
	}

	result := make([]response.RoomResponse, len(rooms))
	for i, room := range rooms {
		result[i] = response.RoomToResponse(room)
	}
	return result, nil
}

func (s *roomService) GetRoomByID(ctx context.Context, roomID string) (*response.RoomResponse, error) {
	room, err := s.find(ctx, roomID)
	if err != nil {
		return nil, err
	}
	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) CreateRoom(ctx context.Context, req *request.RoomRequest) (*response.RoomResponse, error) {
	if err := validateRequest(s.log, "Create room", req); err != nil {
		return nil, err
	}

	var room entity.Room
	if err := copier.Copy(&room, req); err != nil {
		return nil, fmt.Errorf("copy room request: %w", err)
	}
	now := s.clock()
	room.ID = utils.GenerateUUID()
	room.Name = strings.TrimSpace(room.Name)
	room.CreatedAt = now
	room.UpdatedAt = now

	grid := domain.SeatGrid(room.NbRows, room.NbColumns)
	seats := make([]entity.Seat, len(grid))
	for i, position := range grid {
		seats[i] = entity.Seat{
			ID:     utils.GenerateUUID(),
			RoomID: room.ID,
			Row:    position.Row,
			Number: position.Number,
		}
	}

	if err := s.repo.Room.CreateWithSeats(ctx, &room, seats); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.log.Info("Room created",
		zap.String("room_id", room.ID.String()),
		zap.Int("seats", len(seats)))

	resp := response.RoomToResponse(&room)
	return &resp, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, roomID string, req *request.RoomUpdateRequest) (*response.RoomResponse, error) {
	if err := validateRequest(s.log, "Update room", req); err != nil {
		return nil, err
	}

	room, err := s.find(ctx, roomID)
	if err != nil {
		return nil, err
	}

	room.Name = strings.TrimSpace(req.Name)
	room.UpdatedAt = s.clock()
	if err := s.repo.Room.UpdateName(ctx, room); err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) DeleteRoom(ctx context.Context, roomID string) error {
	id, err := parseID(roomID, "room id")
	if err != nil {
		return err
	}

	if err := s.repo.Room.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete room: %w", err)
	}

	s.log.Info("Room deleted", zap.String("room_id", id.String()))
	return nil
}

func (s *roomService) find(ctx context.Context, roomID string) (*entity.Room, error) {
	id, err := parseID(roomID, "room id")
	if err != nil {
		return nil, err
	}

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	if room == nil {
		return nil, notFound("room", id)
	}
	return room, nil
}
