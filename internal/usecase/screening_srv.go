package usecase

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/domain"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScreeningService interface {
	// Public views keep only screenings that have not started yet.
	GetAvailableScreenings(ctx context.Context) ([]response.ScreeningResponse, error)
	GetAvailableScreeningByID(ctx context.Context, screeningID string) (*response.ScreeningResponse, error)
	GetAvailableScreeningsByMovie(ctx context.Context, movieID string) ([]response.ScreeningResponse, error)

	GetScreenings(ctx context.Context) ([]response.ScreeningResponse, error)
	GetScreeningByID(ctx context.Context, screeningID string) (*response.ScreeningResponse, error)
	GetScreeningsByMovie(ctx context.Context, movieID string) ([]response.ScreeningResponse, error)
	// CreateScreening and UpdateScreening reject a slot overlapping another
	// screening of the same room on the same date. UpdateScreening cannot move
	// a screening with reservations to another room.
	CreateScreening(ctx context.Context, req *request.ScreeningRequest) (*response.ScreeningResponse, error)
	UpdateScreening(ctx context.Context, screeningID string, req *request.ScreeningRequest) (*response.ScreeningResponse, error)
	DeleteScreening(ctx context.Context, screeningID string) error
}

type screeningService struct {
	repo  *repository.Repository
	clock domain.Clock
	log   *zap.Logger
}

func NewScreeningService(repo *repository.Repository, clock domain.Clock, log *zap.Logger) ScreeningService {
	return &screeningService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "screening")),
	}
}

func (s *screeningService) GetAvailableScreenings(ctx context.Context) ([]response.ScreeningResponse, error) {
	return s.list(ctx, repository.ScreeningFilter{AvailableOnly: true})
}

func (s *screeningService) GetAvailableScreeningByID(ctx context.Context, screeningID string) (*response.ScreeningResponse, error) {
	return s.findOne(ctx, screeningID, repository.ScreeningFilter{AvailableOnly: true})
}

func (s *screeningService) GetAvailableScreeningsByMovie(ctx context.Context, movieID string) ([]response.ScreeningResponse, error) {
	id, err := parseID(movieID, "movie id")
	if err != nil {
		return nil, err
	}
	return s.list(ctx, repository.ScreeningFilter{MovieID: &id, AvailableOnly: true})
}

func (s *screeningService) GetScreenings(ctx context.Context) ([]response.ScreeningResponse, error) {
	return s.list(ctx, repository.ScreeningFilter{})
}

func (s *screeningService) GetScreeningByID(ctx context.Context, screeningID string) (*response.ScreeningResponse, error) {
	return s.findOne(ctx, screeningID, repository.ScreeningFilter{})
}

func (s *screeningService) GetScreeningsByMovie(ctx context.Context, movieID string) ([]response.ScreeningResponse, error) {
	id, err := parseID(movieID, "movie id")
	if err != nil {
		return nil, err
	}
	return s.list(ctx, repository.ScreeningFilter{MovieID: &id})
}

func (s *screeningService) CreateScreening(ctx context.Context, req *request.ScreeningRequest) (*response.ScreeningResponse, error) {
	now := s.clock()
	screening := &entity.Screening{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := s.apply(screening, req, "Create screening"); err != nil {
		return nil, err
	}

	if err := s.repo.Screening.Create(ctx, screening, scheduleCheck(screening, uuid.Nil)); err != nil {
		return nil, fmt.Errorf("create screening: %w", err)
	}

	s.log.Info("Screening scheduled",
		zap.String("screening_id", screening.ID.String()),
		zap.String("room_id", screening.RoomID.String()),
		zap.Time("date", screening.Date),
		zap.String("time", domain.FormatClock(screening.Time)))

	return s.findOne(ctx, screening.ID.String(), repository.ScreeningFilter{})
}

func (s *screeningService) UpdateScreening(ctx context.Context, screeningID string, req *request.ScreeningRequest) (*response.ScreeningResponse, error) {
	id, err := parseID(screeningID, "screening id")
	if err != nil {
		return nil, err
	}

	screening := &entity.Screening{
		Base: entity.Base{ID: id, UpdatedAt: s.clock()},
	}
	if err := s.apply(screening, req, "Update screening"); err != nil {
		return nil, err
	}

	// Baris lama dikecualikan supaya tidak bentrok dengan dirinya sendiri
	if err := s.repo.Screening.Update(ctx, screening, scheduleCheck(screening, id)); err != nil {
		return nil, fmt.Errorf("update screening: %w", err)
	}

	s.log.Info("Screening rescheduled", zap.String("screening_id", id.String()))

	return s.findOne(ctx, id.String(), repository.ScreeningFilter{})
}

func (s *screeningService) DeleteScreening(ctx context.Context, screeningID string) error {
	id, err := parseID(screeningID, "screening id")
	if err != nil {
		return err
	}

	if err := s.repo.Screening.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete screening: %w", err)
	}

	s.log.Info("Screening deleted", zap.String("screening_id", id.String()))
	return nil
}

func (s *screeningService) apply(screening *entity.Screening, req *request.ScreeningRequest, operation string) error {
	if err := validateRequest(s.log, operation, req); err != nil {
		return err
	}

	movieID, err := parseID(req.MovieID, "movie id")
	if err != nil {
		return err
	}
	roomID, err := parseID(req.RoomID, "room id")
	if err != nil {
		return err
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return err
	}
	clock, err := domain.ParseClock(req.Time)
	if err != nil {
		return err
	}

	screening.MovieID = movieID
	screening.RoomID = roomID
	screening.Price = req.Price
	screening.Date = date
	screening.Time = clock
	return nil
}

// scheduleCheck is run by the repository while the room is locked, against
// the screenings already booked in that room on the same date.
func scheduleCheck(screening *entity.Screening, self uuid.UUID) repository.ScheduleCheck {
	return func(movieDuration int, sameDay []domain.ScheduledInterval) error {
		candidate := domain.NewInterval(screening.Time, movieDuration)
		return domain.CheckSchedule(candidate, sameDay, self)
	}
}

func (s *screeningService) findOne(ctx context.Context, screeningID string, filter repository.ScreeningFilter) (*response.ScreeningResponse, error) {
	id, err := parseID(screeningID, "screening id")
	if err != nil {
		return nil, err
	}

	filter.ID = &id
	screenings, err := s.list(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(screenings) == 0 {
		return nil, notFound("screening", id)
	}
	return &screenings[0], nil
}

func (s *screeningService) list(ctx context.Context, filter repository.ScreeningFilter) ([]response.ScreeningResponse, error) {
	snap := domain.NewSnapshot(s.clock())
	filter.Today = snap.Today()
	filter.TimeOfDay = snap.TimeOfDay()

	screenings, err := s.repo.Screening.FindViews(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get screenings: %w", err)
	}
	return response.ScreeningsToResponse(screenings, snap), nil
}
