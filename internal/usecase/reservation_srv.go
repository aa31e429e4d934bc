package usecase

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/domain"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/internal/event"
	"cinema-reservation/pkg/ticket"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	// CreateReservation claims every requested seat of the screening or none
	// of them.
	CreateReservation(ctx context.Context, userID uuid.UUID, req *request.ReservationRequest) (*response.ReservationResponse, error)
	GetUserReservations(ctx context.Context, userID uuid.UUID) ([]response.ReservationResponse, error)
	GetUserReservation(ctx context.Context, userID uuid.UUID, reservationID string) (*response.ReservationResponse, error)
	// CancelReservation deletes a reservation of userID and releases its
	// seats. Reservations of other users are reported as not found.
	CancelReservation(ctx context.Context, userID uuid.UUID, reservationID string) error
	GetTicket(ctx context.Context, userID uuid.UUID, reservationID string) ([]byte, error)
	GetSeatsForScreening(ctx context.Context, screeningID string) ([]response.SeatResponse, error)

	GetReservations(ctx context.Context) ([]response.ReservationResponse, error)
	GetReservationByID(ctx context.Context, reservationID string) (*response.ReservationResponse, error)
}

type reservationService struct {
	repo      *repository.Repository
	publisher event.Publisher
	clock     domain.Clock
	log       *zap.Logger
}

func NewReservationService(
	repo *repository.Repository,
	publisher event.Publisher,
	clock domain.Clock,
	log *zap.Logger,
) ReservationService {
	return &reservationService{
		repo:      repo,
		publisher: publisher,
		clock:     clock,
		log:       log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, userID uuid.UUID, req *request.ReservationRequest) (*response.ReservationResponse, error) {
	// 1. Validasi
	if err := validateRequest(s.log, "Create reservation", req); err != nil {
		return nil, err
	}
	screeningID, err := parseID(req.Screening, "screening id")
	if err != nil {
		return nil, err
	}
	seatIDs, err := parseIDs(req.SeatIDs, "seat id")
	if err != nil {
		return nil, err
	}

	// 2. Screening harus ada
	screening, err := s.repo.Screening.FindByID(ctx, screeningID)
	if err != nil {
		return nil, fmt.Errorf("get screening: %w", err)
	}
	if screening == nil {
		return nil, notFound("screening", screeningID)
	}

	// 3. Semua kursi unik dan milik ruangan screening
	roomSeats, err := s.repo.Seat.FindByRoomID(ctx, screening.RoomID)
	if err != nil {
		return nil, fmt.Errorf("get room seats: %w", err)
	}
	inRoom := make(map[uuid.UUID]bool, len(roomSeats))
	for _, seat := range roomSeats {
		inRoom[seat.ID] = true
	}
	seen := make(map[uuid.UUID]bool, len(seatIDs))
	for _, seatID := range seatIDs {
		if seen[seatID] {
			return nil, fmt.Errorf("seat %s requested twice: %w", seatID, domain.ErrValidation)
		}
		seen[seatID] = true
		if !inRoom[seatID] {
			s.log.Warn("Seat outside screening room",
				zap.String("seat_id", seatID.String()),
				zap.String("room_id", screening.RoomID.String()))
			return nil, fmt.Errorf("seat %s is not in room %s: %w", seatID, screening.RoomID, domain.ErrValidation)
		}
	}

	// 4. Simpan reservation + klaim kursi dalam satu transaksi
	reservation := &entity.Reservation{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: s.clock(),
		},
		UserID:      userID,
		ScreeningID: screeningID,
		Total:       domain.ReservationTotal(len(seatIDs), screening.Price),
	}
	claims := make([]entity.SeatReserved, len(seatIDs))
	for i, seatID := range seatIDs {
		claims[i] = entity.SeatReserved{
			ID:            utils.GenerateUUID(),
			ScreeningID:   screeningID,
			SeatID:        seatID,
			ReservationID: reservation.ID,
		}
	}

	if err := s.repo.Reservation.CreateWithSeats(ctx, reservation, claims); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("seats", len(claims)),
		zap.Float64("total", reservation.Total))

	s.publish(ctx, event.ReservationCreated, event.ReservationEvent{
		ReservationID: reservation.ID,
		UserID:        userID,
		ScreeningID:   screeningID,
		SeatIDs:       seatIDs,
		Total:         reservation.Total,
		OccurredAt:    reservation.CreatedAt,
	})

	return s.findOne(ctx, repository.ReservationFilter{ID: &reservation.ID, UserID: &userID})
}

func (s *reservationService) GetUserReservations(ctx context.Context, userID uuid.UUID) ([]response.ReservationResponse, error) {
	return s.list(ctx, repository.ReservationFilter{UserID: &userID})
}

func (s *reservationService) GetUserReservation(ctx context.Context, userID uuid.UUID, reservationID string) (*response.ReservationResponse, error) {
	id, err := parseID(reservationID, "reservation id")
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, repository.ReservationFilter{ID: &id, UserID: &userID})
}

func (s *reservationService) CancelReservation(ctx context.Context, userID uuid.UUID, reservationID string) error {
	id, err := parseID(reservationID, "reservation id")
	if err != nil {
		return err
	}

	reservation, err := s.repo.Reservation.DeleteOwned(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("cancel reservation: %w", err)
	}

	s.log.Info("Reservation cancelled",
		zap.String("reservation_id", id.String()),
		zap.String("user_id", userID.String()))

	s.publish(ctx, event.ReservationCancelled, event.ReservationEvent{
		ReservationID: reservation.ID,
		UserID:        reservation.UserID,
		ScreeningID:   reservation.ScreeningID,
		Total:         reservation.Total,
		OccurredAt:    s.clock(),
	})
	return nil
}

func (s *reservationService) GetTicket(ctx context.Context, userID uuid.UUID, reservationID string) ([]byte, error) {
	id, err := parseID(reservationID, "reservation id")
	if err != nil {
		return nil, err
	}

	views, err := s.repo.Reservation.FindViews(ctx, repository.ReservationFilter{ID: &id, UserID: &userID})
	if err != nil {
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	if len(views) == 0 {
		return nil, notFound("reservation", id)
	}
	reservation := views[0]

	seats := make([]string, len(reservation.Seats))
	for i, seat := range reservation.Seats {
		seats[i] = fmt.Sprintf("Row %d Seat %d", seat.Row, seat.Number)
	}

	pdf, err := ticket.Render(ticket.Data{
		ReservationID: reservation.ID.String(),
		MovieTitle:    reservation.Screening.MovieTitle,
		RoomName:      reservation.Screening.RoomName,
		Date:          reservation.Screening.Date,
		Time:          domain.FormatClock(reservation.Screening.Time),
		Seats:         seats,
		Total:         reservation.Total,
		HolderEmail:   reservation.UserEmail,
		CreatedAt:     reservation.CreatedAt,
	})
	if err != nil {
		s.log.Error("Failed to render ticket", zap.Error(err), zap.String("reservation_id", id.String()))
		return nil, fmt.Errorf("render ticket: %w", err)
	}
	return pdf, nil
}

func (s *reservationService) GetSeatsForScreening(ctx context.Context, screeningID string) ([]response.SeatResponse, error) {
	id, err := parseID(screeningID, "screening id")
	if err != nil {
		return nil, err
	}

	screening, err := s.repo.Screening.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get screening: %w", err)
	}
	if screening == nil {
		return nil, notFound("screening", id)
	}

	seats, err := s.repo.Seat.FindForScreening(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get seats: %w", err)
	}

	result := make([]response.SeatResponse, len(seats))
	for i, seat := range seats {
		result[i] = response.SeatAvailabilityToResponse(seat)
	}
	return result, nil
}

func (s *reservationService) GetReservations(ctx context.Context) ([]response.ReservationResponse, error) {
	return s.list(ctx, repository.ReservationFilter{})
}

func (s *reservationService) GetReservationByID(ctx context.Context, reservationID string) (*response.ReservationResponse, error) {
	id, err := parseID(reservationID, "reservation id")
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, repository.ReservationFilter{ID: &id})
}

// publish runs after commit. A broker failure never undoes the reservation.
func (s *reservationService) publish(ctx context.Context, routingKey string, payload event.ReservationEvent) {
	if err := s.publisher.Publish(ctx, routingKey, payload); err != nil {
		s.log.Warn("Failed to publish reservation event",
			zap.Error(err),
			zap.String("routing_key", routingKey),
			zap.String("reservation_id", payload.ReservationID.String()))
	}
}

func (s *reservationService) findOne(ctx context.Context, filter repository.ReservationFilter) (*response.ReservationResponse, error) {
	reservations, err := s.list(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(reservations) == 0 {
		return nil, notFound("reservation", *filter.ID)
	}
	return &reservations[0], nil
}

func (s *reservationService) list(ctx context.Context, filter repository.ReservationFilter) ([]response.ReservationResponse, error) {
	reservations, err := s.repo.Reservation.FindViews(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get reservations: %w", err)
	}
	return response.ReservationsToResponse(reservations, domain.NewSnapshot(s.clock())), nil
}
