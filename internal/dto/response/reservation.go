package response

import (
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/domain"
)

type ReservationResponse struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user"`
	UserEmail     string            `json:"userEmail,omitempty"`
	Total         float64           `json:"total"`
	CreatedAt     time.Time         `json:"createdAt"`
	Status        string            `json:"status"`
	Screening     ScreeningResponse `json:"screening"`
	SeatsReserved []SeatResponse    `json:"seats_reserved"`
}

// ReservationToResponse mirrors the screening's status onto the
// reservation.
func ReservationToResponse(reservation *entity.ReservationView, snap domain.Snapshot) ReservationResponse {
	seats := make([]SeatResponse, len(reservation.Seats))
	for i := range reservation.Seats {
		seats[i] = SeatToResponse(&reservation.Seats[i])
	}

	screening := ScreeningToResponse(&reservation.Screening, snap)
	return ReservationResponse{
		ID:            reservation.ID.String(),
		UserID:        reservation.UserID.String(),
		UserEmail:     reservation.UserEmail,
		Total:         reservation.Total,
		CreatedAt:     reservation.CreatedAt,
		Status:        screening.Status,
		Screening:     screening,
		SeatsReserved: seats,
	}
}

func ReservationsToResponse(reservations []*entity.ReservationView, snap domain.Snapshot) []ReservationResponse {
	result := make([]ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		result[i] = ReservationToResponse(reservation, snap)
	}
	return result
}
