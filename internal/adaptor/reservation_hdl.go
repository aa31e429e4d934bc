package adaptor

import (
	"net/http"

	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// CreateReservation handles POST /user/reservations (protected)
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.ReservationRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	reservation, err := h.service.CreateReservation(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, "Reservation created", reservation)
}

// GetUserReservations handles GET /user/reservations (protected)
func (h *ReservationHandler) GetUserReservations(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	reservations, err := h.service.GetUserReservations(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get user reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// GetUserReservation handles GET /user/reservations/{id} (protected)
func (h *ReservationHandler) GetUserReservation(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	reservation, err := h.service.GetUserReservation(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get user reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// CancelReservation handles DELETE /user/reservations/{id} (protected)
func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.service.CancelReservation(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "cancel reservation")
		return
	}

	utils.ResponseNoContent(w)
}

// GetTicket handles GET /user/reservations/{id}/ticket (protected)
func (h *ReservationHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	pdf, err := h.service.GetTicket(r.Context(), userID, id)
	if err != nil {
		handleServiceError(w, h.log, err, "get ticket")
		return
	}

	utils.ResponseFile(w, "application/pdf", "ticket-"+id+".pdf", pdf)
}

// GetSeatsForScreening handles GET /user/seats/screening/{id} (protected)
func (h *ReservationHandler) GetSeatsForScreening(w http.ResponseWriter, r *http.Request) {
	seats, err := h.service.GetSeatsForScreening(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get seats for screening")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// GetReservations handles GET /admin/reservations
func (h *ReservationHandler) GetReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.service.GetReservations(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// GetReservationByID handles GET /admin/reservations/{id}
func (h *ReservationHandler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	reservation, err := h.service.GetReservationByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}
