package adaptor

import (
	"net/http"

	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RoomHandler struct {
	service usecase.RoomService
	log     *zap.Logger
}

func NewRoomHandler(service usecase.RoomService, log *zap.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		log:     log.With(zap.String("handler", "room")),
	}
}

// GetRooms handles GET /admin/rooms
func (h *RoomHandler) GetRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.GetRooms(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get rooms")
		return
	}

	utils.ResponseSuccess(w, "success", rooms)
}

// GetRoomByID handles GET /admin/rooms/{id}
func (h *RoomHandler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	room, err := h.service.GetRoomByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get room")
		return
	}

	utils.ResponseSuccess(w, "success", room)
}

// CreateRoom handles POST /admin/rooms
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.RoomRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	room, err := h.service.CreateRoom(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create room")
		return
	}

	utils.ResponseCreated(w, "Room created", room)
}

// UpdateRoom handles PUT /admin/rooms/{id}
func (h *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.RoomUpdateRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	room, err := h.service.UpdateRoom(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update room")
		return
	}

	utils.ResponseSuccess(w, "Room updated", room)
}

// DeleteRoom handles DELETE /admin/rooms/{id}
func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteRoom(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete room")
		return
	}

	utils.ResponseNoContent(w)
}

type ScreeningHandler struct {
	service usecase.ScreeningService
	log     *zap.Logger
}

func NewScreeningHandler(service usecase.ScreeningService, log *zap.Logger) *ScreeningHandler {
	return &ScreeningHandler{
		service: service,
		log:     log.With(zap.String("handler", "screening")),
	}
}

// GetAvailableScreenings handles GET /public/screenings
func (h *ScreeningHandler) GetAvailableScreenings(w http.ResponseWriter, r *http.Request) {
	screenings, err := h.service.GetAvailableScreenings(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get available screenings")
		return
	}

	utils.ResponseSuccess(w, "success", screenings)
}

// GetAvailableScreeningByID handles GET /public/screenings/{id}
func (h *ScreeningHandler) GetAvailableScreeningByID(w http.ResponseWriter, r *http.Request) {
	screening, err := h.service.GetAvailableScreeningByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get available screening")
		return
	}

	utils.ResponseSuccess(w, "success", screening)
}

// GetAvailableScreeningsByMovie handles GET /public/screenings/movie/{id}
func (h *ScreeningHandler) GetAvailableScreeningsByMovie(w http.ResponseWriter, r *http.Request) {
	screenings, err := h.service.GetAvailableScreeningsByMovie(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get available screenings of movie")
		return
	}

	utils.ResponseSuccess(w, "success", screenings)
}

// GetScreenings handles GET /admin/screenings
func (h *ScreeningHandler) GetScreenings(w http.ResponseWriter, r *http.Request) {
	screenings, err := h.service.GetScreenings(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get screenings")
		return
	}

	utils.ResponseSuccess(w, "success", screenings)
}

// GetScreeningByID handles GET /admin/screenings/{id}
func (h *ScreeningHandler) GetScreeningByID(w http.ResponseWriter, r *http.Request) {
	screening, err := h.service.GetScreeningByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get screening")
		return
	}

	utils.ResponseSuccess(w, "success", screening)
}

// GetScreeningsByMovie handles GET /admin/screenings/movie/{id}
func (h *ScreeningHandler) GetScreeningsByMovie(w http.ResponseWriter, r *http.Request) {
	screenings, err := h.service.GetScreeningsByMovie(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get screenings of movie")
		return
	}

	utils.ResponseSuccess(w, "success", screenings)
}

// CreateScreening handles POST /admin/screenings
func (h *ScreeningHandler) CreateScreening(w http.ResponseWriter, r *http.Request) {
	var req request.ScreeningRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	screening, err := h.service.CreateScreening(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create screening")
		return
	}

	utils.ResponseCreated(w, "Screening created", screening)
}

// UpdateScreening handles PUT /admin/screenings/{id}
func (h *ScreeningHandler) UpdateScreening(w http.ResponseWriter, r *http.Request) {
	var req request.ScreeningRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	screening, err := h.service.UpdateScreening(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update screening")
		return
	}

	utils.ResponseSuccess(w, "Screening updated", screening)
}

// DeleteScreening handles DELETE /admin/screenings/{id}
func (h *ScreeningHandler) DeleteScreening(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteScreening(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete screening")
		return
	}

	utils.ResponseNoContent(w)
}
