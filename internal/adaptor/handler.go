package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"cinema-reservation/internal/domain"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Category    *CategoryHandler
	Movie       *MovieHandler
	Room        *RoomHandler
	Screening   *ScreeningHandler
	Reservation *ReservationHandler
	Report      *ReportHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, log),
		User:        NewUserHandler(service.User, log),
		Category:    NewCategoryHandler(service.Category, log),
		Movie:       NewMovieHandler(service.Movie, log),
		Room:        NewRoomHandler(service.Room, log),
		Screening:   NewScreeningHandler(service.Screening, log),
		Reservation: NewReservationHandler(service.Reservation, log),
		Report:      NewReportHandler(service.Report, log),
	}
}

// decodeRequest reads a JSON body into req and runs its validator tags. It
// writes the 400 response itself and reports whether the handler may go on.
func decodeRequest(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}

// handleServiceError maps the domain error kinds to HTTP statuses. Anything
// unrecognised is logged and answered with a generic 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, domain.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, "Invalid credentials or session")

	case errors.Is(err, domain.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, "Access denied")

	case errors.Is(err, domain.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, domain.ErrSchedulingConflict),
		errors.Is(err, domain.ErrSeatAlreadyReserved),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrHasReservations):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// currentUser returns the caller set by the auth middleware, answering 401
// when there is none.
func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
	}
	return id, ok
}
