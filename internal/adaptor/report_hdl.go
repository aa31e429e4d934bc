package adaptor

import (
	"net/http"

	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

type ReportHandler struct {
	service usecase.ReportService
	log     *zap.Logger
}

func NewReportHandler(service usecase.ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log.With(zap.String("handler", "report")),
	}
}

// MoviesPerCategory handles GET /admin/movies/per-categories
func (h *ReportHandler) MoviesPerCategory(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.MoviesPerCategory(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "count movies per category")
		return
	}

	utils.ResponseSuccess(w, "success", counts)
}

// NumberOfUsers handles GET /admin/users/number-users
func (h *ReportHandler) NumberOfUsers(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.NumberOfUsers(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "count users")
		return
	}

	utils.ResponseSuccess(w, "success", total)
}

// LoyalClients handles GET /admin/users/loyal-clients
func (h *ReportHandler) LoyalClients(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.LoyalClients(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get loyal clients")
		return
	}

	utils.ResponseSuccess(w, "success", users)
}

// ReservationTotals handles GET /admin/reservations/total-numbers
func (h *ReportHandler) ReservationTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.ReservationTotals(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "sum reservations")
		return
	}

	utils.ResponseSuccess(w, "success", totals)
}

// SeatsPerCategoryLastWeek handles GET /admin/reservations/per-categories/last-week
func (h *ReportHandler) SeatsPerCategoryLastWeek(w http.ResponseWriter, r *http.Request) {
	series, err := h.service.SeatsPerCategoryLastWeek(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "count seats per category")
		return
	}

	utils.ResponseSuccess(w, "success", series)
}
