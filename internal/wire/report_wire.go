package wire

import (
	"cinema-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireReport configures the admin statistics routes
func wireReport(r chi.Router, reportHandler *adaptor.ReportHandler, mw chain) {
	adminGroup(r, mw, func(r chi.Router) {
		r.Get("/admin/movies/per-categories", reportHandler.MoviesPerCategory)
		r.Get("/admin/users/number-users", reportHandler.NumberOfUsers)
		r.Get("/admin/users/loyal-clients", reportHandler.LoyalClients)
		r.Get("/admin/reservations/total-numbers", reportHandler.ReservationTotals)
		r.Get("/admin/reservations/per-categories/last-week", reportHandler.SeatsPerCategoryLastWeek)
	})
}
