package wire

import (
	"cinema-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReservation(r chi.Router, reservationHandler *adaptor.ReservationHandler, mw chain) {
	// ==================== PROTECTED USER ROUTES ====================
	// Customer writes also change seat availability, so they purge the cache too
	r.Group(func(r chi.Router) {
		r.Use(mw.auth, mw.purge)

		r.Get("/user/seats/screening/{id}", reservationHandler.GetSeatsForScreening)
		r.Get("/user/reservations", reservationHandler.GetUserReservations)
		r.Post("/user/reservations", reservationHandler.CreateReservation)
		r.Get("/user/reservations/{id}", reservationHandler.GetUserReservation)
		r.Delete("/user/reservations/{id}", reservationHandler.CancelReservation)
		r.Get("/user/reservations/{id}/ticket", reservationHandler.GetTicket)
	})

	// ==================== ADMIN ROUTES ====================
	adminGroup(r, mw, func(r chi.Router) {
		r.Get("/admin/reservations", reservationHandler.GetReservations)
		r.Get("/admin/reservations/{id}", reservationHandler.GetReservationByID)
	})
}
