package wire

import (
	"cinema-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireCinema configures room and screening routes
func wireCinema(
	r chi.Router,
	roomHandler *adaptor.RoomHandler,
	screeningHandler *adaptor.ScreeningHandler,
	mw chain,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(mw.cache)

		r.Get("/public/screenings", screeningHandler.GetAvailableScreenings)
		r.Get("/public/screenings/movie/{id}", screeningHandler.GetAvailableScreeningsByMovie)
		r.Get("/public/screenings/{id}", screeningHandler.GetAvailableScreeningByID)
	})

	// ==================== ADMIN ROUTES ====================
	adminGroup(r, mw, func(r chi.Router) {
		r.Get("/admin/screenings", screeningHandler.GetScreenings)
		r.Post("/admin/screenings", screeningHandler.CreateScreening)
		r.Get("/admin/screenings/movie/{id}", screeningHandler.GetScreeningsByMovie)
		r.Get("/admin/screenings/{id}", screeningHandler.GetScreeningByID)
		r.Put("/admin/screenings/{id}", screeningHandler.UpdateScreening)
		r.Delete("/admin/screenings/{id}", screeningHandler.DeleteScreening)

		r.Get("/admin/rooms", roomHandler.GetRooms)
		r.Post("/admin/rooms", roomHandler.CreateRoom)
		r.Get("/admin/rooms/{id}", roomHandler.GetRoomByID)
		r.Put("/admin/rooms/{id}", roomHandler.UpdateRoom)
		r.Delete("/admin/rooms/{id}", roomHandler.DeleteRoom)
	})
}
