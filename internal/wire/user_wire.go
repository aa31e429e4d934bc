package wire

import (
	"cinema-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser configures user routes with role-based access control
func wireUser(r chi.Router, userHandler *adaptor.UserHandler, mw chain) {
	// ==================== PROTECTED USER ROUTES ====================
	r.With(mw.auth).Get("/user/profile", userHandler.GetProfile)

	// ==================== ADMIN ROUTES ====================
	adminGroup(r, mw, func(r chi.Router) {
		r.Get("/admin/users", userHandler.GetCustomers)
		r.Get("/admin/users/all", userHandler.GetAllUsers)
		r.Get("/admin/users/{id}", userHandler.GetUserByID)
	})
}
