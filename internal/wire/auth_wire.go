package wire

import (
	"cinema-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, mw chain) {
	// ==================== PUBLIC ROUTES ====================
	// Dibatasi per IP supaya tidak bisa di-brute force
	r.With(mw.rateLimit).Post("/public/sign-up", authHandler.SignUp)
	r.With(mw.rateLimit).Post("/token/generate-token", authHandler.GenerateToken)

	// ==================== PROTECTED ROUTES ====================
	r.With(mw.auth).Get("/logout", authHandler.Logout)
}
