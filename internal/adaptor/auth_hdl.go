package adaptor

import (
	"net"
	"net/http"

	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// SignUp handles POST /public/sign-up
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req request.SignUpRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	user, err := h.service.SignUp(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "sign up")
		return
	}

	utils.ResponseCreated(w, "Registration successful", user)
}

// GenerateToken handles POST /token/generate-token
func (h *AuthHandler) GenerateToken(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	client := usecase.ClientInfo{
		UserAgent: r.UserAgent(),
		IPAddress: clientIP(r),
	}
	auth, err := h.service.Login(r.Context(), &req, client)
	if err != nil {
		handleServiceError(w, h.log, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", auth)
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	// Session token diset oleh middleware auth
	token, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		handleServiceError(w, h.log, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
