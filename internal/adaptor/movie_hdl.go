package adaptor

import (
	"net/http"

	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// ==================== PUBLIC ====================

// GetAvailableMovies handles GET /public/movies?search=
func (h *MovieHandler) GetAvailableMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.GetAvailableMovies(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		handleServiceError(w, h.log, err, "get available movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetAvailableMovieByID handles GET /public/movies/{id}
func (h *MovieHandler) GetAvailableMovieByID(w http.ResponseWriter, r *http.Request) {
	movie, err := h.service.GetAvailableMovieByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get available movie")
		return
	}

	utils.ResponseSuccess(w, "success", movie)
}

// GetComingSoonMovies handles GET /public/movies/coming-soon and
// GET /admin/movies/coming-soon
func (h *MovieHandler) GetComingSoonMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.GetComingSoonMovies(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		handleServiceError(w, h.log, err, "get coming soon movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetComingSoonMovieByID handles GET /public/movies/coming-soon/{id}
func (h *MovieHandler) GetComingSoonMovieByID(w http.ResponseWriter, r *http.Request) {
	movie, err := h.service.GetComingSoonMovieByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get coming soon movie")
		return
	}

	utils.ResponseSuccess(w, "success", movie)
}

// GetTrendingMovies handles GET /public/movies/trending
func (h *MovieHandler) GetTrendingMovies(w http.ResponseWriter, r *http.Request) {
	h.trending(w, r, false)
}

// GetMovieBySlug handles GET /public/movies/slug/{slug}
func (h *MovieHandler) GetMovieBySlug(w http.ResponseWriter, r *http.Request) {
	movie, err := h.service.GetMovieBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handleServiceError(w, h.log, err, "get movie by slug")
		return
	}

	utils.ResponseSuccess(w, "success", movie)
}

// ==================== ADMIN ====================

// GetMovies handles GET /admin/movies?search=
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.GetMovies(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		handleServiceError(w, h.log, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetAdminTrendingMovies handles GET /admin/movies/trending
func (h *MovieHandler) GetAdminTrendingMovies(w http.ResponseWriter, r *http.Request) {
	h.trending(w, r, true)
}

// GetMovieByID handles GET /admin/movies/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	movie, err := h.service.GetMovieByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get movie")
		return
	}

	utils.ResponseSuccess(w, "success", movie)
}

// CreateMovie handles POST /admin/movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create movie")
		return
	}

	utils.ResponseCreated(w, "Movie created", movie)
}

// UpdateMovie handles PUT /admin/movies/{id}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	movie, err := h.service.UpdateMovie(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update movie")
		return
	}

	utils.ResponseSuccess(w, "Movie updated", movie)
}

// DeleteMovie handles DELETE /admin/movies/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMovie(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete movie")
		return
	}

	utils.ResponseNoContent(w)
}

func (h *MovieHandler) trending(w http.ResponseWriter, r *http.Request, admin bool) {
	movies, err := h.service.GetTrendingMovies(r.Context(), admin)
	if err != nil {
		handleServiceError(w, h.log, err, "get trending movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}
