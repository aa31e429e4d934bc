package wire

import (
	"cinema-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	categoryHandler *adaptor.CategoryHandler,
	mw chain,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(mw.cache)

		r.Get("/public/categories", categoryHandler.GetCategories)
		r.Get("/public/categories/{id}", categoryHandler.GetCategoryByID)

		r.Get("/public/movies", movieHandler.GetAvailableMovies)
		r.Get("/public/movies/coming-soon", movieHandler.GetComingSoonMovies)
		r.Get("/public/movies/coming-soon/{id}", movieHandler.GetComingSoonMovieByID)
		r.Get("/public/movies/trending", movieHandler.GetTrendingMovies)
		r.Get("/public/movies/slug/{slug}", movieHandler.GetMovieBySlug)
		r.Get("/public/movies/{id}", movieHandler.GetAvailableMovieByID)
	})

	// ==================== ADMIN ROUTES ====================
	adminGroup(r, mw, func(r chi.Router) {
		r.Get("/admin/movies", movieHandler.GetMovies)
		r.Post("/admin/movies", movieHandler.CreateMovie)
		r.Get("/admin/movies/coming-soon", movieHandler.GetComingSoonMovies)
		r.Get("/admin/movies/trending", movieHandler.GetAdminTrendingMovies)
		r.Get("/admin/movies/{id}", movieHandler.GetMovieByID)
		r.Put("/admin/movies/{id}", movieHandler.UpdateMovie)
		r.Delete("/admin/movies/{id}", movieHandler.DeleteMovie)

		r.Post("/admin/categories", categoryHandler.CreateCategory)
		r.Delete("/admin/categories/{id}", categoryHandler.DeleteCategory)
	})
}
