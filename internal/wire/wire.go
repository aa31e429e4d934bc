// internal/wire/wire.go
package wire

import (
	"net/http"

	"cinema-reservation/internal/adaptor"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/event"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/middleware"
	"cinema-reservation/pkg/storage"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Infra holds the optional infrastructure clients. A nil Redis disables the
// response cache and rate limiting, a nil Publisher drops events.
type Infra struct {
	Redis     *redis.Client
	Store     storage.Store
	Publisher event.Publisher
}

// chain is the set of route middlewares shared by the wire* functions.
type chain struct {
	auth      func(http.Handler) http.Handler
	admin     func(http.Handler) http.Handler
	cache     func(http.Handler) http.Handler
	purge     func(http.Handler) http.Handler
	rateLimit func(http.Handler) http.Handler
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, config *utils.Config, infra Infra, logger *zap.Logger) *App {
	service := usecase.NewService(usecase.Deps{
		Repo:      repo,
		Config:    config,
		Store:     infra.Store,
		Publisher: infra.Publisher,
		Log:       logger,
	})
	handler := adaptor.NewHandler(service, logger)

	mw := chain{
		auth:      middleware.Auth(service.Auth, logger),
		admin:     middleware.Admin(logger),
		cache:     middleware.Cache(infra.Redis, config.Cache, logger),
		purge:     middleware.PurgeCache(infra.Redis, config.Cache, logger),
		rateLimit: middleware.RateLimit(infra.Redis, config.RateLimit, logger),
	}

	return &App{
		Router:  setupRouter(handler, mw, logger),
		Service: service,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(handler *adaptor.Handler, mw chain, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, mw)
	wireUser(r, handler.User, mw)
	wireMovie(r, handler.Movie, handler.Category, mw)
	wireCinema(r, handler.Room, handler.Screening, mw)
	wireReservation(r, handler.Reservation, mw)
	wireReport(r, handler.Report, mw)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

// adminGroup mounts routes that need an authenticated admin. Successful
// writes purge the public response cache.
func adminGroup(r chi.Router, mw chain, routes func(r chi.Router)) {
	r.Group(func(r chi.Router) {
		r.Use(mw.auth, mw.admin, mw.purge)
		routes(r)
	})
}
