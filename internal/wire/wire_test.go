package wire

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cinema-reservation/internal/data/repository"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newTestApp() *App {
	return Wiring(&repository.Repository{}, &utils.Config{}, Infra{}, zap.NewNop())
}

func TestRoutesRegistered(t *testing.T) {
	app := newTestApp()

	registered := map[string]bool{}
	err := chi.Walk(app.Router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[method+" "+route] = true
		return nil
	})
	if err != nil {
		t.Fatalf("walk routes: %v", err)
	}

	want := []string{
		"POST /public/sign-up",
		"POST /token/generate-token",
		"GET /logout",
		"GET /public/movies/slug/{slug}",
		"GET /public/screenings/movie/{id}",
		"GET /user/seats/screening/{id}",
		"POST /user/reservations",
		"DELETE /user/reservations/{id}",
		"GET /user/reservations/{id}/ticket",
		"PUT /admin/movies/{id}",
		"GET /admin/movies/per-categories",
		"POST /admin/screenings",
		"PUT /admin/rooms/{id}",
		"GET /admin/reservations/per-categories/last-week",
		"GET /admin/users/loyal-clients",
		"GET /health",
	}
	for _, route := range want {
		if !registered[route] {
			t.Errorf("route %s is not registered", route)
		}
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/logout"},
		{http.MethodGet, "/user/profile"},
		{http.MethodPost, "/user/reservations"},
		{http.MethodGet, "/admin/movies"},
		{http.MethodGet, "/admin/users/number-users"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestApp().Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("health = %d %q, want 200 OK", rec.Code, rec.Body.String())
	}
}
