package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/domain"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/pkg/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type memoryStore struct {
	objects map[string][]byte
}

func (s *memoryStore) Put(_ context.Context, name string, data []byte) (string, error) {
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[name] = data
	return name, nil
}

func (s *memoryStore) Get(_ context.Context, ref string) ([]byte, error) {
	data, ok := s.objects[ref]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

var _ storage.Store = (*memoryStore)(nil)

func TestCreateMovieStoresImagesAndSlug(t *testing.T) {
	f := newCinemaFixture()
	category := &entity.Category{BaseSimple: entity.BaseSimple{ID: uuid.New()}, Name: "Sci-Fi"}
	f.db.categories = append(f.db.categories, category)

	store := &memoryStore{}
	svc := NewMovieService(f.db.repository(), store, fixedClock(testNow), zap.NewNop())

	got, err := svc.CreateMovie(context.Background(), &request.MovieRequest{
		Title:        "Dune",
		Director:     "Denis Villeneuve",
		Duration:     155,
		Image:        "data:image/png;base64,iVBORw0KGgo=",
		Landscape:    "https://cdn.example.com/dune.jpg",
		ReleaseDate:  "2024-03-01",
		CategoriesID: []string{category.ID.String()},
	})
	if err != nil {
		t.Fatalf("CreateMovie() error = %v", err)
	}

	// "dune" sudah dipakai fixture
	if got.Slug != "dune-1" {
		t.Errorf("Slug = %q, want %q", got.Slug, "dune-1")
	}
	wantImage := "images/" + got.ID + "Image.png"
	if got.Image == nil || *got.Image != wantImage {
		t.Errorf("Image = %v, want %s", got.Image, wantImage)
	}
	if _, ok := store.objects[wantImage]; !ok {
		t.Errorf("image %s was not stored", wantImage)
	}
	if got.Landscape == nil || *got.Landscape != "https://cdn.example.com/dune.jpg" {
		t.Errorf("Landscape = %v, want the given reference", got.Landscape)
	}
	if len(got.Categories) != 1 || got.Categories[0].Name != "Sci-Fi" {
		t.Errorf("Categories = %+v, want [Sci-Fi]", got.Categories)
	}
	if got.Status != domain.StatusNotAvailable {
		t.Errorf("Status = %q, want NOT_AVAILABLE without screenings", got.Status)
	}
}

func TestCreateMovieRejectsUnknownCategory(t *testing.T) {
	f := newCinemaFixture()
	svc := NewMovieService(f.db.repository(), &memoryStore{}, fixedClock(testNow), zap.NewNop())

	_, err := svc.CreateMovie(context.Background(), &request.MovieRequest{
		Title:        "Arrival",
		Director:     "Denis Villeneuve",
		Duration:     116,
		ReleaseDate:  "2016-11-11",
		CategoriesID: []string{uuid.NewString()},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("CreateMovie() error = %v, want ErrValidation", err)
	}
}

func TestUpdateMovieKeepsImageWhenEmpty(t *testing.T) {
	f := newCinemaFixture()
	image := "images/old.png"
	f.movie.Image = &image
	svc := NewMovieService(f.db.repository(), &memoryStore{}, fixedClock(testNow), zap.NewNop())

	got, err := svc.UpdateMovie(context.Background(), f.movie.ID.String(), &request.MovieRequest{
		Title:       "Dune",
		Director:    "Denis Villeneuve",
		Duration:    150,
		ReleaseDate: "2021-10-22",
	})
	if err != nil {
		t.Fatalf("UpdateMovie() error = %v", err)
	}
	if got.Image == nil || *got.Image != image {
		t.Errorf("Image = %v, want %s", got.Image, image)
	}
	if got.Slug != "dune" || got.Duration != 150 {
		t.Errorf("UpdateMovie() = slug %q duration %d", got.Slug, got.Duration)
	}
}

func TestUpdateMovieDurationKeepsRoomSchedule(t *testing.T) {
	// Dune [14:00, 16:00) is followed back to back by Arrival at 16:00 in
	// the same room; an Arrival screening in another room never interferes.
	tests := []struct {
		name     string
		duration int
		wantErr  error
	}{
		{"shorter", 110, nil},
		{"ends exactly at the next screening", 120, nil},
		{"runs into the next screening", 180, domain.ErrSchedulingConflict},
		{"one minute too long", 121, domain.ErrSchedulingConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCinemaFixture()
			arrival := &entity.Movie{Base: entity.Base{ID: uuid.New()}, Title: "Arrival", Slug: "arrival", Duration: 116}
			f.db.movies[arrival.ID] = arrival

			otherRoom := &entity.Room{Base: entity.Base{ID: uuid.New()}, Name: "Studio 2", NbRows: 1, NbColumns: 1}
			f.db.rooms[otherRoom.ID] = otherRoom

			for _, screening := range []*entity.Screening{
				{Base: entity.Base{ID: uuid.New()}, MovieID: arrival.ID, RoomID: f.room.ID, Date: f.screening.Date, Time: 16 * time.Hour},
				{Base: entity.Base{ID: uuid.New()}, MovieID: arrival.ID, RoomID: otherRoom.ID, Date: f.screening.Date, Time: 15 * time.Hour},
			} {
				f.db.screenings[screening.ID] = screening
			}

			svc := NewMovieService(f.db.repository(), &memoryStore{}, fixedClock(testNow), zap.NewNop())
			_, err := svc.UpdateMovie(context.Background(), f.movie.ID.String(), &request.MovieRequest{
				Title:       "Dune",
				Director:    "Denis Villeneuve",
				Duration:    tt.duration,
				ReleaseDate: "2021-10-22",
			})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("UpdateMovie(duration %d) error = %v, want %v", tt.duration, err, tt.wantErr)
			}

			wantDuration := tt.duration
			if tt.wantErr != nil {
				wantDuration = 120
			}
			if got := f.db.movies[f.movie.ID].Duration; got != wantDuration {
				t.Errorf("stored duration = %d, want %d", got, wantDuration)
			}
		})
	}
}

func TestUpdateMovieDurationIgnoresOtherDays(t *testing.T) {
	f := newCinemaFixture()
	arrival := &entity.Movie{Base: entity.Base{ID: uuid.New()}, Title: "Arrival", Slug: "arrival", Duration: 116}
	f.db.movies[arrival.ID] = arrival
	nextDay := &entity.Screening{
		Base:    entity.Base{ID: uuid.New()},
		MovieID: arrival.ID,
		RoomID:  f.room.ID,
		Date:    f.screening.Date.AddDate(0, 0, 1),
		Time:    15 * time.Hour,
	}
	f.db.screenings[nextDay.ID] = nextDay

	svc := NewMovieService(f.db.repository(), &memoryStore{}, fixedClock(testNow), zap.NewNop())
	if _, err := svc.UpdateMovie(context.Background(), f.movie.ID.String(), &request.MovieRequest{
		Title:       "Dune",
		Director:    "Denis Villeneuve",
		Duration:    240,
		ReleaseDate: "2021-10-22",
	}); err != nil {
		t.Errorf("UpdateMovie() error = %v, want nil", err)
	}
}

func TestMovieListsUseNow(t *testing.T) {
	f := newCinemaFixture()
	upcoming := &entity.Movie{
		Base:        entity.Base{ID: uuid.New()},
		Title:       "Dune: Part Three",
		Slug:        "dune-part-three",
		Duration:    160,
		ReleaseDate: testNow.AddDate(1, 0, 0),
	}
	f.db.movies[upcoming.ID] = upcoming
	svc := NewMovieService(f.db.repository(), &memoryStore{}, fixedClock(testNow), zap.NewNop())
	ctx := context.Background()

	available, err := svc.GetAvailableMovies(ctx, "")
	if err != nil {
		t.Fatalf("GetAvailableMovies() error = %v", err)
	}
	if len(available) != 1 || available[0].Slug != "dune" || available[0].Status != domain.StatusAvailable {
		t.Errorf("GetAvailableMovies() = %+v, want only dune", available)
	}

	soon, err := svc.GetComingSoonMovies(ctx, "part")
	if err != nil {
		t.Fatalf("GetComingSoonMovies() error = %v", err)
	}
	if len(soon) != 1 || soon[0].ID != upcoming.ID.String() {
		t.Errorf("GetComingSoonMovies() = %+v, want the upcoming movie", soon)
	}

	if _, err := svc.GetAvailableMovieByID(ctx, upcoming.ID.String()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetAvailableMovieByID(upcoming) error = %v, want ErrNotFound", err)
	}

	// Setelah jam tayang lewat, tidak ada lagi film yang tersedia
	late := NewMovieService(f.db.repository(), &memoryStore{}, fixedClock(testNow.Add(4*time.Hour+time.Minute)), zap.NewNop())
	available, err = late.GetAvailableMovies(ctx, "")
	if err != nil {
		t.Fatalf("GetAvailableMovies() error = %v", err)
	}
	if len(available) != 0 {
		t.Errorf("GetAvailableMovies() at 14:01 = %d movies, want 0", len(available))
	}

	bySlug, err := svc.GetMovieBySlug(ctx, "dune-part-three")
	if err != nil || !strings.HasPrefix(bySlug.Title, "Dune:") {
		t.Errorf("GetMovieBySlug() = %+v, %v", bySlug, err)
	}
}
