package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/domain"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/storage"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	publicTrendingLimit = 5
	adminTrendingLimit  = 10
)

type MovieService interface {
	// Public views: only movies that can still be watched, or that are not
	// released yet.
	GetAvailableMovies(ctx context.Context, search string) ([]response.MovieResponse, error)
	GetAvailableMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	GetComingSoonMovies(ctx context.Context, search string) ([]response.MovieResponse, error)
	GetComingSoonMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	GetMovieBySlug(ctx context.Context, slug string) (*response.MovieResponse, error)
	// GetTrendingMovies orders by seats reserved. The public list keeps the
	// top 5 available movies, the admin one the top 10 of all movies.
	GetTrendingMovies(ctx context.Context, admin bool) ([]response.MovieResponse, error)

	GetMovies(ctx context.Context, search string) ([]response.MovieResponse, error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
}

type movieService struct {
	repo  *repository.Repository
	store storage.Store
	clock domain.Clock
	log   *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	store storage.Store,
	clock domain.Clock,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo:  repo,
		store: store,
		clock: clock,
		log:   log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetAvailableMovies(ctx context.Context, search string) ([]response.MovieResponse, error) {
	return s.list(ctx, repository.MovieFilter{
		Search:        utils.SearchTerm(search),
		AvailableOnly: true,
	})
}

func (s *movieService) GetAvailableMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	return s.findOne(ctx, movieID, repository.MovieFilter{AvailableOnly: true})
}

func (s *movieService) GetComingSoonMovies(ctx context.Context, search string) ([]response.MovieResponse, error) {
	return s.list(ctx, repository.MovieFilter{
		Search:         utils.SearchTerm(search),
		ComingSoonOnly: true,
	})
}

func (s *movieService) GetComingSoonMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	return s.findOne(ctx, movieID, repository.MovieFilter{ComingSoonOnly: true})
}

func (s *movieService) GetMovieBySlug(ctx context.Context, slug string) (*response.MovieResponse, error) {
	slug = strings.TrimSpace(slug)
	movies, err := s.list(ctx, repository.MovieFilter{Slug: &slug})
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, fmt.Errorf("movie %q: %w", slug, domain.ErrNotFound)
	}
	return &movies[0], nil
}

func (s *movieService) GetTrendingMovies(ctx context.Context, admin bool) ([]response.MovieResponse, error) {
	filter := repository.MovieFilter{
		OrderByViewers: true,
		AvailableOnly:  !admin,
		Limit:          publicTrendingLimit,
	}
	if admin {
		filter.Limit = adminTrendingLimit
	}
	return s.list(ctx, filter)
}

func (s *movieService) GetMovies(ctx context.Context, search string) ([]response.MovieResponse, error) {
	return s.list(ctx, repository.MovieFilter{Search: utils.SearchTerm(search)})
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	return s.findOne(ctx, movieID, repository.MovieFilter{})
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	// 1. Validasi
	if err := validateRequest(s.log, "Create movie", req); err != nil {
		return nil, err
	}

	now := s.clock()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	// 2. Isi field dari request, termasuk kategori dan gambar
	if err := s.apply(ctx, movie, req); err != nil {
		return nil, err
	}

	// 3. Simpan
	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("slug", movie.Slug))

	return s.findOne(ctx, movie.ID.String(), repository.MovieFilter{})
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieResponse, error) {
	id, err := parseID(movieID, "movie id")
	if err != nil {
		return nil, err
	}
	if err := validateRequest(s.log, "Update movie", req); err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, notFound("movie", id)
	}

	if err := s.apply(ctx, movie, req); err != nil {
		return nil, err
	}
	movie.UpdatedAt = s.clock()

	// Durasi baru harus tetap muat di jadwal ruangan yang sudah ada
	if err := s.repo.Movie.Update(ctx, movie, domain.CheckResized); err != nil {
		return nil, fmt.Errorf("update movie: %w", err)
	}

	s.log.Info("Movie updated", zap.String("movie_id", movie.ID.String()))

	return s.findOne(ctx, movie.ID.String(), repository.MovieFilter{})
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	id, err := parseID(movieID, "movie id")
	if err != nil {
		return err
	}

	if err := s.repo.Movie.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}

	s.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}

// apply copies req onto movie: categories are checked to exist, the slug is
// regenerated when the title changes and inline images are stored.
func (s *movieService) apply(ctx context.Context, movie *entity.Movie, req *request.MovieRequest) error {
	releaseDate, err := domain.ParseDate(req.ReleaseDate)
	if err != nil {
		return err
	}

	categoryIDs, err := parseIDs(req.CategoriesID, "category id")
	if err != nil {
		return err
	}
	if len(categoryIDs) > 0 {
		found, err := s.repo.Category.CountByIDs(ctx, categoryIDs)
		if err != nil {
			return fmt.Errorf("check categories: %w", err)
		}
		if found != len(categoryIDs) {
			return fmt.Errorf("unknown category in %v: %w", req.CategoriesID, domain.ErrValidation)
		}
	}

	title := strings.TrimSpace(req.Title)
	if movie.Slug == "" || title != movie.Title {
		movie.Slug, err = utils.GenerateUniqueSlug(title, func(candidate string) (bool, error) {
			return s.repo.Movie.SlugExists(ctx, candidate, movie.ID)
		})
		if err != nil {
			return fmt.Errorf("generate slug: %w", err)
		}
	}

	movie.Image, err = s.storeImage(ctx, movie.ID, "Image", req.Image, movie.Image)
	if err != nil {
		return err
	}
	movie.Landscape, err = s.storeImage(ctx, movie.ID, "Landscape", req.Landscape, movie.Landscape)
	if err != nil {
		return err
	}

	movie.Title = title
	movie.Director = strings.TrimSpace(req.Director)
	movie.Cast = req.Cast
	movie.Duration = req.Duration
	movie.Description = req.Description
	movie.Trailer = req.Trailer
	movie.ReleaseDate = releaseDate
	movie.CategoryIDs = categoryIDs
	return nil
}

// storeImage writes a data URI under images/<movieID><kind>.<ext> and returns
// the stored reference. A plain value is kept as given and an empty one keeps
// current.
func (s *movieService) storeImage(ctx context.Context, movieID uuid.UUID, kind, value string, current *string) (*string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return current, nil
	}

	uri, err := storage.DecodeDataURI(value)
	if errors.Is(err, storage.ErrNotDataURI) {
		return &value, nil
	}
	if err != nil {
		s.log.Warn("Invalid image", zap.Error(err), zap.String("movie_id", movieID.String()))
		return nil, fmt.Errorf("%s: %v: %w", strings.ToLower(kind), err, domain.ErrValidation)
	}

	name := fmt.Sprintf("images/%s%s.%s", movieID, kind, uri.Extension())
	ref, err := s.store.Put(ctx, name, uri.Data)
	if err != nil {
		s.log.Error("Failed to store image", zap.Error(err), zap.String("name", name))
		return nil, fmt.Errorf("store %s: %w", name, err)
	}
	return &ref, nil
}

func (s *movieService) findOne(ctx context.Context, movieID string, filter repository.MovieFilter) (*response.MovieResponse, error) {
	id, err := parseID(movieID, "movie id")
	if err != nil {
		return nil, err
	}

	filter.ID = &id
	movies, err := s.list(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, notFound("movie", id)
	}
	return &movies[0], nil
}

// list runs filter against one "now" snapshot and attaches categories.
func (s *movieService) list(ctx context.Context, filter repository.MovieFilter) ([]response.MovieResponse, error) {
	snap := domain.NewSnapshot(s.clock())
	filter.Today = snap.Today()
	filter.TimeOfDay = snap.TimeOfDay()

	movies, err := s.repo.Movie.FindViews(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}
	if len(movies) == 0 {
		return []response.MovieResponse{}, nil
	}

	ids := make([]uuid.UUID, len(movies))
	for i, movie := range movies {
		ids[i] = movie.ID
	}
	categories, err := s.repo.Category.FindByMovieIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get movie categories: %w", err)
	}
	for _, movie := range movies {
		movie.Categories = categories[movie.ID]
	}

	return response.MoviesToResponse(movies), nil
}
