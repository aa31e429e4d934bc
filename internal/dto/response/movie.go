package response

import (
	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/domain"
)

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MovieResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Slug        string             `json:"slug"`
	Director    string             `json:"director"`
	Cast        *string            `json:"cast"`
	Duration    int                `json:"duration"`
	Description *string            `json:"description"`
	Image       *string            `json:"image"`
	Landscape   *string            `json:"landscape"`
	Trailer     *string            `json:"trailer"`
	ReleaseDate string             `json:"releaseDate"`
	Status      string             `json:"status"`
	Viewers     int                `json:"viewers"`
	Categories  []CategoryResponse `json:"categories"`
}

// Helper converters
func CategoryToResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:   category.ID.String(),
		Name: category.Name,
	}
}

func CategoriesToResponse(categories []*entity.Category) []CategoryResponse {
	result := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		result[i] = CategoryToResponse(category)
	}
	return result
}

func MovieToResponse(movie *entity.MovieView) MovieResponse {
	categories := make([]CategoryResponse, len(movie.Categories))
	for i := range movie.Categories {
		categories[i] = CategoryToResponse(&movie.Categories[i])
	}

	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Slug:        movie.Slug,
		Director:    movie.Director,
		Cast:        movie.Cast,
		Duration:    movie.Duration,
		Description: movie.Description,
		Image:       movie.Image,
		Landscape:   movie.Landscape,
		Trailer:     movie.Trailer,
		ReleaseDate: movie.ReleaseDate.Format(domain.DateLayout),
		Status:      domain.Status(movie.Available),
		Viewers:     movie.Viewers,
		Categories:  categories,
	}
}

func MoviesToResponse(movies []*entity.MovieView) []MovieResponse {
	result := make([]MovieResponse, len(movies))
	for i, movie := range movies {
		result[i] = MovieToResponse(movie)
	}
	return result
}
