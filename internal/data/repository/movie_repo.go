package repository

import (
	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/domain"
	"cinema-reservation/pkg/database"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

// MovieFilter narrows a movie listing. Today and TimeOfDay are the request's
// "now" and decide the derived availability of every row.
type MovieFilter struct {
	Today     time.Time
	TimeOfDay time.Duration

	ID             *uuid.UUID
	Slug           *string
	Search         *string
	AvailableOnly  bool
	ComingSoonOnly bool
	// OrderByViewers sorts by seats reserved, most first, instead of by
	// release date.
	OrderByViewers bool
	Limit          int
}

// ResizeCheck decides whether the screenings of a movie whose duration
// changed still fit in their room. resized are the movie's screenings in one
// room on one date; sameDay is everything booked there that day, with the new
// duration applied.
type ResizeCheck func(resized, sameDay []domain.ScheduledInterval) error

type MovieRepository interface {
	// Create and Update also replace the movie's category links. When Update
	// changes the duration it locks every room showing the movie and runs
	// check per room and date before committing.
	Create(ctx context.Context, movie *entity.Movie) error
	Update(ctx context.Context, movie *entity.Movie, check ResizeCheck) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindViews(ctx context.Context, filter MovieFilter) ([]*entity.MovieView, error)
	SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (id, title, slug, director, "cast", duration, description,
		                   image, landscape, trailer, release_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query,
			movie.ID,
			movie.Title,
			movie.Slug,
			movie.Director,
			movie.Cast,
			movie.Duration,
			movie.Description,
			movie.Image,
			movie.Landscape,
			movie.Trailer,
			movie.ReleaseDate,
			movie.CreatedAt,
			movie.UpdatedAt,
		)
		if err != nil {
			return err
		}
		return replaceMovieCategories(ctx, tx, movie.ID, movie.CategoryIDs)
	})

	if database.IsUniqueViolation(err, "movies_slug_key") {
		return fmt.Errorf("movie slug %q already used: %w", movie.Slug, domain.ErrValidation)
	}
	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("failed to create movie: %w", err)
	}

	return nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie, check ResizeCheck) error {
	query := `
		UPDATE movies
		SET title = $2, slug = $3, director = $4, "cast" = $5, duration = $6,
		    description = $7, image = $8, landscape = $9, trailer = $10,
		    release_date = $11, updated_at = $12
		WHERE id = $1
	`

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var previousDuration int
		err := tx.QueryRow(ctx, `SELECT duration FROM movies WHERE id = $1 FOR UPDATE`, movie.ID).Scan(&previousDuration)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("movie %s: %w", movie.ID, domain.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("lock movie: %w", err)
		}

		result, err := tx.Exec(ctx, query,
			movie.ID,
			movie.Title,
			movie.Slug,
			movie.Director,
			movie.Cast,
			movie.Duration,
			movie.Description,
			movie.Image,
			movie.Landscape,
			movie.Trailer,
			movie.ReleaseDate,
			movie.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("movie %s: %w", movie.ID, domain.ErrNotFound)
		}
		if previousDuration != movie.Duration && check != nil {
			if err := recheckScreenings(ctx, tx, movie.ID, check); err != nil {
				return err
			}
		}
		return replaceMovieCategories(ctx, tx, movie.ID, movie.CategoryIDs)
	})

	if database.IsUniqueViolation(err, "movies_slug_key") {
		return fmt.Errorf("movie slug %q already used: %w", movie.Slug, domain.ErrValidation)
	}
	if errors.Is(err, domain.ErrSchedulingConflict) || errors.Is(err, domain.ErrNotFound) {
		r.log.Warn("Movie update rejected",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
			zap.Int("duration", movie.Duration),
		)
		return fmt.Errorf("update movie %s: %w", movie.ID, err)
	}
	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
		)
		return fmt.Errorf("failed to update movie: %w", err)
	}

	return nil
}

// recheckScreenings runs after the new duration is written in tx, so the
// same-day queries already see it.
func recheckScreenings(ctx context.Context, tx pgx.Tx, movieID uuid.UUID, check ResizeCheck) error {
	type roomDay struct {
		roomID uuid.UUID
		date   time.Time
	}

	rows, err := tx.Query(ctx, `
		SELECT DISTINCT room_id, date FROM screenings WHERE movie_id = $1 ORDER BY room_id, date
	`, movieID)
	if err != nil {
		return fmt.Errorf("find rooms showing movie: %w", err)
	}
	var days []roomDay
	var roomIDs []uuid.UUID
	for rows.Next() {
		var day roomDay
		if err := rows.Scan(&day.roomID, &day.date); err != nil {
			rows.Close()
			return fmt.Errorf("scan room showing movie: %w", err)
		}
		if len(roomIDs) == 0 || roomIDs[len(roomIDs)-1] != day.roomID {
			roomIDs = append(roomIDs, day.roomID)
		}
		days = append(days, day)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate rooms showing movie: %w", err)
	}
	if len(days) == 0 {
		return nil
	}

	if err := lockRooms(ctx, tx, roomIDs); err != nil {
		return err
	}

	for _, day := range days {
		screenings, err := screeningsOfDay(ctx, tx, day.roomID, day.date)
		if err != nil {
			return err
		}
		var resized, sameDay []domain.ScheduledInterval
		for _, screening := range screenings {
			sameDay = append(sameDay, screening.ScheduledInterval)
			if screening.MovieID == movieID {
				resized = append(resized, screening.ScheduledInterval)
			}
		}
		if err := check(resized, sameDay); err != nil {
			return fmt.Errorf("room %s on %s: %w", day.roomID, day.date.Format(domain.DateLayout), err)
		}
	}
	return nil
}

func replaceMovieCategories(ctx context.Context, tx pgx.Tx, movieID uuid.UUID, categoryIDs []uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM movie_categories WHERE movie_id = $1`, movieID); err != nil {
		return fmt.Errorf("clear movie categories: %w", err)
	}
	if len(categoryIDs) == 0 {
		return nil
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO movie_categories (movie_id, category_id)
		SELECT $1, UNNEST($2::uuid[])
		ON CONFLICT DO NOTHING
	`, movieID, categoryIDs)
	if err != nil {
		return fmt.Errorf("link movie categories: %w", err)
	}
	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %s: %w", id, domain.ErrNotFound)
	}

	r.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}

const movieColumns = `
	m.id, m.title, m.slug, m.director, m."cast", m.duration, m.description,
	m.image, m.landscape, m.trailer, m.release_date, m.created_at, m.updated_at
`

func scanMovie(row rowScanner, movie *entity.Movie, extra ...any) error {
	dest := []any{
		&movie.ID,
		&movie.Title,
		&movie.Slug,
		&movie.Director,
		&movie.Cast,
		&movie.Duration,
		&movie.Description,
		&movie.Image,
		&movie.Landscape,
		&movie.Trailer,
		&movie.ReleaseDate,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies m WHERE m.id = $1`

	var movie entity.Movie
	err := scanMovie(r.db.QueryRow(ctx, query, id), &movie)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	rows, err := r.db.Query(ctx, `SELECT category_id FROM movie_categories WHERE movie_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find movie categories: %w", err)
	}
	movie.CategoryIDs, err = pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("failed to scan movie categories: %w", err)
	}

	return &movie, nil
}

// availableScreening is true for a screening of m that is not in the past
// relative to $1 (today) and $2 (time of day).
const availableScreening = `
	EXISTS (
		SELECT 1 FROM screenings s
		WHERE s.movie_id = m.id
		  AND (s.date > $1 OR (s.date = $1 AND s.time >= $2))
	)
`

func (r *movieRepository) FindViews(ctx context.Context, filter MovieFilter) ([]*entity.MovieView, error) {
	// Build query dengan optional filter
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + movieColumns + `,` + availableScreening + ` AS available,
		(SELECT COUNT(*) FROM seats_reserved sr
		 INNER JOIN screenings s ON s.id = sr.screening_id
		 WHERE s.movie_id = m.id) AS viewers
		FROM movies m
		WHERE TRUE
	`)

	args := []any{filter.Today, clockParam(filter.TimeOfDay)}
	argCount := 3

	if filter.ID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND m.id = $%d", argCount))
		args = append(args, *filter.ID)
		argCount++
	}
	if filter.Slug != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND m.slug = $%d", argCount))
		args = append(args, *filter.Slug)
		argCount++
	}
	if filter.Search != nil && *filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			` AND (m.title ILIKE $%[1]d OR m.director ILIKE $%[1]d OR m."cast" ILIKE $%[1]d)`, argCount))
		args = append(args, containsPattern(*filter.Search))
		argCount++
	}
	if filter.AvailableOnly {
		queryBuilder.WriteString(" AND " + availableScreening)
	}
	if filter.ComingSoonOnly {
		queryBuilder.WriteString(" AND m.release_date > $1")
	}

	if filter.OrderByViewers {
		queryBuilder.WriteString(" ORDER BY viewers DESC, m.title")
	} else {
		queryBuilder.WriteString(" ORDER BY m.release_date DESC, m.title")
	}
	if filter.Limit > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find movies",
			zap.Error(err),
			zap.Bool("available_only", filter.AvailableOnly),
			zap.Bool("coming_soon_only", filter.ComingSoonOnly),
			zap.Stringp("search", filter.Search),
		)
		return nil, fmt.Errorf("failed to find movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.MovieView
	for rows.Next() {
		var movie entity.MovieView
		if err := scanMovie(rows, &movie.Movie, &movie.Available, &movie.Viewers); err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, &movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	r.log.Debug("Movies found", zap.Int("count", len(movies)))

	return movies, nil
}

func (r *movieRepository) SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM movies WHERE slug = $1 AND id <> $2)`,
		slug, exclude,
	).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check movie slug", zap.Error(err), zap.String("slug", slug))
		return false, fmt.Errorf("check movie slug: %w", err)
	}
	return exists, nil
}

// clockParam encodes an offset from midnight as a TIME parameter.
func clockParam(d time.Duration) pgtype.Time {
	return pgtype.Time{Microseconds: d.Microseconds(), Valid: true}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns a search term into an ILIKE substring pattern. The
// term's own wildcards match literally.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
