package repository

import (
	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/domain"
	"cinema-reservation/pkg/database"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	FindAll(ctx context.Context) ([]*entity.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// CountByIDs returns how many of ids name an existing category.
	CountByIDs(ctx context.Context, ids []uuid.UUID) (int, error)
	FindByMovieIDs(ctx context.Context, movieIDs []uuid.UUID) (map[uuid.UUID][]entity.Category, error)
}

type categoryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCategoryRepository(db database.PgxIface, log *zap.Logger) CategoryRepository {
	return &categoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "category")),
	}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	query := `INSERT INTO categories (id, name, created_at) VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, query, category.ID, category.Name, category.CreatedAt)
	if database.IsUniqueViolation(err, "categories_name_key") {
		return fmt.Errorf("category %q already exists: %w", category.Name, domain.ErrValidation)
	}
	if err != nil {
		r.log.Error("Failed to create category",
			zap.Error(err),
			zap.String("name", category.Name),
		)
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	query := `SELECT id, name, created_at FROM categories WHERE id = $1`

	var category entity.Category
	err := r.db.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find category by ID",
			zap.Error(err),
			zap.String("category_id", id.String()),
		)
		return nil, fmt.Errorf("find category by id: %w", err)
	}

	return &category, nil
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		r.log.Error("Failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		var category entity.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt); err != nil {
			r.log.Error("Failed to scan category row", zap.Error(err))
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, &category)
	}

	return categories, rows.Err()
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete category",
			zap.Error(err),
			zap.String("category_id", id.String()),
		)
		return fmt.Errorf("delete category %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *categoryRepository) CountByIDs(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE id = ANY($1)`, ids).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count categories", zap.Error(err))
		return 0, fmt.Errorf("count categories: %w", err)
	}

	return count, nil
}

func (r *categoryRepository) FindByMovieIDs(ctx context.Context, movieIDs []uuid.UUID) (map[uuid.UUID][]entity.Category, error) {
	result := make(map[uuid.UUID][]entity.Category, len(movieIDs))
	if len(movieIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT mc.movie_id, c.id, c.name, c.created_at
		FROM categories c
		INNER JOIN movie_categories mc ON c.id = mc.category_id
		WHERE mc.movie_id = ANY($1)
		ORDER BY c.name
	`

	rows, err := r.db.Query(ctx, query, movieIDs)
	if err != nil {
		r.log.Error("Failed to find categories by movie IDs", zap.Error(err))
		return nil, fmt.Errorf("find categories by movie ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var movieID uuid.UUID
		var category entity.Category
		if err := rows.Scan(&movieID, &category.ID, &category.Name, &category.CreatedAt); err != nil {
			r.log.Error("Failed to scan category row", zap.Error(err))
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		result[movieID] = append(result[movieID], category)
	}

	return result, rows.Err()
}
