package usecase

import (
	"context"
	"fmt"
	"strings"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/domain"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/utils"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

type CategoryService interface {
	GetCategories(ctx context.Context) ([]response.CategoryResponse, error)
	GetCategoryByID(ctx context.Context, categoryID string) (*response.CategoryResponse, error)
	CreateCategory(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

type categoryService struct {
	repo  *repository.Repository
	clock domain.Clock
	log   *zap.Logger
}

func NewCategoryService(repo *repository.Repository, clock domain.Clock, log *zap.Logger) CategoryService {
	return &categoryService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "category")),
	}
}

func (s *categoryService) GetCategories(ctx context.Context) ([]response.CategoryResponse, error) {
	categories, err := s.repo.Category.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	return response.CategoriesToResponse(categories), nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*response.CategoryResponse, error) {
	id, err := parseID(categoryID, "category id")
	if err != nil {
		return nil, err
	}

	category, err := s.repo.Category.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if category == nil {
		return nil, notFound("category", id)
	}

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error) {
	if err := validateRequest(s.log, "Create category", req); err != nil {
		return nil, err
	}

	var category entity.Category
	if err := copier.Copy(&category, req); err != nil {
		return nil, fmt.Errorf("copy category request: %w", err)
	}
	category.Name = strings.TrimSpace(category.Name)
	category.ID = utils.GenerateUUID()
	category.CreatedAt = s.clock()

	if err := s.repo.Category.Create(ctx, &category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("name", category.Name))

	resp := response.CategoryToResponse(&category)
	return &resp, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	id, err := parseID(categoryID, "category id")
	if err != nil {
		return err
	}

	if err := s.repo.Category.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	s.log.Info("Category deleted", zap.String("category_id", id.String()))
	return nil
}
