package usecase

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	GetUserByID(ctx context.Context, userID string) (*response.UserResponse, error)
	// GetCustomers lists accounts that are neither staff nor admin.
	GetCustomers(ctx context.Context) ([]response.UserResponse, error)
	GetAllUsers(ctx context.Context) ([]response.UserResponse, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, notFound("user", userID)
	}

	resp := response.UserToResponse(&user.User, user.NbReservations)
	return &resp, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := parseID(userID, "user id")
	if err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, id)
}

func (s *userService) GetCustomers(ctx context.Context) ([]response.UserResponse, error) {
	users, err := s.repo.User.FindCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("get customers: %w", err)
	}
	return response.UsersToResponse(users), nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]response.UserResponse, error) {
	users, err := s.repo.User.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	return response.UsersToResponse(users), nil
}
