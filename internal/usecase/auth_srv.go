package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/domain"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID       uuid.UUID
	SessionToken uuid.UUID
	IsAdmin      bool
}

// ClientInfo is recorded on the session created at login.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	SignUp(ctx context.Context, req *request.SignUpRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error)
	Logout(ctx context.Context, sessionToken uuid.UUID) error
	// Authenticate resolves a bearer token to its caller. The JWT must be
	// valid and its session neither expired nor revoked.
	Authenticate(ctx context.Context, token string) (*Principal, error)
}

type authService struct {
	repo   *repository.Repository // grouping userRepo & sessionRepo
	config *utils.Config
	clock  domain.Clock
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	clock domain.Clock,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		clock:  clock,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) SignUp(ctx context.Context, req *request.SignUpRequest) (*response.UserResponse, error) {
	// 1. Validasi input
	if err := validateRequest(s.log, "Sign up", req); err != nil {
		return nil, err
	}

	// 2. Cek email sudah terdaftar
	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		s.log.Warn("Email already registered", zap.String("email", req.Email))
		return nil, fmt.Errorf("%s: %w", req.Email, domain.ErrEmailTaken)
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. Simpan user
	now := s.clock()
	user := &entity.User{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        strings.TrimSpace(req.Email),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hashedPassword,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.UserToResponse(user, 0)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error) {
	// 1. Validasi
	if err := validateRequest(s.log, "Login", req); err != nil {
		return nil, err
	}

	// 2. Cari user by email
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	// 3. Cek password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	// 4. Buat session, token JWT membawa session token sebagai jti
	now := s.clock()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		Token:     utils.GenerateSessionToken(),
		UserAgent: optional(client.UserAgent),
		IPAddress: optional(client.IPAddress),
		ExpiresAt: now.Add(time.Duration(s.config.JWT.ExpiryHours) * time.Hour),
	}
	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, err := utils.GenerateToken(s.config.JWT.Secret, user.ID, session.Token, now, session.ExpiresAt)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &response.AuthResponse{
		Token:     token,
		Admin:     user.IsAdmin,
		UserID:    user.ID.String(),
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *authService) Logout(ctx context.Context, sessionToken uuid.UUID) error {
	if err := s.repo.Session.Revoke(ctx, sessionToken, s.clock()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("session already closed: %w", domain.ErrUnauthorized)
		}
		return fmt.Errorf("revoke session: %w", err)
	}

	s.log.Info("User logged out", zap.String("session", sessionToken.String()))
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*Principal, error) {
	userID, sessionToken, err := utils.ParseToken(s.config.JWT.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrUnauthorized)
	}

	session, err := s.repo.Session.FindValidSession(ctx, sessionToken, s.clock())
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session == nil || session.UserID != userID {
		return nil, fmt.Errorf("session expired or revoked: %w", domain.ErrUnauthorized)
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s no longer exists: %w", userID, domain.ErrUnauthorized)
	}

	return &Principal{
		UserID:       userID,
		SessionToken: sessionToken,
		IsAdmin:      user.IsAdmin,
	}, nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
