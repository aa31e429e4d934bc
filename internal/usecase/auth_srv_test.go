package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinema-reservation/internal/domain"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

func newTestAuthService(db *fakeDB, now time.Time) AuthService {
	config := &utils.Config{JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1}}
	return NewAuthService(db.repository(), config, fixedClock(now), zap.NewNop())
}

func TestAuthFlow(t *testing.T) {
	db := newFakeDB()
	svc := newTestAuthService(db, time.Now())
	ctx := context.Background()

	user, err := svc.SignUp(ctx, &request.SignUpRequest{
		Email:     "ana@example.com",
		Password:  "rahasia123",
		FirstName: "Ana",
	})
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	if _, err := svc.SignUp(ctx, &request.SignUpRequest{Email: "ANA@example.com", Password: "another1"}); !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("SignUp(duplicate) error = %v, want ErrEmailTaken", err)
	}

	if _, err := svc.Login(ctx, &request.LoginRequest{Email: "ana@example.com", Password: "salah"}, ClientInfo{}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Login(wrong password) error = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.Login(ctx, &request.LoginRequest{Email: "nobody@example.com", Password: "rahasia123"}, ClientInfo{}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Login(unknown email) error = %v, want ErrUnauthorized", err)
	}

	auth, err := svc.Login(ctx, &request.LoginRequest{Email: "ana@example.com", Password: "rahasia123"}, ClientInfo{UserAgent: "test"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if auth.UserID != user.ID || auth.Admin {
		t.Errorf("Login() = %+v, want user %s without admin", auth, user.ID)
	}

	principal, err := svc.Authenticate(ctx, auth.Token)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if principal.UserID.String() != user.ID {
		t.Errorf("Authenticate() user = %s, want %s", principal.UserID, user.ID)
	}

	if err := svc.Logout(ctx, principal.SessionToken); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := svc.Authenticate(ctx, auth.Token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Authenticate() after logout error = %v, want ErrUnauthorized", err)
	}
	if err := svc.Logout(ctx, principal.SessionToken); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Logout() twice error = %v, want ErrUnauthorized", err)
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	db := newFakeDB()
	now := time.Now()
	svc := newTestAuthService(db, now)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, &request.SignUpRequest{Email: "budi@example.com", Password: "rahasia123"}); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	auth, err := svc.Login(ctx, &request.LoginRequest{Email: "budi@example.com", Password: "rahasia123"}, ClientInfo{})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	principal, err := svc.Authenticate(ctx, auth.Token)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}

	forged, err := utils.GenerateToken("other-secret", principal.UserID, principal.SessionToken, now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	unknownSession, err := utils.GenerateToken("test-secret", principal.UserID, utils.GenerateSessionToken(), now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"wrong signature", forged},
		{"unknown session", unknownSession},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Authenticate(ctx, tt.token); !errors.Is(err, domain.ErrUnauthorized) {
				t.Errorf("Authenticate() error = %v, want ErrUnauthorized", err)
			}
		})
	}

	// Sesi kedaluwarsa setelah JWT_EXPIRY_HOURS
	later := newTestAuthService(db, now.Add(2*time.Hour))
	if _, err := later.Authenticate(ctx, auth.Token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Authenticate() after expiry error = %v, want ErrUnauthorized", err)
	}
}
