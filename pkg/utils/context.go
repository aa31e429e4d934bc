package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey  contextKey = "user_id"
	IsAdminKey contextKey = "is_admin"
	SessionKey contextKey = "session"
)

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// IsAdminFromContext reports the admin flag stored by the auth middleware.
func IsAdminFromContext(ctx context.Context) bool {
	admin, _ := ctx.Value(IsAdminKey).(bool)
	return admin
}

func SetUserContext(ctx context.Context, userID uuid.UUID, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	ctx = context.WithValue(ctx, IsAdminKey, isAdmin)
	return ctx
}

// GetSessionFromContext mendapatkan session token dari context
func GetSessionFromContext(ctx context.Context) (uuid.UUID, bool) {
	token, ok := ctx.Value(SessionKey).(uuid.UUID)
	return token, ok
}

// SetSessionContext menambahkan session token ke context
func SetSessionContext(ctx context.Context, token uuid.UUID) context.Context {
	return context.WithValue(ctx, SessionKey, token)
}
