package response

import (
	"time"

	"cinema-reservation/internal/data/entity"
)

type AuthResponse struct {
	Token     string    `json:"token"`
	Admin     bool      `json:"admin"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type UserResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	IsAdmin        bool      `json:"is_admin"`
	DateJoined     time.Time `json:"date_joined"`
	NbReservations int       `json:"nbReservations"`
}

// Helper converters
func UserToResponse(user *entity.User, nbReservations int) UserResponse {
	return UserResponse{
		ID:             user.ID.String(),
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		IsAdmin:        user.IsAdmin,
		DateJoined:     user.CreatedAt,
		NbReservations: nbReservations,
	}
}

func UsersToResponse(users []*entity.UserWithReservations) []UserResponse {
	result := make([]UserResponse, len(users))
	for i, user := range users {
		result[i] = UserToResponse(&user.User, user.NbReservations)
	}
	return result
}
