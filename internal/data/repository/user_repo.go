package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/domain"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.UserWithReservations, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindAll returns every account, staff and admins included.
	FindAll(ctx context.Context) ([]*entity.UserWithReservations, error)
	// FindCustomers returns accounts that are neither staff nor admin.
	FindCustomers(ctx context.Context) ([]*entity.UserWithReservations, error)
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userWithReservationsColumns = `
	u.id, u.email, u.first_name, u.last_name, u.password, u.is_admin, u.is_staff,
	u.created_at, u.updated_at,
	(SELECT COUNT(*) FROM reservations r WHERE r.user_id = u.id) AS nb_reservations
`

func scanUserWithReservations(row rowScanner) (*entity.UserWithReservations, error) {
	var user entity.UserWithReservations
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.IsStaff,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.NbReservations,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user record into the database
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, first_name, last_name, password,
		                  is_admin, is_staff, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.IsAdmin,
		user.IsStaff,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if database.IsUniqueViolation(err, "users_email_key") {
		return fmt.Errorf("create user %s: %w", user.Email, domain.ErrEmailTaken)
	}
	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.UserWithReservations, error) {
	query := `SELECT ` + userWithReservationsColumns + ` FROM users u WHERE u.id = $1`

	user, err := scanUserWithReservations(ur.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, email, first_name, last_name, password, is_admin, is_staff,
		       created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`

	var user entity.User
	err := ur.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.IsStaff,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return &user, nil
}

func (ur *userRepository) FindAll(ctx context.Context) ([]*entity.UserWithReservations, error) {
	return ur.findUsers(ctx, `SELECT `+userWithReservationsColumns+` FROM users u ORDER BY u.created_at`)
}

func (ur *userRepository) FindCustomers(ctx context.Context) ([]*entity.UserWithReservations, error) {
	return ur.findUsers(ctx, `
		SELECT `+userWithReservationsColumns+`
		FROM users u
		WHERE u.is_staff = FALSE AND u.is_admin = FALSE
		ORDER BY u.created_at
	`)
}

func (ur *userRepository) findUsers(ctx context.Context, query string, args ...any) ([]*entity.UserWithReservations, error) {
	rows, err := ur.db.Query(ctx, query, args...)
	if err != nil {
		ur.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close() // IMPORTANT: Close rows to release database connection

	var users []*entity.UserWithReservations
	for rows.Next() {
		user, err := scanUserWithReservations(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}
