package repository

import (
	"context"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"go.uber.org/zap"
)

// ReportRepository holds the read-only aggregates behind the admin
// dashboards.
type ReportRepository interface {
	MoviesPerCategory(ctx context.Context) ([]entity.NamedCount, error)
	CountCustomers(ctx context.Context) (int, error)
	ReservationTotals(ctx context.Context) (*entity.ReservationTotals, error)
	LoyalClients(ctx context.Context, limit int) ([]*entity.UserWithReservations, error)
	// SeatsPerCategory returns, for every reservation created in [from, to),
	// how many seats it claimed per category of the reserved movie.
	SeatsPerCategory(ctx context.Context, from, to time.Time) ([]entity.CategorySeats, error)
}

type reportRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReportRepository(db database.PgxIface, log *zap.Logger) ReportRepository {
	return &reportRepository{
		db:  db,
		log: log.With(zap.String("repository", "report")),
	}
}

func (r *reportRepository) MoviesPerCategory(ctx context.Context) ([]entity.NamedCount, error) {
	query := `
		SELECT c.name, COUNT(mc.movie_id)
		FROM categories c
		LEFT JOIN movie_categories mc ON mc.category_id = c.id
		GROUP BY c.id, c.name
		ORDER BY c.name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to count movies per category", zap.Error(err))
		return nil, fmt.Errorf("count movies per category: %w", err)
	}
	defer rows.Close()

	var counts []entity.NamedCount
	for rows.Next() {
		var count entity.NamedCount
		if err := rows.Scan(&count.Name, &count.Value); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts = append(counts, count)
	}

	return counts, rows.Err()
}

func (r *reportRepository) CountCustomers(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM users WHERE is_staff = FALSE AND is_admin = FALSE`

	var count int
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Database error counting users", zap.Error(err))
		return 0, fmt.Errorf("count customers: %w", err)
	}

	return count, nil
}

func (r *reportRepository) ReservationTotals(ctx context.Context) (*entity.ReservationTotals, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(total), 0)::float8 FROM reservations`

	var totals entity.ReservationTotals
	if err := r.db.QueryRow(ctx, query).Scan(&totals.TotalNumber, &totals.TotalIncome); err != nil {
		r.log.Error("Failed to sum reservations", zap.Error(err))
		return nil, fmt.Errorf("sum reservations: %w", err)
	}

	return &totals, nil
}

func (r *reportRepository) LoyalClients(ctx context.Context, limit int) ([]*entity.UserWithReservations, error) {
	query := `
		SELECT ` + userWithReservationsColumns + `
		FROM users u
		WHERE u.is_staff = FALSE AND u.is_admin = FALSE
		ORDER BY nb_reservations DESC, u.email
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to find loyal clients", zap.Error(err))
		return nil, fmt.Errorf("find loyal clients: %w", err)
	}
	defer rows.Close()

	var users []*entity.UserWithReservations
	for rows.Next() {
		user, err := scanUserWithReservations(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loyal client: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *reportRepository) SeatsPerCategory(ctx context.Context, from, to time.Time) ([]entity.CategorySeats, error) {
	query := `
		SELECT c.name, r.created_at, COUNT(sr.id)
		FROM reservations r
		INNER JOIN seats_reserved sr ON sr.reservation_id = r.id
		INNER JOIN screenings s ON s.id = r.screening_id
		INNER JOIN movie_categories mc ON mc.movie_id = s.movie_id
		INNER JOIN categories c ON c.id = mc.category_id
		WHERE r.created_at >= $1 AND r.created_at < $2
		GROUP BY c.name, r.id, r.created_at
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		r.log.Error("Failed to count seats per category",
			zap.Error(err),
			zap.Time("from", from),
			zap.Time("to", to),
		)
		return nil, fmt.Errorf("count seats per category: %w", err)
	}
	defer rows.Close()

	var result []entity.CategorySeats
	for rows.Next() {
		var row entity.CategorySeats
		if err := rows.Scan(&row.Category, &row.ReservedAt, &row.Seats); err != nil {
			return nil, fmt.Errorf("scan seats per category: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}
