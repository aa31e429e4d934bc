package usecase

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/domain"
	"cinema-reservation/internal/dto/response"

	"go.uber.org/zap"
)

const loyalClientsLimit = 3

// ReportService backs the admin dashboard.
type ReportService interface {
	MoviesPerCategory(ctx context.Context) ([]response.NamedValue, error)
	NumberOfUsers(ctx context.Context) (*response.TotalUsersResponse, error)
	ReservationTotals(ctx context.Context) (*response.ReservationTotalsResponse, error)
	LoyalClients(ctx context.Context) ([]response.UserResponse, error)
	// SeatsPerCategoryLastWeek returns, for every category, the seats
	// reserved on each of the seven days before today.
	SeatsPerCategoryLastWeek(ctx context.Context) ([]response.CategorySeries, error)
}

type reportService struct {
	repo  *repository.Repository
	clock domain.Clock
	log   *zap.Logger
}

func NewReportService(repo *repository.Repository, clock domain.Clock, log *zap.Logger) ReportService {
	return &reportService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "report")),
	}
}

func (s *reportService) MoviesPerCategory(ctx context.Context) ([]response.NamedValue, error) {
	counts, err := s.repo.Report.MoviesPerCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("count movies per category: %w", err)
	}

	result := make([]response.NamedValue, len(counts))
	for i, count := range counts {
		result[i] = response.NamedValue{Name: count.Name, Value: count.Value}
	}
	return result, nil
}

func (s *reportService) NumberOfUsers(ctx context.Context) (*response.TotalUsersResponse, error) {
	total, err := s.repo.Report.CountCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	return &response.TotalUsersResponse{Total: total}, nil
}

func (s *reportService) ReservationTotals(ctx context.Context) (*response.ReservationTotalsResponse, error) {
	totals, err := s.repo.Report.ReservationTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum reservations: %w", err)
	}
	return &response.ReservationTotalsResponse{
		TotalNumber: totals.TotalNumber,
		TotalIncome: totals.TotalIncome,
	}, nil
}

func (s *reportService) LoyalClients(ctx context.Context) ([]response.UserResponse, error) {
	users, err := s.repo.Report.LoyalClients(ctx, loyalClientsLimit)
	if err != nil {
		return nil, fmt.Errorf("get loyal clients: %w", err)
	}
	return response.UsersToResponse(users), nil
}

func (s *reportService) SeatsPerCategoryLastWeek(ctx context.Context) ([]response.CategorySeries, error) {
	snap := domain.NewSnapshot(s.clock())

	categories, err := s.repo.Category.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}

	rows, err := s.repo.Report.SeatsPerCategory(ctx, snap.Midnight(-7), snap.Midnight(0))
	if err != nil {
		return nil, fmt.Errorf("count seats per category: %w", err)
	}

	// Hari dihitung di zona waktu aplikasi, bukan UTC
	loc := snap.Now().Location()
	seats := make(map[string]map[string]int, len(categories))
	for _, row := range rows {
		day := row.ReservedAt.In(loc).Format(domain.DateLayout)
		if seats[row.Category] == nil {
			seats[row.Category] = make(map[string]int)
		}
		seats[row.Category][day] += row.Seats
	}

	days := snap.LastWeek()
	result := make([]response.CategorySeries, len(categories))
	for i, category := range categories {
		series := make([]response.NamedValue, len(days))
		for j, day := range days {
			name := day.Format(domain.DateLayout)
			series[j] = response.NamedValue{Name: name, Value: seats[category.Name][name]}
		}
		result[i] = response.CategorySeries{Name: category.Name, Series: series}
	}
	return result, nil
}
