package usecase

import (
	"fmt"

	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/domain"
	"cinema-reservation/internal/event"
	"cinema-reservation/pkg/storage"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	User        UserService
	Category    CategoryService
	Movie       MovieService
	Room        RoomService
	Screening   ScreeningService
	Reservation ReservationService
	Report      ReportService
}

// Deps groups the collaborators shared by every service.
type Deps struct {
	Repo      *repository.Repository
	Config    *utils.Config
	Store     storage.Store
	Publisher event.Publisher
	Clock     domain.Clock
	Log       *zap.Logger
}

func NewService(deps Deps) *Service {
	if deps.Clock == nil {
		deps.Clock = domain.NewClock(deps.Config.App.Location())
	}
	if deps.Publisher == nil {
		deps.Publisher = event.NopPublisher{}
	}

	return &Service{
		Auth:        NewAuthService(deps.Repo, deps.Config, deps.Clock, deps.Log),
		User:        NewUserService(deps.Repo, deps.Log),
		Category:    NewCategoryService(deps.Repo, deps.Clock, deps.Log),
		Movie:       NewMovieService(deps.Repo, deps.Store, deps.Clock, deps.Log),
		Room:        NewRoomService(deps.Repo, deps.Clock, deps.Log),
		Screening:   NewScreeningService(deps.Repo, deps.Clock, deps.Log),
		Reservation: NewReservationService(deps.Repo, deps.Publisher, deps.Clock, deps.Log),
		Report:      NewReportService(deps.Repo, deps.Clock, deps.Log),
	}
}

// validateRequest runs the validator tags of req and folds the failures into
// one ErrValidation.
func validateRequest(log *zap.Logger, operation string, req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		log.Warn(operation+" validation failed", zap.Any("errors", errs))
		return fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), domain.ErrValidation)
	}
	return nil
}

func parseID(value, field string) (uuid.UUID, error) {
	id, err := utils.ParseUUID(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q: %w", field, value, domain.ErrValidation)
	}
	return id, nil
}

func parseIDs(values []string, field string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		id, err := parseID(value, field)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func notFound(kind string, id uuid.UUID) error {
	return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
}
