package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/domain"

	"github.com/google/uuid"
)

// fakeDB is an in-memory stand-in for the database behind every repository.
// The seat claims honour the same (screening, seat) uniqueness as the
// seats_reserved table.
type fakeDB struct {
	mu           sync.Mutex
	users        map[uuid.UUID]*entity.User
	sessions     map[uuid.UUID]*entity.Session
	categories   []*entity.Category
	movies       map[uuid.UUID]*entity.Movie
	rooms        map[uuid.UUID]*entity.Room
	seats        []*entity.Seat
	screenings   map[uuid.UUID]*entity.Screening
	reservations map[uuid.UUID]*entity.Reservation
	claims       []entity.SeatReserved
	seatRows     []entity.CategorySeats
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:        map[uuid.UUID]*entity.User{},
		sessions:     map[uuid.UUID]*entity.Session{},
		movies:       map[uuid.UUID]*entity.Movie{},
		rooms:        map[uuid.UUID]*entity.Room{},
		screenings:   map[uuid.UUID]*entity.Screening{},
		reservations: map[uuid.UUID]*entity.Reservation{},
	}
}

func (db *fakeDB) repository() *repository.Repository {
	return &repository.Repository{
		User:        fakeUserRepo{db},
		Session:     fakeSessionRepo{db},
		Category:    fakeCategoryRepo{db},
		Movie:       fakeMovieRepo{db},
		Room:        fakeRoomRepo{db},
		Seat:        fakeSeatRepo{db},
		Screening:   fakeScreeningRepo{db},
		Reservation: fakeReservationRepo{db},
		Report:      fakeReportRepo{db},
	}
}

func fixedClock(now time.Time) domain.Clock {
	return func() time.Time { return now }
}

type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	events []any
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	p.events = append(p.events, payload)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

// ==================== USER & SESSION ====================

type fakeUserRepo struct{ db *fakeDB }

func (r fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, other := range r.db.users {
		if strings.EqualFold(other.Email, user.Email) {
			return domain.ErrEmailTaken
		}
	}
	copied := *user
	r.db.users[user.ID] = &copied
	return nil
}

func (r fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.UserWithReservations, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	user, ok := r.db.users[id]
	if !ok {
		return nil, nil
	}
	return r.db.withReservations(user), nil
}

func (r fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, user := range r.db.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r fakeUserRepo) FindAll(_ context.Context) ([]*entity.UserWithReservations, error) {
	return r.find(func(*entity.User) bool { return true }), nil
}

func (r fakeUserRepo) FindCustomers(_ context.Context) ([]*entity.UserWithReservations, error) {
	return r.find(func(u *entity.User) bool { return !u.IsAdmin && !u.IsStaff }), nil
}

func (r fakeUserRepo) find(keep func(*entity.User) bool) []*entity.UserWithReservations {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var result []*entity.UserWithReservations
	for _, user := range r.db.users {
		if keep(user) {
			result = append(result, r.db.withReservations(user))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Email < result[j].Email })
	return result
}

func (db *fakeDB) withReservations(user *entity.User) *entity.UserWithReservations {
	count := 0
	for _, reservation := range db.reservations {
		if reservation.UserID == user.ID {
			count++
		}
	}
	return &entity.UserWithReservations{User: *user, NbReservations: count}
}

type fakeSessionRepo struct{ db *fakeDB }

func (r fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	copied := *session
	r.db.sessions[session.Token] = &copied
	return nil
}

func (r fakeSessionRepo) FindValidSession(_ context.Context, token uuid.UUID, now time.Time) (*entity.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	session, ok := r.db.sessions[token]
	if !ok || !session.Active(now) {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (r fakeSessionRepo) Revoke(_ context.Context, token uuid.UUID, now time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	session, ok := r.db.sessions[token]
	if !ok || session.RevokedAt != nil {
		return domain.ErrNotFound
	}
	session.RevokedAt = &now
	return nil
}

func (r fakeSessionRepo) RevokeAllUserSessions(_ context.Context, userID uuid.UUID, now time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, session := range r.db.sessions {
		if session.UserID == userID && session.RevokedAt == nil {
			session.RevokedAt = &now
		}
	}
	return nil
}

func (r fakeSessionRepo) CleanExpiredSessions(context.Context, time.Time) (int64, error) {
	return 0, nil
}

// ==================== CATALOGUE ====================

type fakeCategoryRepo struct{ db *fakeDB }

func (r fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	copied := *category
	r.db.categories = append(r.db.categories, &copied)
	return nil
}

func (r fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, category := range r.db.categories {
		if category.ID == id {
			return category, nil
		}
	}
	return nil, nil
}

func (r fakeCategoryRepo) FindAll(_ context.Context) ([]*entity.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return append([]*entity.Category(nil), r.db.categories...), nil
}

func (r fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, category := range r.db.categories {
		if category.ID == id {
			r.db.categories = append(r.db.categories[:i], r.db.categories[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r fakeCategoryRepo) CountByIDs(_ context.Context, ids []uuid.UUID) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	count := 0
	for _, id := range ids {
		for _, category := range r.db.categories {
			if category.ID == id {
				count++
			}
		}
	}
	return count, nil
}

func (r fakeCategoryRepo) FindByMovieIDs(_ context.Context, movieIDs []uuid.UUID) (map[uuid.UUID][]entity.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	result := map[uuid.UUID][]entity.Category{}
	for _, movieID := range movieIDs {
		movie, ok := r.db.movies[movieID]
		if !ok {
			continue
		}
		for _, categoryID := range movie.CategoryIDs {
			for _, category := range r.db.categories {
				if category.ID == categoryID {
					result[movieID] = append(result[movieID], *category)
				}
			}
		}
	}
	return result, nil
}

type fakeMovieRepo struct{ db *fakeDB }

func (r fakeMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	copied := *movie
	r.db.movies[movie.ID] = &copied
	return nil
}

func (r fakeMovieRepo) Update(_ context.Context, movie *entity.Movie, check repository.ResizeCheck) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stored, ok := r.db.movies[movie.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Duration != movie.Duration && check != nil {
		if err := r.recheck(movie, check); err != nil {
			return err
		}
	}
	copied := *movie
	r.db.movies[movie.ID] = &copied
	return nil
}

// recheck runs check per room and date showing the movie, as if its new
// duration were already stored.
func (r fakeMovieRepo) recheck(movie *entity.Movie, check repository.ResizeCheck) error {
	duration := func(movieID uuid.UUID) int {
		if movieID == movie.ID {
			return movie.Duration
		}
		return r.db.movies[movieID].Duration
	}

	for _, shown := range r.db.screenings {
		if shown.MovieID != movie.ID {
			continue
		}
		var resized, sameDay []domain.ScheduledInterval
		for _, other := range r.db.screenings {
			if other.RoomID != shown.RoomID || !other.Date.Equal(shown.Date) {
				continue
			}
			interval := domain.ScheduledInterval{
				ScreeningID: other.ID,
				Interval:    domain.NewInterval(other.Time, duration(other.MovieID)),
			}
			sameDay = append(sameDay, interval)
			if other.MovieID == movie.ID {
				resized = append(resized, interval)
			}
		}
		if err := check(resized, sameDay); err != nil {
			return err
		}
	}
	return nil
}

func (r fakeMovieRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.movies[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.movies, id)
	return nil
}

func (r fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	movie, ok := r.db.movies[id]
	if !ok {
		return nil, nil
	}
	copied := *movie
	return &copied, nil
}

func (r fakeMovieRepo) FindViews(_ context.Context, filter repository.MovieFilter) ([]*entity.MovieView, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	snap := domain.NewSnapshot(filter.Today.Add(filter.TimeOfDay))

	var result []*entity.MovieView
	for _, movie := range r.db.movies {
		view := &entity.MovieView{Movie: *movie}
		for _, screening := range r.db.screenings {
			if screening.MovieID == movie.ID && snap.IsFutureOrNow(screening.Date, screening.Time) {
				view.Available = true
			}
		}
		for _, claim := range r.db.claims {
			if screening := r.db.screenings[claim.ScreeningID]; screening != nil && screening.MovieID == movie.ID {
				view.Viewers++
			}
		}

		switch {
		case filter.ID != nil && movie.ID != *filter.ID,
			filter.Slug != nil && movie.Slug != *filter.Slug,
			filter.Search != nil && !strings.Contains(strings.ToLower(movie.Title), strings.ToLower(*filter.Search)),
			filter.AvailableOnly && !view.Available,
			filter.ComingSoonOnly && !movie.ReleaseDate.After(filter.Today):
			continue
		}
		result = append(result, view)
	}

	sort.Slice(result, func(i, j int) bool {
		if filter.OrderByViewers && result[i].Viewers != result[j].Viewers {
			return result[i].Viewers > result[j].Viewers
		}
		return result[i].Title < result[j].Title
	})
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r fakeMovieRepo) SlugExists(_ context.Context, slug string, exclude uuid.UUID) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, movie := range r.db.movies {
		if movie.Slug == slug && movie.ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

// ==================== ROOMS & SEATS ====================

type fakeRoomRepo struct{ db *fakeDB }

func (r fakeRoomRepo) CreateWithSeats(_ context.Context, room *entity.Room, seats []entity.Seat) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	copied := *room
	r.db.rooms[room.ID] = &copied
	for i := range seats {
		seat := seats[i]
		r.db.seats = append(r.db.seats, &seat)
	}
	return nil
}

func (r fakeRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Room, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	room, ok := r.db.rooms[id]
	if !ok {
		return nil, nil
	}
	copied := *room
	return &copied, nil
}

func (r fakeRoomRepo) FindAll(_ context.Context) ([]*entity.Room, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var rooms []*entity.Room
	for _, room := range r.db.rooms {
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (r fakeRoomRepo) UpdateName(_ context.Context, room *entity.Room) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stored, ok := r.db.rooms[room.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Name = room.Name
	return nil
}

func (r fakeRoomRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.rooms[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.rooms, id)
	return nil
}

type fakeSeatRepo struct{ db *fakeDB }

func (r fakeSeatRepo) FindByRoomID(_ context.Context, roomID uuid.UUID) ([]*entity.Seat, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var seats []*entity.Seat
	for _, seat := range r.db.seats {
		if seat.RoomID == roomID {
			seats = append(seats, seat)
		}
	}
	return seats, nil
}

func (r fakeSeatRepo) FindForScreening(_ context.Context, screeningID uuid.UUID) ([]*entity.SeatAvailability, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	screening := r.db.screenings[screeningID]
	var result []*entity.SeatAvailability
	for _, seat := range r.db.seats {
		if seat.RoomID != screening.RoomID {
			continue
		}
		taken := false
		for _, claim := range r.db.claims {
			if claim.ScreeningID == screeningID && claim.SeatID == seat.ID {
				taken = true
			}
		}
		result = append(result, &entity.SeatAvailability{Seat: *seat, Taken: taken})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Row != result[j].Row {
			return result[i].Row < result[j].Row
		}
		return result[i].Number < result[j].Number
	})
	return result, nil
}

func (r fakeSeatRepo) FindByReservationIDs(_ context.Context, reservationIDs []uuid.UUID) (map[uuid.UUID][]entity.Seat, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.seatsByReservation(reservationIDs), nil
}

func (db *fakeDB) seatsByReservation(reservationIDs []uuid.UUID) map[uuid.UUID][]entity.Seat {
	result := map[uuid.UUID][]entity.Seat{}
	for _, id := range reservationIDs {
		for _, claim := range db.claims {
			if claim.ReservationID != id {
				continue
			}
			for _, seat := range db.seats {
				if seat.ID == claim.SeatID {
					result[id] = append(result[id], *seat)
				}
			}
		}
	}
	return result
}

// ==================== SCREENINGS ====================

type fakeScreeningRepo struct{ db *fakeDB }

func (r fakeScreeningRepo) Create(_ context.Context, screening *entity.Screening, check repository.ScheduleCheck) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.check(screening, check); err != nil {
		return err
	}
	copied := *screening
	r.db.screenings[screening.ID] = &copied
	return nil
}

func (r fakeScreeningRepo) Update(_ context.Context, screening *entity.Screening, check repository.ScheduleCheck) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stored, ok := r.db.screenings[screening.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.RoomID != screening.RoomID {
		for _, claim := range r.db.claims {
			if claim.ScreeningID == screening.ID {
				return fmt.Errorf("screening %s: %w", screening.ID, domain.ErrHasReservations)
			}
		}
	}
	if err := r.check(screening, check); err != nil {
		return err
	}
	createdAt := stored.CreatedAt
	*stored = *screening
	stored.CreatedAt = createdAt
	return nil
}

func (r fakeScreeningRepo) check(screening *entity.Screening, check repository.ScheduleCheck) error {
	if _, ok := r.db.rooms[screening.RoomID]; !ok {
		return fmt.Errorf("room %s: %w", screening.RoomID, domain.ErrNotFound)
	}
	movie, ok := r.db.movies[screening.MovieID]
	if !ok {
		return fmt.Errorf("movie %s: %w", screening.MovieID, domain.ErrNotFound)
	}

	var sameDay []domain.ScheduledInterval
	for _, other := range r.db.screenings {
		if other.RoomID == screening.RoomID && other.Date.Equal(screening.Date) {
			sameDay = append(sameDay, domain.ScheduledInterval{
				ScreeningID: other.ID,
				Interval:    domain.NewInterval(other.Time, r.db.movies[other.MovieID].Duration),
			})
		}
	}
	return check(movie.Duration, sameDay)
}

func (r fakeScreeningRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.screenings[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.screenings, id)
	return nil
}

func (r fakeScreeningRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.ScreeningView, error) {
	views, err := r.FindViews(ctx, repository.ScreeningFilter{ID: &id})
	if err != nil || len(views) == 0 {
		return nil, err
	}
	return views[0], nil
}

func (r fakeScreeningRepo) FindViews(_ context.Context, filter repository.ScreeningFilter) ([]*entity.ScreeningView, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	snap := domain.NewSnapshot(filter.Today.Add(filter.TimeOfDay))

	var result []*entity.ScreeningView
	for _, screening := range r.db.screenings {
		switch {
		case filter.ID != nil && screening.ID != *filter.ID,
			filter.MovieID != nil && screening.MovieID != *filter.MovieID,
			filter.AvailableOnly && !snap.IsFutureOrNow(screening.Date, screening.Time):
			continue
		}
		result = append(result, r.db.screeningView(screening))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].Time < result[j].Time
	})
	return result, nil
}

func (db *fakeDB) screeningView(screening *entity.Screening) *entity.ScreeningView {
	movie := db.movies[screening.MovieID]
	return &entity.ScreeningView{
		Screening:     *screening,
		MovieTitle:    movie.Title,
		MovieDuration: movie.Duration,
		RoomName:      db.rooms[screening.RoomID].Name,
	}
}

// ==================== RESERVATIONS ====================

type fakeReservationRepo struct{ db *fakeDB }

func (r fakeReservationRepo) CreateWithSeats(_ context.Context, reservation *entity.Reservation, claims []entity.SeatReserved) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	taken := map[[2]uuid.UUID]bool{}
	for _, claim := range r.db.claims {
		taken[[2]uuid.UUID{claim.ScreeningID, claim.SeatID}] = true
	}
	for _, claim := range claims {
		key := [2]uuid.UUID{claim.ScreeningID, claim.SeatID}
		if taken[key] {
			return fmt.Errorf("seat %s: %w", claim.SeatID, domain.ErrSeatAlreadyReserved)
		}
		taken[key] = true
	}

	copied := *reservation
	r.db.reservations[reservation.ID] = &copied
	r.db.claims = append(r.db.claims, claims...)
	return nil
}

func (r fakeReservationRepo) DeleteOwned(_ context.Context, id, userID uuid.UUID) (*entity.Reservation, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	reservation, ok := r.db.reservations[id]
	if !ok || reservation.UserID != userID {
		return nil, fmt.Errorf("reservation %s: %w", id, domain.ErrNotFound)
	}
	delete(r.db.reservations, id)

	kept := r.db.claims[:0]
	for _, claim := range r.db.claims {
		if claim.ReservationID != id {
			kept = append(kept, claim)
		}
	}
	r.db.claims = kept
	return reservation, nil
}

func (r fakeReservationRepo) FindViews(_ context.Context, filter repository.ReservationFilter) ([]*entity.ReservationView, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var result []*entity.ReservationView
	for _, reservation := range r.db.reservations {
		if filter.ID != nil && reservation.ID != *filter.ID ||
			filter.UserID != nil && reservation.UserID != *filter.UserID {
			continue
		}
		email := ""
		if user, ok := r.db.users[reservation.UserID]; ok {
			email = user.Email
		}
		result = append(result, &entity.ReservationView{
			Reservation: *reservation,
			Screening:   *r.db.screeningView(r.db.screenings[reservation.ScreeningID]),
			Seats:       r.db.seatsByReservation([]uuid.UUID{reservation.ID})[reservation.ID],
			UserEmail:   email,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

// ==================== REPORTS ====================

type fakeReportRepo struct{ db *fakeDB }

func (r fakeReportRepo) MoviesPerCategory(_ context.Context) ([]entity.NamedCount, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var result []entity.NamedCount
	for _, category := range r.db.categories {
		count := 0
		for _, movie := range r.db.movies {
			for _, id := range movie.CategoryIDs {
				if id == category.ID {
					count++
				}
			}
		}
		result = append(result, entity.NamedCount{Name: category.Name, Value: count})
	}
	return result, nil
}

func (r fakeReportRepo) CountCustomers(ctx context.Context) (int, error) {
	customers, err := fakeUserRepo(r).FindCustomers(ctx)
	return len(customers), err
}

func (r fakeReportRepo) ReservationTotals(_ context.Context) (*entity.ReservationTotals, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	totals := &entity.ReservationTotals{}
	for _, reservation := range r.db.reservations {
		totals.TotalNumber++
		totals.TotalIncome += reservation.Total
	}
	return totals, nil
}

func (r fakeReportRepo) LoyalClients(ctx context.Context, limit int) ([]*entity.UserWithReservations, error) {
	customers, err := fakeUserRepo(r).FindCustomers(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].NbReservations > customers[j].NbReservations
	})
	if len(customers) > limit {
		customers = customers[:limit]
	}
	return customers, nil
}

func (r fakeReportRepo) SeatsPerCategory(_ context.Context, from, to time.Time) ([]entity.CategorySeats, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var result []entity.CategorySeats
	for _, row := range r.db.seatRows {
		if !row.ReservedAt.Before(from) && row.ReservedAt.Before(to) {
			result = append(result, row)
		}
	}
	return result, nil
}
