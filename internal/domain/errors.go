package domain

import "errors"

// Error kinds shared by repositories, services and handlers. Wrap them with
// fmt.Errorf("...: %w", ErrX) and test with errors.Is.
var (
	ErrValidation          = errors.New("validation failed")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrSchedulingConflict  = errors.New("scheduling conflict")
	ErrSeatAlreadyReserved = errors.New("seat already reserved")
	ErrEmailTaken          = errors.New("email already registered")
	ErrHasReservations     = errors.New("screening has reservations")
)
