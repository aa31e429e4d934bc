// Package event publishes reservation lifecycle events to RabbitMQ once the
// corresponding transaction has committed. Publishing is best effort: callers
// log failures and carry on.
package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	ReservationCreated   = "reservation.created"
	ReservationCancelled = "reservation.cancelled"
)

// ReservationEvent is the JSON body of both reservation events.
type ReservationEvent struct {
	ReservationID uuid.UUID   `json:"reservationId"`
	UserID        uuid.UUID   `json:"userId"`
	ScreeningID   uuid.UUID   `json:"screeningId"`
	SeatIDs       []uuid.UUID `json:"seatIds,omitempty"`
	Total         float64     `json:"total"`
	OccurredAt    time.Time   `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }

func (NopPublisher) Close() error { return nil }
