package notifier

import (
	"context"

	"github.com/google/uuid"
)

type EventType string

const (
	EventOrderCreated      EventType = "order_created"
	EventOrderAssigned     EventType = "order_assigned"
	EventOrderCompleted    EventType = "order_completed"
	EventReadingOutOfRange EventType = "reading_out_of_range"
)

// Event is the single message shape pushed to the notification channel.
// Recipients carry user ids; fan-out to devices happens downstream.
type Event struct {
	Type         EventType   `json:"type"`
	OrderID      *uuid.UUID  `json:"order_id,omitempty"`
	LogbookID    *uuid.UUID  `json:"logbook_id,omitempty"`
	Title        string      `json:"title,omitempty"`
	ExecutorName string      `json:"executor_name,omitempty"`
	Value        *float64    `json:"value,omitempty"`
	Recipients   []uuid.UUID `json:"recipients"`
}

// Notifier delivers fire-and-forget alerts. Implementations must never
// return delivery failures to the caller; a lifecycle transition is not
// allowed to fail because a push did not go out.
type Notifier interface {
	Publish(ctx context.Context, event Event)
}

// Nop is used when no broker is configured (local development).
type Nop struct{}

func (Nop) Publish(ctx context.Context, event Event) {}
