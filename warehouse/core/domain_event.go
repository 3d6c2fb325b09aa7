package core

import (
	"time"
)

// DomainEvents is a slice of DomainEvent instances in the order they were appended.
type DomainEvents = []DomainEvent

// DomainEvent is a business event of the warehouse.
type DomainEvent interface {
	// EventType returns the string identifier for this event type.
	EventType() EventTypeString

	// HasOccurredAt returns when this event occurred.
	HasOccurredAt() time.Time

	// IsErrorEvent returns true if this event records a rejected command.
	IsErrorEvent() bool
}
