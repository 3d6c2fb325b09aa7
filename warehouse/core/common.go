package core

import (
	"time"
)

// BookIDString identifies a book of the catalog.
type BookIDString = string

// ShelfIDString identifies a physical shelf, it is opaque to the warehouse.
type ShelfIDString = string

// OrderIDString is the decimal string of an increasing integer sequence: "1", "2", ...
type OrderIDString = string

// EventTypeString is the name under which an event is stored.
type EventTypeString = string

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

// ToOccurredAt normalizes a time to UTC with microsecond precision, which is what PostgreSQL stores.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}
