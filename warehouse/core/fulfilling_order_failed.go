package core

import (
	"time"
)

// FulfillingOrderFailedEventType is the event type identifier.
const FulfillingOrderFailedEventType = "FulfillingOrderFailed"

// FulfillingOrderFailed records a rejected fulfillment. Nothing was taken from any shelf.
type FulfillingOrderFailed struct {
	OrderID     OrderIDString
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildFulfillingOrderFailed creates a new FulfillingOrderFailed event.
func BuildFulfillingOrderFailed(orderID OrderIDString, failureInfo string, occurredAt time.Time) FulfillingOrderFailed {
	return FulfillingOrderFailed{
		OrderID:     orderID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e FulfillingOrderFailed) EventType() EventTypeString {
	return FulfillingOrderFailedEventType
}

func (e FulfillingOrderFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e FulfillingOrderFailed) IsErrorEvent() bool {
	return true
}
