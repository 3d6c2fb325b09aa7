package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for empty ids and non-positive quantities.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned for unknown orders and for deductions from a shelf that never held the book.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientStock is matched by InsufficientStockError.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrAlreadyFulfilled is returned when an order is fulfilled a second time.
	ErrAlreadyFulfilled = errors.New("order already fulfilled")

	// ErrBookNotFound is matched by BookNotFoundError.
	ErrBookNotFound = errors.New("book not found")
)

// InsufficientStockError reports a deduction of more copies than a shelf holds.
type InsufficientStockError struct {
	BookID    BookIDString
	ShelfID   ShelfIDString
	Available int
	Requested int
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf(
		"%s: book %s on shelf %s, available: %d, requested: %d",
		ErrInsufficientStock, e.BookID, e.ShelfID, e.Available, e.Requested,
	)
}

func (e InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// BookNotFoundError reports a book that the catalog does not know, or could not check.
type BookNotFoundError struct {
	BookID BookIDString
	Cause  error
}

func (e BookNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", ErrBookNotFound, e.BookID, e.Cause)
	}

	return fmt.Sprintf("%s: %s", ErrBookNotFound, e.BookID)
}

func (e BookNotFoundError) Is(target error) bool {
	return target == ErrBookNotFound
}

func (e BookNotFoundError) Unwrap() error {
	return e.Cause
}

// InvalidArgument wraps ErrInvalidArgument with a reason.
func InvalidArgument(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, reason)
}
