package shell

import (
	"errors"

	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
)

// IsRejection reports whether err is a business rejection rather than a technical failure.
func IsRejection(err error) bool {
	return errors.Is(err, core.ErrInvalidArgument) ||
		errors.Is(err, core.ErrNotFound) ||
		errors.Is(err, core.ErrInsufficientStock) ||
		errors.Is(err, core.ErrAlreadyFulfilled) ||
		errors.Is(err, core.ErrBookNotFound)
}
