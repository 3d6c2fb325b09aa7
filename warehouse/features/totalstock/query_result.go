package totalstock

import (
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
)

// TotalStock is the sum of the counts of all shelves holding the book.
type TotalStock struct {
	BookID core.BookIDString
	Stock  int
}
