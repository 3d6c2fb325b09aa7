package findonshelf

import (
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
)

// ShelfStock is the count of the queried book on one shelf.
type ShelfStock struct {
	ShelfID core.ShelfIDString
	Count   int
}

// BookLocations lists the shelves with a positive count of the book. Shelves is never nil.
type BookLocations struct {
	BookID  core.BookIDString
	Shelves []ShelfStock
}
