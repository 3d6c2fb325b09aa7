package pendingorders

import (
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
)

// PendingOrder is one item of the fulfillment queue.
type PendingOrder struct {
	OrderID core.OrderIDString
	Books   map[core.BookIDString]int
}

// PendingOrders is the fulfillment queue, oldest order first.
type PendingOrders struct {
	Orders []PendingOrder
	Count  int
}
