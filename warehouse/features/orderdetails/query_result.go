package orderdetails

import (
	"time"

	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
)

// OrderDetails is the full record of an order.
type OrderDetails struct {
	OrderID   core.OrderIDString
	Books     map[core.BookIDString]int
	Status    core.OrderStatus
	CreatedAt time.Time
}
