package core

import (
	"maps"
	"time"
)

// OrderStatus is "pending" or "fulfilled".
type OrderStatus = string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusFulfilled OrderStatus = "fulfilled"
)

// Order is the projection of the OrderPlaced and OrderFulfilled events of one order.
type Order struct {
	OrderID   OrderIDString
	Books     map[BookIDString]int
	Status    OrderStatus
	CreatedAt time.Time
}

// IsFulfilled reports whether the order reached its terminal state.
func (o Order) IsFulfilled() bool {
	return o.Status == OrderStatusFulfilled
}

// Orders is the projection of order events onto orders, keeping the order in which they were placed.
type Orders struct {
	byID    map[OrderIDString]Order
	orderOf []OrderIDString
}

// ProjectOrders replays the history, events other than OrderPlaced and OrderFulfilled are ignored.
// An OrderFulfilled without a preceding OrderPlaced is ignored as well.
func ProjectOrders(history DomainEvents) Orders {
	o := Orders{byID: make(map[OrderIDString]Order)}

	for _, event := range history {
		switch e := event.(type) {
		case OrderPlaced:
			if _, exists := o.byID[e.OrderID]; exists {
				continue
			}

			o.byID[e.OrderID] = Order{
				OrderID:   e.OrderID,
				Books:     maps.Clone(e.Books),
				Status:    OrderStatusPending,
				CreatedAt: e.OccurredAt,
			}
			o.orderOf = append(o.orderOf, e.OrderID)

		case OrderFulfilled:
			if order, exists := o.byID[e.OrderID]; exists {
				order.Status = OrderStatusFulfilled
				o.byID[e.OrderID] = order
			}
		}
	}

	return o
}

// Get returns the order and whether it exists.
func (o Orders) Get(orderID OrderIDString) (Order, bool) {
	order, exists := o.byID[orderID]

	return order, exists
}

// Count returns the number of placed orders.
func (o Orders) Count() int {
	return len(o.orderOf)
}

// InPlacementOrder returns all orders in the order they were placed.
func (o Orders) InPlacementOrder() []Order {
	all := make([]Order, 0, len(o.orderOf))

	for _, orderID := range o.orderOf {
		all = append(all, o.byID[orderID])
	}

	return all
}
