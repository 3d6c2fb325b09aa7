package orderdetails

import (
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
)

const (
	queryType = "OrderDetails"
)

// Query represents the intent to look up one order.
type Query struct {
	OrderID core.OrderIDString
}

// BuildQuery creates a new Query with the provided order ID.
func BuildQuery(orderID core.OrderIDString) (Query, error) {
	if orderID == "" {
		return Query{}, core.InvalidArgument("order id must not be empty")
	}

	return Query{OrderID: orderID}, nil
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
