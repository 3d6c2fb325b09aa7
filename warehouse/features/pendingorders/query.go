package pendingorders

const (
	queryType = "PendingOrders"
)

// Query represents the intent to list the pending orders.
type Query struct{}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
