package orderdetails_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/orderdetails"
)

func Test_Project(t *testing.T) {
	placedAt := time.Unix(1000, 0).UTC()
	placed := core.BuildOrderPlaced("1", map[string]int{"book-1": 2}, placedAt)

	testCases := []struct {
		name           string
		history        core.DomainEvents
		expectedStatus string
	}{
		{
			name:           "pending order",
			history:        core.DomainEvents{placed},
			expectedStatus: core.OrderStatusPending,
		},
		{
			name:           "fulfilled order",
			history:        core.DomainEvents{placed, core.BuildOrderFulfilled("1", nil, placedAt.Add(time.Hour))},
			expectedStatus: core.OrderStatusFulfilled,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result, err := orderdetails.Project(tc.history, buildQuery(t, "1"))

			// assert
			require.NoError(t, err)
			assert.Equal(t, "1", result.OrderID)
			assert.Equal(t, map[string]int{"book-1": 2}, result.Books)
			assert.Equal(t, tc.expectedStatus, result.Status)
			assert.True(t, placedAt.Equal(result.CreatedAt))
		})
	}
}

func Test_Project_Error_UnknownOrder(t *testing.T) {
	// act
	_, err := orderdetails.Project(core.DomainEvents{}, buildQuery(t, "7"))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func buildQuery(t *testing.T, orderID string) orderdetails.Query {
	t.Helper()

	query, err := orderdetails.BuildQuery(orderID)
	require.NoError(t, err)

	return query
}
