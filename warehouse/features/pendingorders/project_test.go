package pendingorders_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/pendingorders"
)

func Test_Project_ListsPendingOrdersOldestFirst(t *testing.T) {
	// arrange
	base := time.Unix(0, 0).UTC()
	history := core.DomainEvents{
		core.BuildOrderPlaced("1", map[string]int{"book-1": 1}, base.Add(3*time.Minute)),
		core.BuildOrderPlaced("2", map[string]int{"book-2": 2}, base.Add(time.Minute)),
		core.BuildOrderPlaced("3", map[string]int{"book-3": 1}, base.Add(2*time.Minute)),
		core.BuildOrderPlaced("4", map[string]int{"book-4": 1}, base.Add(time.Minute)),
		core.BuildOrderFulfilled("3", nil, base.Add(4*time.Minute)),
	}

	// act
	result := pendingorders.Project(history, pendingorders.BuildQuery())

	// assert
	assert.Equal(t, 3, result.Count)
	assert.Equal(
		t,
		[]pendingorders.PendingOrder{
			{OrderID: "2", Books: map[string]int{"book-2": 2}},
			{OrderID: "4", Books: map[string]int{"book-4": 1}},
			{OrderID: "1", Books: map[string]int{"book-1": 1}},
		},
		result.Orders,
	)
}

func Test_Project_ReturnsEmptyQueue(t *testing.T) {
	// arrange
	now := time.Now()
	history := core.DomainEvents{
		core.BuildOrderPlaced("1", map[string]int{"book-1": 1}, now),
		core.BuildOrderFulfilled("1", nil, now),
	}

	// act
	result := pendingorders.Project(history, pendingorders.BuildQuery())

	// assert
	assert.Equal(t, 0, result.Count)
	assert.NotNil(t, result.Orders)
	assert.Empty(t, result.Orders)
}
