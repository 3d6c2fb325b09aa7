package placeorder_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/placeorder"
)

func Test_BuildCommand_SumsDuplicateBooks(t *testing.T) {
	// act
	command, err := placeorder.BuildCommand([]string{"book-1", "book-2", "book-1"}, time.Now())

	// assert
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"book-1": 2, "book-2": 1}, command.Books)
}

func Test_BuildCommand_RejectsInvalidInput(t *testing.T) {
	_, err := placeorder.BuildCommand(nil, time.Now())
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = placeorder.BuildCommand([]string{"book-1", ""}, time.Now())
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func Test_BuildCommandFromQuantities_KeepsTheQuantities(t *testing.T) {
	// arrange
	books := map[string]int{"book-1": 1_000_000_000, "book-2": 1}

	// act
	command, err := placeorder.BuildCommandFromQuantities(books, time.Now())
	books["book-2"] = 7

	// assert
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"book-1": 1_000_000_000, "book-2": 1}, command.Books)
}

func Test_BuildCommandFromQuantities_RejectsInvalidInput(t *testing.T) {
	testCases := []struct {
		name  string
		books map[string]int
	}{
		{name: "no books", books: nil},
		{name: "empty book id", books: map[string]int{"": 1}},
		{name: "zero quantity", books: map[string]int{"book-1": 0}},
		{name: "negative quantity", books: map[string]int{"book-1": 2, "book-2": -1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := placeorder.BuildCommandFromQuantities(tc.books, time.Now())
			assert.ErrorIs(t, err, core.ErrInvalidArgument)
		})
	}
}

func Test_Decide_AllocatesTheNextOrderID(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name       string
		history    core.DomainEvents
		expectedID string
	}{
		{
			name:       "first order",
			history:    core.DomainEvents{},
			expectedID: "1",
		},
		{
			name: "after two orders, one of them fulfilled",
			history: core.DomainEvents{
				core.BuildOrderPlaced("1", map[string]int{"book-1": 1}, now.Add(-2*time.Hour)),
				core.BuildOrderPlaced("2", map[string]int{"book-2": 1}, now.Add(-time.Hour)),
				core.BuildOrderFulfilled("1", nil, now.Add(-30*time.Minute)),
			},
			expectedID: "3",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command, err := placeorder.BuildCommand([]string{"book-9"}, now)
			require.NoError(t, err)

			// act
			result := placeorder.Decide(tc.history, command)

			// assert
			require.NoError(t, result.HasError())
			require.Len(t, result.Events, 1)

			event, ok := result.Events[0].(core.OrderPlaced)
			require.True(t, ok, "expected an OrderPlaced event")
			assert.Equal(t, tc.expectedID, event.OrderID)
			assert.Equal(t, map[string]int{"book-9": 1}, event.Books)
		})
	}
}
