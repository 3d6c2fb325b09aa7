package placestock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/placestock"
)

func Test_BuildCommand_RejectsInvalidInput(t *testing.T) {
	testCases := []struct {
		name     string
		bookID   string
		shelfID  string
		quantity int
	}{
		{name: "empty book id", bookID: "", shelfID: "A1", quantity: 1},
		{name: "empty shelf id", bookID: "book-1", shelfID: "", quantity: 1},
		{name: "zero quantity", bookID: "book-1", shelfID: "A1", quantity: 0},
		{name: "negative quantity", bookID: "book-1", shelfID: "A1", quantity: -3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := placestock.BuildCommand(tc.bookID, tc.shelfID, tc.quantity, time.Now())

			assert.ErrorIs(t, err, core.ErrInvalidArgument)
		})
	}
}

func Test_Decide_AlwaysPlacesTheCopies(t *testing.T) {
	// arrange
	now := time.Now()
	command, err := placestock.BuildCommand("book-1", "A1", 5, now)
	require.NoError(t, err)

	history := core.DomainEvents{
		core.BuildBookCopiesPlacedOnShelf("book-1", "A1", 2, now.Add(-time.Hour)),
	}

	// act
	result := placestock.Decide(history, command)

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 1)

	event, ok := result.Events[0].(core.BookCopiesPlacedOnShelf)
	require.True(t, ok, "expected a BookCopiesPlacedOnShelf event")
	assert.Equal(t, "book-1", event.BookID)
	assert.Equal(t, "A1", event.ShelfID)
	assert.Equal(t, 5, event.Quantity)
	assert.True(t, core.ToOccurredAt(now).Equal(event.OccurredAt))
}
