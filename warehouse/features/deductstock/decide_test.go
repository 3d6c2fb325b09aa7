package deductstock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/deductstock"
)

func Test_Decide_Success_WhenEnoughCopiesAreOnTheShelf(t *testing.T) {
	// arrange
	now := time.Now()
	history := core.DomainEvents{
		givenCopiesPlaced(t, "book-1", "A1", 5, now.Add(-2*time.Hour)),
		givenCopiesTaken(t, "book-1", "A1", 2, now.Add(-time.Hour)),
	}

	command := buildCommand(t, "book-1", "A1", 3, now)

	// act
	result := deductstock.Decide(history, command)

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 1)

	event, ok := result.Events[0].(core.BookCopiesTakenFromShelf)
	require.True(t, ok, "expected a BookCopiesTakenFromShelf event")
	assert.Equal(t, "book-1", event.BookID)
	assert.Equal(t, "A1", event.ShelfID)
	assert.Equal(t, 3, event.Quantity)
	assert.Empty(t, event.OrderID)
}

func Test_Decide_BusinessErrors(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name        string
		history     core.DomainEvents
		quantity    int
		expectedErr error
	}{
		{
			name:        "no entry for the pair",
			history:     core.DomainEvents{},
			quantity:    1,
			expectedErr: core.ErrNotFound,
		},
		{
			name: "entry of another shelf",
			history: core.DomainEvents{
				givenCopiesPlaced(t, "book-1", "B1", 5, now.Add(-time.Hour)),
			},
			quantity:    1,
			expectedErr: core.ErrNotFound,
		},
		{
			name: "more than available",
			history: core.DomainEvents{
				givenCopiesPlaced(t, "book-1", "A1", 2, now.Add(-time.Hour)),
			},
			quantity:    3,
			expectedErr: core.ErrInsufficientStock,
		},
		{
			name: "entry drained to zero",
			history: core.DomainEvents{
				givenCopiesPlaced(t, "book-1", "A1", 2, now.Add(-2*time.Hour)),
				givenCopiesTaken(t, "book-1", "A1", 2, now.Add(-time.Hour)),
			},
			quantity:    1,
			expectedErr: core.ErrInsufficientStock,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := deductstock.Decide(tc.history, buildCommand(t, "book-1", "A1", tc.quantity, now))

			// assert
			assert.ErrorIs(t, result.HasError(), tc.expectedErr)
			require.Len(t, result.Events, 1)

			event, ok := result.Events[0].(core.TakingBookCopiesFromShelfFailed)
			require.True(t, ok, "expected a TakingBookCopiesFromShelfFailed event")
			assert.Equal(t, tc.quantity, event.Quantity)
			assert.Equal(t, result.HasError().Error(), event.FailureInfo)
		})
	}
}

func Test_CheckDeduction_ReportsAvailableAndRequested(t *testing.T) {
	// arrange
	levels := core.ProjectStockLevels(core.DomainEvents{
		givenCopiesPlaced(t, "book-1", "A1", 4, time.Now()),
	})

	// act
	err := deductstock.CheckDeduction(levels, "book-1", "A1", 7)

	// assert
	var insufficient core.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 4, insufficient.Available)
	assert.Equal(t, 7, insufficient.Requested)
	assert.NoError(t, deductstock.CheckDeduction(levels, "book-1", "A1", 4))
}

func Test_BuildCommand_RejectsInvalidInput(t *testing.T) {
	for _, quantity := range []int{0, -1} {
		_, err := deductstock.BuildCommand("book-1", "A1", quantity, time.Now())
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
	}

	_, err := deductstock.BuildCommand("", "A1", 1, time.Now())
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = deductstock.BuildCommand("book-1", "", 1, time.Now())
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func buildCommand(t *testing.T, bookID, shelfID string, quantity int, at time.Time) deductstock.Command {
	t.Helper()

	command, err := deductstock.BuildCommand(bookID, shelfID, quantity, at)
	require.NoError(t, err)

	return command
}

func givenCopiesPlaced(t *testing.T, bookID, shelfID string, quantity int, at time.Time) core.BookCopiesPlacedOnShelf {
	t.Helper()
	return core.BuildBookCopiesPlacedOnShelf(bookID, shelfID, quantity, at)
}

func givenCopiesTaken(t *testing.T, bookID, shelfID string, quantity int, at time.Time) core.BookCopiesTakenFromShelf {
	t.Helper()
	return core.BuildBookCopiesTakenFromShelf(bookID, shelfID, quantity, "", at)
}
