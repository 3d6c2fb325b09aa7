package findonshelf_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/findonshelf"
)

func Test_Project_ListsShelvesWithPositiveCountsInPlacementOrder(t *testing.T) {
	// arrange
	now := time.Now()
	history := core.DomainEvents{
		core.BuildBookCopiesPlacedOnShelf("book-1", "C3", 2, now),
		core.BuildBookCopiesPlacedOnShelf("book-1", "A1", 1, now),
		core.BuildBookCopiesPlacedOnShelf("book-1", "B2", 4, now),
		core.BuildBookCopiesPlacedOnShelf("book-1", "C3", 1, now),
		core.BuildBookCopiesTakenFromShelf("book-1", "A1", 1, "", now),
	}

	query, err := findonshelf.BuildQuery("book-1")
	require.NoError(t, err)

	// act
	result := findonshelf.Project(history, query)

	// assert
	assert.Equal(
		t,
		[]findonshelf.ShelfStock{{ShelfID: "C3", Count: 3}, {ShelfID: "B2", Count: 4}},
		result.Shelves,
	)
}

func Test_Project_ReturnsEmptyListForUnknownBook(t *testing.T) {
	// arrange
	query, err := findonshelf.BuildQuery("book-unknown")
	require.NoError(t, err)

	// act
	result := findonshelf.Project(core.DomainEvents{}, query)

	// assert
	assert.NotNil(t, result.Shelves)
	assert.Empty(t, result.Shelves)
}
