package eventstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
)

//nolint:funlen
func Test_FilterBuilder_ValidCombinations(t *testing.T) {
	tests := []struct {
		name     string
		build    func() eventstore.Filter
		validate func(t *testing.T, filter eventstore.Filter)
	}{
		{
			name: "matching_any_event_creates_empty_filter",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().MatchingAnyEvent()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Empty(t, f.Items())
				assert.True(t, f.IsEmpty())
			},
		},
		{
			name: "event_types_are_sanitized",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("OrderPlaced", "", "OrderFulfilled", "OrderPlaced").
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Len(t, f.Items(), 1)
				assert.Equal(t, []string{"OrderFulfilled", "OrderPlaced"}, f.Items()[0].EventTypes())
				assert.Empty(t, f.Items()[0].Predicates())
			},
		},
		{
			name: "partial_and_duplicate_predicates_are_dropped",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AllPredicatesOf(
						eventstore.P("ShelfID", "A1"),
						eventstore.P("BookID", ""),
						eventstore.P("", "book-1"),
						eventstore.P("BookID", "book-1"),
						eventstore.P("ShelfID", "A1"),
					).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Equal(
					t,
					[]eventstore.FilterPredicate{eventstore.P("BookID", "book-1"), eventstore.P("ShelfID", "A1")},
					f.Items()[0].Predicates(),
				)
				assert.True(t, f.Items()[0].AllPredicatesMustMatch())
			},
		},
		{
			name: "event_types_and_any_predicate",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("OrderPlaced", "OrderFulfilled").
					AndAnyPredicateOf(eventstore.P("OrderID", "7")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Len(t, f.Items(), 1)
				assert.False(t, f.Items()[0].AllPredicatesMustMatch())
				assert.Equal(t, []eventstore.FilterPredicate{eventstore.P("OrderID", "7")}, f.Items()[0].Predicates())
			},
		},
		{
			name: "predicates_then_event_types",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyPredicateOf(eventstore.P("BookID", "book-1")).
					AndAnyEventTypeOf("BookCopiesPlacedOnShelf").
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Equal(t, []string{"BookCopiesPlacedOnShelf"}, f.Items()[0].EventTypes())
				assert.Len(t, f.Items()[0].Predicates(), 1)
			},
		},
		{
			name: "multiple_items_joined_with_or",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("OrderPlaced").
					AndAnyPredicateOf(eventstore.P("OrderID", "1")).
					OrMatching().
					AnyEventTypeOf("BookCopiesPlacedOnShelf").
					AndAllPredicatesOf(eventstore.P("BookID", "book-1"), eventstore.P("ShelfID", "A1")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Len(t, f.Items(), 2)
				assert.False(t, f.Items()[0].AllPredicatesMustMatch())
				assert.True(t, f.Items()[1].AllPredicatesMustMatch())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, tt.build())
		})
	}
}

func Test_FilterBuilder_BranchesDoNotShareState(t *testing.T) {
	// arrange
	base := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("OrderPlaced").
		AndAnyPredicateOf(eventstore.P("OrderID", "1")).
		OrMatching()

	// act
	first := base.AnyEventTypeOf("OrderFulfilled").Finalize()
	second := base.AnyEventTypeOf("BookCopiesPlacedOnShelf").Finalize()

	// assert
	assert.Equal(t, []string{"OrderFulfilled"}, first.Items()[1].EventTypes())
	assert.Equal(t, []string{"BookCopiesPlacedOnShelf"}, second.Items()[1].EventTypes())
}

//nolint:funlen
func Test_Filter_Matches(t *testing.T) {
	stockFilter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookCopiesPlacedOnShelf", "BookCopiesTakenFromShelf").
		AndAllPredicatesOf(eventstore.P("BookID", "book-1"), eventstore.P("ShelfID", "A1")).
		Finalize()

	orderOrStockFilter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("OrderPlaced").
		AndAnyPredicateOf(eventstore.P("OrderID", "1"), eventstore.P("OrderID", "2")).
		OrMatching().
		AnyEventTypeOf("BookCopiesPlacedOnShelf").
		Finalize()

	testCases := []struct {
		name      string
		filter    eventstore.Filter
		eventType string
		payload   map[string]string
		expected  bool
	}{
		{
			name:      "empty filter matches everything",
			filter:    eventstore.BuildEventFilter().MatchingAnyEvent(),
			eventType: "Whatever",
			expected:  true,
		},
		{
			name:      "all predicates and type match",
			filter:    stockFilter,
			eventType: "BookCopiesTakenFromShelf",
			payload:   map[string]string{"BookID": "book-1", "ShelfID": "A1", "OrderID": "3"},
			expected:  true,
		},
		{
			name:      "one of all predicates differs",
			filter:    stockFilter,
			eventType: "BookCopiesPlacedOnShelf",
			payload:   map[string]string{"BookID": "book-1", "ShelfID": "B1"},
			expected:  false,
		},
		{
			name:      "predicates match but type does not",
			filter:    stockFilter,
			eventType: "TakingBookCopiesFromShelfFailed",
			payload:   map[string]string{"BookID": "book-1", "ShelfID": "A1"},
			expected:  false,
		},
		{
			name:      "any predicate matches",
			filter:    orderOrStockFilter,
			eventType: "OrderPlaced",
			payload:   map[string]string{"OrderID": "2"},
			expected:  true,
		},
		{
			name:      "second item without predicates matches by type",
			filter:    orderOrStockFilter,
			eventType: "BookCopiesPlacedOnShelf",
			payload:   map[string]string{"BookID": "book-9"},
			expected:  true,
		},
		{
			name:      "no item matches",
			filter:    orderOrStockFilter,
			eventType: "OrderPlaced",
			payload:   map[string]string{"OrderID": "3"},
			expected:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.filter.Matches(tc.eventType, tc.payload))
		})
	}
}
