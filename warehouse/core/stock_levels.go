package core

// StockKey identifies a stock entry.
type StockKey struct {
	BookID  BookIDString
	ShelfID ShelfIDString
}

// StockLevels is the projection of placement and deduction events onto stock entries.
// An entry exists once copies were placed for its pair, also when its count dropped to zero.
type StockLevels struct {
	counts map[StockKey]int
	keys   []StockKey // in order of the first placement
}

// ProjectStockLevels replays the history, events other than placements and deductions are ignored.
func ProjectStockLevels(history DomainEvents) StockLevels {
	s := StockLevels{counts: make(map[StockKey]int)}

	for _, event := range history {
		s.Apply(event)
	}

	return s
}

// Apply folds one event into the projection.
func (s *StockLevels) Apply(event DomainEvent) {
	if s.counts == nil {
		s.counts = make(map[StockKey]int)
	}

	switch e := event.(type) {
	case BookCopiesPlacedOnShelf:
		key := StockKey{BookID: e.BookID, ShelfID: e.ShelfID}
		if _, exists := s.counts[key]; !exists {
			s.keys = append(s.keys, key)
		}

		s.counts[key] += e.Quantity

	case BookCopiesTakenFromShelf:
		key := StockKey{BookID: e.BookID, ShelfID: e.ShelfID}
		if _, exists := s.counts[key]; exists {
			s.counts[key] -= e.Quantity
		}
	}
}

// Entry returns the count of the pair and whether the entry exists.
func (s StockLevels) Entry(bookID BookIDString, shelfID ShelfIDString) (int, bool) {
	count, exists := s.counts[StockKey{BookID: bookID, ShelfID: shelfID}]

	return count, exists
}

// Take deducts from an existing entry. The caller must have checked the count.
func (s *StockLevels) Take(bookID BookIDString, shelfID ShelfIDString, quantity int) {
	s.Apply(BookCopiesTakenFromShelf{BookID: bookID, ShelfID: shelfID, Quantity: quantity})
}

// TotalFor sums the counts of all shelves holding the book.
func (s StockLevels) TotalFor(bookID BookIDString) int {
	total := 0

	for key, count := range s.counts {
		if key.BookID == bookID {
			total += count
		}
	}

	return total
}

// ShelfCount is the count of one book on one shelf.
type ShelfCount struct {
	ShelfID ShelfIDString
	Count   int
}

// ShelvesHolding lists the shelves with a positive count of the book, in order of the first placement.
func (s StockLevels) ShelvesHolding(bookID BookIDString) []ShelfCount {
	shelves := make([]ShelfCount, 0)

	for _, key := range s.keys {
		if key.BookID != bookID {
			continue
		}

		if count := s.counts[key]; count > 0 {
			shelves = append(shelves, ShelfCount{ShelfID: key.ShelfID, Count: count})
		}
	}

	return shelves
}
