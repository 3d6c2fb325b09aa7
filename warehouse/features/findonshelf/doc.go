// Package findonshelf lists the shelves holding copies of a book.
//
// Shelves are reported in the order copies of the book were first placed on them.
// A shelf whose count dropped to zero still has a stock entry, but it is not listed.
package findonshelf
