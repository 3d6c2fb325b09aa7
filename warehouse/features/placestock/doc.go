// Package placestock implements the Place Stock use case.
//
// Copies of a book are put on a shelf. The first placement creates the stock entry of the (book, shelf) pair,
// every further placement increments it. There is no upper bound.
//
// The handler queries the stock events of the pair and appends conditionally,
// so a placement and a concurrent deduction of the same pair never lose each other's update.
package placestock
