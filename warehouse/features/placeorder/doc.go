// Package placeorder implements the Place Order use case.
//
// Every distinct book of the order is checked against the book catalog before anything is written.
// The order id is the next number of a sequence which lives in the event store itself:
// it is derived from the OrderPlaced events, and the append is conditional on all of them,
// so two concurrent placements never get the same id.
//
// Placing an order reserves no stock.
package placeorder
