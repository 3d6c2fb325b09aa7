// Package fulfillorder implements the Fulfill Order use case.
//
// Fulfilling an order takes the copies named by the fulfillment lines from their shelves and transitions the order
// to fulfilled, all or nothing. The consistency boundary spans the order and every (book, shelf) pair the lines
// reference. Decide applies the lines one after another on a projection of that boundary, using the deduction rules
// of the deductstock package, and the handler appends all resulting events in one conditional append.
// So a failing line leaves every shelf untouched and the order pending.
//
// The lines are not reconciled with the quantities the order requested: warehouse staff may fulfill differently.
package fulfillorder
