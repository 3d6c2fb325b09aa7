// Package ordermanager is the Order Manager: it owns the orders from placement through fulfillment.
//
// An order is pending when it is placed and becomes fulfilled by exactly one successful FulfillOrder.
// Fulfilled is terminal, a second fulfillment fails with core.ErrAlreadyFulfilled.
//
// OrderManager is a facade over the placeorder, fulfillorder, pendingorders and orderdetails features.
// Fulfillment applies the deduction rules of the stock ledger and commits all deductions together with the
// status transition, or nothing.
package ordermanager
