// Package deductstock implements the Deduct Stock use case and owns the deduction rules,
// which the fulfillment of orders applies line by line.
//
// A deduction fails with core.ErrNotFound when the shelf never held the book
// and with core.InsufficientStockError when it holds fewer copies than requested.
// Rejected deductions are recorded as TakingBookCopiesFromShelfFailed events.
package deductstock
