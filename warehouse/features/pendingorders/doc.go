// Package pendingorders provides the queue of orders waiting for fulfillment.
//
// Orders are listed oldest first, orders placed at the same instant in the order they were placed.
// That ordering is the first-come-first-served contract of the fulfillment queue.
// Each item exposes the order id and the requested books only.
package pendingorders
