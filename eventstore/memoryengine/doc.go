// Package memoryengine is an in-process engine of the eventstore, guarded by a single RWMutex.
//
// It serves local runs and tests. Append holds the write lock while it compares the max sequence number
// of the filter and stores the events, which makes the conditional append atomic.
package memoryengine
