package eventstore

import (
	"errors"
)

var (
	// ErrConcurrencyConflict is returned by Append when the max sequence number of the filter changed
	// between the Query and the Append.
	ErrConcurrencyConflict = errors.New("concurrency conflict: the event stream changed since it was queried")

	// ErrEmptyEventsTableName is returned when an engine is configured with an empty table name.
	ErrEmptyEventsTableName = errors.New("events table name must not be empty")

	// ErrNilDatabaseConnection is returned when an engine is constructed without a database handle.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	ErrEmptyEventType              = errors.New("event type must not be empty")
	ErrBuildingQueryFailed         = errors.New("building query failed")
	ErrQueryingEventsFailed        = errors.New("querying events failed")
	ErrScanningDBRowFailed         = errors.New("scanning db row failed")
	ErrBuildingStorableEventFailed = errors.New("building storable event failed")
	ErrAppendingEventFailed        = errors.New("appending the event failed")
	ErrGettingRowsAffectedFailed   = errors.New("getting rows affected failed")
	ErrCreatingSchemaFailed        = errors.New("creating the events schema failed")
	ErrTruncatingEventsFailed      = errors.New("truncating the events table failed")
	ErrDroppingSchemaFailed        = errors.New("dropping the events table failed")
)

// MaxSequenceNumberUint is the highest sequence number of the events matched by a Filter,
// which identifies the version of a "dynamic event stream". It is zero for an empty stream.
type MaxSequenceNumberUint = uint
