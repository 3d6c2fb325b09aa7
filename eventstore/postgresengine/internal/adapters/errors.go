package adapters

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// sqlStateSerializationFailure is reported by PostgreSQL when a SERIALIZABLE transaction
// can not be committed because of a concurrent one.
const sqlStateSerializationFailure = "40001"

// ErrSerializationFailure marks a statement that lost against a concurrent SERIALIZABLE transaction.
var ErrSerializationFailure = errors.New("serialization failure")

// IsSerializationFailure reports whether err carries SQLSTATE 40001 from pgx or lib/pq.
func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlStateSerializationFailure
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == sqlStateSerializationFailure
	}

	return false
}

func classifyTxError(err error) error {
	if IsSerializationFailure(err) {
		return errors.Join(ErrSerializationFailure, err)
	}

	return err
}
