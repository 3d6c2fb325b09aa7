package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
)

// EnsureSchema creates the events table and its indexes if they do not exist yet.
// The GIN index serves the jsonb containment predicates of every Filter.
func (es *EventStore) EnsureSchema(ctx context.Context) error {
	start := time.Now()

	for _, statement := range es.schemaStatements() {
		if _, execErr := es.db.Exec(ctx, statement); execErr != nil {
			es.logError(ctx, logMsgSchemaFailed, execErr, logAttrQuery, statement)

			return errors.Join(eventstore.ErrCreatingSchemaFailed, execErr)
		}

		es.logQueryWithDuration(ctx, statement, logActionSchema, time.Since(start))
	}

	es.logOperation(ctx, logMsgSchemaEnsured, logAttrTable, es.eventTableName, logAttrDurationMS, toMilliseconds(time.Since(start)))

	return nil
}

// Truncate removes all events and resets the sequence. It exists for tests.
func (es *EventStore) Truncate(ctx context.Context) error {
	statement := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY", pgx.Identifier{es.eventTableName}.Sanitize())

	if _, execErr := es.db.Exec(ctx, statement); execErr != nil {
		return errors.Join(eventstore.ErrTruncatingEventsFailed, execErr)
	}

	return nil
}

func (es *EventStore) schemaStatements() []string {
	table := pgx.Identifier{es.eventTableName}.Sanitize()
	eventTypeIndex := pgx.Identifier{es.eventTableName + "_event_type_idx"}.Sanitize()
	payloadIndex := pgx.Identifier{es.eventTableName + "_payload_gin_idx"}.Sanitize()

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s BIGSERIAL PRIMARY KEY,
	%s TIMESTAMPTZ NOT NULL,
	%s TEXT NOT NULL,
	%s JSONB NOT NULL,
	%s JSONB NOT NULL DEFAULT '{}'::jsonb
)`, table, colSequenceNumber, colOccurredAt, colEventType, colPayload, colMetadata),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", eventTypeIndex, table, colEventType),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s USING GIN (%s jsonb_path_ops)", payloadIndex, table, colPayload),
	}
}

// DropSchema drops the events table with its indexes. It exists for tests that use a table of their own.
func (es *EventStore) DropSchema(ctx context.Context) error {
	statement := fmt.Sprintf("DROP TABLE IF EXISTS %s", pgx.Identifier{es.eventTableName}.Sanitize())

	if _, execErr := es.db.Exec(ctx, statement); execErr != nil {
		return errors.Join(eventstore.ErrDroppingSchemaFailed, execErr)
	}

	return nil
}
