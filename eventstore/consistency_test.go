package eventstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
)

func Test_GetConsistencyLevel_DefaultsToStrong(t *testing.T) {
	assert.Equal(t, eventstore.StrongConsistency, eventstore.GetConsistencyLevel(context.Background()))
}

func Test_GetConsistencyLevel_ReturnsWhatWasSet(t *testing.T) {
	// arrange
	eventualCtx := eventstore.WithEventualConsistency(context.Background())
	strongAgainCtx := eventstore.WithStrongConsistency(eventualCtx)

	// act & assert
	assert.Equal(t, eventstore.EventualConsistency, eventstore.GetConsistencyLevel(eventualCtx))
	assert.Equal(t, eventstore.StrongConsistency, eventstore.GetConsistencyLevel(strongAgainCtx))
	assert.Equal(t, "eventual", eventstore.EventualConsistency.String())
	assert.Equal(t, "strong", eventstore.StrongConsistency.String())
	assert.Equal(t, "unknown", eventstore.ConsistencyLevel(42).String())
}
