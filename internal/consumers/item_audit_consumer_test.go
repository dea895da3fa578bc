package consumers

import (
	"context"
	"encoding/json"
	"sampleapi/pkg/events"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedHandler() (*ItemAuditHandler, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return NewItemAuditHandler(zap.New(core)), logs
}

func TestHandleEventLogsLifecycle(t *testing.T) {
	h, logs := newObservedHandler()
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	headers := events.Headers{TraceID: "trace-1", CorrelationID: "corr-1"}

	require.NoError(t, h.HandleEvent(ctx, events.NewEvent(events.ItemCreatedEvent, events.EventVersionV1,
		events.ItemCreatedPayload{ID: 1, Name: "Widget", Price: 9.99, CreatedAt: now}, headers)))
	require.NoError(t, h.HandleEvent(ctx, events.NewEvent(events.ItemUpdatedEvent, events.EventVersionV1,
		events.ItemUpdatedPayload{ID: 1, Name: "Widget v2", Price: 12, CreatedAt: now, UpdatedAt: now}, headers)))
	require.NoError(t, h.HandleEvent(ctx, events.NewEvent(events.ItemDeletedEvent, events.EventVersionV1,
		events.ItemDeletedPayload{ID: 1, DeletedAt: now}, headers)))

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "Item created", entries[0].Message)
	assert.Equal(t, "Item updated", entries[1].Message)
	assert.Equal(t, "Item deleted", entries[2].Message)
	assert.Equal(t, int64(1), entries[2].ContextMap()["itemId"])
	assert.Equal(t, "corr-1", entries[0].ContextMap()["correlationId"])
}

func TestHandleEventRejectsMalformedPayload(t *testing.T) {
	h, _ := newObservedHandler()

	missingID := events.NewEvent(events.ItemDeletedEvent, events.EventVersionV1,
		events.ItemDeletedPayload{}, events.Headers{})
	assert.Error(t, h.HandleEvent(context.Background(), missingID))

	wrongShape := &events.Event{
		Event:   events.ItemCreatedEvent,
		Version: events.EventVersionV1,
		Payload: json.RawMessage(`{"id":"not-a-number"}`),
	}
	assert.Error(t, h.HandleEvent(context.Background(), wrongShape))
}

func TestHandleEventIgnoresUnknownEvents(t *testing.T) {
	h, logs := newObservedHandler()

	err := h.HandleEvent(context.Background(), &events.Event{Event: "item.archived", Payload: json.RawMessage(`{}`)})
	require.NoError(t, err)
	require.Equal(t, 1, logs.FilterMessage("Unknown item event type").Len())
}
