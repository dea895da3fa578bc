package consumers

import (
	"context"
	"fmt"
	"sampleapi/pkg/events"

	"go.uber.org/zap"
)

// ItemAuditHandler records an audit line for every item lifecycle event.
// Events with an undecodable payload or a missing id are rejected so they
// end up in the dead letter queue.
type ItemAuditHandler struct {
	logger *zap.Logger
}

func NewItemAuditHandler(logger *zap.Logger) *ItemAuditHandler {
	return &ItemAuditHandler{
		logger: logger,
	}
}

func (h *ItemAuditHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	switch event.Event {
	case events.ItemCreatedEvent:
		return h.handleItemCreated(event)
	case events.ItemUpdatedEvent:
		return h.handleItemUpdated(event)
	case events.ItemDeletedEvent:
		return h.handleItemDeleted(event)
	default:
		h.logger.Warn("Unknown item event type", zap.String("event", event.Event))
		return nil
	}
}

func (h *ItemAuditHandler) handleItemCreated(event *events.Event) error {
	var payload events.ItemCreatedPayload
	if err := event.DecodePayload(&payload); err != nil {
		return fmt.Errorf("malformed payload - unmarshal failed: %w", err)
	}
	if payload.ID <= 0 {
		return fmt.Errorf("malformed payload - id missing or invalid")
	}

	h.logger.Info("Item created",
		zap.Int("itemId", payload.ID),
		zap.String("name", payload.Name),
		zap.Float64("price", payload.Price),
		zap.Time("createdAt", payload.CreatedAt),
		zap.String("traceId", event.TraceID),
		zap.String("correlationId", event.CorrelationID),
	)
	return nil
}

func (h *ItemAuditHandler) handleItemUpdated(event *events.Event) error {
	var payload events.ItemUpdatedPayload
	if err := event.DecodePayload(&payload); err != nil {
		return fmt.Errorf("malformed payload - unmarshal failed: %w", err)
	}
	if payload.ID <= 0 {
		return fmt.Errorf("malformed payload - id missing or invalid")
	}

	h.logger.Info("Item updated",
		zap.Int("itemId", payload.ID),
		zap.String("name", payload.Name),
		zap.Float64("price", payload.Price),
		zap.Time("updatedAt", payload.UpdatedAt),
		zap.String("traceId", event.TraceID),
		zap.String("correlationId", event.CorrelationID),
	)
	return nil
}

func (h *ItemAuditHandler) handleItemDeleted(event *events.Event) error {
	var payload events.ItemDeletedPayload
	if err := event.DecodePayload(&payload); err != nil {
		return fmt.Errorf("malformed payload - unmarshal failed: %w", err)
	}
	if payload.ID <= 0 {
		return fmt.Errorf("malformed payload - id missing or invalid")
	}

	h.logger.Info("Item deleted",
		zap.Int("itemId", payload.ID),
		zap.Time("deletedAt", payload.DeletedAt),
		zap.String("traceId", event.TraceID),
		zap.String("correlationId", event.CorrelationID),
	)
	return nil
}
