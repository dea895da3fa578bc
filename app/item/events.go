package item

import (
	"context"
	"sampleapi/internal/middleware"
	"sampleapi/pkg/events"

	"go.uber.org/zap"
)

// publishEvent sends an item event when a publisher is configured. Failures
// are logged and never surface to the HTTP caller.
func publishEvent(ctx context.Context, publisher events.Publisher, service, eventName string, itemID int, payload any) {
	if publisher == nil {
		return
	}

	correlationID := middleware.RequestIDFromContext(ctx)
	if correlationID == "" {
		correlationID = events.GenerateCorrelationID()
	}

	headers := events.Headers{
		TraceID:       events.GenerateTraceID(),
		CorrelationID: correlationID,
		Service:       service,
	}

	event := events.NewEvent(
		eventName,
		events.EventVersionV1,
		payload,
		headers,
	)

	if err := publisher.Publish(ctx, events.ItemExchange, event, headers); err != nil {
		zap.L().Error("Failed to publish "+eventName+" event",
			zap.Int("itemId", itemID),
			zap.Error(err),
		)
	}
}
