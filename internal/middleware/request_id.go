package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type contextKey string

const (
	RequestIDHeader = "X-Request-ID"

	requestIDKey contextKey = "RequestID"
	maxRequestID            = 128
)

// NewRequestIDMiddleware makes sure every request carries an id. A client
// supplied X-Request-ID is kept, otherwise a new one is generated. The id is
// echoed back and stored in the user context.
func NewRequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := strings.TrimSpace(c.Get(RequestIDHeader))
		if requestID == "" || len(requestID) > maxRequestID {
			requestID = uuid.NewString()
		}

		userCtx := c.UserContext()
		if userCtx == nil {
			userCtx = context.Background()
		}

		c.SetUserContext(context.WithValue(userCtx, requestIDKey, requestID))
		c.Set(RequestIDHeader, requestID)

		return c.Next()
	}
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	requestID, _ := ctx.Value(requestIDKey).(string)
	return requestID
}
