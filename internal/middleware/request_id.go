package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"social-service/internal/observability"
	"social-service/internal/telemetry"
)

const requestIDContextKey = "request_id"

// RequestID propagates the caller's X-Request-Id or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := observability.RequestIDFromRequest(c.Request)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDContextKey, requestID)
		c.Writer.Header().Set(observability.RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(telemetry.ContextWithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDContextKey)
}
