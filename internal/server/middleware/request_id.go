package middleware

import (
	"github.com/gin-gonic/gin"

	"lull/internal/pkg/id"
)

// RequestIDHeader header carrying the request id
const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request an id, honoring one supplied by the client
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = id.New()
		}

		c.Set("request_id", requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)

		c.Next()
	}
}
