package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/imrishuroy/go-storefront/internal/session"
)

const (
	requestIDHeader = "X-Request-Id"
	requestIDKey    = "request_id"
	sessionIDKey    = "session_id"
)

// RequestLogger attaches a request-scoped zerolog logger to the request
// context and logs one line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		logger := log.With().Str("request_id", requestID).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))

		c.Next()

		log.Ctx(c.Request.Context()).Info().
			Str("method", c.Request.Method).
			Str("endpoint", c.FullPath()).
			Int("status", c.Writer.Status()).
			Int64("latency", time.Since(start).Milliseconds()).
			Msg("Request processed")
	}
}

// SessionMiddleware resolves the browser session id from the X-Session-Id
// header, minting a new one when it is missing or malformed. The id is echoed
// back so the client can keep it.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(session.Header)
		if _, err := uuid.Parse(id); err != nil {
			id = session.NewID()
		}
		c.Set(sessionIDKey, id)
		c.Header(session.Header, id)
		c.Next()
	}
}

func (h *handler) withSession(c *gin.Context, fn func(*session.Session) error) error {
	return h.Sessions.WithCart(c.Request.Context(), c.GetString(sessionIDKey), fn)
}
