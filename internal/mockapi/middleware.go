package mockapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/codemonk/internal/common"
)

const (
	ctxEmailKey = "email"
	ctxTokenKey = "token"
)

// requestLogger echoes the caller's request id (or mints one) and logs
// every request once it completes.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(common.RequestIDHeaderName)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(common.RequestIDHeaderName, requestID)

		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// requireBearer resolves the bearer token to a session or answers 401.
func (s *Server) requireBearer() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, failure("Not authenticated"))
			return
		}
		email, ok := s.store.sessionEmail(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, failure("Session expired. Please log in again."))
			return
		}
		c.Set(ctxEmailKey, email)
		c.Set(ctxTokenKey, token)
		c.Next()
	}
}
