package http

import (
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	userIDKey       = "userID"
	tokenKey        = "token"
)

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		args := []any{
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}

		ctx := c.Request.Context()
		switch {
		case c.Writer.Status() >= 500:
			logger.Error(ctx, "HTTP request", args...)
		case c.Writer.Status() >= 400:
			logger.Warn(ctx, "HTTP request", args...)
		default:
			logger.Info(ctx, "HTTP request", args...)
		}
	}
}

func observe(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

// authGate resolves the X-Token header to a user id stored under userIDKey.
func authGate(auth Authenticator, logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(common.TokenHeaderName)

		userID, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, logger, err)
			return
		}

		c.Set(userIDKey, userID)
		c.Set(tokenKey, token)
		c.Next()
	}
}
