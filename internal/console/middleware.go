// internal/console/middleware.go
package console

import (
	"time"

	"churn-console/internal/common/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "churn_session"
	sessionKeyCtx = "sessionKey"
)

// requestLogger logs one line per request.
func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"clientIP": c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		if c.Writer.Status() >= 500 {
			log.Error("request completed", fields)
			return
		}
		log.Info("request completed", fields)
	}
}

// session makes sure the browser carries a session id. It keys the in-flight guard.
func session(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.New().String()
			c.SetCookie(SessionCookie, id, 0, "/", "", secure, true)
		}
		c.Set(sessionKeyCtx, id)
		c.Next()
	}
}

func sessionKey(c *gin.Context) string {
	return c.GetString(sessionKeyCtx)
}
