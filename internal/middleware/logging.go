package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request. When debug is false only
// responses with status >= 400 are logged.
func RequestLogger(logger *log.Logger, debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if !debug && status < 400 {
			return
		}
		logger.Printf("%s %s -> %d (%s) ip=%s",
			c.Request.Method, c.Request.URL.Path, status, time.Since(start).Round(time.Microsecond), c.ClientIP())
	}
}
