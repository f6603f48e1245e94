package middleware

import (
	"fmt"

	"catalog-sync-srv/pkg/log"
	"catalog-sync-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// Recovery recovers from panics and logs the error.
func Recovery(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				ctx := c.Request.Context()
				logger.Errorf(ctx, "Panic recovered: %v | Method: %s | Path: %s",
					err, c.Request.Method, c.Request.URL.Path)

				response.Error(c, fmt.Errorf("panic: %v", err))
				c.Abort()
			}
		}()
		c.Next()
	}
}
