package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/horizon-academy/academy-gateway/internal/service"
)

// Audit records proxied mutations after they succeed. Failed requests are
// not recorded; the trail describes what changed, not what was attempted.
func Audit(audits *service.AuditService, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if audits == nil || c.Writer.Status() >= 400 {
			return
		}

		audits.Record(c.Request.Context(), service.AuditEvent{
			Session:    SessionFrom(c),
			Action:     action,
			Resource:   resource,
			ResourceID: c.Param("id"),
			Detail: map[string]interface{}{
				"path":    c.FullPath(),
				"method":  c.Request.Method,
				"status":  c.Writer.Status(),
				"latency": time.Since(start).Milliseconds(),
			},
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
		})
	}
}
