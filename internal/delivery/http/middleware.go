package http

import (
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
)

const (
	headerTenantID = "X-Tenant-ID"
	headerActorID  = "X-Actor-ID"

	ctxTenantID = "tenant_id"
	ctxActorID  = "actor_id"
)

// TenantRequired pulls the tenant and actor identity set by the edge
// gateway. Requests without a tenant never reach a handler.
func TenantRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(headerTenantID)
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Message: "missing tenant identity",
			})
			return
		}
		c.Set(ctxTenantID, tenantID)
		c.Set(ctxActorID, c.GetHeader(headerActorID))
		c.Next()
	}
}

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		slog.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"tenant_id", c.GetString(ctxTenantID),
			"duration_ms", time.Since(started).Milliseconds())
	}
}

func tenantID(c *gin.Context) string { return c.GetString(ctxTenantID) }
func actorID(c *gin.Context) string  { return c.GetString(ctxActorID) }
