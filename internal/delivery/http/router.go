package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the whole HTTP surface. Everything under /api/v1
// requires a tenant identity.
func NewRouter(
	refunds *RefundHandler,
	escalations *EscalationHandler,
	analytics *AnalyticsHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1", TenantRequired())
	{
		v1.POST("/refunds", refunds.Create)
		v1.GET("/refunds", refunds.List)
		v1.GET("/refunds/:id", refunds.Get)
		v1.GET("/refunds/:id/steps", refunds.Steps)
		v1.GET("/refunds/:id/gateway-status", refunds.GatewayStatus)
		v1.POST("/refunds/:id/process", refunds.Process)
		v1.POST("/refunds/:id/retry", refunds.Retry)
		v1.POST("/refunds/:id/manual", refunds.ProcessManual)
		v1.POST("/refunds/:id/cancel", refunds.Cancel)
		v1.POST("/refunds/bulk-approve", refunds.BulkApprove)
		v1.POST("/refunds/bulk-process", refunds.BulkProcess)

		v1.POST("/steps/:id/approve", refunds.ApproveStep)
		v1.POST("/steps/:id/reject", refunds.RejectStep)
		v1.POST("/steps/:id/escalate", refunds.EscalateStep)
		v1.GET("/pending-work", refunds.PendingWork)

		v1.POST("/cases", escalations.Open)
		v1.GET("/cases", escalations.List)
		v1.GET("/cases/:id", escalations.Get)
		v1.POST("/cases/:id/respond", escalations.Respond)
		v1.POST("/cases/:id/resolve", escalations.Resolve)
		v1.POST("/cases/:id/escalate", escalations.Escalate)

		v1.GET("/analytics/dashboard", analytics.Dashboard)
		v1.GET("/analytics/refunds", analytics.RefundOverview)
		v1.GET("/analytics/disputes", analytics.DisputeSummary)
		v1.GET("/analytics/liabilities", analytics.LiabilitySummary)
		v1.GET("/analytics/insurance-fund", analytics.FundStatus)
	}

	return router
}
