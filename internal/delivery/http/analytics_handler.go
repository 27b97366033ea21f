package http

import (
	"time"

	"github.com/gin-gonic/gin"
	analyticsusecase "github.com/nusakarsa/refund-service/internal/usecase/analytics"
)

type AnalyticsHandler struct {
	Usecase analyticsusecase.AnalyticsUsecase
}

func NewAnalyticsHandler(uc analyticsusecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{Usecase: uc}
}

func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	windowDays := int(queryInt64(c, "window_days", 30))
	out, err := h.Usecase.Dashboard(tenantID(c), windowDays)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, out)
}

func (h *AnalyticsHandler) RefundOverview(c *gin.Context) {
	out, err := h.Usecase.RefundOverview(tenantID(c), sinceParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, out)
}

func (h *AnalyticsHandler) DisputeSummary(c *gin.Context) {
	out, err := h.Usecase.DisputeSummary(tenantID(c), sinceParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, out)
}

func (h *AnalyticsHandler) LiabilitySummary(c *gin.Context) {
	out, err := h.Usecase.LiabilitySummary(tenantID(c), sinceParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, out)
}

func (h *AnalyticsHandler) FundStatus(c *gin.Context) {
	out, err := h.Usecase.FundStatus(tenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, out)
}

func sinceParam(c *gin.Context) time.Time {
	windowDays := int(queryInt64(c, "window_days", 30))
	if windowDays < 1 {
		windowDays = 30
	}
	return time.Now().AddDate(0, 0, -windowDays)
}
