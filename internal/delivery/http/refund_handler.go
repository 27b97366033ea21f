package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nusakarsa/refund-service/internal/domain"
	refunddto "github.com/nusakarsa/refund-service/internal/usecase/dto/refund"
	refundusecase "github.com/nusakarsa/refund-service/internal/usecase/refund"
)

type RefundHandler struct {
	Usecase refundusecase.RefundUsecase
}

func NewRefundHandler(uc refundusecase.RefundUsecase) *RefundHandler {
	return &RefundHandler{Usecase: uc}
}

type createRefundRequest struct {
	OrderID        string `json:"order_id" binding:"required"`
	CustomerID     string `json:"customer_id" binding:"required"`
	Amount         int64  `json:"amount" binding:"required"`
	Method         string `json:"method" binding:"required"`
	ReasonCategory string `json:"reason_category" binding:"required"`
	Reason         string `json:"reason" binding:"required"`
}

func (h *RefundHandler) Create(c *gin.Context) {
	var req createRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidation("invalid request body: %s", err.Error()))
		return
	}

	out, err := h.Usecase.CreateRefundRequest(&refunddto.CreateRefundInput{
		TenantID:       tenantID(c),
		OrderID:        req.OrderID,
		CustomerID:     req.CustomerID,
		Amount:         req.Amount,
		Method:         domain.RefundMethod(req.Method),
		ReasonCategory: domain.ReasonCategory(req.ReasonCategory),
		Reason:         req.Reason,
		RequestedBy:    actorID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, out)
}

func (h *RefundHandler) List(c *gin.Context) {
	input := &refunddto.ListRefundsInput{
		TenantID: tenantID(c),
		Page:     queryInt64(c, "page", 1),
		Limit:    queryInt64(c, "limit", 20),
		Filters:  parseRefundFilters(c),
	}
	out, err := h.Usecase.GetRefunds(input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, out)
}

func (h *RefundHandler) Get(c *gin.Context) {
	refund, err := h.Usecase.GetRefundByID(tenantID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, refunddto.ToRefundOutput(refund))
}

func (h *RefundHandler) Steps(c *gin.Context) {
	steps, err := h.Usecase.GetWorkflowSteps(tenantID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, steps)
}

type decideRequest struct {
	Reason string `json:"reason"`
}

func (h *RefundHandler) ApproveStep(c *gin.Context) {
	var req decideRequest
	_ = c.ShouldBindJSON(&req)

	err := h.Usecase.ApproveStep(&refunddto.DecideStepInput{
		TenantID: tenantID(c),
		StepID:   c.Param("id"),
		ActorID:  actorID(c),
		Reason:   req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

func (h *RefundHandler) RejectStep(c *gin.Context) {
	var req decideRequest
	_ = c.ShouldBindJSON(&req)

	err := h.Usecase.RejectStep(&refunddto.DecideStepInput{
		TenantID: tenantID(c),
		StepID:   c.Param("id"),
		ActorID:  actorID(c),
		Reason:   req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

type escalateStepRequest struct {
	TargetActorID string `json:"target_actor_id"`
	Reason        string `json:"reason"`
}

func (h *RefundHandler) EscalateStep(c *gin.Context) {
	var req escalateStepRequest
	_ = c.ShouldBindJSON(&req)

	err := h.Usecase.EscalateStep(&refunddto.EscalateStepInput{
		TenantID:      tenantID(c),
		StepID:        c.Param("id"),
		ActorID:       actorID(c),
		TargetActorID: req.TargetActorID,
		Reason:        req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

type bulkRequest struct {
	RefundIDs []string `json:"refund_ids" binding:"required"`
	Reason    string   `json:"reason"`
}

func (h *RefundHandler) BulkApprove(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidation("invalid request body: %s", err.Error()))
		return
	}
	result := h.Usecase.BulkApprove(&refunddto.BulkDecideInput{
		TenantID:  tenantID(c),
		RefundIDs: req.RefundIDs,
		ActorID:   actorID(c),
		Reason:    req.Reason,
	})
	respondOK(c, result)
}

func (h *RefundHandler) Process(c *gin.Context) {
	err := h.Usecase.ProcessWithGateway(c.Request.Context(), &refunddto.ProcessRefundInput{
		TenantID: tenantID(c),
		RefundID: c.Param("id"),
		ActorID:  actorID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

func (h *RefundHandler) Retry(c *gin.Context) {
	err := h.Usecase.RetryProcessing(c.Request.Context(), &refunddto.ProcessRefundInput{
		TenantID: tenantID(c),
		RefundID: c.Param("id"),
		ActorID:  actorID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

type manualRefundRequest struct {
	Confirmed bool   `json:"confirmed"`
	Reference string `json:"reference"`
	Notes     string `json:"notes"`
}

func (h *RefundHandler) ProcessManual(c *gin.Context) {
	var req manualRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidation("invalid request body: %s", err.Error()))
		return
	}
	err := h.Usecase.ProcessManual(&refunddto.ManualRefundInput{
		TenantID:  tenantID(c),
		RefundID:  c.Param("id"),
		ActorID:   actorID(c),
		Confirmed: req.Confirmed,
		Reference: req.Reference,
		Notes:     req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

func (h *RefundHandler) BulkProcess(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidation("invalid request body: %s", err.Error()))
		return
	}
	result := h.Usecase.BulkProcess(c.Request.Context(), &refunddto.BulkDecideInput{
		TenantID:  tenantID(c),
		RefundIDs: req.RefundIDs,
		ActorID:   actorID(c),
		Reason:    req.Reason,
	})
	respondOK(c, result)
}

func (h *RefundHandler) Cancel(c *gin.Context) {
	if err := h.Usecase.CancelRefund(tenantID(c), c.Param("id"), actorID(c)); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

func (h *RefundHandler) GatewayStatus(c *gin.Context) {
	state, err := h.Usecase.CheckRefundStatus(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"gateway_state": state})
}

func (h *RefundHandler) PendingWork(c *gin.Context) {
	actor := c.Query("actor_id")
	if actor == "" {
		actor = actorID(c)
	}
	steps, err := h.Usecase.GetPendingWork(tenantID(c), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, steps)
}

func parseRefundFilters(c *gin.Context) domain.RefundFilters {
	filters := domain.RefundFilters{
		OrderID:    c.Query("order_id"),
		CustomerID: c.Query("customer_id"),
		MinAmount:  queryInt64(c, "min_amount", 0),
		MaxAmount:  queryInt64(c, "max_amount", 0),
	}
	for _, status := range c.QueryArray("status") {
		filters.Statuses = append(filters.Statuses, domain.RefundStatus(status))
	}
	if from := c.Query("date_from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filters.DateFrom = t
		}
	}
	if to := c.Query("date_to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filters.DateTo = t
		}
	}
	return filters
}

func queryInt64(c *gin.Context, key string, fallback int64) int64 {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}
