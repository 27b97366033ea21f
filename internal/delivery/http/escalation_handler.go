package http

import (
	"github.com/gin-gonic/gin"
	"github.com/nusakarsa/refund-service/internal/domain"
	escalationdto "github.com/nusakarsa/refund-service/internal/usecase/dto/escalation"
	escalationusecase "github.com/nusakarsa/refund-service/internal/usecase/escalation"
)

type EscalationHandler struct {
	Usecase escalationusecase.EscalationUsecase
}

func NewEscalationHandler(uc escalationusecase.EscalationUsecase) *EscalationHandler {
	return &EscalationHandler{Usecase: uc}
}

type openCaseRequest struct {
	RefundID       string `json:"refund_id" binding:"required"`
	Kind           string `json:"kind" binding:"required"`
	CounterpartyID string `json:"counterparty_id" binding:"required"`
	ClaimAmount    int64  `json:"claim_amount" binding:"required"`
	Reason         string `json:"reason" binding:"required"`
}

func (h *EscalationHandler) Open(c *gin.Context) {
	var req openCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidation("invalid request body: %s", err.Error()))
		return
	}
	out, err := h.Usecase.OpenCase(&escalationdto.OpenCaseInput{
		TenantID:       tenantID(c),
		RefundID:       req.RefundID,
		Kind:           domain.CaseKind(req.Kind),
		CounterpartyID: req.CounterpartyID,
		ClaimAmount:    req.ClaimAmount,
		Reason:         req.Reason,
		OpenedBy:       actorID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, out)
}

type respondRequest struct {
	Notes string `json:"notes" binding:"required"`
}

func (h *EscalationHandler) Respond(c *gin.Context) {
	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidation("invalid request body: %s", err.Error()))
		return
	}
	err := h.Usecase.Respond(&escalationdto.RespondInput{
		TenantID: tenantID(c),
		CaseID:   c.Param("id"),
		ActorID:  actorID(c),
		Notes:    req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

type resolveRequest struct {
	Resolution       string `json:"resolution" binding:"required"`
	SettlementAmount int64  `json:"settlement_amount"`
	Notes            string `json:"notes"`
}

func (h *EscalationHandler) Resolve(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidation("invalid request body: %s", err.Error()))
		return
	}
	err := h.Usecase.Resolve(&escalationdto.ResolveInput{
		TenantID:         tenantID(c),
		CaseID:           c.Param("id"),
		ActorID:          actorID(c),
		Resolution:       domain.CaseResolution(req.Resolution),
		SettlementAmount: req.SettlementAmount,
		Notes:            req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

type escalateCaseRequest struct {
	TargetActorID string `json:"target_actor_id" binding:"required"`
	Reason        string `json:"reason"`
}

func (h *EscalationHandler) Escalate(c *gin.Context) {
	var req escalateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidation("invalid request body: %s", err.Error()))
		return
	}
	err := h.Usecase.EscalateCase(&escalationdto.EscalateCaseInput{
		TenantID:      tenantID(c),
		CaseID:        c.Param("id"),
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

func (h *EscalationHandler) Get(c *gin.Context) {
	out, err := h.Usecase.GetCaseByID(tenantID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, out)
}

func (h *EscalationHandler) List(c *gin.Context) {
	out, err := h.Usecase.GetCases(&escalationdto.ListCasesInput{
		TenantID: tenantID(c),
		Page:     queryInt64(c, "page", 1),
		Limit:    queryInt64(c, "limit", 20),
		Filters: domain.CaseFilters{
			Kind:     domain.CaseKind(c.Query("kind")),
			Status:   domain.CaseStatus(c.Query("status")),
			RefundID: c.Query("refund_id"),
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, out)
}
