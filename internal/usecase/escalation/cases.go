package usecase

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nusakarsa/refund-service/internal/domain"
	escalationdto "github.com/nusakarsa/refund-service/internal/usecase/dto/escalation"
)

func (uc *DefaultEscalationUsecase) OpenCase(input *escalationdto.OpenCaseInput) (*escalationdto.CaseOutput, error) {
	if input.Kind != domain.KindDispute && input.Kind != domain.KindVendorLiability {
		return nil, domain.NewValidation("invalid case kind: %s", input.Kind)
	}
	if input.CounterpartyID == "" {
		return nil, domain.NewValidation("counterparty is required")
	}
	if input.ClaimAmount <= 0 {
		return nil, domain.NewValidation("claim amount must be positive")
	}
	if len(input.Reason) < 5 {
		return nil, domain.NewValidation("case reason is too short")
	}

	refund, err := uc.RefundRepo.GetRefundByID(input.RefundID)
	if err != nil {
		return nil, err
	}
	if refund.TenantID != input.TenantID {
		return nil, domain.NewNotFound("refund %s not found", input.RefundID)
	}
	if input.ClaimAmount > refund.Amount {
		return nil, domain.NewValidation("claim amount %d exceeds refund amount %d", input.ClaimAmount, refund.Amount)
	}

	// One live case per refund and kind. Resolved cases do not block a
	// new one.
	existing, err := uc.CaseRepo.GetLiveCaseByRefundID(input.RefundID, input.Kind)
	if err != nil && !domain.IsKind(err, domain.ErrKindNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewInvalidState("refund %s already has an open %s case", input.RefundID, input.Kind)
	}

	now := time.Now()
	c := &domain.EscalationCase{
		ID:             uuid.New().String(),
		TenantID:       input.TenantID,
		RefundID:       input.RefundID,
		Kind:           input.Kind,
		Status:         domain.CaseOpen,
		CounterpartyID: input.CounterpartyID,
		ClaimAmount:    input.ClaimAmount,
		Reason:         input.Reason,
		OpenedBy:       input.OpenedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.CaseRepo.CreateCase(c); err != nil {
		return nil, err
	}

	if input.Kind == domain.KindDispute && !refund.IsDisputed {
		err = uc.RefundRepo.ProcessRefundTransition(refund.ID, refund.Status, func(r *domain.Refund) error {
			r.IsDisputed = true
			return nil
		}, nil)
		if err != nil {
			slog.Error("failed to flag refund as disputed", "refund_id", refund.ID, "error", err.Error())
		}
	}

	uc.recordCaseTransition(c)
	uc.publishCaseEvent(c, input.OpenedBy)
	slog.Info("escalation case opened",
		"case_id", c.ID,
		"refund_id", c.RefundID,
		"kind", c.Kind,
		"claim_amount", c.ClaimAmount)
	return escalationdto.ToCaseOutput(c), nil
}

func (uc *DefaultEscalationUsecase) Respond(input *escalationdto.RespondInput) error {
	if input.Notes == "" {
		return domain.NewValidation("response notes are required")
	}
	c, err := uc.guardedCase(input.TenantID, input.CaseID)
	if err != nil {
		return err
	}
	if !domain.CanTransitCase(c.Status, domain.CaseResponded) {
		return domain.NewInvalidState("case %s is %s and cannot receive a response", c.ID, c.Status)
	}

	c.Status = domain.CaseResponded
	c.ResponseNotes = input.Notes
	c.UpdatedAt = time.Now()
	if err := uc.CaseRepo.UpdateCase(c); err != nil {
		return err
	}

	uc.recordCaseTransition(c)
	uc.publishCaseEvent(c, input.ActorID)
	slog.Info("escalation case responded", "case_id", c.ID, "actor", input.ActorID)
	return nil
}

func (uc *DefaultEscalationUsecase) Resolve(input *escalationdto.ResolveInput) error {
	switch input.Resolution {
	case domain.ResolutionRecovered, domain.ResolutionWrittenOff,
		domain.ResolutionUpheld, domain.ResolutionDismissed:
	default:
		return domain.NewValidation("invalid resolution: %s", input.Resolution)
	}

	c, err := uc.guardedCase(input.TenantID, input.CaseID)
	if err != nil {
		return err
	}
	if !domain.CanTransitCase(c.Status, domain.CaseResolved) {
		return domain.NewInvalidState("case %s is %s and cannot be resolved", c.ID, c.Status)
	}
	if input.Resolution == domain.ResolutionRecovered {
		if input.SettlementAmount <= 0 {
			return domain.NewValidation("a recovered case requires a positive settlement amount")
		}
		if input.SettlementAmount > c.ClaimAmount {
			return domain.NewValidation("settlement %d exceeds claim %d", input.SettlementAmount, c.ClaimAmount)
		}
	}

	now := time.Now()
	c.Status = domain.CaseResolved
	c.Resolution = input.Resolution
	c.SettlementAmount = input.SettlementAmount
	c.ResolutionNotes = input.Notes
	c.ResolvedBy = input.ActorID
	c.ResolvedAt = &now
	c.UpdatedAt = now
	if err := uc.CaseRepo.UpdateCase(c); err != nil {
		return err
	}

	// A recovered vendor liability flows the settlement back into the
	// insurance fund.
	if c.Kind == domain.KindVendorLiability && input.Resolution == domain.ResolutionRecovered {
		err := uc.FundRepo.RecordFundTx(&domain.FundTx{
			ID:        uuid.New().String(),
			TenantID:  c.TenantID,
			RefundID:  c.RefundID,
			Kind:      domain.FundRecovery,
			Amount:    input.SettlementAmount,
			Notes:     "vendor liability recovery, case " + c.ID,
			CreatedAt: now,
		})
		if err != nil {
			slog.Error("failed to record fund recovery", "case_id", c.ID, "error", err.Error())
		}
	}

	if c.Kind == domain.KindDispute {
		if refund, loadErr := uc.RefundRepo.GetRefundByID(c.RefundID); loadErr == nil && refund.IsDisputed {
			err := uc.RefundRepo.ProcessRefundTransition(refund.ID, refund.Status, func(r *domain.Refund) error {
				r.IsDisputed = false
				return nil
			}, nil)
			if err != nil {
				slog.Error("failed to clear dispute flag", "refund_id", refund.ID, "error", err.Error())
			}
		}
	}

	uc.recordCaseTransition(c)
	uc.publishCaseEvent(c, input.ActorID)
	slog.Info("escalation case resolved",
		"case_id", c.ID,
		"resolution", c.Resolution,
		"settlement_amount", c.SettlementAmount)
	return nil
}

func (uc *DefaultEscalationUsecase) EscalateCase(input *escalationdto.EscalateCaseInput) error {
	if input.TargetActorID == "" {
		return domain.NewValidation("escalation target is required")
	}
	c, err := uc.guardedCase(input.TenantID, input.CaseID)
	if err != nil {
		return err
	}
	if !domain.CanTransitCase(c.Status, domain.CaseEscalated) {
		return domain.NewInvalidState("case %s is %s and cannot be escalated", c.ID, c.Status)
	}

	c.Status = domain.CaseEscalated
	c.EscalatedTo = input.TargetActorID
	c.UpdatedAt = time.Now()
	if err := uc.CaseRepo.UpdateCase(c); err != nil {
		return err
	}

	uc.recordCaseTransition(c)
	uc.publishCaseEvent(c, input.ActorID)
	slog.Info("escalation case escalated",
		"case_id", c.ID,
		"escalated_to", input.TargetActorID,
		"reason", input.Reason)
	return nil
}

func (uc *DefaultEscalationUsecase) GetCaseByID(tenantID, caseID string) (*escalationdto.CaseOutput, error) {
	c, err := uc.guardedCase(tenantID, caseID)
	if err != nil {
		return nil, err
	}
	return escalationdto.ToCaseOutput(c), nil
}

func (uc *DefaultEscalationUsecase) GetCases(input *escalationdto.ListCasesInput) (*escalationdto.ListCasesOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	cases, total, err := uc.CaseRepo.GetCases(input.TenantID, page, limit, input.Filters)
	if err != nil {
		return nil, err
	}
	out := &escalationdto.ListCasesOutput{
		Cases: make([]*escalationdto.CaseOutput, 0, len(cases)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for _, c := range cases {
		out.Cases = append(out.Cases, escalationdto.ToCaseOutput(c))
	}
	return out, nil
}
