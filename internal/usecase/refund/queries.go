package usecase

import (
	"github.com/nusakarsa/refund-service/internal/domain"
	refunddto "github.com/nusakarsa/refund-service/internal/usecase/dto/refund"
)

// GetRefundByID enforces tenant ownership: a refund belonging to another
// tenant is reported as not found, never as forbidden.
func (uc *DefaultRefundUsecase) GetRefundByID(tenantID, refundID string) (*domain.Refund, error) {
	refund, err := uc.RefundRepo.GetRefundByID(refundID)
	if err != nil {
		return nil, err
	}
	if refund.TenantID != tenantID {
		return nil, domain.NewNotFound("refund %s not found", refundID)
	}
	return refund, nil
}

func (uc *DefaultRefundUsecase) GetRefunds(input *refunddto.ListRefundsInput) (*refunddto.ListRefundsOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	refunds, total, err := uc.RefundRepo.GetRefunds(input.TenantID, page, limit, input.Filters)
	if err != nil {
		return nil, err
	}

	out := &refunddto.ListRefundsOutput{
		Refunds: make([]*refunddto.RefundOutput, 0, len(refunds)),
		Total:   total,
		Page:    page,
		Limit:   limit,
	}
	for _, refund := range refunds {
		out.Refunds = append(out.Refunds, refunddto.ToRefundOutput(refund))
	}
	return out, nil
}

func (uc *DefaultRefundUsecase) GetWorkflowSteps(tenantID, refundID string) ([]*refunddto.StepOutput, error) {
	if _, err := uc.GetRefundByID(tenantID, refundID); err != nil {
		return nil, err
	}
	steps, err := uc.WorkflowRepo.GetSteps(refundID)
	if err != nil {
		return nil, err
	}
	out := make([]*refunddto.StepOutput, 0, len(steps))
	for _, step := range steps {
		out = append(out, refunddto.ToStepOutput(step))
	}
	return out, nil
}

// GetPendingWork lists the open workflow steps waiting on an actor.
func (uc *DefaultRefundUsecase) GetPendingWork(tenantID, actorID string) ([]*refunddto.StepOutput, error) {
	steps, err := uc.WorkflowRepo.GetPendingStepsByAssignee(tenantID, actorID)
	if err != nil {
		return nil, err
	}
	out := make([]*refunddto.StepOutput, 0, len(steps))
	for _, step := range steps {
		out = append(out, refunddto.ToStepOutput(step))
	}
	return out, nil
}
