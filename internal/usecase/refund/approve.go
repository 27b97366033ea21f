package usecase

import (
	"log/slog"
	"time"

	"github.com/nusakarsa/refund-service/internal/domain"
	refunddto "github.com/nusakarsa/refund-service/internal/usecase/dto/refund"
)

func (uc *DefaultRefundUsecase) ApproveStep(input *refunddto.DecideStepInput) error {
	step, err := uc.guardedStep(input.TenantID, input.StepID, input.ActorID)
	if err != nil {
		return err
	}

	now := time.Now()
	decide := func(s *domain.WorkflowStep) error {
		if s.IsCompleted || s.Decision != domain.DecisionPending {
			return domain.NewInvalidState("workflow step %s is already decided", s.ID)
		}
		s.Decision = domain.DecisionApproved
		s.DecidedBy = input.ActorID
		s.DecidedAt = &now
		s.DecisionReason = input.Reason
		s.IsCompleted = true
		s.IsCurrentStep = false
		return nil
	}

	if step.StepNumber == step.TotalSteps {
		// Last gate: finalizing the refund and closing the step must
		// commit together. The refund row lock serializes rival
		// approvals here.
		if err := decide(step); err != nil {
			return err
		}
		err = uc.RefundRepo.ProcessRefundTransition(step.RefundID, domain.RefundPending, func(r *domain.Refund) error {
			r.Status = domain.RefundApproved
			r.ApprovedBy = input.ActorID
			return nil
		}, func() error {
			return uc.WorkflowRepo.UpdateStep(step)
		})
		if err != nil {
			return err
		}
		uc.recordStepDecided(step.TenantID, domain.DecisionApproved)
		uc.recordRefundApproved(step.TenantID)
		refund, err := uc.RefundRepo.GetRefundByID(step.RefundID)
		if err == nil {
			uc.publishRefundEvent(refund, "approved", input.ActorID)
		}
		slog.Info("refund workflow completed", "refund_id", step.RefundID, "approved", true)
		return nil
	}

	// Intermediate gate: decide under the step row lock so rival
	// approvals of the same step cannot both commit.
	if err := uc.WorkflowRepo.ProcessStepTransition(step.ID, decide); err != nil {
		return err
	}
	if err := uc.activateNextStep(step); err != nil {
		return err
	}
	uc.recordStepDecided(step.TenantID, domain.DecisionApproved)
	slog.Info("workflow advanced to next step",
		"refund_id", step.RefundID,
		"completed_step", step.StepNumber,
		"decided_by", input.ActorID)
	return nil
}

func (uc *DefaultRefundUsecase) RejectStep(input *refunddto.DecideStepInput) error {
	step, err := uc.guardedStep(input.TenantID, input.StepID, input.ActorID)
	if err != nil {
		return err
	}
	if input.Reason == "" {
		return domain.NewValidation("rejection reason is required")
	}

	now := time.Now()
	step.Decision = domain.DecisionRejected
	step.DecidedBy = input.ActorID
	step.DecidedAt = &now
	step.DecisionReason = input.Reason
	step.IsCompleted = true
	step.IsCurrentStep = false

	// Any rejection halts the whole pipeline; remaining steps are never
	// evaluated.
	err = uc.RefundRepo.ProcessRefundTransition(step.RefundID, domain.RefundPending, func(r *domain.Refund) error {
		r.Status = domain.RefundRejected
		return nil
	}, func() error {
		if err := uc.WorkflowRepo.UpdateStep(step); err != nil {
			return err
		}
		return uc.WorkflowRepo.CompleteRemaining(step.RefundID)
	})
	if err != nil {
		return err
	}

	uc.recordStepDecided(step.TenantID, domain.DecisionRejected)
	uc.recordRefundRejected(step.TenantID)
	refund, err := uc.RefundRepo.GetRefundByID(step.RefundID)
	if err == nil {
		uc.publishRefundEvent(refund, "rejected", input.ActorID)
	}
	slog.Info("refund workflow completed", "refund_id", step.RefundID, "approved", false)
	return nil
}

func (uc *DefaultRefundUsecase) EscalateStep(input *refunddto.EscalateStepInput) error {
	step, err := uc.WorkflowRepo.GetStepByID(input.StepID)
	if err != nil {
		return err
	}
	if step.TenantID != input.TenantID {
		return domain.NewNotFound("workflow step %s not found", input.StepID)
	}
	if !step.CanBeEscalated() {
		return domain.NewInvalidState("workflow step %s cannot be escalated", input.StepID)
	}

	targetActor := input.TargetActorID
	if targetActor == "" {
		// No explicit target: hand the step to the next authority level.
		targetActor, err = uc.Approvers.FindByRole(step.TenantID, domain.EscalationRole(step.ApprovalLevel))
		if err != nil {
			return err
		}
	}

	err = uc.WorkflowRepo.ProcessStepTransition(step.ID, func(s *domain.WorkflowStep) error {
		if !s.CanBeEscalated() {
			return domain.NewInvalidState("workflow step %s cannot be escalated", s.ID)
		}
		s.EscalatedTo = targetActor
		s.AssignedTo = targetActor
		s.EscalationReason = input.Reason
		s.EscalationCount++
		s.AssignedAt = time.Now()
		return nil
	})
	if err != nil {
		return err
	}

	uc.recordStepEscalated(step.TenantID)
	slog.Info("workflow step escalated",
		"step_id", step.ID,
		"escalated_to", targetActor,
		"reason", input.Reason)
	return nil
}

// BulkApprove applies ApproveStep to each refund's current step. Items
// succeed or fail independently; there is no cross-refund rollback.
func (uc *DefaultRefundUsecase) BulkApprove(input *refunddto.BulkDecideInput) *refunddto.BulkResult {
	result := &refunddto.BulkResult{Total: len(input.RefundIDs)}

	for _, refundID := range input.RefundIDs {
		step, err := uc.WorkflowRepo.GetCurrentStep(refundID)
		if err != nil {
			result.Failed++
			result.Results = append(result.Results, refunddto.BulkItemResult{
				RefundID: refundID, Success: false, Message: err.Error(),
			})
			continue
		}
		err = uc.ApproveStep(&refunddto.DecideStepInput{
			TenantID: input.TenantID,
			StepID:   step.ID,
			ActorID:  input.ActorID,
			Reason:   input.Reason,
		})
		if err != nil {
			result.Failed++
			result.Results = append(result.Results, refunddto.BulkItemResult{
				RefundID: refundID, Success: false, Message: err.Error(),
			})
			continue
		}
		result.Successful++
		result.Results = append(result.Results, refunddto.BulkItemResult{
			RefundID: refundID, Success: true,
		})
	}

	slog.Info("bulk approve completed",
		"total", result.Total,
		"successful", result.Successful,
		"failed", result.Failed)
	return result
}

func (uc *DefaultRefundUsecase) CancelRefund(tenantID, refundID, actorID string) error {
	refund, err := uc.GetRefundByID(tenantID, refundID)
	if err != nil {
		return err
	}
	err = uc.RefundRepo.ProcessRefundTransition(refund.ID, domain.RefundPending, func(r *domain.Refund) error {
		r.Status = domain.RefundCancelled
		return nil
	}, func() error {
		return uc.WorkflowRepo.CompleteRemaining(refund.ID)
	})
	if err != nil {
		return err
	}
	refund.Status = domain.RefundCancelled
	uc.publishRefundEvent(refund, "cancelled", actorID)
	return nil
}

// guardedStep loads a step and verifies tenant ownership, assignment and
// that the step is still open for a decision.
func (uc *DefaultRefundUsecase) guardedStep(tenantID, stepID, actorID string) (*domain.WorkflowStep, error) {
	step, err := uc.WorkflowRepo.GetStepByID(stepID)
	if err != nil {
		return nil, err
	}
	if step.TenantID != tenantID {
		return nil, domain.NewNotFound("workflow step %s not found", stepID)
	}
	if step.IsCompleted || step.Decision != domain.DecisionPending {
		return nil, domain.NewInvalidState("workflow step %s is already decided", stepID)
	}
	if !step.IsCurrentStep {
		return nil, domain.NewInvalidState("workflow step %s is not the current step", stepID)
	}
	if step.AssignedTo != actorID {
		return nil, domain.NewUnauthorized("actor %s is not assigned to step %s", actorID, stepID)
	}
	return step, nil
}

func (uc *DefaultRefundUsecase) activateNextStep(completed *domain.WorkflowStep) error {
	steps, err := uc.WorkflowRepo.GetSteps(completed.RefundID)
	if err != nil {
		return err
	}
	for _, next := range steps {
		if next.IsCompleted || next.StepNumber <= completed.StepNumber {
			continue
		}
		now := time.Now()
		next.IsCurrentStep = true
		next.AssignedAt = now
		next.DueAt = now.Add(time.Duration(next.SLAHours) * time.Hour)
		return uc.WorkflowRepo.UpdateStep(next)
	}
	return domain.NewInvalidState("no next step to activate for refund %s", completed.RefundID)
}
