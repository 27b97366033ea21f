package usecase

import (
	"log/slog"
	"time"

	refunddto "github.com/nusakarsa/refund-service/internal/usecase/dto/refund"
)

// autoEscalateAfter is how long past its deadline a step may sit before
// the sweep reassigns it to the next authority level.
const autoEscalateAfter = 48 * time.Hour

// ProcessOverdueSteps marks SLA breaches and auto-escalates steps that
// stayed overdue too long. It returns the number of steps touched.
func (uc *DefaultRefundUsecase) ProcessOverdueSteps() (int, error) {
	now := time.Now()
	steps, err := uc.WorkflowRepo.FindOverdueSteps(now)
	if err != nil {
		return 0, err
	}

	touched := 0
	for _, step := range steps {
		if !step.IsOverdue {
			step.IsOverdue = true
			if err := uc.WorkflowRepo.UpdateStep(step); err != nil {
				slog.Error("failed to mark step overdue", "step_id", step.ID, "error", err.Error())
				continue
			}
			uc.recordStepOverdue(step.TenantID)
			touched++
		}

		if now.Sub(step.DueAt) >= autoEscalateAfter && step.CanBeEscalated() {
			err := uc.EscalateStep(&refunddto.EscalateStepInput{
				TenantID: step.TenantID,
				StepID:   step.ID,
				ActorID:  "system",
				Reason:   "sla breach auto-escalation",
			})
			if err != nil {
				slog.Error("failed to auto-escalate overdue step", "step_id", step.ID, "error", err.Error())
				continue
			}
			touched++
		}
	}

	if touched > 0 {
		slog.Info("overdue sweep completed", "steps_touched", touched)
	}
	return touched, nil
}
