package mappers

import (
	"github.com/nusakarsa/refund-service/internal/domain"
	"github.com/nusakarsa/refund-service/internal/infrastructure/postgres/models"
)

func ToDomainStep(model *models.WorkflowStepModel) *domain.WorkflowStep {
	return &domain.WorkflowStep{
		ID:               model.ID,
		RefundID:         model.RefundID,
		TenantID:         model.TenantID,
		StepNumber:       model.StepNumber,
		TotalSteps:       model.TotalSteps,
		StepName:         model.StepName,
		ApprovalLevel:    domain.ApprovalLevel(model.ApprovalLevel),
		AssignedTo:       model.AssignedTo,
		AssignedAt:       model.AssignedAt,
		DueAt:            model.DueAt,
		SLAHours:         model.SLAHours,
		Decision:         domain.StepDecision(model.Decision),
		DecidedBy:        model.DecidedBy,
		DecidedAt:        model.DecidedAt,
		DecisionReason:   model.DecisionReason,
		IsCurrentStep:    model.IsCurrentStep,
		IsCompleted:      model.IsCompleted,
		IsOverdue:        model.IsOverdue,
		EscalatedTo:      model.EscalatedTo,
		EscalationReason: model.EscalationReason,
		EscalationCount:  model.EscalationCount,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

func ToGORMStep(step *domain.WorkflowStep) *models.WorkflowStepModel {
	return &models.WorkflowStepModel{
		ID:               step.ID,
		RefundID:         step.RefundID,
		TenantID:         step.TenantID,
		StepNumber:       step.StepNumber,
		TotalSteps:       step.TotalSteps,
		StepName:         step.StepName,
		ApprovalLevel:    string(step.ApprovalLevel),
		AssignedTo:       step.AssignedTo,
		AssignedAt:       step.AssignedAt,
		DueAt:            step.DueAt,
		SLAHours:         step.SLAHours,
		Decision:         string(step.Decision),
		DecidedBy:        step.DecidedBy,
		DecidedAt:        step.DecidedAt,
		DecisionReason:   step.DecisionReason,
		IsCurrentStep:    step.IsCurrentStep,
		IsCompleted:      step.IsCompleted,
		IsOverdue:        step.IsOverdue,
		EscalatedTo:      step.EscalatedTo,
		EscalationReason: step.EscalationReason,
		EscalationCount:  step.EscalationCount,
		CreatedAt:        step.CreatedAt,
		UpdatedAt:        step.UpdatedAt,
	}
}
