package usecase

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"github.com/nusakarsa/refund-service/internal/domain"
	publisher "github.com/nusakarsa/refund-service/internal/infrastructure/kafka"
	refunddto "github.com/nusakarsa/refund-service/internal/usecase/dto/refund"
)

// MinRefundAmount is the floor in minor units below which a request is
// rejected outright.
const MinRefundAmount = 1000

// Amount thresholds that pull extra approval steps into the workflow.
const (
	managerThreshold   = 250000
	financeThreshold   = 1000000
	executiveThreshold = 5000000
)

// autoApproveLimit caps the amount a low-risk refund may be auto-approved
// for without entering the workflow.
const autoApproveLimit = 100000

func (uc *DefaultRefundUsecase) CreateRefundRequest(input *refunddto.CreateRefundInput) (*refunddto.RefundOutput, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	paid, currency, err := uc.Orders.PaidAmount(input.OrderID)
	if err != nil {
		return nil, err
	}
	alreadyRefunded, err := uc.RefundRepo.ActiveRefundTotal(input.OrderID)
	if err != nil {
		return nil, err
	}
	refundable := paid - alreadyRefunded
	if input.Amount > refundable {
		return nil, domain.NewValidation("refund amount %d exceeds refundable balance %d", input.Amount, refundable)
	}

	reference, err := newRefundReference()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	refund := &domain.Refund{
		ID:             uuid.New().String(),
		Reference:      reference,
		TenantID:       input.TenantID,
		OrderID:        input.OrderID,
		CustomerID:     input.CustomerID,
		Amount:         input.Amount,
		Currency:       currency,
		Method:         input.Method,
		Status:         domain.RefundPending,
		ReasonCategory: input.ReasonCategory,
		Reason:         input.Reason,
		ProcessingFee:  calculateProcessingFee(input.Amount, input.Method),
		RequestedBy:    input.RequestedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.RefundRepo.CreateRefund(refund); err != nil {
		return nil, err
	}

	if uc.shouldAutoApprove(refund) {
		err = uc.RefundRepo.ProcessRefundTransition(refund.ID, domain.RefundPending, func(r *domain.Refund) error {
			r.Status = domain.RefundApproved
			r.ApprovedBy = input.RequestedBy
			return nil
		}, nil)
		if err != nil {
			return nil, err
		}
		refund.Status = domain.RefundApproved
		slog.Info("refund auto-approved",
			"refund_id", refund.ID,
			"reason_category", refund.ReasonCategory,
			"amount", refund.Amount)
	} else {
		steps, err := uc.buildWorkflowSteps(refund)
		if err != nil {
			return nil, err
		}
		if err := uc.WorkflowRepo.CreateSteps(steps); err != nil {
			return nil, err
		}
		slog.Info("refund approval workflow initialized",
			"refund_id", refund.ID,
			"total_steps", len(steps))
	}

	uc.publishRefundEvent(refund, "requested", input.RequestedBy)
	uc.recordRefundRequested(refund)

	return refunddto.ToRefundOutput(refund), nil
}

func validateCreateInput(input *refunddto.CreateRefundInput) error {
	if input.TenantID == "" || input.OrderID == "" {
		return domain.NewValidation("tenant and order are required")
	}
	if input.Amount < MinRefundAmount {
		return domain.NewValidation("minimum refund amount is %d", int64(MinRefundAmount))
	}
	switch input.Method {
	case domain.MethodOriginal, domain.MethodBankTransfer, domain.MethodCash,
		domain.MethodStoreCredit, domain.MethodManual, domain.MethodDigitalWallet:
	default:
		return domain.NewValidation("invalid refund method: %s", input.Method)
	}
	switch input.ReasonCategory {
	case domain.ReasonDefectiveProduct, domain.ReasonWrongItem, domain.ReasonNotAsDescribed,
		domain.ReasonDuplicatePayment, domain.ReasonOrderCancellation,
		domain.ReasonFraudulent, domain.ReasonCustomerRequest:
	default:
		return domain.NewValidation("invalid reason category: %s", input.ReasonCategory)
	}
	if len(input.Reason) < 5 {
		return domain.NewValidation("refund reason is too short")
	}
	return nil
}

func newRefundReference() (string, error) {
	generate, err := nanoid.CustomASCII("0123456789ABCDEFGHIJKLMNPQRSTUVWXYZ", 10)
	if err != nil {
		return "", err
	}
	return "REF-" + generate(), nil
}

func calculateProcessingFee(amount int64, method domain.RefundMethod) int64 {
	switch method {
	case domain.MethodOriginal, domain.MethodDigitalWallet:
		return amount * 25 / 1000 // 2.5% gateway fee
	case domain.MethodBankTransfer:
		return 5000
	case domain.MethodManual:
		return 10000
	default:
		return 0
	}
}

func reasonApprovalLevel(category domain.ReasonCategory) domain.ApprovalLevel {
	switch category {
	case domain.ReasonFraudulent:
		return domain.LevelHigh
	case domain.ReasonNotAsDescribed, domain.ReasonDefectiveProduct:
		return domain.LevelMedium
	default:
		return domain.LevelLow
	}
}

func (uc *DefaultRefundUsecase) shouldAutoApprove(refund *domain.Refund) bool {
	if refund.IsDisputed || refund.Amount >= autoApproveLimit {
		return false
	}
	return refund.ReasonCategory == domain.ReasonDuplicatePayment ||
		refund.ReasonCategory == domain.ReasonOrderCancellation
}

type stepSpec struct {
	name     string
	level    domain.ApprovalLevel
	role     string
	slaHours int
}

// buildWorkflowSteps derives the approval pipeline from the refund's
// amount and reason. Initial review is always present; higher levels
// stack on top as the amount or risk grows.
func (uc *DefaultRefundUsecase) buildWorkflowSteps(refund *domain.Refund) ([]*domain.WorkflowStep, error) {
	level := reasonApprovalLevel(refund.ReasonCategory)

	specs := []stepSpec{
		{name: "initial_review", level: domain.LevelLow, role: domain.RoleCustomerService, slaHours: 24},
	}
	if level != domain.LevelLow || refund.Amount >= managerThreshold {
		specs = append(specs, stepSpec{name: "manager_approval", level: domain.LevelMedium, role: domain.RoleManager, slaHours: 48})
	}
	if level == domain.LevelHigh || refund.Amount >= financeThreshold {
		specs = append(specs, stepSpec{name: "finance_approval", level: domain.LevelHigh, role: domain.RoleFinanceManager, slaHours: 72})
	}
	if refund.Amount >= executiveThreshold {
		specs = append(specs, stepSpec{name: "executive_approval", level: domain.LevelCritical, role: domain.RoleExecutive, slaHours: 96})
	}

	now := time.Now()
	steps := make([]*domain.WorkflowStep, len(specs))
	for i, spec := range specs {
		assignee, err := uc.Approvers.FindByRole(refund.TenantID, spec.role)
		if err != nil {
			return nil, err
		}
		steps[i] = &domain.WorkflowStep{
			ID:            uuid.New().String(),
			RefundID:      refund.ID,
			TenantID:      refund.TenantID,
			StepNumber:    i + 1,
			TotalSteps:    len(specs),
			StepName:      spec.name,
			ApprovalLevel: spec.level,
			AssignedTo:    assignee,
			AssignedAt:    now,
			DueAt:         now.Add(time.Duration(spec.slaHours) * time.Hour),
			SLAHours:      spec.slaHours,
			Decision:      domain.DecisionPending,
			IsCurrentStep: i == 0,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
	}
	return steps, nil
}

func (uc *DefaultRefundUsecase) publishRefundEvent(refund *domain.Refund, stage, actorID string) {
	if uc.Publisher == nil {
		return
	}
	go func(event publisher.RefundEvent) {
		msg, err := event.Message()
		if err != nil {
			slog.Error("failed to marshal refund event", "stage", stage, "error", err.Error())
			return
		}
		if err := uc.Publisher.Publish(publisher.TopicRefundEvents, msg); err != nil {
			slog.Error("failed to publish refund event", "stage", stage, "error", err.Error())
		}
	}(publisher.NewRefundEvent(refund, stage, actorID))
}
