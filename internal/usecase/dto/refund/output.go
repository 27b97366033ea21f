package refunddto

import (
	"time"

	"github.com/nusakarsa/refund-service/internal/domain"
)

type RefundOutput struct {
	ID               string              `json:"id"`
	Reference        string              `json:"reference"`
	OrderID          string              `json:"order_id"`
	CustomerID       string              `json:"customer_id"`
	Amount           int64               `json:"amount"`
	Currency         string              `json:"currency"`
	Method           string              `json:"method"`
	Status           domain.RefundStatus `json:"status"`
	ReasonCategory   string              `json:"reason_category"`
	Reason           string              `json:"reason"`
	IsDisputed       bool                `json:"is_disputed"`
	ProcessingFee    int64               `json:"processing_fee"`
	RetryCount       int                 `json:"retry_count"`
	GatewayRefundID  string              `json:"gateway_refund_id,omitempty"`
	GatewayErrorCode string              `json:"gateway_error_code,omitempty"`
	FailureReason    string              `json:"failure_reason,omitempty"`
	ProcessedAt      *time.Time          `json:"processed_at,omitempty"`
	CompletedAt      *time.Time          `json:"completed_at,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
}

func ToRefundOutput(refund *domain.Refund) *RefundOutput {
	return &RefundOutput{
		ID:               refund.ID,
		Reference:        refund.Reference,
		OrderID:          refund.OrderID,
		CustomerID:       refund.CustomerID,
		Amount:           refund.Amount,
		Currency:         refund.Currency,
		Method:           string(refund.Method),
		Status:           refund.Status,
		ReasonCategory:   string(refund.ReasonCategory),
		Reason:           refund.Reason,
		IsDisputed:       refund.IsDisputed,
		ProcessingFee:    refund.ProcessingFee,
		RetryCount:       refund.RetryCount,
		GatewayRefundID:  refund.GatewayRefundID,
		GatewayErrorCode: refund.GatewayErrorCode,
		FailureReason:    refund.FailureReason,
		ProcessedAt:      refund.ProcessedAt,
		CompletedAt:      refund.CompletedAt,
		CreatedAt:        refund.CreatedAt,
	}
}

type StepOutput struct {
	ID            string     `json:"id"`
	RefundID      string     `json:"refund_id"`
	StepNumber    int        `json:"step_number"`
	TotalSteps    int        `json:"total_steps"`
	StepName      string     `json:"step_name"`
	ApprovalLevel string     `json:"approval_level"`
	AssignedTo    string     `json:"assigned_to"`
	DueAt         time.Time  `json:"due_at"`
	Decision      string     `json:"decision"`
	DecidedBy     string     `json:"decided_by,omitempty"`
	DecidedAt     *time.Time `json:"decided_at,omitempty"`
	IsCurrentStep bool       `json:"is_current_step"`
	IsCompleted   bool       `json:"is_completed"`
	IsOverdue     bool       `json:"is_overdue"`
	EscalatedTo   string     `json:"escalated_to,omitempty"`
}

func ToStepOutput(step *domain.WorkflowStep) *StepOutput {
	return &StepOutput{
		ID:            step.ID,
		RefundID:      step.RefundID,
		StepNumber:    step.StepNumber,
		TotalSteps:    step.TotalSteps,
		StepName:      step.StepName,
		ApprovalLevel: string(step.ApprovalLevel),
		AssignedTo:    step.AssignedTo,
		DueAt:         step.DueAt,
		Decision:      string(step.Decision),
		DecidedBy:     step.DecidedBy,
		DecidedAt:     step.DecidedAt,
		IsCurrentStep: step.IsCurrentStep,
		IsCompleted:   step.IsCompleted,
		IsOverdue:     step.IsOverdue,
		EscalatedTo:   step.EscalatedTo,
	}
}

// BulkItemResult reports one refund's outcome inside a bulk operation.
// Bulk operations never roll back across items.
type BulkItemResult struct {
	RefundID string `json:"refund_id"`
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
}

type BulkResult struct {
	Total      int              `json:"total"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Results    []BulkItemResult `json:"results"`
}

type ListRefundsOutput struct {
	Refunds []*RefundOutput `json:"refunds"`
	Total   int64           `json:"total"`
	Page    int64           `json:"page"`
	Limit   int64           `json:"limit"`
}
