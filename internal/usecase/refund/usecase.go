package usecase

import (
	"context"

	"github.com/nusakarsa/refund-service/internal/domain"
	"github.com/nusakarsa/refund-service/internal/infrastructure/metrics"
	refunddto "github.com/nusakarsa/refund-service/internal/usecase/dto/refund"
)

type RefundUsecase interface {
	CreateRefundRequest(input *refunddto.CreateRefundInput) (*refunddto.RefundOutput, error)

	ApproveStep(input *refunddto.DecideStepInput) error
	RejectStep(input *refunddto.DecideStepInput) error
	EscalateStep(input *refunddto.EscalateStepInput) error
	BulkApprove(input *refunddto.BulkDecideInput) *refunddto.BulkResult
	CancelRefund(tenantID, refundID, actorID string) error

	ProcessWithGateway(ctx context.Context, input *refunddto.ProcessRefundInput) error
	RetryProcessing(ctx context.Context, input *refunddto.ProcessRefundInput) error
	RetryBlockedReasons(refund *domain.Refund) []string
	CheckRefundStatus(ctx context.Context, tenantID, refundID string) (domain.GatewayState, error)
	ProcessManual(input *refunddto.ManualRefundInput) error
	BulkProcess(ctx context.Context, input *refunddto.BulkDecideInput) *refunddto.BulkResult

	GetRefundByID(tenantID, refundID string) (*domain.Refund, error)
	GetRefunds(input *refunddto.ListRefundsInput) (*refunddto.ListRefundsOutput, error)
	GetWorkflowSteps(tenantID, refundID string) ([]*refunddto.StepOutput, error)
	GetPendingWork(tenantID, actorID string) ([]*refunddto.StepOutput, error)

	ProcessOverdueSteps() (int, error)
}

type DefaultRefundUsecase struct {
	RefundRepo   domain.RefundRepository
	WorkflowRepo domain.WorkflowRepository
	Orders       domain.OrderReader
	Approvers    domain.ApproverDirectory
	Gateway      domain.PaymentGateway
	FundRepo     domain.InsuranceFundRepository
	Publisher    domain.PublisherPort
	Metrics      *metrics.RefundMetrics
}

func NewDefaultRefundUsecase(
	refundRepo domain.RefundRepository,
	workflowRepo domain.WorkflowRepository,
	orders domain.OrderReader,
	approvers domain.ApproverDirectory,
	gateway domain.PaymentGateway,
	fundRepo domain.InsuranceFundRepository,
	pub domain.PublisherPort,
	refundMetrics *metrics.RefundMetrics) *DefaultRefundUsecase {

	return &DefaultRefundUsecase{
		RefundRepo:   refundRepo,
		WorkflowRepo: workflowRepo,
		Orders:       orders,
		Approvers:    approvers,
		Gateway:      gateway,
		FundRepo:     fundRepo,
		Publisher:    pub,
		Metrics:      refundMetrics,
	}
}
