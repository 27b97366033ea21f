package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nusakarsa/refund-service/internal/domain"
	refunddto "github.com/nusakarsa/refund-service/internal/usecase/dto/refund"
)

func (uc *DefaultRefundUsecase) ProcessWithGateway(ctx context.Context, input *refunddto.ProcessRefundInput) error {
	refund, err := uc.GetRefundByID(input.TenantID, input.RefundID)
	if err != nil {
		return err
	}

	now := time.Now()
	err = uc.RefundRepo.ProcessRefundTransition(refund.ID, domain.RefundApproved, func(r *domain.Refund) error {
		r.Status = domain.RefundProcessing
		r.ProcessedBy = input.ActorID
		r.ProcessedAt = &now
		return nil
	}, nil)
	if err != nil {
		return err
	}

	uc.publishRefundEvent(refund, "processed", input.ActorID)
	return uc.runGateway(ctx, refund.ID, input.ActorID)
}

// runGateway executes the gateway call for a refund already in
// PROCESSING and commits the terminal outcome. A transport failure is
// recorded as a FAILED attempt with SYSTEM_ERROR so it stays retryable.
func (uc *DefaultRefundUsecase) runGateway(ctx context.Context, refundID, actorID string) error {
	refund, err := uc.RefundRepo.GetRefundByID(refundID)
	if err != nil {
		return err
	}

	started := time.Now()
	result, err := uc.Gateway.Execute(ctx, refund)
	if err != nil {
		uc.observeGatewayCall("execute", started, "error")
		if failErr := uc.failRefund(refund, actorID, &domain.GatewayResult{
			ErrorCode:    domain.GatewayCodeSystemError,
			ErrorMessage: err.Error(),
		}); failErr != nil {
			return failErr
		}
		return domain.NewGatewayError(err)
	}

	if !result.Success {
		uc.observeGatewayCall("execute", started, "failure")
		return uc.failRefund(refund, actorID, result)
	}
	uc.observeGatewayCall("execute", started, "success")
	return uc.completeRefund(refund, actorID, result)
}

func (uc *DefaultRefundUsecase) completeRefund(refund *domain.Refund, actorID string, result *domain.GatewayResult) error {
	now := time.Now()
	err := uc.RefundRepo.ProcessRefundTransition(refund.ID, domain.RefundProcessing, func(r *domain.Refund) error {
		r.Status = domain.RefundCompleted
		r.GatewayRefundID = result.GatewayRefundID
		r.GatewayResponse = result.Raw
		r.GatewayErrorCode = ""
		r.FailureReason = ""
		if result.Fee > 0 {
			r.ProcessingFee = result.Fee
		}
		r.CompletedAt = &now
		*refund = *r
		return nil
	}, func() error {
		return uc.FundRepo.RecordFundTx(&domain.FundTx{
			ID:        uuid.New().String(),
			TenantID:  refund.TenantID,
			RefundID:  refund.ID,
			Kind:      domain.FundPayout,
			Amount:    -refund.Amount,
			Notes:     "gateway refund " + result.GatewayRefundID,
			CreatedAt: now,
		})
	})
	if err != nil {
		return err
	}

	uc.recordRefundCompleted(refund)
	uc.publishRefundEvent(refund, "completed", actorID)
	slog.Info("refund completed",
		"refund_id", refund.ID,
		"gateway_refund_id", result.GatewayRefundID,
		"amount", refund.Amount,
		"fee", refund.ProcessingFee)
	return nil
}

func (uc *DefaultRefundUsecase) failRefund(refund *domain.Refund, actorID string, result *domain.GatewayResult) error {
	now := time.Now()
	err := uc.RefundRepo.ProcessRefundTransition(refund.ID, domain.RefundProcessing, func(r *domain.Refund) error {
		r.Status = domain.RefundFailed
		r.GatewayErrorCode = result.ErrorCode
		r.FailureReason = result.ErrorMessage
		r.GatewayResponse = result.Raw
		r.FailedAt = &now
		*refund = *r
		return nil
	}, nil)
	if err != nil {
		return err
	}

	uc.recordRefundFailed(refund.TenantID, result.ErrorCode)
	uc.publishRefundEvent(refund, "failed", actorID)
	slog.Error("refund failed at gateway",
		"refund_id", refund.ID,
		"error_code", result.ErrorCode,
		"retry_count", refund.RetryCount)
	return nil
}

// RetryBlockedReasons itemizes everything preventing a retry. An empty
// slice means the refund may be retried.
func (uc *DefaultRefundUsecase) RetryBlockedReasons(refund *domain.Refund) []string {
	var reasons []string
	if refund.Status != domain.RefundFailed {
		reasons = append(reasons, fmt.Sprintf("refund is %s, only failed refunds can be retried", refund.Status))
	}
	if refund.RetryCount >= domain.MaxRefundRetries {
		reasons = append(reasons, fmt.Sprintf("retry limit of %d attempts reached", domain.MaxRefundRetries))
	}
	if refund.GatewayErrorCode != "" && !domain.IsRetryableGatewayCode(refund.GatewayErrorCode) {
		reasons = append(reasons, fmt.Sprintf("gateway error %s is not retryable", refund.GatewayErrorCode))
	}
	return reasons
}

func (uc *DefaultRefundUsecase) RetryProcessing(ctx context.Context, input *refunddto.ProcessRefundInput) error {
	refund, err := uc.GetRefundByID(input.TenantID, input.RefundID)
	if err != nil {
		return err
	}

	if reasons := uc.RetryBlockedReasons(refund); len(reasons) > 0 {
		uc.recordRetryBlocked(refund.TenantID)
		return domain.NewRetryBlocked(reasons)
	}

	now := time.Now()
	err = uc.RefundRepo.ProcessRefundTransition(refund.ID, domain.RefundFailed, func(r *domain.Refund) error {
		// The optimistic check above may be stale; re-verify under the lock.
		if blocked := uc.RetryBlockedReasons(r); len(blocked) > 0 {
			return domain.NewRetryBlocked(blocked)
		}
		r.Status = domain.RefundProcessing
		r.RetryCount++
		r.ProcessedBy = input.ActorID
		r.ProcessedAt = &now
		return nil
	}, nil)
	if err != nil {
		return err
	}

	uc.recordRetry(refund.TenantID)
	refund.Status = domain.RefundProcessing
	uc.publishRefundEvent(refund, "retried", input.ActorID)
	slog.Info("refund retry started",
		"refund_id", refund.ID,
		"attempt", refund.RetryCount+1,
		"actor", input.ActorID)

	return uc.runGateway(ctx, refund.ID, input.ActorID)
}

// CheckRefundStatus reconciles a processing refund against the gateway.
// Refunds already in a terminal state are reported without a gateway
// round trip.
func (uc *DefaultRefundUsecase) CheckRefundStatus(ctx context.Context, tenantID, refundID string) (domain.GatewayState, error) {
	refund, err := uc.GetRefundByID(tenantID, refundID)
	if err != nil {
		return "", err
	}

	switch refund.Status {
	case domain.RefundCompleted:
		return domain.GatewayStateCompleted, nil
	case domain.RefundFailed:
		return domain.GatewayStateFailed, nil
	case domain.RefundProcessing:
	default:
		return domain.GatewayStatePending, nil
	}

	started := time.Now()
	state, err := uc.Gateway.CheckStatus(ctx, refund)
	if err != nil {
		uc.observeGatewayCall("check_status", started, "error")
		return "", domain.NewGatewayError(err)
	}
	uc.observeGatewayCall("check_status", started, "success")

	switch state {
	case domain.GatewayStateCompleted:
		err = uc.completeRefund(refund, "system", &domain.GatewayResult{
			Success:         true,
			GatewayRefundID: refund.GatewayRefundID,
			Raw:             refund.GatewayResponse,
		})
	case domain.GatewayStateFailed:
		err = uc.failRefund(refund, "system", &domain.GatewayResult{
			ErrorCode:    domain.GatewayCodeSystemError,
			ErrorMessage: "gateway reported the refund as failed",
		})
	}
	if err != nil {
		return "", err
	}
	return state, nil
}

// ProcessManual settles a refund outside the gateway. The operator must
// confirm explicitly and supply the external payment reference.
func (uc *DefaultRefundUsecase) ProcessManual(input *refunddto.ManualRefundInput) error {
	if !input.Confirmed {
		return domain.NewValidation("manual processing requires explicit confirmation")
	}
	if input.Reference == "" {
		return domain.NewValidation("manual processing requires a payment reference")
	}

	refund, err := uc.GetRefundByID(input.TenantID, input.RefundID)
	if err != nil {
		return err
	}

	now := time.Now()
	err = uc.RefundRepo.ProcessRefundTransition(refund.ID, domain.RefundApproved, func(r *domain.Refund) error {
		r.Status = domain.RefundCompleted
		r.ProcessingFee = 0
		r.GatewayResponse = fmt.Sprintf(`{"manual":true,"reference":%q,"notes":%q}`, input.Reference, input.Notes)
		r.ProcessedBy = input.ActorID
		r.ProcessedAt = &now
		r.CompletedAt = &now
		*refund = *r
		return nil
	}, func() error {
		return uc.FundRepo.RecordFundTx(&domain.FundTx{
			ID:        uuid.New().String(),
			TenantID:  refund.TenantID,
			RefundID:  refund.ID,
			Kind:      domain.FundPayout,
			Amount:    -refund.Amount,
			Notes:     "manual refund " + input.Reference,
			CreatedAt: now,
		})
	})
	if err != nil {
		return err
	}

	uc.recordRefundCompleted(refund)
	uc.publishRefundEvent(refund, "completed", input.ActorID)
	slog.Info("refund settled manually",
		"refund_id", refund.ID,
		"reference", input.Reference,
		"actor", input.ActorID)
	return nil
}

// BulkProcess runs the gateway for each approved refund independently.
func (uc *DefaultRefundUsecase) BulkProcess(ctx context.Context, input *refunddto.BulkDecideInput) *refunddto.BulkResult {
	result := &refunddto.BulkResult{Total: len(input.RefundIDs)}

	for _, refundID := range input.RefundIDs {
		err := uc.ProcessWithGateway(ctx, &refunddto.ProcessRefundInput{
			TenantID: input.TenantID,
			RefundID: refundID,
			ActorID:  input.ActorID,
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

	slog.Info("bulk processing completed",
		"total", result.Total,
		"successful", result.Successful,
		"failed", result.Failed)
	return result
}
