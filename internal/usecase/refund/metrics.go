package usecase

import (
	"time"

	"github.com/nusakarsa/refund-service/internal/domain"
)

// Metric recorders tolerate a nil Metrics so the usecase can run without
// a Prometheus registry.

func (uc *DefaultRefundUsecase) recordRefundRequested(refund *domain.Refund) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RefundsRequestedTotal.WithLabelValues(
		refund.TenantID, string(refund.Method), string(refund.ReasonCategory),
	).Inc()
	uc.Metrics.RefundsRequestedAmountTotal.WithLabelValues(
		refund.TenantID, refund.Currency,
	).Add(float64(refund.Amount))
}

func (uc *DefaultRefundUsecase) recordStepDecided(tenantID string, decision domain.StepDecision) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.WorkflowStepsCompletedTotal.WithLabelValues(tenantID, string(decision)).Inc()
}

func (uc *DefaultRefundUsecase) recordRefundApproved(tenantID string) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RefundsApprovedTotal.WithLabelValues(tenantID).Inc()
}

func (uc *DefaultRefundUsecase) recordRefundRejected(tenantID string) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RefundsRejectedTotal.WithLabelValues(tenantID).Inc()
}

func (uc *DefaultRefundUsecase) recordStepEscalated(tenantID string) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.WorkflowStepsEscalatedTotal.WithLabelValues(tenantID).Inc()
}

func (uc *DefaultRefundUsecase) recordStepOverdue(tenantID string) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.WorkflowStepsOverdueTotal.WithLabelValues(tenantID).Inc()
}

func (uc *DefaultRefundUsecase) recordRefundCompleted(refund *domain.Refund) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RefundsCompletedTotal.WithLabelValues(
		refund.TenantID, string(refund.Method),
	).Inc()
	uc.Metrics.RefundsCompletedAmountTotal.WithLabelValues(
		refund.TenantID, refund.Currency,
	).Add(float64(refund.Amount))
	if refund.ProcessingFee > 0 {
		uc.Metrics.ProcessingFeeTotal.WithLabelValues(
			refund.TenantID, string(refund.Method),
		).Add(float64(refund.ProcessingFee))
	}
}

func (uc *DefaultRefundUsecase) recordRefundFailed(tenantID, errorCode string) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RefundsFailedTotal.WithLabelValues(tenantID, errorCode).Inc()
}

func (uc *DefaultRefundUsecase) recordRetry(tenantID string) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RefundRetriesTotal.WithLabelValues(tenantID).Inc()
}

func (uc *DefaultRefundUsecase) recordRetryBlocked(tenantID string) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RefundRetriesBlocked.WithLabelValues(tenantID).Inc()
}

func (uc *DefaultRefundUsecase) observeGatewayCall(operation string, started time.Time, outcome string) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.GatewayCallDuration.WithLabelValues(operation, outcome).
		Observe(time.Since(started).Seconds())
}
