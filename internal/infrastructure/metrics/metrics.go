package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RefundMetrics covers the refund lifecycle and the gateway path.
type RefundMetrics struct {
	RefundsRequestedTotal       prometheus.CounterVec
	RefundsRequestedAmountTotal prometheus.CounterVec

	RefundsApprovedTotal prometheus.CounterVec
	RefundsRejectedTotal prometheus.CounterVec

	RefundsCompletedTotal       prometheus.CounterVec
	RefundsCompletedAmountTotal prometheus.CounterVec
	RefundsFailedTotal          prometheus.CounterVec

	RefundRetriesTotal   prometheus.CounterVec
	RefundRetriesBlocked prometheus.CounterVec

	GatewayCallDuration prometheus.HistogramVec

	WorkflowStepsCompletedTotal prometheus.CounterVec
	WorkflowStepsEscalatedTotal prometheus.CounterVec
	WorkflowStepsOverdueTotal   prometheus.CounterVec

	EscalationCasesTotal prometheus.CounterVec

	ProcessingFeeTotal prometheus.CounterVec
}

func NewRefundMetrics() *RefundMetrics {
	return &RefundMetrics{
		RefundsRequestedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refunds_requested_total",
				Help: "Refund requests created",
			},
			[]string{"tenant_id", "method", "reason_category"},
		),

		RefundsRequestedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refunds_requested_amount_total",
				Help: "Total requested refund amount in minor units",
			},
			[]string{"tenant_id", "currency"},
		),

		RefundsApprovedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refunds_approved_total",
				Help: "Refunds fully approved by the workflow",
			},
			[]string{"tenant_id"},
		),

		RefundsRejectedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refunds_rejected_total",
				Help: "Refunds rejected at any workflow step",
			},
			[]string{"tenant_id"},
		),

		RefundsCompletedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refunds_completed_total",
				Help: "Refunds settled by the gateway or manually",
			},
			[]string{"tenant_id", "method"},
		),

		RefundsCompletedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refunds_completed_amount_total",
				Help: "Total completed refund amount in minor units",
			},
			[]string{"tenant_id", "currency"},
		),

		RefundsFailedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refunds_failed_total",
				Help: "Gateway refund failures by error code",
			},
			[]string{"tenant_id", "error_code"},
		),

		RefundRetriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refund_retries_total",
				Help: "Operator-initiated refund retries",
			},
			[]string{"tenant_id"},
		),

		RefundRetriesBlocked: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refund_retries_blocked_total",
				Help: "Retry attempts rejected by the retry policy",
			},
			[]string{"tenant_id"},
		),

		GatewayCallDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gateway_call_duration_seconds",
				Help:    "Latency of payment gateway refund calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "outcome"},
		),

		WorkflowStepsCompletedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workflow_steps_completed_total",
				Help: "Approval workflow steps decided",
			},
			[]string{"tenant_id", "decision"},
		),

		WorkflowStepsEscalatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workflow_steps_escalated_total",
				Help: "Approval workflow steps reassigned by escalation",
			},
			[]string{"tenant_id"},
		),

		WorkflowStepsOverdueTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workflow_steps_overdue_total",
				Help: "Approval steps that breached their SLA",
			},
			[]string{"tenant_id"},
		),

		EscalationCasesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escalation_cases_total",
				Help: "Dispute and vendor liability cases by transition",
			},
			[]string{"tenant_id", "kind", "status"},
		),

		ProcessingFeeTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "processing_fee_total",
				Help: "Accumulated refund processing fees in minor units",
			},
			[]string{"tenant_id", "method"},
		),
	}
}
