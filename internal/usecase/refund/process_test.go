package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nusakarsa/refund-service/internal/domain"
	refunddto "github.com/nusakarsa/refund-service/internal/usecase/dto/refund"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRefund(t *testing.T, env *testEnv, status domain.RefundStatus) *domain.Refund {
	t.Helper()
	refund := &domain.Refund{
		ID:             "refund-1",
		Reference:      "REF-TEST00001",
		TenantID:       "tenant-1",
		OrderID:        "order-1",
		CustomerID:     "customer-1",
		Amount:         40_000,
		Currency:       "IDR",
		Method:         domain.MethodOriginal,
		Status:         status,
		ReasonCategory: domain.ReasonDefectiveProduct,
		ProcessingFee:  1000,
		CreatedAt:      time.Now(),
	}
	require.NoError(t, env.refunds.CreateRefund(refund))
	return refund
}

func processInput() *refunddto.ProcessRefundInput {
	return &refunddto.ProcessRefundInput{
		TenantID: "tenant-1",
		RefundID: "refund-1",
		ActorID:  "actor-ops",
	}
}

func TestProcessWithGateway_Success(t *testing.T) {
	env := newTestEnv()
	seedRefund(t, env, domain.RefundApproved)
	env.gateway.result = &domain.GatewayResult{
		Success:         true,
		GatewayRefundID: "gw-123",
		Raw:             `{"status":"ok"}`,
	}

	require.NoError(t, env.uc.ProcessWithGateway(context.Background(), processInput()))

	refund, err := env.refunds.GetRefundByID("refund-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RefundCompleted, refund.Status)
	assert.Equal(t, "gw-123", refund.GatewayRefundID)
	assert.Equal(t, int64(1000), refund.ProcessingFee, "computed fee kept when gateway reports none")
	assert.Equal(t, "actor-ops", refund.ProcessedBy)
	assert.NotNil(t, refund.ProcessedAt)
	assert.NotNil(t, refund.CompletedAt)

	require.Len(t, env.fund.txs, 1)
	assert.Equal(t, domain.FundPayout, env.fund.txs[0].Kind)
	assert.Equal(t, int64(-40_000), env.fund.txs[0].Amount)
}

func TestProcessWithGateway_GatewayFee(t *testing.T) {
	env := newTestEnv()
	seedRefund(t, env, domain.RefundApproved)
	env.gateway.result = &domain.GatewayResult{
		Success:         true,
		GatewayRefundID: "gw-123",
		Fee:             2750,
	}

	require.NoError(t, env.uc.ProcessWithGateway(context.Background(), processInput()))

	refund, _ := env.refunds.GetRefundByID("refund-1")
	assert.Equal(t, int64(2750), refund.ProcessingFee)
}

func TestProcessWithGateway_Failure(t *testing.T) {
	env := newTestEnv()
	seedRefund(t, env, domain.RefundApproved)
	env.gateway.result = &domain.GatewayResult{
		Success:      false,
		ErrorCode:    "INSUFFICIENT_FUNDS",
		ErrorMessage: "merchant balance too low",
	}

	require.NoError(t, env.uc.ProcessWithGateway(context.Background(), processInput()))

	refund, _ := env.refunds.GetRefundByID("refund-1")
	assert.Equal(t, domain.RefundFailed, refund.Status)
	assert.Equal(t, "INSUFFICIENT_FUNDS", refund.GatewayErrorCode)
	assert.Equal(t, "merchant balance too low", refund.FailureReason)
	assert.NotNil(t, refund.FailedAt)
	assert.Empty(t, env.fund.txs, "no payout on failure")
}

func TestProcessWithGateway_TransportError(t *testing.T) {
	env := newTestEnv()
	seedRefund(t, env, domain.RefundApproved)
	env.gateway.err = errors.New("connection refused")

	err := env.uc.ProcessWithGateway(context.Background(), processInput())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrKindGateway))

	refund, _ := env.refunds.GetRefundByID("refund-1")
	assert.Equal(t, domain.RefundFailed, refund.Status)
	assert.Equal(t, domain.GatewayCodeSystemError, refund.GatewayErrorCode)
}

func TestProcessWithGateway_WrongStatus(t *testing.T) {
	env := newTestEnv()
	seedRefund(t, env, domain.RefundPending)

	err := env.uc.ProcessWithGateway(context.Background(), processInput())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrKindInvalidState))
	assert.Equal(t, 0, env.gateway.executed, "gateway is never called for a pending refund")
}

func TestRetryBlockedReasons(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name   string
		refund domain.Refund
		want   int
	}{
		{"retryable failure", domain.Refund{Status: domain.RefundFailed, RetryCount: 1, GatewayErrorCode: "TIMEOUT"}, 0},
		{"wrong status", domain.Refund{Status: domain.RefundCompleted}, 1},
		{"retry limit", domain.Refund{Status: domain.RefundFailed, RetryCount: 3, GatewayErrorCode: "TIMEOUT"}, 1},
		{"non-retryable code", domain.Refund{Status: domain.RefundFailed, GatewayErrorCode: "INVALID_ACCOUNT"}, 1},
		{"everything wrong", domain.Refund{Status: domain.RefundCompleted, RetryCount: 5, GatewayErrorCode: "ACCOUNT_CLOSED"}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reasons := env.uc.RetryBlockedReasons(&tt.refund)
			assert.Len(t, reasons, tt.want)
		})
	}
}

func TestRetryProcessing_Success(t *testing.T) {
	env := newTestEnv()
	refund := seedRefund(t, env, domain.RefundFailed)
	refund.GatewayErrorCode = domain.GatewayCodeTimeout
	env.refunds.refunds["refund-1"].GatewayErrorCode = domain.GatewayCodeTimeout
	env.gateway.result = &domain.GatewayResult{Success: true, GatewayRefundID: "gw-retry"}

	require.NoError(t, env.uc.RetryProcessing(context.Background(), processInput()))

	stored, _ := env.refunds.GetRefundByID("refund-1")
	assert.Equal(t, domain.RefundCompleted, stored.Status)
	assert.Equal(t, 1, stored.RetryCount)
	assert.Equal(t, 1, env.gateway.executed)
}

func TestRetryProcessing_Blocked(t *testing.T) {
	env := newTestEnv()
	seedRefund(t, env, domain.RefundFailed)
	env.refunds.refunds["refund-1"].GatewayErrorCode = "INSUFFICIENT_FUNDS"

	err := env.uc.RetryProcessing(context.Background(), processInput())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrKindRetryBlocked))

	var de *domain.Error
	require.ErrorAs(t, err, &de)
	require.Len(t, de.Reasons, 1)
	assert.Contains(t, de.Reasons[0], "INSUFFICIENT_FUNDS")
	assert.Equal(t, 0, env.gateway.executed)
}

func TestRetryProcessing_LimitExhausted(t *testing.T) {
	env := newTestEnv()
	seedRefund(t, env, domain.RefundFailed)
	env.refunds.refunds["refund-1"].GatewayErrorCode = domain.GatewayCodeTimeout
	env.refunds.refunds["refund-1"].RetryCount = domain.MaxRefundRetries

	err := env.uc.RetryProcessing(context.Background(), processInput())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrKindRetryBlocked))
}

func TestProcessManual(t *testing.T) {
	env := newTestEnv()
	seedRefund(t, env, domain.RefundApproved)

	t.Run("requires confirmation", func(t *testing.T) {
		err := env.uc.ProcessManual(&refunddto.ManualRefundInput{
			TenantID: "tenant-1", RefundID: "refund-1", ActorID: "actor-ops",
			Reference: "BANK-1",
		})
		assert.True(t, domain.IsKind(err, domain.ErrKindValidation))
	})

	t.Run("requires reference", func(t *testing.T) {
		err := env.uc.ProcessManual(&refunddto.ManualRefundInput{
			TenantID: "tenant-1", RefundID: "refund-1", ActorID: "actor-ops",
			Confirmed: true,
		})
		assert.True(t, domain.IsKind(err, domain.ErrKindValidation))
	})

	t.Run("completes without gateway", func(t *testing.T) {
		err := env.uc.ProcessManual(&refunddto.ManualRefundInput{
			TenantID: "tenant-1", RefundID: "refund-1", ActorID: "actor-ops",
			Confirmed: true, Reference: "BANK-1", Notes: "wired manually",
		})
		require.NoError(t, err)

		refund, _ := env.refunds.GetRefundByID("refund-1")
		assert.Equal(t, domain.RefundCompleted, refund.Status)
		assert.Equal(t, int64(0), refund.ProcessingFee)
		assert.Contains(t, refund.GatewayResponse, "BANK-1")
		assert.Equal(t, 0, env.gateway.executed)
		require.Len(t, env.fund.txs, 1)
	})
}

func TestCheckRefundStatus(t *testing.T) {
	t.Run("terminal refund skips gateway", func(t *testing.T) {
		env := newTestEnv()
		seedRefund(t, env, domain.RefundCompleted)

		state, err := env.uc.CheckRefundStatus(context.Background(), "tenant-1", "refund-1")
		require.NoError(t, err)
		assert.Equal(t, domain.GatewayStateCompleted, state)
	})

	t.Run("processing reconciled to completed", func(t *testing.T) {
		env := newTestEnv()
		seedRefund(t, env, domain.RefundProcessing)
		env.gateway.state = domain.GatewayStateCompleted

		state, err := env.uc.CheckRefundStatus(context.Background(), "tenant-1", "refund-1")
		require.NoError(t, err)
		assert.Equal(t, domain.GatewayStateCompleted, state)

		refund, _ := env.refunds.GetRefundByID("refund-1")
		assert.Equal(t, domain.RefundCompleted, refund.Status)
	})

	t.Run("processing still pending", func(t *testing.T) {
		env := newTestEnv()
		seedRefund(t, env, domain.RefundProcessing)
		env.gateway.state = domain.GatewayStatePending

		state, err := env.uc.CheckRefundStatus(context.Background(), "tenant-1", "refund-1")
		require.NoError(t, err)
		assert.Equal(t, domain.GatewayStatePending, state)

		refund, _ := env.refunds.GetRefundByID("refund-1")
		assert.Equal(t, domain.RefundProcessing, refund.Status)
	})
}

func TestBulkProcess(t *testing.T) {
	env := newTestEnv()
	seedRefund(t, env, domain.RefundApproved)
	other := &domain.Refund{
		ID: "refund-2", Reference: "REF-TEST00002", TenantID: "tenant-1",
		OrderID: "order-1", Amount: 20_000, Currency: "IDR",
		Method: domain.MethodOriginal, Status: domain.RefundPending,
	}
	require.NoError(t, env.refunds.CreateRefund(other))

	result := env.uc.BulkProcess(context.Background(), &refunddto.BulkDecideInput{
		TenantID:  "tenant-1",
		RefundIDs: []string{"refund-1", "refund-2"},
		ActorID:   "actor-ops",
	})

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.Failed)
}
