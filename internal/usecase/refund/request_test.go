package usecase

import (
	"strings"
	"testing"

	"github.com/nusakarsa/refund-service/internal/domain"
	refunddto "github.com/nusakarsa/refund-service/internal/usecase/dto/refund"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createInput(amount int64) *refunddto.CreateRefundInput {
	return &refunddto.CreateRefundInput{
		TenantID:       "tenant-1",
		OrderID:        "order-1",
		CustomerID:     "customer-1",
		Amount:         amount,
		Method:         domain.MethodOriginal,
		ReasonCategory: domain.ReasonDefectiveProduct,
		Reason:         "item arrived broken",
		RequestedBy:    "actor-req",
	}
}

func TestCreateRefundRequest_Valid(t *testing.T) {
	env := newTestEnv()

	out, err := env.uc.CreateRefundRequest(createInput(150_000))
	require.NoError(t, err)

	assert.Equal(t, domain.RefundPending, out.Status)
	assert.True(t, strings.HasPrefix(out.Reference, "REF-"))
	assert.Equal(t, "IDR", out.Currency)
	assert.Equal(t, int64(150_000*25/1000), out.ProcessingFee)

	steps, err := env.steps.GetSteps(out.ID)
	require.NoError(t, err)
	require.Len(t, steps, 2, "medium risk adds manager approval")
	assert.Equal(t, "initial_review", steps[0].StepName)
	assert.True(t, steps[0].IsCurrentStep)
	assert.Equal(t, "manager_approval", steps[1].StepName)
	assert.False(t, steps[1].IsCurrentStep)
}

func TestCreateRefundRequest_Validation(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name   string
		mutate func(in *refunddto.CreateRefundInput)
	}{
		{"below minimum", func(in *refunddto.CreateRefundInput) { in.Amount = 500 }},
		{"missing tenant", func(in *refunddto.CreateRefundInput) { in.TenantID = "" }},
		{"bad method", func(in *refunddto.CreateRefundInput) { in.Method = "CHEQUE" }},
		{"bad reason category", func(in *refunddto.CreateRefundInput) { in.ReasonCategory = "OTHER" }},
		{"short reason", func(in *refunddto.CreateRefundInput) { in.Reason = "bad" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := createInput(150_000)
			tt.mutate(in)
			_, err := env.uc.CreateRefundRequest(in)
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.ErrKindValidation))
		})
	}
}

func TestCreateRefundRequest_RefundableBalance(t *testing.T) {
	env := newTestEnv()
	env.orders.paid["order-1"] = 200_000

	_, err := env.uc.CreateRefundRequest(createInput(150_000))
	require.NoError(t, err)

	// 150k of the 200k paid is already claimed by an active refund.
	_, err = env.uc.CreateRefundRequest(createInput(100_000))
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrKindValidation))

	_, err = env.uc.CreateRefundRequest(createInput(50_000))
	require.NoError(t, err)
}

func TestCreateRefundRequest_AutoApprove(t *testing.T) {
	env := newTestEnv()

	in := createInput(50_000)
	in.ReasonCategory = domain.ReasonDuplicatePayment
	in.Reason = "charged twice for the same order"

	out, err := env.uc.CreateRefundRequest(in)
	require.NoError(t, err)
	assert.Equal(t, domain.RefundApproved, out.Status)

	steps, err := env.steps.GetSteps(out.ID)
	require.NoError(t, err)
	assert.Empty(t, steps, "auto-approved refunds skip the workflow")
}

func TestCreateRefundRequest_AutoApproveCapped(t *testing.T) {
	env := newTestEnv()

	in := createInput(150_000)
	in.ReasonCategory = domain.ReasonDuplicatePayment
	in.Reason = "charged twice for the same order"

	out, err := env.uc.CreateRefundRequest(in)
	require.NoError(t, err)
	assert.Equal(t, domain.RefundPending, out.Status, "amount above the cap goes through the workflow")
}

func TestBuildWorkflowSteps_Thresholds(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name     string
		amount   int64
		category domain.ReasonCategory
		want     []string
	}{
		{
			"low risk small amount", 100_000, domain.ReasonCustomerRequest,
			[]string{"initial_review"},
		},
		{
			"manager threshold", 250_000, domain.ReasonCustomerRequest,
			[]string{"initial_review", "manager_approval"},
		},
		{
			"finance threshold", 1_000_000, domain.ReasonCustomerRequest,
			[]string{"initial_review", "manager_approval", "finance_approval"},
		},
		{
			"executive threshold", 5_000_000, domain.ReasonCustomerRequest,
			[]string{"initial_review", "manager_approval", "finance_approval", "executive_approval"},
		},
		{
			"fraud forces finance review", 50_000, domain.ReasonFraudulent,
			[]string{"initial_review", "manager_approval", "finance_approval"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps, err := env.uc.buildWorkflowSteps(&domain.Refund{
				ID:             "refund-x",
				TenantID:       "tenant-1",
				Amount:         tt.amount,
				ReasonCategory: tt.category,
			})
			require.NoError(t, err)
			var names []string
			for _, step := range steps {
				names = append(names, step.StepName)
			}
			assert.Equal(t, tt.want, names)
			for i, step := range steps {
				assert.Equal(t, i+1, step.StepNumber)
				assert.Equal(t, len(steps), step.TotalSteps)
			}
		})
	}
}

func TestCalculateProcessingFee(t *testing.T) {
	assert.Equal(t, int64(2500), calculateProcessingFee(100_000, domain.MethodOriginal))
	assert.Equal(t, int64(2500), calculateProcessingFee(100_000, domain.MethodDigitalWallet))
	assert.Equal(t, int64(5000), calculateProcessingFee(100_000, domain.MethodBankTransfer))
	assert.Equal(t, int64(10_000), calculateProcessingFee(100_000, domain.MethodManual))
	assert.Equal(t, int64(0), calculateProcessingFee(100_000, domain.MethodCash))
	assert.Equal(t, int64(0), calculateProcessingFee(100_000, domain.MethodStoreCredit))
}
