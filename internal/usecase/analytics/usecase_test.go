package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/nusakarsa/refund-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRefundRepo struct {
	refunds []*domain.Refund
	err     error
}

func (s *stubRefundRepo) CreateRefund(*domain.Refund) error { return nil }
func (s *stubRefundRepo) GetRefundByID(string) (*domain.Refund, error) {
	return nil, domain.NewNotFound("not found")
}
func (s *stubRefundRepo) GetRefundByReference(string) (*domain.Refund, error) {
	return nil, domain.NewNotFound("not found")
}
func (s *stubRefundRepo) GetRefunds(string, int64, int64, domain.RefundFilters) ([]*domain.Refund, int64, error) {
	return nil, 0, nil
}
func (s *stubRefundRepo) GetRefundsSince(string, time.Time) ([]*domain.Refund, error) {
	return s.refunds, s.err
}
func (s *stubRefundRepo) ProcessRefundTransition(string, domain.RefundStatus, domain.RefundMutation, func() error) error {
	return nil
}
func (s *stubRefundRepo) ActiveRefundTotal(string) (int64, error) { return 0, nil }

type stubCaseRepo struct {
	cases []*domain.EscalationCase
	err   error
}

func (s *stubCaseRepo) CreateCase(*domain.EscalationCase) error { return nil }
func (s *stubCaseRepo) GetCaseByID(string) (*domain.EscalationCase, error) {
	return nil, domain.NewNotFound("not found")
}
func (s *stubCaseRepo) GetLiveCaseByRefundID(string, domain.CaseKind) (*domain.EscalationCase, error) {
	return nil, domain.NewNotFound("not found")
}
func (s *stubCaseRepo) UpdateCase(*domain.EscalationCase) error { return nil }
func (s *stubCaseRepo) GetCases(string, int64, int64, domain.CaseFilters) ([]*domain.EscalationCase, int64, error) {
	return nil, 0, nil
}
func (s *stubCaseRepo) GetCasesSince(string, time.Time) ([]*domain.EscalationCase, error) {
	return s.cases, s.err
}

type stubFundRepo struct {
	balance int64
	err     error
}

func (s *stubFundRepo) RecordFundTx(*domain.FundTx) error { return nil }
func (s *stubFundRepo) FundBalance(string) (int64, error) { return s.balance, s.err }

func sampleRefunds() []*domain.Refund {
	return []*domain.Refund{
		{Status: domain.RefundCompleted, Amount: 100_000, Method: domain.MethodOriginal, ReasonCategory: domain.ReasonDefectiveProduct},
		{Status: domain.RefundCompleted, Amount: 50_000, Method: domain.MethodBankTransfer, ReasonCategory: domain.ReasonWrongItem},
		{Status: domain.RefundPending, Amount: 30_000, Method: domain.MethodOriginal, ReasonCategory: domain.ReasonDefectiveProduct},
		{Status: domain.RefundRejected, Amount: 20_000, Method: domain.MethodCash, ReasonCategory: domain.ReasonCustomerRequest},
	}
}

func sampleCases() []*domain.EscalationCase {
	return []*domain.EscalationCase{
		{Kind: domain.KindDispute, Status: domain.CaseOpen, ClaimAmount: 40_000},
		{Kind: domain.KindDispute, Status: domain.CaseResolved, Resolution: domain.ResolutionUpheld, ClaimAmount: 25_000},
		{Kind: domain.KindDispute, Status: domain.CaseResolved, Resolution: domain.ResolutionDismissed, ClaimAmount: 15_000},
		{Kind: domain.KindVendorLiability, Status: domain.CaseResponded, ClaimAmount: 80_000},
		{Kind: domain.KindVendorLiability, Status: domain.CaseResolved, Resolution: domain.ResolutionRecovered, ClaimAmount: 50_000, SettlementAmount: 35_000},
		{Kind: domain.KindVendorLiability, Status: domain.CaseResolved, Resolution: domain.ResolutionWrittenOff, ClaimAmount: 10_000},
	}
}

func newAnalytics(refundErr, caseErr, fundErr error) *DefaultAnalyticsUsecase {
	return NewDefaultAnalyticsUsecase(
		&stubRefundRepo{refunds: sampleRefunds(), err: refundErr},
		&stubCaseRepo{cases: sampleCases(), err: caseErr},
		&stubFundRepo{balance: 500_000, err: fundErr},
	)
}

func TestRefundOverview(t *testing.T) {
	uc := newAnalytics(nil, nil, nil)

	overview, err := uc.RefundOverview("tenant-1", time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)

	assert.Equal(t, int64(4), overview.TotalRefunds)
	assert.Equal(t, int64(200_000), overview.TotalAmount)
	assert.Equal(t, int64(2), overview.CompletedRefunds)
	assert.Equal(t, int64(1), overview.PendingRefunds)
	assert.Equal(t, int64(1), overview.RejectedRefunds)
	assert.Equal(t, int64(150_000), overview.TotalRefunded)
	assert.InDelta(t, 0.5, overview.CompletionRate, 0.001)
	assert.InDelta(t, 50_000, overview.AvgRefundAmount, 0.001)
	assert.Equal(t, int64(2), overview.StatusBreakdown[string(domain.RefundCompleted)])
	assert.Equal(t, int64(2), overview.MethodBreakdown[string(domain.MethodOriginal)])
	assert.Equal(t, int64(2), overview.ReasonBreakdown[string(domain.ReasonDefectiveProduct)])
}

func TestDisputeSummary(t *testing.T) {
	uc := newAnalytics(nil, nil, nil)

	summary, err := uc.DisputeSummary("tenant-1", time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.TotalDisputes)
	assert.Equal(t, int64(1), summary.OpenDisputes)
	assert.Equal(t, int64(2), summary.ResolvedDisputes)
	assert.Equal(t, int64(80_000), summary.DisputedAmount)
	assert.InDelta(t, 0.5, summary.UpheldRate, 0.001)
}

func TestLiabilitySummary(t *testing.T) {
	uc := newAnalytics(nil, nil, nil)

	summary, err := uc.LiabilitySummary("tenant-1", time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.TotalLiabilities)
	assert.Equal(t, int64(1), summary.OpenLiabilities)
	assert.Equal(t, int64(140_000), summary.ClaimedAmount)
	assert.Equal(t, int64(35_000), summary.RecoveredAmount)
	assert.Equal(t, int64(10_000), summary.WrittenOffAmount)
	assert.InDelta(t, 0.25, summary.RecoveryRate, 0.001)
}

func TestDashboard_DegradesOnError(t *testing.T) {
	uc := newAnalytics(errors.New("db down"), nil, nil)

	dashboard, err := uc.Dashboard("tenant-1", 30)
	require.NoError(t, err)

	assert.Equal(t, int64(0), dashboard.Overview.TotalRefunds, "failed section reads as zeros")
	assert.Equal(t, int64(3), dashboard.Disputes.TotalDisputes, "healthy sections still populate")
	assert.Equal(t, int64(500_000), dashboard.InsuranceFund.Balance)
	assert.Equal(t, 30, dashboard.WindowDays)
}

func TestDashboard_DefaultWindow(t *testing.T) {
	uc := newAnalytics(nil, nil, nil)

	dashboard, err := uc.Dashboard("tenant-1", 0)
	require.NoError(t, err)
	assert.Equal(t, 30, dashboard.WindowDays)
}
