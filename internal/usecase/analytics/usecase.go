package usecase

import (
	"log/slog"
	"time"

	"github.com/nusakarsa/refund-service/internal/domain"
	analyticsdto "github.com/nusakarsa/refund-service/internal/usecase/dto/analytics"
)

type AnalyticsUsecase interface {
	Dashboard(tenantID string, windowDays int) (*analyticsdto.Dashboard, error)
	RefundOverview(tenantID string, since time.Time) (*analyticsdto.RefundOverview, error)
	DisputeSummary(tenantID string, since time.Time) (*analyticsdto.DisputeSummary, error)
	LiabilitySummary(tenantID string, since time.Time) (*analyticsdto.VendorLiabilitySummary, error)
	FundStatus(tenantID string) (*analyticsdto.InsuranceFundStatus, error)
}

type DefaultAnalyticsUsecase struct {
	RefundRepo domain.RefundRepository
	CaseRepo   domain.EscalationCaseRepository
	FundRepo   domain.InsuranceFundRepository
}

func NewDefaultAnalyticsUsecase(
	refundRepo domain.RefundRepository,
	caseRepo domain.EscalationCaseRepository,
	fundRepo domain.InsuranceFundRepository) *DefaultAnalyticsUsecase {

	return &DefaultAnalyticsUsecase{
		RefundRepo: refundRepo,
		CaseRepo:   caseRepo,
		FundRepo:   fundRepo,
	}
}

// Dashboard assembles all summaries for one reporting window. A failing
// section degrades to zeros instead of sinking the whole dashboard.
func (uc *DefaultAnalyticsUsecase) Dashboard(tenantID string, windowDays int) (*analyticsdto.Dashboard, error) {
	if windowDays < 1 {
		windowDays = 30
	}
	since := time.Now().AddDate(0, 0, -windowDays)

	dashboard := &analyticsdto.Dashboard{WindowDays: windowDays}

	if overview, err := uc.RefundOverview(tenantID, since); err == nil {
		dashboard.Overview = *overview
	} else {
		slog.Error("dashboard refund overview failed", "tenant_id", tenantID, "error", err.Error())
	}
	if disputes, err := uc.DisputeSummary(tenantID, since); err == nil {
		dashboard.Disputes = *disputes
	} else {
		slog.Error("dashboard dispute summary failed", "tenant_id", tenantID, "error", err.Error())
	}
	if liabilities, err := uc.LiabilitySummary(tenantID, since); err == nil {
		dashboard.Liabilities = *liabilities
	} else {
		slog.Error("dashboard liability summary failed", "tenant_id", tenantID, "error", err.Error())
	}
	if fund, err := uc.FundStatus(tenantID); err == nil {
		dashboard.InsuranceFund = *fund
	} else {
		slog.Error("dashboard fund status failed", "tenant_id", tenantID, "error", err.Error())
	}

	return dashboard, nil
}

func (uc *DefaultAnalyticsUsecase) RefundOverview(tenantID string, since time.Time) (*analyticsdto.RefundOverview, error) {
	refunds, err := uc.RefundRepo.GetRefundsSince(tenantID, since)
	if err != nil {
		return nil, err
	}

	overview := &analyticsdto.RefundOverview{
		StatusBreakdown: map[string]int64{},
		MethodBreakdown: map[string]int64{},
		ReasonBreakdown: map[string]int64{},
	}
	for _, refund := range refunds {
		overview.TotalRefunds++
		overview.TotalAmount += refund.Amount
		overview.StatusBreakdown[string(refund.Status)]++
		overview.MethodBreakdown[string(refund.Method)]++
		overview.ReasonBreakdown[string(refund.ReasonCategory)]++

		switch refund.Status {
		case domain.RefundPending, domain.RefundApproved, domain.RefundProcessing:
			overview.PendingRefunds++
		case domain.RefundCompleted:
			overview.CompletedRefunds++
			overview.TotalRefunded += refund.Amount
		case domain.RefundRejected:
			overview.RejectedRefunds++
		}
	}
	if overview.TotalRefunds > 0 {
		overview.AvgRefundAmount = float64(overview.TotalAmount) / float64(overview.TotalRefunds)
		overview.CompletionRate = float64(overview.CompletedRefunds) / float64(overview.TotalRefunds)
	}
	return overview, nil
}

func (uc *DefaultAnalyticsUsecase) DisputeSummary(tenantID string, since time.Time) (*analyticsdto.DisputeSummary, error) {
	cases, err := uc.CaseRepo.GetCasesSince(tenantID, since)
	if err != nil {
		return nil, err
	}

	summary := &analyticsdto.DisputeSummary{}
	var upheld int64
	for _, c := range cases {
		if c.Kind != domain.KindDispute {
			continue
		}
		summary.TotalDisputes++
		summary.DisputedAmount += c.ClaimAmount
		if c.Status == domain.CaseResolved {
			summary.ResolvedDisputes++
			if c.Resolution == domain.ResolutionUpheld {
				upheld++
			}
		} else {
			summary.OpenDisputes++
		}
	}
	if summary.ResolvedDisputes > 0 {
		summary.UpheldRate = float64(upheld) / float64(summary.ResolvedDisputes)
	}
	return summary, nil
}

func (uc *DefaultAnalyticsUsecase) LiabilitySummary(tenantID string, since time.Time) (*analyticsdto.VendorLiabilitySummary, error) {
	cases, err := uc.CaseRepo.GetCasesSince(tenantID, since)
	if err != nil {
		return nil, err
	}

	summary := &analyticsdto.VendorLiabilitySummary{}
	for _, c := range cases {
		if c.Kind != domain.KindVendorLiability {
			continue
		}
		summary.TotalLiabilities++
		summary.ClaimedAmount += c.ClaimAmount
		if c.Status != domain.CaseResolved {
			summary.OpenLiabilities++
			continue
		}
		switch c.Resolution {
		case domain.ResolutionRecovered:
			summary.RecoveredAmount += c.SettlementAmount
		case domain.ResolutionWrittenOff:
			summary.WrittenOffAmount += c.ClaimAmount
		}
	}
	if summary.ClaimedAmount > 0 {
		summary.RecoveryRate = float64(summary.RecoveredAmount) / float64(summary.ClaimedAmount)
	}
	return summary, nil
}

func (uc *DefaultAnalyticsUsecase) FundStatus(tenantID string) (*analyticsdto.InsuranceFundStatus, error) {
	balance, err := uc.FundRepo.FundBalance(tenantID)
	if err != nil {
		return nil, err
	}
	return &analyticsdto.InsuranceFundStatus{Balance: balance}, nil
}
