package domain

import "time"

// An EscalationCase is a two-party negotiation attached to a refund.
// Disputes and vendor liabilities share the same lifecycle, so both run
// through one case type distinguished by Kind.
type CaseKind string

const (
	KindDispute         CaseKind = "DISPUTE"
	KindVendorLiability CaseKind = "VENDOR_LIABILITY"
)

type CaseStatus string

const (
	CaseOpen      CaseStatus = "OPEN"
	CaseResponded CaseStatus = "RESPONDED"
	CaseResolved  CaseStatus = "RESOLVED"
	CaseEscalated CaseStatus = "ESCALATED"
)

var caseTransitions = map[CaseStatus][]CaseStatus{
	CaseOpen:      {CaseResponded, CaseEscalated},
	CaseResponded: {CaseResolved, CaseEscalated},
	CaseEscalated: {CaseResponded, CaseResolved},
}

func CanTransitCase(from, to CaseStatus) bool {
	for _, next := range caseTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type CaseResolution string

const (
	ResolutionRecovered  CaseResolution = "RECOVERED"
	ResolutionWrittenOff CaseResolution = "WRITTEN_OFF"
	ResolutionUpheld     CaseResolution = "UPHELD"
	ResolutionDismissed  CaseResolution = "DISMISSED"
)

type EscalationCase struct {
	ID               string
	TenantID         string
	RefundID         string
	Kind             CaseKind
	Status           CaseStatus
	CounterpartyID   string
	ClaimAmount      int64
	SettlementAmount int64
	Resolution       CaseResolution
	Reason           string
	ResponseNotes    string
	ResolutionNotes  string
	EscalatedTo      string
	OpenedBy         string
	ResolvedBy       string
	ResolvedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type CaseFilters struct {
	Kind     CaseKind
	Status   CaseStatus
	RefundID string
}

type EscalationCaseRepository interface {
	CreateCase(c *EscalationCase) error
	GetCaseByID(caseID string) (*EscalationCase, error)
	// GetLiveCaseByRefundID returns the unresolved case of the given
	// kind for a refund, if any. Resolved cases are skipped so a closed
	// history never shadows the live one.
	GetLiveCaseByRefundID(refundID string, kind CaseKind) (*EscalationCase, error)
	UpdateCase(c *EscalationCase) error
	GetCases(tenantID string, page, limit int64, filters CaseFilters) ([]*EscalationCase, int64, error)
	GetCasesSince(tenantID string, since time.Time) ([]*EscalationCase, error)
}
