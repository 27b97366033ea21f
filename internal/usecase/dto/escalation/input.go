package escalationdto

import "github.com/nusakarsa/refund-service/internal/domain"

type OpenCaseInput struct {
	TenantID       string
	RefundID       string
	Kind           domain.CaseKind
	CounterpartyID string
	ClaimAmount    int64
	Reason         string
	OpenedBy       string
}

type RespondInput struct {
	TenantID string
	CaseID   string
	ActorID  string
	Notes    string
}

type ResolveInput struct {
	TenantID         string
	CaseID           string
	ActorID          string
	Resolution       domain.CaseResolution
	SettlementAmount int64
	Notes            string
}

type EscalateCaseInput struct {
	TenantID      string
	CaseID        string
	ActorID       string
	TargetActorID string
	Reason        string
}

type ListCasesInput struct {
	TenantID string
	Page     int64
	Limit    int64
	Filters  domain.CaseFilters
}
