package escalationdto

import (
	"time"

	"github.com/nusakarsa/refund-service/internal/domain"
)

type CaseOutput struct {
	ID               string     `json:"id"`
	RefundID         string     `json:"refund_id"`
	Kind             string     `json:"kind"`
	Status           string     `json:"status"`
	CounterpartyID   string     `json:"counterparty_id"`
	ClaimAmount      int64      `json:"claim_amount"`
	SettlementAmount int64      `json:"settlement_amount"`
	Resolution       string     `json:"resolution,omitempty"`
	Reason           string     `json:"reason"`
	ResponseNotes    string     `json:"response_notes,omitempty"`
	ResolutionNotes  string     `json:"resolution_notes,omitempty"`
	EscalatedTo      string     `json:"escalated_to,omitempty"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func ToCaseOutput(c *domain.EscalationCase) *CaseOutput {
	return &CaseOutput{
		ID:               c.ID,
		RefundID:         c.RefundID,
		Kind:             string(c.Kind),
		Status:           string(c.Status),
		CounterpartyID:   c.CounterpartyID,
		ClaimAmount:      c.ClaimAmount,
		SettlementAmount: c.SettlementAmount,
		Resolution:       string(c.Resolution),
		Reason:           c.Reason,
		ResponseNotes:    c.ResponseNotes,
		ResolutionNotes:  c.ResolutionNotes,
		EscalatedTo:      c.EscalatedTo,
		ResolvedAt:       c.ResolvedAt,
		CreatedAt:        c.CreatedAt,
	}
}

type ListCasesOutput struct {
	Cases []*CaseOutput `json:"cases"`
	Total int64         `json:"total"`
	Page  int64         `json:"page"`
	Limit int64         `json:"limit"`
}
