package mappers

import (
	"github.com/nusakarsa/refund-service/internal/domain"
	"github.com/nusakarsa/refund-service/internal/infrastructure/postgres/models"
)

func ToDomainCase(model *models.EscalationCaseModel) *domain.EscalationCase {
	return &domain.EscalationCase{
		ID:               model.ID,
		TenantID:         model.TenantID,
		RefundID:         model.RefundID,
		Kind:             domain.CaseKind(model.Kind),
		Status:           domain.CaseStatus(model.Status),
		CounterpartyID:   model.CounterpartyID,
		ClaimAmount:      model.ClaimAmount,
		SettlementAmount: model.SettlementAmount,
		Resolution:       domain.CaseResolution(model.Resolution),
		Reason:           model.Reason,
		ResponseNotes:    model.ResponseNotes,
		ResolutionNotes:  model.ResolutionNotes,
		EscalatedTo:      model.EscalatedTo,
		OpenedBy:         model.OpenedBy,
		ResolvedBy:       model.ResolvedBy,
		ResolvedAt:       model.ResolvedAt,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

func ToGORMCase(c *domain.EscalationCase) *models.EscalationCaseModel {
	return &models.EscalationCaseModel{
		ID:               c.ID,
		TenantID:         c.TenantID,
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
		OpenedBy:         c.OpenedBy,
		ResolvedBy:       c.ResolvedBy,
		ResolvedAt:       c.ResolvedAt,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
