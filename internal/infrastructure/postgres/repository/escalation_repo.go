package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/nusakarsa/refund-service/internal/domain"
	"github.com/nusakarsa/refund-service/internal/infrastructure/postgres/mappers"
	"github.com/nusakarsa/refund-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultEscalationCaseRepository struct {
	DB *gorm.DB
}

func NewDefaultEscalationCaseRepository(db *gorm.DB) *DefaultEscalationCaseRepository {
	return &DefaultEscalationCaseRepository{DB: db}
}

func (r *DefaultEscalationCaseRepository) CreateCase(c *domain.EscalationCase) error {
	caseModel := mappers.ToGORMCase(c)
	if err := r.DB.Create(caseModel).Error; err != nil {
		return err
	}
	c.ID = caseModel.ID
	return nil
}

func (r *DefaultEscalationCaseRepository) GetCaseByID(caseID string) (*domain.EscalationCase, error) {
	var caseModel models.EscalationCaseModel
	if err := r.DB.First(&caseModel, "id = ?", caseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("case %s not found", caseID)
		}
		return nil, err
	}
	return mappers.ToDomainCase(&caseModel), nil
}

func (r *DefaultEscalationCaseRepository) GetLiveCaseByRefundID(refundID string, kind domain.CaseKind) (*domain.EscalationCase, error) {
	var caseModel models.EscalationCaseModel
	if err := r.DB.
		Where("refund_id = ?", refundID).
		Where("kind = ?", string(kind)).
		Where("status <> ?", string(domain.CaseResolved)).
		First(&caseModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("no live %s case for refund %s", kind, refundID)
		}
		return nil, err
	}
	return mappers.ToDomainCase(&caseModel), nil
}

func (r *DefaultEscalationCaseRepository) UpdateCase(c *domain.EscalationCase) error {
	c.UpdatedAt = time.Now()
	return r.DB.Save(mappers.ToGORMCase(c)).Error
}

func (r *DefaultEscalationCaseRepository) GetCases(
	tenantID string,
	page, limit int64,
	filters domain.CaseFilters,
) ([]*domain.EscalationCase, int64, error) {
	query := r.DB.Model(&models.EscalationCaseModel{}).Where("tenant_id = ?", tenantID)

	if filters.Kind != "" {
		query = query.Where("kind = ?", string(filters.Kind))
	}
	if filters.Status != "" {
		query = query.Where("status = ?", string(filters.Status))
	}
	if filters.RefundID != "" {
		query = query.Where("refund_id = ?", filters.RefundID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count failed: %w", err)
	}

	var caseModels []models.EscalationCaseModel
	offset := (page - 1) * limit
	if err := query.
		Order("created_at DESC").
		Offset(int(offset)).Limit(int(limit)).
		Find(&caseModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find cases: %w", err)
	}

	cases := make([]*domain.EscalationCase, len(caseModels))
	for i, caseModel := range caseModels {
		cases[i] = mappers.ToDomainCase(&caseModel)
	}
	return cases, total, nil
}

func (r *DefaultEscalationCaseRepository) GetCasesSince(tenantID string, since time.Time) ([]*domain.EscalationCase, error) {
	var caseModels []models.EscalationCaseModel
	if err := r.DB.
		Where("tenant_id = ?", tenantID).
		Where("created_at >= ?", since).
		Find(&caseModels).Error; err != nil {
		return nil, err
	}
	cases := make([]*domain.EscalationCase, len(caseModels))
	for i, caseModel := range caseModels {
		cases[i] = mappers.ToDomainCase(&caseModel)
	}
	return cases, nil
}
