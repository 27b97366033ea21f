package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/nusakarsa/refund-service/internal/domain"
	"github.com/nusakarsa/refund-service/internal/infrastructure/postgres/mappers"
	"github.com/nusakarsa/refund-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultRefundRepository struct {
	DB *gorm.DB
}

func NewDefaultRefundRepository(db *gorm.DB) *DefaultRefundRepository {
	return &DefaultRefundRepository{DB: db}
}

func (r *DefaultRefundRepository) CreateRefund(refund *domain.Refund) error {
	refundModel := mappers.ToGORMRefund(refund)
	if err := r.DB.Create(refundModel).Error; err != nil {
		return err
	}
	return nil
}

func (r *DefaultRefundRepository) GetRefundByID(refundID string) (*domain.Refund, error) {
	var refundModel models.RefundModel
	if err := r.DB.First(&refundModel, "id = ?", refundID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("refund %s not found", refundID)
		}
		return nil, err
	}
	return mappers.ToDomainRefund(&refundModel), nil
}

func (r *DefaultRefundRepository) GetRefundByReference(reference string) (*domain.Refund, error) {
	var refundModel models.RefundModel
	if err := r.DB.First(&refundModel, "reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("refund %s not found", reference)
		}
		return nil, err
	}
	return mappers.ToDomainRefund(&refundModel), nil
}

// ProcessRefundTransition serializes state transitions on one refund row.
// The row is locked FOR UPDATE for the whole transaction, so two
// concurrent approvals cannot both observe the expected status.
func (r *DefaultRefundRepository) ProcessRefundTransition(
	refundID string,
	expected domain.RefundStatus,
	mutate domain.RefundMutation,
	sideEffect func() error,
) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var refundModel models.RefundModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&refundModel, "id = ?", refundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("refund %s not found", refundID)
			}
			return err
		}

		if refundModel.Status != expected {
			return domain.NewInvalidState("refund %s is %s, expected %s", refundID, refundModel.Status, expected)
		}

		refund := mappers.ToDomainRefund(&refundModel)
		if err := mutate(refund); err != nil {
			return err
		}
		if !domain.CanTransitRefund(expected, refund.Status) && refund.Status != expected {
			return domain.NewInvalidState("transition %s -> %s is not allowed", expected, refund.Status)
		}

		if sideEffect != nil {
			if err := sideEffect(); err != nil {
				return fmt.Errorf("transition side effect: %w", err)
			}
		}

		refund.UpdatedAt = time.Now()
		if err := tx.Save(mappers.ToGORMRefund(refund)).Error; err != nil {
			return err
		}
		return nil
	})
}

func (r *DefaultRefundRepository) GetRefunds(
	tenantID string,
	page, limit int64,
	filters domain.RefundFilters,
) ([]*domain.Refund, int64, error) {
	baseQuery := r.DB.Model(&models.RefundModel{}).Where("tenant_id = ?", tenantID)

	if len(filters.Statuses) > 0 {
		baseQuery = baseQuery.Where("status IN (?)", filters.Statuses)
	}
	if filters.OrderID != "" {
		baseQuery = baseQuery.Where("order_id = ?", filters.OrderID)
	}
	if filters.CustomerID != "" {
		baseQuery = baseQuery.Where("customer_id = ?", filters.CustomerID)
	}
	if filters.MinAmount > 0 {
		baseQuery = baseQuery.Where("amount >= ?", filters.MinAmount)
	}
	if filters.MaxAmount > 0 {
		baseQuery = baseQuery.Where("amount <= ?", filters.MaxAmount)
	}
	if !filters.DateFrom.IsZero() {
		baseQuery = baseQuery.Where("created_at >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		baseQuery = baseQuery.Where("created_at <= ?", filters.DateTo)
	}

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count failed: %w", err)
	}

	var refundModels []models.RefundModel
	offset := (page - 1) * limit
	if err := baseQuery.
		Order("created_at DESC").
		Offset(int(offset)).Limit(int(limit)).
		Find(&refundModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find refunds: %w", err)
	}

	refunds := make([]*domain.Refund, len(refundModels))
	for i, refundModel := range refundModels {
		refunds[i] = mappers.ToDomainRefund(&refundModel)
	}
	return refunds, total, nil
}

func (r *DefaultRefundRepository) GetRefundsSince(tenantID string, since time.Time) ([]*domain.Refund, error) {
	var refundModels []models.RefundModel
	if err := r.DB.
		Where("tenant_id = ?", tenantID).
		Where("created_at >= ?", since).
		Find(&refundModels).Error; err != nil {
		return nil, err
	}
	refunds := make([]*domain.Refund, len(refundModels))
	for i, refundModel := range refundModels {
		refunds[i] = mappers.ToDomainRefund(&refundModel)
	}
	return refunds, nil
}

func (r *DefaultRefundRepository) ActiveRefundTotal(orderID string) (int64, error) {
	var total int64
	err := r.DB.Model(&models.RefundModel{}).
		Where("order_id = ?", orderID).
		Where("status NOT IN (?)", []domain.RefundStatus{
			domain.RefundRejected, domain.RefundCancelled, domain.RefundFailed,
		}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
