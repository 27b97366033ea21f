package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nusakarsa/refund-service/internal/domain"
	"github.com/nusakarsa/refund-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultApproverDirectory struct {
	DB *gorm.DB
}

func NewDefaultApproverDirectory(db *gorm.DB) *DefaultApproverDirectory {
	return &DefaultApproverDirectory{DB: db}
}

// FindByRole picks the first active approver with the role in the tenant,
// falling back to the tenant admin when the role is unstaffed.
func (r *DefaultApproverDirectory) FindByRole(tenantID, role string) (string, error) {
	var approver models.ApproverModel
	err := r.DB.
		Where("tenant_id = ?", tenantID).
		Where("role = ?", role).
		Where("is_active = ?", true).
		Order("created_at ASC").
		First(&approver).Error
	if err == nil {
		return approver.ActorID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	err = r.DB.
		Where("tenant_id = ?", tenantID).
		Where("role = ?", domain.RoleAdmin).
		Where("is_active = ?", true).
		Order("created_at ASC").
		First(&approver).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.NewValidation("no approver for role %s in tenant %s", role, tenantID)
		}
		return "", err
	}
	return approver.ActorID, nil
}

type DefaultOrderReader struct {
	DB *gorm.DB
}

func NewDefaultOrderReader(db *gorm.DB) *DefaultOrderReader {
	return &DefaultOrderReader{DB: db}
}

func (r *DefaultOrderReader) PaidAmount(orderID string) (int64, string, error) {
	var ledger models.OrderLedgerModel
	if err := r.DB.First(&ledger, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, "", domain.NewNotFound("order %s not found", orderID)
		}
		return 0, "", err
	}
	return ledger.PaidAmount, ledger.Currency, nil
}

type DefaultInsuranceFundRepository struct {
	DB *gorm.DB
}

func NewDefaultInsuranceFundRepository(db *gorm.DB) *DefaultInsuranceFundRepository {
	return &DefaultInsuranceFundRepository{DB: db}
}

func (r *DefaultInsuranceFundRepository) RecordFundTx(tx *domain.FundTx) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	return r.DB.Create(&models.InsuranceFundTxModel{
		ID:        tx.ID,
		TenantID:  tx.TenantID,
		RefundID:  tx.RefundID,
		Kind:      string(tx.Kind),
		Amount:    tx.Amount,
		Notes:     tx.Notes,
		CreatedAt: tx.CreatedAt,
	}).Error
}

func (r *DefaultInsuranceFundRepository) FundBalance(tenantID string) (int64, error) {
	var balance int64
	err := r.DB.Model(&models.InsuranceFundTxModel{}).
		Where("tenant_id = ?", tenantID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&balance).Error
	if err != nil {
		return 0, err
	}
	return balance, nil
}
