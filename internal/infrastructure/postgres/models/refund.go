package models

import (
	"time"

	"github.com/nusakarsa/refund-service/internal/domain"
)

type RefundModel struct {
	ID               string `gorm:"primaryKey;type:uuid"`
	Reference        string `gorm:"uniqueIndex"`
	TenantID         string `gorm:"type:uuid;index:idx_tenant_created"`
	OrderID          string `gorm:"type:uuid;index"`
	CustomerID       string `gorm:"type:uuid"`
	Amount           int64  `gorm:"not null"`
	Currency         string
	Method           string
	Status           domain.RefundStatus `gorm:"index:idx_refund_status"`
	ReasonCategory   string
	Reason           string
	IsDisputed       bool
	ProcessingFee    int64
	RetryCount       int
	GatewayRefundID  string
	GatewayErrorCode string
	FailureReason    string
	GatewayResponse  string `gorm:"type:jsonb"`
	RequestedBy      string
	ApprovedBy       string
	ProcessedBy      string
	ProcessedAt      *time.Time
	CompletedAt      *time.Time
	FailedAt         *time.Time
	CreatedAt        time.Time `gorm:"index:idx_tenant_created"`
	UpdatedAt        time.Time
}

func (RefundModel) TableName() string {
	return "refunds"
}
