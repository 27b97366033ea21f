package models

import "time"

// ApproverModel is the per-tenant role directory workflow steps are
// assigned from.
type ApproverModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	TenantID  string `gorm:"type:uuid;index:idx_approver_tenant_role"`
	ActorID   string `gorm:"type:uuid"`
	Role      string `gorm:"index:idx_approver_tenant_role"`
	IsActive  bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ApproverModel) TableName() string {
	return "approvers"
}

// OrderLedgerModel mirrors the slice of the order table the refund core
// reads: what was actually paid, capping refundable balance.
type OrderLedgerModel struct {
	ID         string `gorm:"primaryKey;type:uuid"`
	TenantID   string `gorm:"type:uuid;index"`
	PaidAmount int64
	Currency   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (OrderLedgerModel) TableName() string {
	return "order_ledger"
}

// InsuranceFundTxModel records movements on the tenant insurance fund.
type InsuranceFundTxModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	TenantID  string `gorm:"type:uuid;index"`
	RefundID  string `gorm:"type:uuid"`
	Kind      string // CONTRIBUTION, PAYOUT, RECOVERY
	Amount    int64  // signed, minor units
	Notes     string
	CreatedAt time.Time
}

func (InsuranceFundTxModel) TableName() string {
	return "insurance_fund_transactions"
}
