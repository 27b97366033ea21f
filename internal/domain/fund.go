package domain

import "time"

type FundTxKind string

const (
	FundContribution FundTxKind = "CONTRIBUTION"
	FundPayout       FundTxKind = "PAYOUT"
	FundRecovery     FundTxKind = "RECOVERY"
)

// FundTx is one movement on a tenant's insurance fund. Payouts carry a
// negative amount, contributions and recoveries a positive one.
type FundTx struct {
	ID        string
	TenantID  string
	RefundID  string
	Kind      FundTxKind
	Amount    int64
	Notes     string
	CreatedAt time.Time
}

type InsuranceFundRepository interface {
	RecordFundTx(tx *FundTx) error
	FundBalance(tenantID string) (int64, error)
}
