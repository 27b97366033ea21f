package models

import "time"

type EscalationCaseModel struct {
	ID               string `gorm:"primaryKey;type:uuid"`
	TenantID         string `gorm:"type:uuid;index:idx_case_tenant"`
	RefundID         string `gorm:"type:uuid;index"`
	Kind             string `gorm:"index:idx_case_tenant"`
	Status           string `gorm:"index"`
	CounterpartyID   string
	ClaimAmount      int64
	SettlementAmount int64
	Resolution       string
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

func (EscalationCaseModel) TableName() string {
	return "escalation_cases"
}
