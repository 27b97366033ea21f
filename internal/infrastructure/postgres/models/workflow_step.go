package models

import "time"

type WorkflowStepModel struct {
	ID               string `gorm:"primaryKey;type:uuid"`
	RefundID         string `gorm:"type:uuid;index:idx_step_refund"`
	TenantID         string `gorm:"type:uuid"`
	StepNumber       int    `gorm:"index:idx_step_refund"`
	TotalSteps       int
	StepName         string
	ApprovalLevel    string
	AssignedTo       string `gorm:"index"`
	AssignedAt       time.Time
	DueAt            time.Time `gorm:"index"`
	SLAHours         int
	Decision         string
	DecidedBy        string
	DecidedAt        *time.Time
	DecisionReason   string
	IsCurrentStep    bool `gorm:"index"`
	IsCompleted      bool
	IsOverdue        bool
	EscalatedTo      string
	EscalationReason string
	EscalationCount  int
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Refund RefundModel `gorm:"foreignKey:RefundID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

func (WorkflowStepModel) TableName() string {
	return "workflow_steps"
}
