package refunddto

import "github.com/nusakarsa/refund-service/internal/domain"

type CreateRefundInput struct {
	TenantID       string
	OrderID        string
	CustomerID     string
	Amount         int64
	Method         domain.RefundMethod
	ReasonCategory domain.ReasonCategory
	Reason         string
	RequestedBy    string
}

type DecideStepInput struct {
	TenantID string
	StepID   string
	ActorID  string
	Reason   string
}

type EscalateStepInput struct {
	TenantID      string
	StepID        string
	ActorID       string
	TargetActorID string
	Reason        string
}

type BulkDecideInput struct {
	TenantID  string
	RefundIDs []string
	ActorID   string
	Reason    string
}

type ProcessRefundInput struct {
	TenantID string
	RefundID string
	ActorID  string
}

type ManualRefundInput struct {
	TenantID  string
	RefundID  string
	ActorID   string
	Confirmed bool
	Reference string
	Notes     string
}

type ListRefundsInput struct {
	TenantID string
	Page     int64
	Limit    int64
	Filters  domain.RefundFilters
}
