package publisher

import (
	"encoding/json"

	"github.com/nusakarsa/refund-service/internal/domain"
)

const (
	TopicRefundEvents     = "refund-events"
	TopicEscalationEvents = "escalation-events"
)

type RefundEvent struct {
	RefundID   string `json:"refund_id"`
	Reference  string `json:"reference"`
	TenantID   string `json:"tenant_id"`
	OrderID    string `json:"order_id"`
	CustomerID string `json:"customer_id"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	Status     string `json:"status"`
	Stage      string `json:"stage"` // requested, approved, rejected, processed, failed, retried, completed
	ActorID    string `json:"actor_id,omitempty"`
	ErrorCode  string `json:"error_code,omitempty"`
}

type EscalationEvent struct {
	CaseID   string `json:"case_id"`
	RefundID string `json:"refund_id"`
	TenantID string `json:"tenant_id"`
	Kind     string `json:"kind"`
	Status   string `json:"status"`
	ActorID  string `json:"actor_id,omitempty"`
}

func NewRefundEvent(refund *domain.Refund, stage, actorID string) RefundEvent {
	return RefundEvent{
		RefundID:   refund.ID,
		Reference:  refund.Reference,
		TenantID:   refund.TenantID,
		OrderID:    refund.OrderID,
		CustomerID: refund.CustomerID,
		Amount:     refund.Amount,
		Currency:   refund.Currency,
		Status:     string(refund.Status),
		Stage:      stage,
		ActorID:    actorID,
		ErrorCode:  refund.GatewayErrorCode,
	}
}

func NewEscalationEvent(c *domain.EscalationCase, actorID string) EscalationEvent {
	return EscalationEvent{
		CaseID:   c.ID,
		RefundID: c.RefundID,
		TenantID: c.TenantID,
		Kind:     string(c.Kind),
		Status:   string(c.Status),
		ActorID:  actorID,
	}
}

func (e RefundEvent) Message() (domain.Message, error) {
	v, err := json.Marshal(e)
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{Key: []byte(e.TenantID), Value: v}, nil
}

func (e EscalationEvent) Message() (domain.Message, error) {
	v, err := json.Marshal(e)
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{Key: []byte(e.TenantID), Value: v}, nil
}
