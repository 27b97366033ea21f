package domain

import "time"

type RefundStatus string

const (
	RefundPending    RefundStatus = "PENDING"
	RefundApproved   RefundStatus = "APPROVED"
	RefundRejected   RefundStatus = "REJECTED"
	RefundCancelled  RefundStatus = "CANCELLED"
	RefundProcessing RefundStatus = "PROCESSING"
	RefundCompleted  RefundStatus = "COMPLETED"
	RefundFailed     RefundStatus = "FAILED"
)

type RefundMethod string

const (
	MethodOriginal      RefundMethod = "ORIGINAL_METHOD"
	MethodBankTransfer  RefundMethod = "BANK_TRANSFER"
	MethodCash          RefundMethod = "CASH"
	MethodStoreCredit   RefundMethod = "STORE_CREDIT"
	MethodManual        RefundMethod = "MANUAL"
	MethodDigitalWallet RefundMethod = "DIGITAL_WALLET"
)

type ReasonCategory string

const (
	ReasonDefectiveProduct  ReasonCategory = "DEFECTIVE_PRODUCT"
	ReasonWrongItem         ReasonCategory = "WRONG_ITEM"
	ReasonNotAsDescribed    ReasonCategory = "NOT_AS_DESCRIBED"
	ReasonDuplicatePayment  ReasonCategory = "DUPLICATE_PAYMENT"
	ReasonOrderCancellation ReasonCategory = "ORDER_CANCELLATION"
	ReasonFraudulent        ReasonCategory = "FRAUDULENT"
	ReasonCustomerRequest   ReasonCategory = "CUSTOMER_REQUEST"
)

// refundTransitions is the full edge set of the refund state machine.
// CANCELLED is reachable only from PENDING. FAILED -> PROCESSING is the
// operator-initiated retry edge.
var refundTransitions = map[RefundStatus][]RefundStatus{
	RefundPending:    {RefundApproved, RefundRejected, RefundCancelled},
	RefundApproved:   {RefundProcessing, RefundCompleted},
	RefundProcessing: {RefundCompleted, RefundFailed},
	RefundFailed:     {RefundProcessing},
}

func CanTransitRefund(from, to RefundStatus) bool {
	for _, next := range refundTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s RefundStatus) IsTerminal() bool {
	return s == RefundRejected || s == RefundCancelled || s == RefundCompleted
}

type Refund struct {
	ID               string
	Reference        string
	TenantID         string
	OrderID          string
	CustomerID       string
	Amount           int64
	Currency         string
	Method           RefundMethod
	Status           RefundStatus
	ReasonCategory   ReasonCategory
	Reason           string
	IsDisputed       bool
	ProcessingFee    int64
	RetryCount       int
	GatewayRefundID  string
	GatewayErrorCode string
	FailureReason    string
	GatewayResponse  string
	RequestedBy      string
	ApprovedBy       string
	ProcessedBy      string
	ProcessedAt      *time.Time
	CompletedAt      *time.Time
	FailedAt         *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type RefundFilters struct {
	Statuses   []RefundStatus
	OrderID    string
	CustomerID string
	MinAmount  int64
	MaxAmount  int64
	DateFrom   time.Time
	DateTo     time.Time
}

// RefundMutation is applied to a refund while its row is locked.
type RefundMutation func(refund *Refund) error

type RefundRepository interface {
	CreateRefund(refund *Refund) error
	GetRefundByID(refundID string) (*Refund, error)
	GetRefundByReference(reference string) (*Refund, error)
	GetRefunds(tenantID string, page, limit int64, filters RefundFilters) ([]*Refund, int64, error)
	GetRefundsSince(tenantID string, since time.Time) ([]*Refund, error)

	// ProcessRefundTransition loads the refund FOR UPDATE, verifies the
	// expected status, applies mutate and persists the result in one
	// transaction. sideEffect (nil allowed) runs inside the same
	// transaction; its failure rolls everything back.
	ProcessRefundTransition(refundID string, expected RefundStatus, mutate RefundMutation, sideEffect func() error) error

	// ActiveRefundTotal sums refund amounts charged against an order,
	// excluding rejected/cancelled/failed requests.
	ActiveRefundTotal(orderID string) (int64, error)
}

// OrderReader is the read-only view of the order ledger the refund core
// needs: the amount actually paid, capping the refundable balance.
type OrderReader interface {
	PaidAmount(orderID string) (int64, string, error)
}
