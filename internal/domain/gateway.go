package domain

import "context"

// GatewayResult is the normalized outcome of a gateway refund call.
// ErrorCode is recorded verbatim for audit; the service only interprets it
// through IsRetryableGatewayCode.
type GatewayResult struct {
	Success         bool
	GatewayRefundID string
	Fee             int64
	ErrorCode       string
	ErrorMessage    string
	Raw             string
}

type GatewayState string

const (
	GatewayStatePending   GatewayState = "PENDING"
	GatewayStateCompleted GatewayState = "COMPLETED"
	GatewayStateFailed    GatewayState = "FAILED"
)

type PaymentGateway interface {
	Execute(ctx context.Context, refund *Refund) (*GatewayResult, error)
	CheckStatus(ctx context.Context, refund *Refund) (GatewayState, error)
}

const (
	GatewayCodeTimeout     = "TIMEOUT"
	GatewayCodeSystemError = "SYSTEM_ERROR"
)

// MaxRefundRetries bounds the FAILED -> PROCESSING retry edge.
const MaxRefundRetries = 3

var nonRetryableGatewayCodes = map[string]struct{}{
	"INSUFFICIENT_FUNDS":    {},
	"INVALID_ACCOUNT":       {},
	"ACCOUNT_CLOSED":        {},
	"INVALID_REFUND_AMOUNT": {},
}

func IsRetryableGatewayCode(code string) bool {
	_, blocked := nonRetryableGatewayCodes[code]
	return !blocked
}
