package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nusakarsa/refund-service/internal/domain"
)

// HTTPGateway talks to the payment gateway over JSON/HTTP. A deadline
// exceeded on either call is normalized to the retryable TIMEOUT code so
// the retry policy can act on it.
type HTTPGateway struct {
	Address string
	APIKey  string
	Timeout time.Duration
	client  *http.Client
}

func NewHTTPGateway(address, apiKey string, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{
		Address: address,
		APIKey:  apiKey,
		Timeout: timeout,
		client:  &http.Client{},
	}
}

type executeRequest struct {
	RefundID  string `json:"refund_id"`
	Reference string `json:"reference"`
	OrderID   string `json:"order_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Method    string `json:"method"`
}

type executeResponse struct {
	Success         bool   `json:"success"`
	GatewayRefundID string `json:"gateway_refund_id"`
	Fee             int64  `json:"fee"`
	ErrorCode       string `json:"error_code"`
	ErrorMessage    string `json:"error_message"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func (g *HTTPGateway) Execute(ctx context.Context, refund *domain.Refund) (*domain.GatewayResult, error) {
	requestBodyBytes, err := json.Marshal(executeRequest{
		RefundID:  refund.ID,
		Reference: refund.Reference,
		OrderID:   refund.OrderID,
		Amount:    refund.Amount,
		Currency:  refund.Currency,
		Method:    string(refund.Method),
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/refunds/execute", g.Address), bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	response, err := g.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return &domain.GatewayResult{
				Success:      false,
				ErrorCode:    domain.GatewayCodeTimeout,
				ErrorMessage: "gateway call timed out",
			}, nil
		}
		return nil, domain.NewGatewayError(err)
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, domain.NewGatewayError(err)
	}

	var body executeResponse
	if err := json.Unmarshal(responseBodyBytes, &body); err != nil {
		return nil, domain.NewGatewayError(fmt.Errorf("malformed gateway response: %w", err))
	}

	result := &domain.GatewayResult{
		Success:         body.Success,
		GatewayRefundID: body.GatewayRefundID,
		Fee:             body.Fee,
		ErrorCode:       body.ErrorCode,
		ErrorMessage:    body.ErrorMessage,
		Raw:             string(responseBodyBytes),
	}
	if !body.Success && body.ErrorCode == "" {
		result.ErrorCode = "GATEWAY_ERROR"
	}
	return result, nil
}

func (g *HTTPGateway) CheckStatus(ctx context.Context, refund *domain.Refund) (domain.GatewayState, error) {
	ctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/refunds/%s/status", g.Address, refund.GatewayRefundID), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	response, err := g.client.Do(req)
	if err != nil {
		return "", domain.NewGatewayError(err)
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return "", domain.NewGatewayError(err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", domain.NewGatewayError(fmt.Errorf("gateway status check: http %d", response.StatusCode))
	}

	var body statusResponse
	if err := json.Unmarshal(responseBodyBytes, &body); err != nil {
		return "", domain.NewGatewayError(fmt.Errorf("malformed gateway response: %w", err))
	}

	switch body.Status {
	case "completed", "settled":
		return domain.GatewayStateCompleted, nil
	case "failed", "declined":
		return domain.GatewayStateFailed, nil
	default:
		return domain.GatewayStatePending, nil
	}
}
