package mappers

import (
	"github.com/nusakarsa/refund-service/internal/domain"
	"github.com/nusakarsa/refund-service/internal/infrastructure/postgres/models"
)

func ToDomainRefund(model *models.RefundModel) *domain.Refund {
	return &domain.Refund{
		ID:               model.ID,
		Reference:        model.Reference,
		TenantID:         model.TenantID,
		OrderID:          model.OrderID,
		CustomerID:       model.CustomerID,
		Amount:           model.Amount,
		Currency:         model.Currency,
		Method:           domain.RefundMethod(model.Method),
		Status:           model.Status,
		ReasonCategory:   domain.ReasonCategory(model.ReasonCategory),
		Reason:           model.Reason,
		IsDisputed:       model.IsDisputed,
		ProcessingFee:    model.ProcessingFee,
		RetryCount:       model.RetryCount,
		GatewayRefundID:  model.GatewayRefundID,
		GatewayErrorCode: model.GatewayErrorCode,
		FailureReason:    model.FailureReason,
		GatewayResponse:  model.GatewayResponse,
		RequestedBy:      model.RequestedBy,
		ApprovedBy:       model.ApprovedBy,
		ProcessedBy:      model.ProcessedBy,
		ProcessedAt:      model.ProcessedAt,
		CompletedAt:      model.CompletedAt,
		FailedAt:         model.FailedAt,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

func ToGORMRefund(refund *domain.Refund) *models.RefundModel {
	return &models.RefundModel{
		ID:               refund.ID,
		Reference:        refund.Reference,
		TenantID:         refund.TenantID,
		OrderID:          refund.OrderID,
		CustomerID:       refund.CustomerID,
		Amount:           refund.Amount,
		Currency:         refund.Currency,
		Method:           string(refund.Method),
		Status:           refund.Status,
		ReasonCategory:   string(refund.ReasonCategory),
		Reason:           refund.Reason,
		IsDisputed:       refund.IsDisputed,
		ProcessingFee:    refund.ProcessingFee,
		RetryCount:       refund.RetryCount,
		GatewayRefundID:  refund.GatewayRefundID,
		GatewayErrorCode: refund.GatewayErrorCode,
		FailureReason:    refund.FailureReason,
		GatewayResponse:  refund.GatewayResponse,
		RequestedBy:      refund.RequestedBy,
		ApprovedBy:       refund.ApprovedBy,
		ProcessedBy:      refund.ProcessedBy,
		ProcessedAt:      refund.ProcessedAt,
		CompletedAt:      refund.CompletedAt,
		FailedAt:         refund.FailedAt,
		CreatedAt:        refund.CreatedAt,
		UpdatedAt:        refund.UpdatedAt,
	}
}
