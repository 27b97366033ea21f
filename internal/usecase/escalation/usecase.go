package usecase

import (
	"log/slog"

	"github.com/nusakarsa/refund-service/internal/domain"
	publisher "github.com/nusakarsa/refund-service/internal/infrastructure/kafka"
	"github.com/nusakarsa/refund-service/internal/infrastructure/metrics"
	escalationdto "github.com/nusakarsa/refund-service/internal/usecase/dto/escalation"
)

// EscalationUsecase drives dispute and vendor liability cases. Both kinds
// share one lifecycle; the handlers only differ in who the counterparty is
// and what a resolution settles.
type EscalationUsecase interface {
	OpenCase(input *escalationdto.OpenCaseInput) (*escalationdto.CaseOutput, error)
	Respond(input *escalationdto.RespondInput) error
	Resolve(input *escalationdto.ResolveInput) error
	EscalateCase(input *escalationdto.EscalateCaseInput) error

	GetCaseByID(tenantID, caseID string) (*escalationdto.CaseOutput, error)
	GetCases(input *escalationdto.ListCasesInput) (*escalationdto.ListCasesOutput, error)
}

type DefaultEscalationUsecase struct {
	CaseRepo   domain.EscalationCaseRepository
	RefundRepo domain.RefundRepository
	FundRepo   domain.InsuranceFundRepository
	Publisher  domain.PublisherPort
	Metrics    *metrics.RefundMetrics
}

func NewDefaultEscalationUsecase(
	caseRepo domain.EscalationCaseRepository,
	refundRepo domain.RefundRepository,
	fundRepo domain.InsuranceFundRepository,
	pub domain.PublisherPort,
	refundMetrics *metrics.RefundMetrics) *DefaultEscalationUsecase {

	return &DefaultEscalationUsecase{
		CaseRepo:   caseRepo,
		RefundRepo: refundRepo,
		FundRepo:   fundRepo,
		Publisher:  pub,
		Metrics:    refundMetrics,
	}
}

func (uc *DefaultEscalationUsecase) recordCaseTransition(c *domain.EscalationCase) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.EscalationCasesTotal.WithLabelValues(
		c.TenantID, string(c.Kind), string(c.Status),
	).Inc()
}

func (uc *DefaultEscalationUsecase) publishCaseEvent(c *domain.EscalationCase, actorID string) {
	if uc.Publisher == nil {
		return
	}
	go func(event publisher.EscalationEvent) {
		msg, err := event.Message()
		if err != nil {
			slog.Error("failed to marshal escalation event", "case_id", c.ID, "error", err.Error())
			return
		}
		if err := uc.Publisher.Publish(publisher.TopicEscalationEvents, msg); err != nil {
			slog.Error("failed to publish escalation event", "case_id", c.ID, "error", err.Error())
		}
	}(publisher.NewEscalationEvent(c, actorID))
}

// guardedCase loads a case and enforces tenant ownership.
func (uc *DefaultEscalationUsecase) guardedCase(tenantID, caseID string) (*domain.EscalationCase, error) {
	c, err := uc.CaseRepo.GetCaseByID(caseID)
	if err != nil {
		return nil, err
	}
	if c.TenantID != tenantID {
		return nil, domain.NewNotFound("case %s not found", caseID)
	}
	return c, nil
}
