package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nusakarsa/refund-service/internal/domain"
)

// In-memory fakes. The refund fake mirrors the transactional transition
// semantics of the real repository so state machine tests exercise the
// same guards.

type fakeRefundRepo struct {
	mu      sync.Mutex
	refunds map[string]*domain.Refund
}

func newFakeRefundRepo() *fakeRefundRepo {
	return &fakeRefundRepo{refunds: map[string]*domain.Refund{}}
}

func (f *fakeRefundRepo) CreateRefund(refund *domain.Refund) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *refund
	f.refunds[refund.ID] = &clone
	return nil
}

func (f *fakeRefundRepo) GetRefundByID(refundID string) (*domain.Refund, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	refund, ok := f.refunds[refundID]
	if !ok {
		return nil, domain.NewNotFound("refund %s not found", refundID)
	}
	clone := *refund
	return &clone, nil
}

func (f *fakeRefundRepo) GetRefundByReference(reference string) (*domain.Refund, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, refund := range f.refunds {
		if refund.Reference == reference {
			clone := *refund
			return &clone, nil
		}
	}
	return nil, domain.NewNotFound("refund %s not found", reference)
}

func (f *fakeRefundRepo) GetRefunds(tenantID string, page, limit int64, filters domain.RefundFilters) ([]*domain.Refund, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Refund
	for _, refund := range f.refunds {
		if refund.TenantID != tenantID {
			continue
		}
		clone := *refund
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (f *fakeRefundRepo) GetRefundsSince(tenantID string, since time.Time) ([]*domain.Refund, error) {
	refunds, _, err := f.GetRefunds(tenantID, 1, 1000, domain.RefundFilters{})
	return refunds, err
}

func (f *fakeRefundRepo) ProcessRefundTransition(
	refundID string,
	expected domain.RefundStatus,
	mutate domain.RefundMutation,
	sideEffect func() error,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.refunds[refundID]
	if !ok {
		return domain.NewNotFound("refund %s not found", refundID)
	}
	if stored.Status != expected {
		return domain.NewInvalidState("refund %s is %s, expected %s", refundID, stored.Status, expected)
	}
	refund := *stored
	if err := mutate(&refund); err != nil {
		return err
	}
	if !domain.CanTransitRefund(expected, refund.Status) && refund.Status != expected {
		return domain.NewInvalidState("transition %s -> %s is not allowed", expected, refund.Status)
	}
	if sideEffect != nil {
		if err := sideEffect(); err != nil {
			return err
		}
	}
	refund.UpdatedAt = time.Now()
	f.refunds[refundID] = &refund
	return nil
}

func (f *fakeRefundRepo) ActiveRefundTotal(orderID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total int64
	for _, refund := range f.refunds {
		if refund.OrderID != orderID {
			continue
		}
		switch refund.Status {
		case domain.RefundRejected, domain.RefundCancelled, domain.RefundFailed:
		default:
			total += refund.Amount
		}
	}
	return total, nil
}

type fakeWorkflowRepo struct {
	mu    sync.Mutex
	steps map[string]*domain.WorkflowStep
}

func newFakeWorkflowRepo() *fakeWorkflowRepo {
	return &fakeWorkflowRepo{steps: map[string]*domain.WorkflowStep{}}
}

func (f *fakeWorkflowRepo) CreateSteps(steps []*domain.WorkflowStep) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, step := range steps {
		clone := *step
		f.steps[step.ID] = &clone
	}
	return nil
}

func (f *fakeWorkflowRepo) GetStepByID(stepID string) (*domain.WorkflowStep, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	step, ok := f.steps[stepID]
	if !ok {
		return nil, domain.NewNotFound("workflow step %s not found", stepID)
	}
	clone := *step
	return &clone, nil
}

func (f *fakeWorkflowRepo) GetCurrentStep(refundID string) (*domain.WorkflowStep, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, step := range f.steps {
		if step.RefundID == refundID && step.IsCurrentStep {
			clone := *step
			return &clone, nil
		}
	}
	return nil, domain.NewNotFound("no current step for refund %s", refundID)
}

func (f *fakeWorkflowRepo) GetSteps(refundID string) ([]*domain.WorkflowStep, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.WorkflowStep
	for _, step := range f.steps {
		if step.RefundID == refundID {
			clone := *step
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StepNumber < out[j].StepNumber })
	return out, nil
}

func (f *fakeWorkflowRepo) UpdateStep(step *domain.WorkflowStep) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.steps[step.ID]; !ok {
		return domain.NewNotFound("workflow step %s not found", step.ID)
	}
	clone := *step
	f.steps[step.ID] = &clone
	return nil
}

func (f *fakeWorkflowRepo) ProcessStepTransition(stepID string, mutate func(*domain.WorkflowStep) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.steps[stepID]
	if !ok {
		return domain.NewNotFound("workflow step %s not found", stepID)
	}
	step := *stored
	if err := mutate(&step); err != nil {
		return err
	}
	f.steps[stepID] = &step
	return nil
}

func (f *fakeWorkflowRepo) CompleteRemaining(refundID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, step := range f.steps {
		if step.RefundID == refundID && !step.IsCompleted {
			step.IsCompleted = true
			step.IsCurrentStep = false
		}
	}
	return nil
}

func (f *fakeWorkflowRepo) GetPendingStepsByAssignee(tenantID, actorID string) ([]*domain.WorkflowStep, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.WorkflowStep
	for _, step := range f.steps {
		if step.TenantID == tenantID && step.AssignedTo == actorID &&
			step.IsCurrentStep && !step.IsCompleted {
			clone := *step
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeWorkflowRepo) FindOverdueSteps(now time.Time) ([]*domain.WorkflowStep, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.WorkflowStep
	for _, step := range f.steps {
		if step.IsCurrentStep && step.Decision == domain.DecisionPending && step.DueAt.Before(now) {
			clone := *step
			out = append(out, &clone)
		}
	}
	return out, nil
}

type fakeOrders struct {
	paid     map[string]int64
	currency string
}

func (f *fakeOrders) PaidAmount(orderID string) (int64, string, error) {
	paid, ok := f.paid[orderID]
	if !ok {
		return 0, "", domain.NewNotFound("order %s not found", orderID)
	}
	return paid, f.currency, nil
}

type fakeApprovers struct {
	byRole map[string]string
}

func (f *fakeApprovers) FindByRole(tenantID, role string) (string, error) {
	actor, ok := f.byRole[role]
	if !ok {
		return "", domain.NewValidation("no approver for role %s in tenant %s", role, tenantID)
	}
	return actor, nil
}

type fakeGateway struct {
	mu         sync.Mutex
	result     *domain.GatewayResult
	err        error
	state      domain.GatewayState
	stateErr   error
	executed   int
	lastRefund *domain.Refund
}

func (f *fakeGateway) Execute(ctx context.Context, refund *domain.Refund) (*domain.GatewayResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.executed++
	clone := *refund
	f.lastRefund = &clone
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeGateway) CheckStatus(ctx context.Context, refund *domain.Refund) (domain.GatewayState, error) {
	return f.state, f.stateErr
}

type fakeFundRepo struct {
	mu  sync.Mutex
	txs []*domain.FundTx
}

func (f *fakeFundRepo) RecordFundTx(tx *domain.FundTx) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *tx
	f.txs = append(f.txs, &clone)
	return nil
}

func (f *fakeFundRepo) FundBalance(tenantID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var balance int64
	for _, tx := range f.txs {
		if tx.TenantID == tenantID {
			balance += tx.Amount
		}
	}
	return balance, nil
}

type testEnv struct {
	uc      *DefaultRefundUsecase
	refunds *fakeRefundRepo
	steps   *fakeWorkflowRepo
	orders  *fakeOrders
	gateway *fakeGateway
	fund    *fakeFundRepo
}

func newTestEnv() *testEnv {
	refunds := newFakeRefundRepo()
	steps := newFakeWorkflowRepo()
	orders := &fakeOrders{
		paid:     map[string]int64{"order-1": 10_000_000},
		currency: "IDR",
	}
	approvers := &fakeApprovers{byRole: map[string]string{
		domain.RoleCustomerService: "actor-cs",
		domain.RoleManager:         "actor-mgr",
		domain.RoleFinanceManager:  "actor-fin",
		domain.RoleExecutive:       "actor-exec",
		domain.RoleAdmin:           "actor-admin",
	}}
	gw := &fakeGateway{result: &domain.GatewayResult{Success: true, GatewayRefundID: "gw-1"}}
	fund := &fakeFundRepo{}

	uc := NewDefaultRefundUsecase(refunds, steps, orders, approvers, gw, fund, nil, nil)
	return &testEnv{uc: uc, refunds: refunds, steps: steps, orders: orders, gateway: gw, fund: fund}
}
