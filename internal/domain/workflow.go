package domain

import "time"

type StepDecision string

const (
	DecisionPending  StepDecision = "PENDING"
	DecisionApproved StepDecision = "APPROVED"
	DecisionRejected StepDecision = "REJECTED"
)

type ApprovalLevel string

const (
	LevelLow      ApprovalLevel = "LOW"
	LevelMedium   ApprovalLevel = "MEDIUM"
	LevelHigh     ApprovalLevel = "HIGH"
	LevelCritical ApprovalLevel = "CRITICAL"
)

// MaxStepEscalations caps how many times a single step may be reassigned.
const MaxStepEscalations = 2

type WorkflowStep struct {
	ID               string
	RefundID         string
	TenantID         string
	StepNumber       int
	TotalSteps       int
	StepName         string
	ApprovalLevel    ApprovalLevel
	AssignedTo       string
	AssignedAt       time.Time
	DueAt            time.Time
	SLAHours         int
	Decision         StepDecision
	DecidedBy        string
	DecidedAt        *time.Time
	DecisionReason   string
	IsCurrentStep    bool
	IsCompleted      bool
	IsOverdue        bool
	EscalatedTo      string
	EscalationReason string
	EscalationCount  int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (s *WorkflowStep) CanBeEscalated() bool {
	return !s.IsCompleted && s.Decision == DecisionPending && s.EscalationCount < MaxStepEscalations
}

type WorkflowRepository interface {
	CreateSteps(steps []*WorkflowStep) error
	GetStepByID(stepID string) (*WorkflowStep, error)
	GetCurrentStep(refundID string) (*WorkflowStep, error)
	GetSteps(refundID string) ([]*WorkflowStep, error)
	UpdateStep(step *WorkflowStep) error
	// ProcessStepTransition reloads the step under a row lock, applies
	// mutate and saves. The mutate callback re-runs its guards against
	// the locked row, so two concurrent decisions cannot both commit.
	ProcessStepTransition(stepID string, mutate func(*WorkflowStep) error) error
	// CompleteRemaining force-completes every unresolved step of a refund,
	// used when a rejection halts the pipeline.
	CompleteRemaining(refundID string) error
	GetPendingStepsByAssignee(tenantID, actorID string) ([]*WorkflowStep, error)
	FindOverdueSteps(now time.Time) ([]*WorkflowStep, error)
}

// ApproverDirectory resolves workflow assignees per tenant. Unknown roles
// fall back to the tenant admin.
type ApproverDirectory interface {
	FindByRole(tenantID, role string) (string, error)
}

const (
	RoleCustomerService = "customer_service"
	RoleManager         = "manager"
	RoleFinanceManager  = "finance_manager"
	RoleExecutive       = "executive"
	RoleAdmin           = "admin"
)

// EscalationRole maps an approval level to the role a step escalates to.
func EscalationRole(level ApprovalLevel) string {
	switch level {
	case LevelLow:
		return RoleManager
	case LevelMedium:
		return RoleFinanceManager
	case LevelHigh:
		return RoleExecutive
	default:
		return RoleAdmin
	}
}
