package usecase

import (
	"testing"
	"time"

	"github.com/nusakarsa/refund-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessOverdueSteps_MarksOverdue(t *testing.T) {
	env := newTestEnv()
	_, steps := createPending(t, env, 100_000)

	// Push the deadline into the past, but not far enough to escalate.
	stored, _ := env.steps.GetStepByID(steps[0].ID)
	stored.DueAt = time.Now().Add(-time.Hour)
	require.NoError(t, env.steps.UpdateStep(stored))

	touched, err := env.uc.ProcessOverdueSteps()
	require.NoError(t, err)
	assert.Equal(t, 1, touched)

	step, _ := env.steps.GetStepByID(steps[0].ID)
	assert.True(t, step.IsOverdue)
	assert.Equal(t, 0, step.EscalationCount)
	assert.Equal(t, "actor-cs", step.AssignedTo)
}

func TestProcessOverdueSteps_AutoEscalates(t *testing.T) {
	env := newTestEnv()
	_, steps := createPending(t, env, 100_000)

	stored, _ := env.steps.GetStepByID(steps[0].ID)
	stored.DueAt = time.Now().Add(-72 * time.Hour)
	require.NoError(t, env.steps.UpdateStep(stored))

	touched, err := env.uc.ProcessOverdueSteps()
	require.NoError(t, err)
	assert.Equal(t, 2, touched, "marked overdue and escalated")

	step, _ := env.steps.GetStepByID(steps[0].ID)
	assert.True(t, step.IsOverdue)
	assert.Equal(t, 1, step.EscalationCount)
	assert.Equal(t, "actor-mgr", step.AssignedTo)
}

func TestProcessOverdueSteps_EscalatesPreviouslyMarkedStep(t *testing.T) {
	env := newTestEnv()
	_, steps := createPending(t, env, 100_000)

	stored, _ := env.steps.GetStepByID(steps[0].ID)
	stored.DueAt = time.Now().Add(-time.Hour)
	require.NoError(t, env.steps.UpdateStep(stored))

	touched, err := env.uc.ProcessOverdueSteps()
	require.NoError(t, err)
	assert.Equal(t, 1, touched)

	// The deadline keeps slipping between sweeps. Already-marked steps
	// must still come back so the escalation branch can fire.
	stored, _ = env.steps.GetStepByID(steps[0].ID)
	stored.DueAt = time.Now().Add(-72 * time.Hour)
	require.NoError(t, env.steps.UpdateStep(stored))

	touched, err = env.uc.ProcessOverdueSteps()
	require.NoError(t, err)
	assert.Equal(t, 1, touched, "escalated without re-marking")

	step, _ := env.steps.GetStepByID(steps[0].ID)
	assert.True(t, step.IsOverdue)
	assert.Equal(t, 1, step.EscalationCount)
	assert.Equal(t, "actor-mgr", step.AssignedTo)
}

func TestProcessOverdueSteps_IgnoresCompleted(t *testing.T) {
	env := newTestEnv()
	_, steps := createPending(t, env, 100_000)

	stored, _ := env.steps.GetStepByID(steps[0].ID)
	stored.DueAt = time.Now().Add(-time.Hour)
	stored.IsCompleted = true
	stored.IsCurrentStep = false
	require.NoError(t, env.steps.UpdateStep(stored))

	touched, err := env.uc.ProcessOverdueSteps()
	require.NoError(t, err)
	assert.Equal(t, 0, touched)
}

func TestGetPendingWork(t *testing.T) {
	env := newTestEnv()
	createPending(t, env, 100_000)
	createPending(t, env, 100_000)

	steps, err := env.uc.GetPendingWork("tenant-1", "actor-cs")
	require.NoError(t, err)
	assert.Len(t, steps, 2)

	steps, err = env.uc.GetPendingWork("tenant-1", "actor-mgr")
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestGetRefundByID_TenantIsolation(t *testing.T) {
	env := newTestEnv()
	out, _ := createPending(t, env, 100_000)

	_, err := env.uc.GetRefundByID("tenant-2", out.ID)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrKindNotFound))

	refund, err := env.uc.GetRefundByID("tenant-1", out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.ID, refund.ID)
}

func TestGetWorkflowSteps(t *testing.T) {
	env := newTestEnv()
	out, _ := createPending(t, env, 300_000)

	steps, err := env.uc.GetWorkflowSteps("tenant-1", out.ID)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, 1, steps[0].StepNumber)
	assert.Equal(t, 2, steps[1].StepNumber)

	_, err = env.uc.GetWorkflowSteps("tenant-2", out.ID)
	require.Error(t, err)
}
