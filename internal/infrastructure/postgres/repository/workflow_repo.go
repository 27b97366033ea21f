package repository

import (
	"errors"
	"time"

	"github.com/nusakarsa/refund-service/internal/domain"
	"github.com/nusakarsa/refund-service/internal/infrastructure/postgres/mappers"
	"github.com/nusakarsa/refund-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultWorkflowRepository struct {
	DB *gorm.DB
}

func NewDefaultWorkflowRepository(db *gorm.DB) *DefaultWorkflowRepository {
	return &DefaultWorkflowRepository{DB: db}
}

func (r *DefaultWorkflowRepository) CreateSteps(steps []*domain.WorkflowStep) error {
	stepModels := make([]*models.WorkflowStepModel, len(steps))
	for i, step := range steps {
		stepModels[i] = mappers.ToGORMStep(step)
	}
	return r.DB.Create(&stepModels).Error
}

func (r *DefaultWorkflowRepository) GetStepByID(stepID string) (*domain.WorkflowStep, error) {
	var stepModel models.WorkflowStepModel
	if err := r.DB.First(&stepModel, "id = ?", stepID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("workflow step %s not found", stepID)
		}
		return nil, err
	}
	return mappers.ToDomainStep(&stepModel), nil
}

func (r *DefaultWorkflowRepository) GetCurrentStep(refundID string) (*domain.WorkflowStep, error) {
	var stepModel models.WorkflowStepModel
	if err := r.DB.
		Where("refund_id = ?", refundID).
		Where("is_current_step = ?", true).
		First(&stepModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFound("no active workflow step for refund %s", refundID)
		}
		return nil, err
	}
	return mappers.ToDomainStep(&stepModel), nil
}

func (r *DefaultWorkflowRepository) GetSteps(refundID string) ([]*domain.WorkflowStep, error) {
	var stepModels []models.WorkflowStepModel
	if err := r.DB.
		Where("refund_id = ?", refundID).
		Order("step_number ASC").
		Find(&stepModels).Error; err != nil {
		return nil, err
	}
	steps := make([]*domain.WorkflowStep, len(stepModels))
	for i, stepModel := range stepModels {
		steps[i] = mappers.ToDomainStep(&stepModel)
	}
	return steps, nil
}

func (r *DefaultWorkflowRepository) UpdateStep(step *domain.WorkflowStep) error {
	step.UpdatedAt = time.Now()
	return r.DB.Save(mappers.ToGORMStep(step)).Error
}

// ProcessStepTransition serializes decisions on one workflow step row,
// mirroring the refund transition lock. The caller's guards run again
// inside mutate against the locked row.
func (r *DefaultWorkflowRepository) ProcessStepTransition(
	stepID string,
	mutate func(*domain.WorkflowStep) error,
) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var stepModel models.WorkflowStepModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&stepModel, "id = ?", stepID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFound("workflow step %s not found", stepID)
			}
			return err
		}

		step := mappers.ToDomainStep(&stepModel)
		if err := mutate(step); err != nil {
			return err
		}

		step.UpdatedAt = time.Now()
		return tx.Save(mappers.ToGORMStep(step)).Error
	})
}

func (r *DefaultWorkflowRepository) CompleteRemaining(refundID string) error {
	return r.DB.Model(&models.WorkflowStepModel{}).
		Where("refund_id = ?", refundID).
		Where("is_completed = ?", false).
		Updates(map[string]any{
			"is_completed":    true,
			"is_current_step": false,
			"updated_at":      time.Now(),
		}).Error
}

func (r *DefaultWorkflowRepository) GetPendingStepsByAssignee(tenantID, actorID string) ([]*domain.WorkflowStep, error) {
	var stepModels []models.WorkflowStepModel
	if err := r.DB.
		Where("tenant_id = ?", tenantID).
		Where("assigned_to = ?", actorID).
		Where("is_current_step = ?", true).
		Where("decision = ?", string(domain.DecisionPending)).
		Order("due_at ASC").
		Find(&stepModels).Error; err != nil {
		return nil, err
	}
	steps := make([]*domain.WorkflowStep, len(stepModels))
	for i, stepModel := range stepModels {
		steps[i] = mappers.ToDomainStep(&stepModel)
	}
	return steps, nil
}

func (r *DefaultWorkflowRepository) FindOverdueSteps(now time.Time) ([]*domain.WorkflowStep, error) {
	var stepModels []models.WorkflowStepModel
	if err := r.DB.
		Where("is_current_step = ?", true).
		Where("decision = ?", string(domain.DecisionPending)).
		Where("due_at < ?", now).
		Find(&stepModels).Error; err != nil {
		return nil, err
	}
	steps := make([]*domain.WorkflowStep, len(stepModels))
	for i, stepModel := range stepModels {
		steps[i] = mappers.ToDomainStep(&stepModel)
	}
	return steps, nil
}
