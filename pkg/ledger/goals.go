package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/homeledger/backend/pkg/models"
	"gorm.io/gorm"
)

func (s *Store) AddGoal(ctx context.Context, goal models.SavingsGoal) (models.SavingsGoal, error) {
	err := s.db.WithContext(ctx).Create(&goal).Error
	if err != nil {
		return models.SavingsGoal{}, err
	}
	return goal, nil
}

// Goals returns all savings goals in allocation order.
func (s *Store) Goals(ctx context.Context) ([]models.SavingsGoal, error) {
	var goals []models.SavingsGoal
	err := s.db.WithContext(ctx).Order("priority ASC").Order("name ASC").Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}

// DeleteGoal deletes a goal together with its allocations.
func (s *Store) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	tx := s.db.WithContext(ctx).Delete(&models.SavingsGoal{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return models.NewNotFoundError("savings goal")
	}
	return nil
}

// GoalAllocations returns the allocations of a goal, oldest first.
func (s *Store) GoalAllocations(ctx context.Context, id uuid.UUID) ([]models.SavingsAllocation, error) {
	var goal models.SavingsGoal
	err := s.db.WithContext(ctx).Preload("Allocations", func(db *gorm.DB) *gorm.DB {
		return db.Order("date(date) ASC").Order("rowid ASC")
	}).First(&goal, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return goal.Allocations, nil
}
