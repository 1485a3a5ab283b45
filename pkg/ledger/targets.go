package ledger

import (
	"context"

	"github.com/homeledger/backend/internal/types"
	"github.com/homeledger/backend/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var budgetTargetKey = []clause.Column{{Name: "category"}, {Name: "subcategory"}, {Name: "year"}, {Name: "month"}}

// SetBudgetTarget creates the target or replaces the amount of an existing
// target for the same category, subcategory and month.
func (s *Store) SetBudgetTarget(ctx context.Context, target models.BudgetTarget) (models.BudgetTarget, error) {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   budgetTargetKey,
		DoUpdates: clause.AssignmentColumns([]string{"monthly_target", "updated_at"}),
	}).Create(&target).Error
	if err != nil {
		return models.BudgetTarget{}, err
	}

	// On conflict, the ID of the stored row differs from the generated one
	var stored models.BudgetTarget
	err = s.db.WithContext(ctx).
		Where("category = ? AND subcategory = ? AND year = ? AND month = ?", target.Category, target.Subcategory, target.Year, target.Month).
		First(&stored).
		Error
	if err != nil {
		return models.BudgetTarget{}, err
	}

	return stored, nil
}

// BudgetTargets returns the targets of a month.
func (s *Store) BudgetTargets(ctx context.Context, m types.Month) ([]models.BudgetTarget, error) {
	var targets []models.BudgetTarget
	err := s.db.WithContext(ctx).
		Where("year = ? AND month = ?", m.Year(), int(m.Month())).
		Order("category, subcategory").
		Find(&targets).
		Error
	if err != nil {
		return nil, err
	}
	return targets, nil
}

// CopyBudgetTargets sets the targets of one month for another month.
// Targets already set in the destination month are replaced.
func (s *Store) CopyBudgetTargets(ctx context.Context, from, to types.Month) (int, error) {
	targets, err := s.BudgetTargets(ctx, from)
	if err != nil {
		return 0, err
	}

	if len(targets) == 0 {
		return 0, nil
	}

	copies := make([]models.BudgetTarget, 0, len(targets))
	for _, t := range targets {
		copies = append(copies, models.BudgetTarget{
			Category:      t.Category,
			Subcategory:   t.Subcategory,
			MonthlyTarget: t.MonthlyTarget,
			Year:          to.Year(),
			Month:         int(to.Month()),
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   budgetTargetKey,
			DoUpdates: clause.AssignmentColumns([]string{"monthly_target", "updated_at"}),
		}).Create(&copies).Error
	})
	if err != nil {
		return 0, err
	}

	return len(copies), nil
}
