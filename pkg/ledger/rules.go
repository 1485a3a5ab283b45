package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/homeledger/backend/pkg/models"
)

func (s *Store) AddMatchRule(ctx context.Context, rule models.MatchRule) (models.MatchRule, error) {
	if !s.validator.IsValid(rule.Category, rule.Subcategory) {
		return models.MatchRule{}, models.NewValidationError("match rule", "the category and subcategory must exist")
	}

	err := s.db.WithContext(ctx).Create(&rule).Error
	if err != nil {
		return models.MatchRule{}, err
	}
	return rule, nil
}

// MatchRules returns all rules in the order they are evaluated in.
func (s *Store) MatchRules(ctx context.Context) ([]models.MatchRule, error) {
	var rules []models.MatchRule
	err := s.db.WithContext(ctx).Order("priority ASC").Order("rowid ASC").Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (s *Store) DeleteMatchRule(ctx context.Context, id uuid.UUID) error {
	tx := s.db.WithContext(ctx).Delete(&models.MatchRule{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return models.NewNotFoundError("match rule")
	}
	return nil
}
