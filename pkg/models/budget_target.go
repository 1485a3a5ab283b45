package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetTarget is the monthly spending ceiling for a category or one of its subcategories.
//
// An empty Subcategory targets the whole category. There is at most one target
// per (Category, Subcategory, Year, Month).
type BudgetTarget struct {
	DefaultModel
	Category      string          `json:"category" gorm:"uniqueIndex:budget_target_key"`
	Subcategory   string          `json:"subcategory" gorm:"uniqueIndex:budget_target_key"`
	MonthlyTarget decimal.Decimal `json:"monthlyTarget" gorm:"type:DECIMAL(20,8)"`
	Year          int             `json:"year" gorm:"uniqueIndex:budget_target_key"`
	Month         int             `json:"month" gorm:"uniqueIndex:budget_target_key;check:month >= 1 AND month <= 12"`
}

func (b BudgetTarget) Self() string {
	return "Budget Target"
}

func (b *BudgetTarget) BeforeSave(_ *gorm.DB) error {
	b.Category = strings.TrimSpace(b.Category)
	b.Subcategory = strings.TrimSpace(b.Subcategory)

	if b.Category == "" {
		return NewValidationError("budget target", "category must not be empty")
	}

	if b.Month < 1 || b.Month > 12 {
		return ErrMonthOutOfRange
	}

	if b.MonthlyTarget.IsNegative() {
		return NewValidationError("budget target", "monthly target must not be negative")
	}

	return nil
}
