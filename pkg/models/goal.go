package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SavingsGoal is a target amount the household saves towards.
//
// CurrentAmount is the running sum of the goal's allocations and is only
// ever increased.
type SavingsGoal struct {
	DefaultModel
	Name          string              `json:"name" gorm:"uniqueIndex"`
	TargetAmount  decimal.Decimal     `json:"targetAmount" gorm:"type:DECIMAL(20,8)"`
	CurrentAmount decimal.Decimal     `json:"currentAmount" gorm:"type:DECIMAL(20,8)"`
	TargetDate    *time.Time          `json:"targetDate"`
	Priority      uint                `json:"priority" gorm:"default:1"` // Lower values are served first
	Notes         string              `json:"notes"`
	Allocations   []SavingsAllocation `json:"-" gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE"`
}

func (g SavingsGoal) Self() string {
	return "Savings Goal"
}

// Needed returns how much is missing to reach the target. It is never negative.
func (g SavingsGoal) Needed() decimal.Decimal {
	needed := g.TargetAmount.Sub(g.CurrentAmount)
	if needed.IsNegative() {
		return decimal.Zero
	}
	return needed
}

func (g *SavingsGoal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Notes = strings.TrimSpace(g.Notes)

	if g.Name == "" {
		return NewValidationError("savings goal", "name must not be empty")
	}

	if !g.TargetAmount.IsPositive() {
		return ErrGoalAmountNotPositive
	}

	if g.Priority == 0 {
		g.Priority = 1
	}

	return nil
}

// SavingsAllocation records one transfer of surplus funds to a goal.
// Allocations are never updated.
type SavingsAllocation struct {
	DefaultModel
	GoalID uuid.UUID       `json:"goalId" gorm:"index"`
	Amount decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Date   time.Time       `json:"date"`
	Notes  string          `json:"notes"`
}

func (a SavingsAllocation) Self() string {
	return "Savings Allocation"
}

func (a *SavingsAllocation) BeforeSave(_ *gorm.DB) error {
	a.Notes = strings.TrimSpace(a.Notes)
	a.Date = dateOrToday(a.Date)

	if !a.Amount.IsPositive() {
		return NewValidationError("savings allocation", "amount must be larger than zero")
	}

	return nil
}

func (a *SavingsAllocation) AfterFind(tx *gorm.DB) (err error) {
	err = a.DefaultModel.AfterFind(tx)
	a.Date = a.Date.In(time.UTC)
	return
}
