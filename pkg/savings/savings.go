// Package savings distributes surplus funds to savings goals.
package savings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/homeledger/backend/internal/types"
	"github.com/homeledger/backend/pkg/metrics"
	"github.com/homeledger/backend/pkg/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNoFundsAvailable = errors.New("no funds available")

// MonthTotaler returns the income and expenses of a month.
type MonthTotaler interface {
	MonthTotals(ctx context.Context, m types.Month) (income, expense decimal.Decimal, err error)
}

type Allocator struct {
	db     *gorm.DB
	totals MonthTotaler
	now    func() time.Time
}

// New creates an allocator. now defaults to time.Now.
func New(db *gorm.DB, totals MonthTotaler, now func() time.Time) *Allocator {
	if now == nil {
		now = time.Now
	}
	return &Allocator{db: db, totals: totals, now: now}
}

type GoalAllocation struct {
	GoalID uuid.UUID
	Name   string
	Amount decimal.Decimal
}

// Result describes one allocation run.
type Result struct {
	Allocations []GoalAllocation
	Allocated   decimal.Decimal
	Unallocated decimal.Decimal // Left over after all goals were served
}

// Allocate distributes the pool to the goals in order of priority, then name.
//
// Each goal receives at most what it still needs. Goals that already reached
// their target are skipped, they are never reduced. All writes happen in one
// database transaction.
func (a *Allocator) Allocate(ctx context.Context, pool decimal.Decimal) (Result, error) {
	if !pool.IsPositive() {
		return Result{}, ErrNoFundsAvailable
	}

	result := Result{Allocated: decimal.Zero, Unallocated: pool}
	today := types.Day(a.now())

	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var goals []models.SavingsGoal
		err := tx.Order("priority ASC").Order("name ASC").Find(&goals).Error
		if err != nil {
			return err
		}

		remaining := pool
		for _, goal := range goals {
			if !remaining.IsPositive() {
				break
			}

			needed := goal.Needed()
			if !needed.IsPositive() {
				continue
			}

			amount := decimal.Min(remaining, needed)

			err := tx.Create(&models.SavingsAllocation{
				GoalID: goal.ID,
				Amount: amount,
				Date:   today,
				Notes:  "Automatic allocation",
			}).Error
			if err != nil {
				return err
			}

			err = tx.Model(&goal).Update("current_amount", goal.CurrentAmount.Add(amount)).Error
			if err != nil {
				return err
			}

			remaining = remaining.Sub(amount)
			result.Allocations = append(result.Allocations, GoalAllocation{GoalID: goal.ID, Name: goal.Name, Amount: amount})
		}

		result.Allocated = pool.Sub(remaining)
		result.Unallocated = remaining
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	metrics.Allocations.Add(float64(len(result.Allocations)))
	metrics.AllocatedAmount.Add(result.Allocated.InexactFloat64())

	return result, nil
}

// Available returns the surplus of the current month: income minus expenses.
func (a *Allocator) Available(ctx context.Context) (decimal.Decimal, error) {
	income, expense, err := a.totals.MonthTotals(ctx, types.MonthOf(a.now()))
	if err != nil {
		return decimal.Zero, err
	}
	return income.Sub(expense), nil
}

// AllocateSurplus allocates the surplus of the current month.
func (a *Allocator) AllocateSurplus(ctx context.Context) (Result, error) {
	pool, err := a.Available(ctx)
	if err != nil {
		return Result{}, err
	}
	return a.Allocate(ctx, pool)
}

// GoalProgress shows how far a goal is funded.
type GoalProgress struct {
	Goal      models.SavingsGoal
	Remaining decimal.Decimal
	Percent   decimal.Decimal // Funded share of the target, rounded to two places
}

// Progress returns the progress of all goals in allocation order.
func (a *Allocator) Progress(ctx context.Context) ([]GoalProgress, error) {
	var goals []models.SavingsGoal
	err := a.db.WithContext(ctx).Order("priority ASC").Order("name ASC").Find(&goals).Error
	if err != nil {
		return nil, err
	}

	progress := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		percent := decimal.Zero
		if g.TargetAmount.IsPositive() {
			percent = g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2)
		}

		progress = append(progress, GoalProgress{
			Goal:      g,
			Remaining: g.Needed(),
			Percent:   percent,
		})
	}
	return progress, nil
}
