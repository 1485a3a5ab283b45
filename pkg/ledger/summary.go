package ledger

import (
	"context"
	"time"

	"github.com/homeledger/backend/internal/types"
	"github.com/homeledger/backend/pkg/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sums are rounded to the scale of the amount columns since SQLite
// adds them as floating point numbers.
const sumScale = 8

type PersonTotal struct {
	Person string
	Total  decimal.Decimal
}

type CategoryTotal struct {
	Category    string
	Subcategory string
	Total       decimal.Decimal
}

// Summary contains the totals of one month.
type Summary struct {
	Month             types.Month
	IncomeByPerson    []PersonTotal
	ExpenseByPerson   []PersonTotal
	ExpenseByCategory []CategoryTotal
}

// InMonth restricts a query on a table with a date column to the days of the month.
func InMonth(tx *gorm.DB, m types.Month) *gorm.DB {
	return tx.Where("date(date) >= date(?) AND date(date) <= date(?)", m.FirstDay().Format(time.DateOnly), m.LastDay().Format(time.DateOnly))
}

// MonthlySummary groups the transactions of a month by person and by category.
func (s *Store) MonthlySummary(ctx context.Context, year int, month time.Month) (Summary, error) {
	m := types.NewMonth(year, month)
	summary := Summary{Month: m}

	err := InMonth(s.db.WithContext(ctx).Model(&models.Income{}), m).
		Select("person, SUM(amount) AS total").
		Group("person").
		Order("person").
		Scan(&summary.IncomeByPerson).
		Error
	if err != nil {
		return Summary{}, err
	}

	err = InMonth(s.db.WithContext(ctx).Model(&models.Expense{}), m).
		Select("person, SUM(amount) AS total").
		Group("person").
		Order("person").
		Scan(&summary.ExpenseByPerson).
		Error
	if err != nil {
		return Summary{}, err
	}

	err = InMonth(s.db.WithContext(ctx).Model(&models.Expense{}), m).
		Select("category, subcategory, SUM(amount) AS total").
		Group("category, subcategory").
		Order("category, subcategory").
		Scan(&summary.ExpenseByCategory).
		Error
	if err != nil {
		return Summary{}, err
	}

	for i := range summary.IncomeByPerson {
		summary.IncomeByPerson[i].Total = summary.IncomeByPerson[i].Total.Round(sumScale)
	}
	for i := range summary.ExpenseByPerson {
		summary.ExpenseByPerson[i].Total = summary.ExpenseByPerson[i].Total.Round(sumScale)
	}
	for i := range summary.ExpenseByCategory {
		summary.ExpenseByCategory[i].Total = summary.ExpenseByCategory[i].Total.Round(sumScale)
	}

	return summary, nil
}

// MonthTotals returns the income and the expenses of a month.
func (s *Store) MonthTotals(ctx context.Context, m types.Month) (income, expense decimal.Decimal, err error) {
	income, err = sum(InMonth(s.db.WithContext(ctx), m).Table("incomes"))
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	expense, err = sum(InMonth(s.db.WithContext(ctx), m).Table("expenses"))
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return income, expense, nil
}

// sum returns the sum of the amount column for the query.
func sum(tx *gorm.DB) (decimal.Decimal, error) {
	var total decimal.NullDecimal

	err := tx.Select("SUM(amount)").Find(&total).Error
	if err != nil {
		return decimal.Zero, err
	}

	// If no rows are found, the value is nil
	if !total.Valid {
		return decimal.NewFromFloat(0), nil
	}

	return total.Decimal.Round(sumScale), nil
}
