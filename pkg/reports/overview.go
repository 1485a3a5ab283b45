package reports

import (
	"context"
	"time"

	"github.com/homeledger/backend/internal/types"
	"github.com/homeledger/backend/pkg/ledger"
	"github.com/shopspring/decimal"
)

// Overview is the dashboard of one month.
type Overview struct {
	Month           types.Month
	IncomeByPerson  []ledger.PersonTotal
	ExpenseByPerson []ledger.PersonTotal
	TotalIncome     decimal.Decimal
	TotalExpense    decimal.Decimal
	Net             decimal.Decimal // Also the amount available for savings
	SavingsRate     decimal.Decimal // Percent of the income, one decimal place
	DaysInMonth     int
	DaysRemaining   int
	DailyAverage    decimal.Decimal
	Projected       decimal.Decimal // Spending at the end of the month if the daily average holds
	TopCategories   []CategoryTotal
}

// Overview summarizes a month.
//
// For the current month, averages use the days elapsed so far. For all
// other months, the full month is used.
func (r *Reporter) Overview(ctx context.Context, year int, month time.Month) (Overview, error) {
	summary, err := r.store.MonthlySummary(ctx, year, month)
	if err != nil {
		return Overview{}, err
	}

	top, err := r.TopCategories(ctx, year, month, 5)
	if err != nil {
		return Overview{}, err
	}

	o := Overview{
		Month:           summary.Month,
		IncomeByPerson:  summary.IncomeByPerson,
		ExpenseByPerson: summary.ExpenseByPerson,
		TotalIncome:     decimal.Zero,
		TotalExpense:    decimal.Zero,
		SavingsRate:     decimal.Zero,
		DaysInMonth:     summary.Month.Days(),
		TopCategories:   top,
	}

	for _, p := range summary.IncomeByPerson {
		o.TotalIncome = o.TotalIncome.Add(p.Total)
	}
	for _, p := range summary.ExpenseByPerson {
		o.TotalExpense = o.TotalExpense.Add(p.Total)
	}

	o.Net = o.TotalIncome.Sub(o.TotalExpense)
	if o.TotalIncome.IsPositive() {
		o.SavingsRate = o.Net.Div(o.TotalIncome).Mul(decimal.NewFromInt(100)).Round(1)
	}

	elapsed := o.DaysInMonth
	if today := r.now(); summary.Month.Equal(types.MonthOf(today)) {
		elapsed = today.Day()
	}
	o.DaysRemaining = max(0, o.DaysInMonth-elapsed)

	average := o.TotalExpense.Div(decimal.NewFromInt(int64(elapsed)))
	o.DailyAverage = average.Round(2)
	o.Projected = average.Mul(decimal.NewFromInt(int64(o.DaysInMonth))).Round(2)

	return o, nil
}
