// Package reports derives read-only views from the ledger: budget variance,
// trends, top categories and the monthly overview.
package reports

import (
	"cmp"
	"context"
	"time"

	"github.com/homeledger/backend/internal/types"
	"github.com/homeledger/backend/pkg/catalog"
	"github.com/homeledger/backend/pkg/ledger"
	"github.com/homeledger/backend/pkg/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

const sumScale = 8

// Catalog lists the known category/subcategory pairs in catalog order.
type Catalog interface {
	Pairs() []catalog.Pair
}

// Household names the two persons whose spending is reported separately.
type Household struct {
	PersonA string
	PersonB string
}

type Reporter struct {
	store     *ledger.Store
	catalog   Catalog
	household Household
	now       func() time.Time
}

// New creates a reporter. now defaults to time.Now.
func New(store *ledger.Store, c Catalog, household Household, now func() time.Time) *Reporter {
	if now == nil {
		now = time.Now
	}
	return &Reporter{store: store, catalog: c, household: household, now: now}
}

type key struct {
	Category    string
	Subcategory string
}

// VarianceRow compares the budget target of a subcategory to the actual spending.
type VarianceRow struct {
	Category    string
	Subcategory string
	Estimate    decimal.Decimal
	PersonA     decimal.Decimal
	PersonB     decimal.Decimal
	TotalActual decimal.Decimal // Spending of all persons
	Variance    decimal.Decimal // Estimate - TotalActual, negative when over budget
}

// BudgetVsActual returns one row for every catalog pair in catalog order,
// followed by all pairs that only have spending or a target in the month,
// sorted by category and subcategory.
func (r *Reporter) BudgetVsActual(ctx context.Context, year int, month time.Month) ([]VarianceRow, error) {
	m := types.NewMonth(year, month)

	var actuals []struct {
		Category    string
		Subcategory string
		Person      string
		Total       decimal.Decimal
	}

	err := ledger.InMonth(r.store.DB().WithContext(ctx).Model(&models.Expense{}), m).
		Select("category, subcategory, person, SUM(amount) AS total").
		Group("category, subcategory, person").
		Order("category, subcategory, person").
		Scan(&actuals).
		Error
	if err != nil {
		return nil, err
	}

	targets, err := r.store.BudgetTargets(ctx, m)
	if err != nil {
		return nil, err
	}

	rows := make(map[key]*VarianceRow)
	row := func(k key) *VarianceRow {
		if v, ok := rows[k]; ok {
			return v
		}
		v := &VarianceRow{
			Category:    k.Category,
			Subcategory: k.Subcategory,
			Estimate:    decimal.Zero,
			PersonA:     decimal.Zero,
			PersonB:     decimal.Zero,
			TotalActual: decimal.Zero,
		}
		rows[k] = v
		return v
	}

	keys := []key{}
	for _, p := range r.catalog.Pairs() {
		k := key{p.Category, p.Subcategory}
		if _, ok := rows[k]; !ok {
			keys = append(keys, k)
			row(k)
		}
	}
	known := len(keys)

	for _, a := range actuals {
		k := key{a.Category, a.Subcategory}
		if _, ok := rows[k]; !ok {
			keys = append(keys, k)
		}

		v := row(k)
		total := a.Total.Round(sumScale)
		switch a.Person {
		case r.household.PersonA:
			v.PersonA = v.PersonA.Add(total)
		case r.household.PersonB:
			v.PersonB = v.PersonB.Add(total)
		}
		v.TotalActual = v.TotalActual.Add(total)
	}

	for _, t := range targets {
		k := key{t.Category, t.Subcategory}
		if _, ok := rows[k]; !ok {
			keys = append(keys, k)
		}
		row(k).Estimate = t.MonthlyTarget
	}

	slices.SortFunc(keys[known:], func(a, b key) int {
		return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.Subcategory, b.Subcategory))
	})

	result := make([]VarianceRow, 0, len(keys))
	for _, k := range keys {
		v := rows[k]
		v.Variance = v.Estimate.Sub(v.TotalActual)
		result = append(result, *v)
	}

	return result, nil
}

type TrendPoint struct {
	Month   types.Month
	Label   string
	Income  decimal.Decimal
	Expense decimal.Decimal
	Savings decimal.Decimal
}

// TrendSeries returns the totals of monthsBack consecutive months ending with
// the current month, oldest first. Months without transactions are zero.
func (r *Reporter) TrendSeries(ctx context.Context, monthsBack int) ([]TrendPoint, error) {
	months := types.MonthOf(r.now()).Window(monthsBack)

	points := make([]TrendPoint, 0, len(months))
	for _, m := range months {
		income, expense, err := r.store.MonthTotals(ctx, m)
		if err != nil {
			return nil, err
		}

		points = append(points, TrendPoint{
			Month:   m,
			Label:   m.Label(),
			Income:  income,
			Expense: expense,
			Savings: income.Sub(expense),
		})
	}

	return points, nil
}

// CategoryTotal is the spending on one category/subcategory pair.
type CategoryTotal struct {
	Category    string
	Subcategory string
	Total       decimal.Decimal
}

// TopCategories returns the n category/subcategory pairs with the highest spending in the month.
// Ties keep the alphabetical order of (category, subcategory). n <= 0 returns all pairs.
func (r *Reporter) TopCategories(ctx context.Context, year int, month time.Month, n int) ([]CategoryTotal, error) {
	var totals []CategoryTotal

	err := ledger.InMonth(r.store.DB().WithContext(ctx).Model(&models.Expense{}), types.NewMonth(year, month)).
		Select("category, subcategory, SUM(amount) AS total").
		Group("category, subcategory").
		Order("category, subcategory").
		Scan(&totals).
		Error
	if err != nil {
		return nil, err
	}

	for i := range totals {
		totals[i].Total = totals[i].Total.Round(sumScale)
	}

	slices.SortStableFunc(totals, func(a, b CategoryTotal) int {
		return b.Total.Cmp(a.Total)
	})

	if n > 0 && len(totals) > n {
		totals = totals[:n]
	}

	return totals, nil
}

// UnrealizedTotals sums the expenses that have not left the joint account yet.
type UnrealizedTotals struct {
	ByPerson []ledger.PersonTotal
	Total    decimal.Decimal
	Count    int
}

func (r *Reporter) Unrealized(ctx context.Context, f ledger.Filter) (UnrealizedTotals, error) {
	entries, err := r.store.QueryTransactions(ctx, models.KindExpense, f)
	if err != nil {
		return UnrealizedTotals{}, err
	}

	totals := UnrealizedTotals{Total: decimal.Zero}
	persons := map[string]decimal.Decimal{}
	for _, e := range entries {
		if e.Realized {
			continue
		}

		persons[e.Person] = persons[e.Person].Add(e.Amount)
		totals.Total = totals.Total.Add(e.Amount)
		totals.Count++
	}

	for person, total := range persons {
		totals.ByPerson = append(totals.ByPerson, ledger.PersonTotal{Person: person, Total: total})
	}
	slices.SortFunc(totals.ByPerson, func(a, b ledger.PersonTotal) int {
		return cmp.Compare(a.Person, b.Person)
	})

	return totals, nil
}

type NetWorthPoint struct {
	Month    types.Month
	Label    string
	NetWorth decimal.Decimal
}

// NetWorthTrend returns the net worth at the end of monthsBack consecutive
// months ending with the current month, oldest first.
func (r *Reporter) NetWorthTrend(ctx context.Context, monthsBack int) ([]NetWorthPoint, error) {
	months := types.MonthOf(r.now()).Window(monthsBack)

	points := make([]NetWorthPoint, 0, len(months))
	for _, m := range months {
		asOf := m.LastDay()
		total, err := r.store.NetWorth(ctx, &asOf)
		if err != nil {
			return nil, err
		}

		points = append(points, NetWorthPoint{Month: m, Label: m.Label(), NetWorth: total})
	}

	return points, nil
}
