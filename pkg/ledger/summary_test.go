package ledger_test

import (
	"time"

	"github.com/homeledger/backend/internal/types"
	"github.com/homeledger/backend/pkg/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestMonthlySummary() {
	dining := expense(date(2024, 3, 31), "Person B", "40", "restaurant")
	dining.Subcategory = "Food (Dining Out)"

	_, err := suite.store.BulkInsert(suite.ctx, []ledger.Entry{
		income(date(2024, 3, 1), "Person A", "3000"),
		income(date(2024, 3, 15), "Person A", "200.5"),
		income(date(2024, 3, 20), "Person B", "2500"),
		income(date(2024, 4, 1), "Person B", "999"),
		expense(date(2024, 3, 1), "Person A", "150.1", "market"),
		expense(date(2024, 3, 2), "Person B", "100.2", "market"),
		dining,
		expense(date(2024, 2, 29), "Person A", "77", "market"),
	})
	require.Nil(suite.T(), err)

	summary, err := suite.store.MonthlySummary(suite.ctx, 2024, time.March)
	require.Nil(suite.T(), err)

	require.Len(suite.T(), summary.IncomeByPerson, 2)
	assert.Equal(suite.T(), "Person A", summary.IncomeByPerson[0].Person)
	assert.True(suite.T(), amount("3200.5").Equal(summary.IncomeByPerson[0].Total), summary.IncomeByPerson[0].Total.String())
	assert.True(suite.T(), amount("2500").Equal(summary.IncomeByPerson[1].Total))

	require.Len(suite.T(), summary.ExpenseByPerson, 2)
	assert.True(suite.T(), amount("150.1").Equal(summary.ExpenseByPerson[0].Total))
	assert.True(suite.T(), amount("140.2").Equal(summary.ExpenseByPerson[1].Total), summary.ExpenseByPerson[1].Total.String())

	require.Len(suite.T(), summary.ExpenseByCategory, 2)
	assert.Equal(suite.T(), "Food (Dining Out)", summary.ExpenseByCategory[0].Subcategory)
	assert.True(suite.T(), amount("40").Equal(summary.ExpenseByCategory[0].Total))
	assert.Equal(suite.T(), "Food (Groceries)", summary.ExpenseByCategory[1].Subcategory)
	assert.True(suite.T(), amount("250.3").Equal(summary.ExpenseByCategory[1].Total), summary.ExpenseByCategory[1].Total.String())

	in, out, err := suite.store.MonthTotals(suite.ctx, types.NewMonth(2024, time.March))
	require.Nil(suite.T(), err)
	assert.True(suite.T(), amount("5700.5").Equal(in))
	assert.True(suite.T(), amount("290.3").Equal(out), out.String())
}

func (suite *TestSuiteStandard) TestMonthTotalsEmpty() {
	in, out, err := suite.store.MonthTotals(suite.ctx, types.NewMonth(2024, time.March))
	require.Nil(suite.T(), err)
	assert.True(suite.T(), in.IsZero())
	assert.True(suite.T(), out.IsZero())
}
