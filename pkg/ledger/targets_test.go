package ledger_test

import (
	"time"

	"github.com/homeledger/backend/internal/types"
	"github.com/homeledger/backend/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestSetBudgetTargetUpsert() {
	first, err := suite.store.SetBudgetTarget(suite.ctx, models.BudgetTarget{Category: "Food", Subcategory: "Food (Groceries)", Year: 2024, Month: 3, MonthlyTarget: amount("400")})
	require.Nil(suite.T(), err)

	second, err := suite.store.SetBudgetTarget(suite.ctx, models.BudgetTarget{Category: "Food", Subcategory: "Food (Groceries)", Year: 2024, Month: 3, MonthlyTarget: amount("450")})
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), first.ID, second.ID, "The existing target must be updated")

	_, err = suite.store.SetBudgetTarget(suite.ctx, models.BudgetTarget{Category: "Food", Year: 2024, Month: 3, MonthlyTarget: amount("600")})
	require.Nil(suite.T(), err)

	targets, err := suite.store.BudgetTargets(suite.ctx, types.NewMonth(2024, time.March))
	require.Nil(suite.T(), err)
	require.Len(suite.T(), targets, 2)
	assert.Equal(suite.T(), "", targets[0].Subcategory, "Whole category target sorts first")
	assert.True(suite.T(), amount("450").Equal(targets[1].MonthlyTarget))

	_, err = suite.store.SetBudgetTarget(suite.ctx, models.BudgetTarget{Category: "Food", Year: 2024, Month: 13, MonthlyTarget: amount("1")})
	assert.ErrorIs(suite.T(), err, models.ErrMonthOutOfRange)
}

func (suite *TestSuiteStandard) TestCopyBudgetTargets() {
	march, april := types.NewMonth(2024, time.March), types.NewMonth(2024, time.April)

	_, err := suite.store.SetBudgetTarget(suite.ctx, models.BudgetTarget{Category: "Food", Subcategory: "Food (Groceries)", Year: 2024, Month: 3, MonthlyTarget: amount("400")})
	require.Nil(suite.T(), err)
	_, err = suite.store.SetBudgetTarget(suite.ctx, models.BudgetTarget{Category: "Utilities", Subcategory: "Internet", Year: 2024, Month: 3, MonthlyTarget: amount("60")})
	require.Nil(suite.T(), err)
	_, err = suite.store.SetBudgetTarget(suite.ctx, models.BudgetTarget{Category: "Utilities", Subcategory: "Internet", Year: 2024, Month: 4, MonthlyTarget: amount("55")})
	require.Nil(suite.T(), err)

	copied, err := suite.store.CopyBudgetTargets(suite.ctx, march, april)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 2, copied)

	targets, err := suite.store.BudgetTargets(suite.ctx, april)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), targets, 2)
	assert.True(suite.T(), amount("400").Equal(targets[0].MonthlyTarget))
	assert.True(suite.T(), amount("60").Equal(targets[1].MonthlyTarget), "Existing targets must be replaced")

	copied, err = suite.store.CopyBudgetTargets(suite.ctx, types.NewMonth(2023, time.January), april)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 0, copied)
}
