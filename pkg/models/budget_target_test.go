package models_test

import (
	"github.com/homeledger/backend/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestBudgetTargetMonthRange() {
	for _, month := range []int{0, 13} {
		err := suite.db.Create(&models.BudgetTarget{Category: "Food", Year: 2024, Month: month, MonthlyTarget: decimal.NewFromInt(400)}).Error
		assert.ErrorIs(suite.T(), err, models.ErrMonthOutOfRange, "Month %d", month)
	}
}

func (suite *TestSuiteStandard) TestBudgetTargetNegative() {
	err := suite.db.Create(&models.BudgetTarget{Category: "Food", Year: 2024, Month: 5, MonthlyTarget: decimal.NewFromInt(-1)}).Error
	assert.ErrorIs(suite.T(), err, models.ErrValidation)
}

func (suite *TestSuiteStandard) TestBudgetTargetUnique() {
	target := models.BudgetTarget{Category: "Food", Subcategory: "Groceries", Year: 2024, Month: 5, MonthlyTarget: decimal.NewFromInt(400)}
	require.Nil(suite.T(), suite.db.Create(&target).Error)

	duplicate := models.BudgetTarget{Category: "Food", Subcategory: "Groceries", Year: 2024, Month: 5, MonthlyTarget: decimal.NewFromInt(300)}
	err := suite.db.Create(&duplicate).Error
	assert.ErrorIs(suite.T(), err, models.ErrConflict)
}
