package models_test

import (
	"github.com/homeledger/backend/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestGoalSelf() {
	assert.Equal(suite.T(), "Savings Goal", models.SavingsGoal{}.Self())
	assert.Equal(suite.T(), "Savings Allocation", models.SavingsAllocation{}.Self())
}

func (suite *TestSuiteStandard) TestGoalBeforeSave() {
	tests := []struct {
		name   string
		amount decimal.Decimal
		err    error
	}{
		{"Vacation", decimal.NewFromFloat(-10), models.ErrGoalAmountNotPositive},
		{"Vacation", decimal.Zero, models.ErrGoalAmountNotPositive},
		{"   ", decimal.NewFromInt(10), models.ErrValidation},
		{"Vacation", decimal.NewFromFloat(750), nil},
	}

	for _, tt := range tests {
		g := models.SavingsGoal{
			Name:         tt.name,
			TargetAmount: tt.amount,
		}

		err := g.BeforeSave(&gorm.DB{})
		if tt.err == nil {
			assert.Nil(suite.T(), err)
			continue
		}
		assert.ErrorIs(suite.T(), err, tt.err)
	}
}

func (suite *TestSuiteStandard) TestGoalDefaultPriority() {
	goal := models.SavingsGoal{Name: "Emergency fund", TargetAmount: decimal.NewFromInt(5000)}
	require.Nil(suite.T(), suite.db.Create(&goal).Error)
	assert.Equal(suite.T(), uint(1), goal.Priority)
}

func (suite *TestSuiteStandard) TestGoalNeeded() {
	tests := []struct {
		target  int64
		current int64
		needed  int64
	}{
		{1000, 250, 750},
		{1000, 1000, 0},
		{1000, 1200, 0},
	}

	for _, tt := range tests {
		g := models.SavingsGoal{TargetAmount: decimal.NewFromInt(tt.target), CurrentAmount: decimal.NewFromInt(tt.current)}
		assert.True(suite.T(), decimal.NewFromInt(tt.needed).Equal(g.Needed()), "Needed is %s, expected %d", g.Needed(), tt.needed)
	}
}

func (suite *TestSuiteStandard) TestGoalNameNotUnique() {
	require.Nil(suite.T(), suite.db.Create(&models.SavingsGoal{Name: "Car", TargetAmount: decimal.NewFromInt(100)}).Error)

	err := suite.db.Create(&models.SavingsGoal{Name: " Car ", TargetAmount: decimal.NewFromInt(200)}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGoalNameNotUnique)
}

func (suite *TestSuiteStandard) TestGoalDeleteCascadesAllocations() {
	goal := models.SavingsGoal{Name: "Bike", TargetAmount: decimal.NewFromInt(800)}
	require.Nil(suite.T(), suite.db.Create(&goal).Error)
	require.Nil(suite.T(), suite.db.Create(&models.SavingsAllocation{GoalID: goal.ID, Amount: decimal.NewFromInt(50)}).Error)

	require.Nil(suite.T(), suite.db.Delete(&goal).Error)

	var count int64
	require.Nil(suite.T(), suite.db.Model(&models.SavingsAllocation{}).Where("goal_id = ?", goal.ID).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TestSuiteStandard) TestAllocationAmountNotPositive() {
	err := suite.db.Create(&models.SavingsAllocation{Amount: decimal.NewFromInt(-1)}).Error
	assert.ErrorIs(suite.T(), err, models.ErrValidation)
}
