package ledger_test

import (
	"github.com/google/uuid"
	"github.com/homeledger/backend/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestGoalsOrder() {
	for _, g := range []models.SavingsGoal{
		{Name: "Vacation", TargetAmount: amount("2000"), Priority: 2},
		{Name: "Emergency", TargetAmount: amount("5000"), Priority: 1},
		{Name: "Car", TargetAmount: amount("8000"), Priority: 2},
	} {
		_, err := suite.store.AddGoal(suite.ctx, g)
		require.Nil(suite.T(), err)
	}

	goals, err := suite.store.Goals(suite.ctx)
	require.Nil(suite.T(), err)

	var names []string
	for _, g := range goals {
		names = append(names, g.Name)
	}
	assert.Equal(suite.T(), []string{"Emergency", "Car", "Vacation"}, names)
}

func (suite *TestSuiteStandard) TestDeleteGoal() {
	goal, err := suite.store.AddGoal(suite.ctx, models.SavingsGoal{Name: "Bike", TargetAmount: amount("600")})
	require.Nil(suite.T(), err)

	require.Nil(suite.T(), suite.store.DB().Create(&models.SavingsAllocation{GoalID: goal.ID, Amount: amount("100")}).Error)

	allocations, err := suite.store.GoalAllocations(suite.ctx, goal.ID)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), allocations, 1)

	require.Nil(suite.T(), suite.store.DeleteGoal(suite.ctx, goal.ID))
	assert.ErrorIs(suite.T(), suite.store.DeleteGoal(suite.ctx, goal.ID), models.ErrNotFound)

	_, err = suite.store.GoalAllocations(suite.ctx, goal.ID)
	assert.ErrorIs(suite.T(), err, models.ErrNotFound)
}

func (suite *TestSuiteStandard) TestGoalNameConflict() {
	_, err := suite.store.AddGoal(suite.ctx, models.SavingsGoal{Name: "Bike", TargetAmount: amount("600")})
	require.Nil(suite.T(), err)

	_, err = suite.store.AddGoal(suite.ctx, models.SavingsGoal{Name: "Bike", TargetAmount: amount("100")})
	assert.ErrorIs(suite.T(), err, models.ErrConflict)

	_, err = suite.store.GoalAllocations(suite.ctx, uuid.New())
	assert.ErrorIs(suite.T(), err, models.ErrNotFound)
}
