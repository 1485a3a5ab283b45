package ledger_test

import (
	"github.com/homeledger/backend/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestMatchRules() {
	second, err := suite.store.AddMatchRule(suite.ctx, models.MatchRule{Priority: 2, Match: "*MARKET*", Category: "Food", Subcategory: "Food (Groceries)"})
	require.Nil(suite.T(), err)

	_, err = suite.store.AddMatchRule(suite.ctx, models.MatchRule{Priority: 1, Match: "*COMCAST*", Category: "Utilities", Subcategory: "Internet"})
	require.Nil(suite.T(), err)

	_, err = suite.store.AddMatchRule(suite.ctx, models.MatchRule{Priority: 1, Match: "*", Category: "Food", Subcategory: "Unknown"})
	assert.ErrorIs(suite.T(), err, models.ErrValidation)

	rules, err := suite.store.MatchRules(suite.ctx)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), rules, 2)
	assert.Equal(suite.T(), "*COMCAST*", rules[0].Match)

	require.Nil(suite.T(), suite.store.DeleteMatchRule(suite.ctx, second.ID))
	assert.ErrorIs(suite.T(), suite.store.DeleteMatchRule(suite.ctx, second.ID), models.ErrNotFound)
}
