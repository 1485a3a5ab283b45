package models_test

import (
	"github.com/homeledger/backend/pkg/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestMatchRuleSelf() {
	assert.Equal(suite.T(), "Match Rule", models.MatchRule{}.Self())
}

func (suite *TestSuiteStandard) TestMatchRuleMatches() {
	tests := []struct {
		match       string
		description string
		matches     bool
	}{
		{"*netflix*", "NETFLIX.COM 866-579-7172", true},
		{"Amazon*", "amazon mktplace pmts", true},
		{"Amazon*", "www.amazon.com", false},
		{"*", "anything", true},
	}

	for _, tt := range tests {
		rule := models.MatchRule{Match: tt.match}
		assert.Equal(suite.T(), tt.matches, rule.Matches(tt.description), "%s on %s", tt.match, tt.description)
	}
}

func (suite *TestSuiteStandard) TestMatchRuleValidation() {
	err := suite.db.Create(&models.MatchRule{Match: "  ", Category: "Food", Subcategory: "Dining"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrValidation)

	err = suite.db.Create(&models.MatchRule{Match: "*CAFE*", Category: "Food"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrValidation)
}
