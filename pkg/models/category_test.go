package models_test

import (
	"github.com/homeledger/backend/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCategoryEntryTrimWhitespace() {
	entry := models.CategoryEntry{Category: " Food ", Subcategory: "\tGroceries"}
	require.Nil(suite.T(), suite.db.Create(&entry).Error)

	assert.Equal(suite.T(), "Food", entry.Category)
	assert.Equal(suite.T(), "Groceries", entry.Subcategory)
}

func (suite *TestSuiteStandard) TestCategoryEntryEmpty() {
	err := suite.db.Create(&models.CategoryEntry{Category: "Food"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrValidation)
}

func (suite *TestSuiteStandard) TestCategoryEntryExists() {
	require.Nil(suite.T(), suite.db.Create(&models.CategoryEntry{Category: "Food", Subcategory: "Groceries"}).Error)

	err := suite.db.Create(&models.CategoryEntry{Category: "Food", Subcategory: "Groceries"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryEntryExists)
}
