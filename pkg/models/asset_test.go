package models_test

import (
	"github.com/homeledger/backend/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestAssetRequiresName() {
	err := suite.db.Create(&models.Asset{Person: "Person A", AssetType: "Bank", Value: decimal.NewFromInt(10)}).Error
	assert.ErrorIs(suite.T(), err, models.ErrValidation)
}

func (suite *TestSuiteStandard) TestAssetKey() {
	asset := models.Asset{Person: "Person A", AssetType: "Bank", AssetName: "Checking"}
	assert.Equal(suite.T(), models.AssetKey{Person: "Person A", AssetType: "Bank", AssetName: "Checking"}, asset.Key())
}

func (suite *TestSuiteStandard) TestAssetNegativeValueIsLiability() {
	asset := models.Asset{Person: "Person B", AssetType: "Loan", AssetName: "Car loan", Value: decimal.NewFromInt(-9000)}
	assert.Nil(suite.T(), suite.db.Create(&asset).Error)
}
