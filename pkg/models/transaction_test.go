package models_test

import (
	"errors"
	"time"

	"github.com/homeledger/backend/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestTransactionSelf() {
	assert.Equal(suite.T(), "Income", models.Income{}.Self())
	assert.Equal(suite.T(), "Expense", models.Expense{}.Self())
}

func (suite *TestSuiteStandard) TestParseKind() {
	tests := []struct {
		input string
		kind  models.Kind
		err   bool
	}{
		{"income", models.KindIncome, false},
		{" Expense ", models.KindExpense, false},
		{"transfer", "", true},
	}

	for _, tt := range tests {
		kind, err := models.ParseKind(tt.input)
		assert.Equal(suite.T(), tt.kind, kind, tt.input)
		assert.Equal(suite.T(), tt.err, err != nil, tt.input)
	}
}

func (suite *TestSuiteStandard) TestExpenseTrimWhitespace() {
	expense := models.Expense{
		Date:        time.Date(2024, 3, 14, 17, 30, 0, 0, time.UTC),
		Person:      "  Person A ",
		Amount:      decimal.NewFromFloat(12.5),
		Category:    " Food\t",
		Subcategory: "Groceries  ",
		Description: "\t Corner store ",
	}
	require.Nil(suite.T(), suite.db.Create(&expense).Error)

	var stored models.Expense
	require.Nil(suite.T(), suite.db.First(&stored, "id = ?", expense.ID).Error)

	assert.Equal(suite.T(), "Person A", stored.Person)
	assert.Equal(suite.T(), "Food", stored.Category)
	assert.Equal(suite.T(), "Groceries", stored.Subcategory)
	assert.Equal(suite.T(), "Corner store", stored.Description)
	assert.Equal(suite.T(), time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), stored.Date, "Only the calendar day must be stored")
	assert.True(suite.T(), decimal.NewFromFloat(12.5).Equal(stored.Amount))
}

func (suite *TestSuiteStandard) TestTransactionAmountNotPositive() {
	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		err := suite.db.Create(&models.Income{Person: "Person A", Amount: amount}).Error
		assert.True(suite.T(), errors.Is(err, models.ErrAmountNotPositive), "Income with amount %s: %v", amount, err)
		assert.ErrorIs(suite.T(), err, models.ErrValidation)

		err = suite.db.Create(&models.Expense{Person: "Person A", Amount: amount}).Error
		assert.ErrorIs(suite.T(), err, models.ErrAmountNotPositive)
	}
}

func (suite *TestSuiteStandard) TestTransactionDefaultsToToday() {
	income := models.Income{Person: "Person B", Amount: decimal.NewFromInt(100)}
	require.Nil(suite.T(), suite.db.Create(&income).Error)

	now := time.Now()
	assert.Equal(suite.T(), time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), income.Date)
}

func (suite *TestSuiteStandard) TestTransactionDatabaseError() {
	suite.DisconnectDB()

	err := suite.db.Create(&models.Income{Person: "Person A", Amount: decimal.NewFromInt(1)}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}
