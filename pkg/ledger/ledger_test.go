package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/homeledger/backend/pkg/ledger"
	"github.com/homeledger/backend/pkg/models"
	"github.com/homeledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// pairs is a minimal category validator.
type pairs map[string][]string

func (p pairs) IsValid(category, subcategory string) bool {
	for _, s := range p[category] {
		if s == subcategory {
			return true
		}
	}
	return false
}

var testCategories = pairs{
	"Food":      {"Food (Groceries)", "Food (Dining Out)"},
	"Utilities": {"Internet", "Taxi / Transit"},
	"Other":     {"Other"},
}

type TestSuiteStandard struct {
	suite.Suite
	store *ledger.Store
	ctx   context.Context
}

func TestSuite(t *testing.T) {
	suite.Run(t, new(TestSuiteStandard))
}

// SetupTest is called before each test in the suite.
func (suite *TestSuiteStandard) SetupTest() {
	suite.store = ledger.New(test.DB(suite.T()), testCategories)
	suite.ctx = context.Background()
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(d time.Time, person, value, description string) ledger.Entry {
	return ledger.Entry{
		Kind:        models.KindExpense,
		Date:        d,
		Person:      person,
		Amount:      amount(value),
		Category:    "Food",
		Subcategory: "Food (Groceries)",
		Description: description,
	}
}

func income(d time.Time, person, value string) ledger.Entry {
	return ledger.Entry{
		Kind:     models.KindIncome,
		Date:     d,
		Person:   person,
		Amount:   amount(value),
		Category: "Salary",
	}
}
