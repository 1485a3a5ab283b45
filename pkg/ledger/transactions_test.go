package ledger_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/homeledger/backend/pkg/ledger"
	"github.com/homeledger/backend/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestRecordTransactionValidation() {
	valid := expense(date(2024, 3, 1), "Person A", "10", "Corner store")

	noPerson := valid
	noPerson.Person = ""

	noDate := valid
	noDate.Date = time.Time{}

	unknownCategory := valid
	unknownCategory.Subcategory = "Food (Party)"

	zeroAmount := valid
	zeroAmount.Amount = amount("0")

	noKind := valid
	noKind.Kind = ""

	tests := []struct {
		name  string
		entry ledger.Entry
	}{
		{"no person", noPerson},
		{"no date", noDate},
		{"unknown category", unknownCategory},
		{"zero amount", zeroAmount},
		{"negative income", income(date(2024, 3, 1), "Person A", "-1")},
		{"no kind", noKind},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			id, err := suite.store.RecordTransaction(suite.ctx, tt.entry)
			assert.ErrorIs(t, err, models.ErrValidation)
			assert.Equal(t, uuid.Nil, id)
		})
	}

	// Incomes are not checked against the catalog
	id, err := suite.store.RecordTransaction(suite.ctx, income(date(2024, 3, 1), "Person A", "2500"))
	assert.Nil(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, id)
}

func (suite *TestSuiteStandard) TestBulkInsertThenQuery() {
	entries := []ledger.Entry{
		expense(date(2024, 3, 1), "Person A", "12.5", "first"),
		expense(date(2024, 3, 5), "Person B", "20", "second"),
		expense(date(2024, 3, 5), "Person A", "7.25", "third"),
		expense(date(2024, 2, 28), "Person B", "3", "fourth"),
	}

	result, err := suite.store.BulkInsert(suite.ctx, entries)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), result.IDs, 4)
	assert.Equal(suite.T(), 0, result.Duplicates)

	stored, err := suite.store.QueryTransactions(suite.ctx, models.KindExpense, ledger.Filter{})
	require.Nil(suite.T(), err)
	require.Len(suite.T(), stored, 4)

	var descriptions []string
	for _, e := range stored {
		descriptions = append(descriptions, e.Description)
	}
	assert.Equal(suite.T(), []string{"second", "third", "first", "fourth"}, descriptions, "Newest first, same day in insertion order")

	for i, want := range []ledger.Entry{entries[1], entries[2], entries[0], entries[3]} {
		got := stored[i]
		assert.Equal(suite.T(), want.Date, got.Date)
		assert.Equal(suite.T(), want.Person, got.Person)
		assert.True(suite.T(), want.Amount.Equal(got.Amount), "Amount %s, expected %s", got.Amount, want.Amount)
		assert.Equal(suite.T(), want.Category, got.Category)
		assert.Equal(suite.T(), want.Subcategory, got.Subcategory)
	}
}

func (suite *TestSuiteStandard) TestQueryFilters() {
	_, err := suite.store.BulkInsert(suite.ctx, []ledger.Entry{
		expense(date(2024, 2, 29), "Person A", "1", "before"),
		expense(date(2024, 3, 1), "Person A", "1", "from"),
		expense(date(2024, 3, 31), "Person B", "1", "to"),
		expense(date(2024, 4, 1), "Person A", "1", "after"),
		{Kind: models.KindExpense, Date: date(2024, 3, 10), Person: "Person A", Amount: amount("4"), Category: "Other", Subcategory: "Other", Description: "other"},
	})
	require.Nil(suite.T(), err)

	from, to := date(2024, 3, 1), date(2024, 3, 31)
	tests := []struct {
		name   string
		filter ledger.Filter
		want   []string
	}{
		{"range is inclusive", ledger.Filter{From: &from, To: &to}, []string{"to", "other", "from"}},
		{"person", ledger.Filter{Person: "Person B"}, []string{"to"}},
		{"category", ledger.Filter{Category: "Other"}, []string{"other"}},
		{"conjunctive", ledger.Filter{From: &from, To: &to, Person: "Person A", Category: "Food"}, []string{"from"}},
		{"nothing", ledger.Filter{Person: "Nobody"}, nil},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			entries, err := suite.store.QueryTransactions(suite.ctx, models.KindExpense, tt.filter)
			require.Nil(t, err)

			var got []string
			for _, e := range entries {
				got = append(got, e.Description)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func (suite *TestSuiteStandard) TestBulkInsertAllOrNothing() {
	invalid := expense(date(2024, 3, 2), "Person B", "5", "bad")
	invalid.Category = "Unknown"

	_, err := suite.store.BulkInsert(suite.ctx, []ledger.Entry{
		expense(date(2024, 3, 1), "Person A", "5", "good"),
		invalid,
	})
	assert.ErrorIs(suite.T(), err, models.ErrValidation)
	assert.Contains(suite.T(), err.Error(), "row 2")

	stored, err := suite.store.QueryTransactions(suite.ctx, models.KindExpense, ledger.Filter{})
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), stored, 0, "Nothing must be written when one row is invalid")
}

func (suite *TestSuiteStandard) TestBulkInsertCountsDuplicates() {
	e := expense(date(2024, 3, 1), "Person A", "5", "coffee")
	e.ImportHash = "abc"

	_, err := suite.store.BulkInsert(suite.ctx, []ledger.Entry{e})
	require.Nil(suite.T(), err)

	result, err := suite.store.BulkInsert(suite.ctx, []ledger.Entry{e, expense(date(2024, 3, 2), "Person A", "5", "tea")})
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 1, result.Duplicates)

	existing, err := suite.store.ExistingImportHashes(suite.ctx, []string{"abc", "def"})
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), map[string]bool{"abc": true}, existing)
}

func (suite *TestSuiteStandard) TestDeleteTransaction() {
	id, err := suite.store.RecordTransaction(suite.ctx, income(date(2024, 3, 1), "Person A", "100"))
	require.Nil(suite.T(), err)

	// Wrong kind
	assert.ErrorIs(suite.T(), suite.store.DeleteTransaction(suite.ctx, models.KindExpense, id), models.ErrNotFound)

	require.Nil(suite.T(), suite.store.DeleteTransaction(suite.ctx, models.KindIncome, id))
	assert.ErrorIs(suite.T(), suite.store.DeleteTransaction(suite.ctx, models.KindIncome, id), models.ErrNotFound)
}

func (suite *TestSuiteStandard) TestToggleRealized() {
	id, err := suite.store.RecordTransaction(suite.ctx, expense(date(2024, 3, 1), "Person A", "10", "rent share"))
	require.Nil(suite.T(), err)

	realized, err := suite.store.ToggleRealized(suite.ctx, id)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), realized)

	realized, err = suite.store.ToggleRealized(suite.ctx, id)
	require.Nil(suite.T(), err)
	assert.False(suite.T(), realized)

	stored, err := suite.store.QueryTransactions(suite.ctx, models.KindExpense, ledger.Filter{})
	require.Nil(suite.T(), err)
	assert.False(suite.T(), stored[0].Realized)

	incomeID, err := suite.store.RecordTransaction(suite.ctx, income(date(2024, 3, 1), "Person B", "10"))
	require.Nil(suite.T(), err)

	_, err = suite.store.ToggleRealized(suite.ctx, incomeID)
	assert.ErrorIs(suite.T(), err, models.ErrValidation)

	_, err = suite.store.ToggleRealized(suite.ctx, uuid.New())
	assert.ErrorIs(suite.T(), err, models.ErrNotFound)
}
