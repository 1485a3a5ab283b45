package ledger_test

import (
	"bytes"

	"github.com/homeledger/backend/pkg/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestExportExpenses() {
	dining := expense(date(2024, 3, 5), "Person B", "42.1", "Dinner, with friends")
	dining.Subcategory = "Food (Dining Out)"
	dining.PaymentMethod = "Credit Card"

	_, err := suite.store.BulkInsert(suite.ctx, []ledger.Entry{
		expense(date(2024, 3, 1), "Person A", "12.5", "Market"),
		dining,
		income(date(2024, 3, 1), "Person A", "1000"),
	})
	require.Nil(suite.T(), err)

	var buf bytes.Buffer
	n, err := suite.store.ExportExpenses(suite.ctx, &buf, ledger.Filter{})
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 2, n)

	assert.Equal(suite.T(), `date,person,amount,category,subcategory,description,payment_method
2024-03-05,Person B,42.1,Food,Food (Dining Out),"Dinner, with friends",Credit Card
2024-03-01,Person A,12.5,Food,Food (Groceries),Market,
`, buf.String())
}

func (suite *TestSuiteStandard) TestExportEmpty() {
	var buf bytes.Buffer
	n, err := suite.store.ExportExpenses(suite.ctx, &buf, ledger.Filter{Person: "Nobody"})
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 0, n)
	assert.Equal(suite.T(), "date,person,amount,category,subcategory,description,payment_method\n", buf.String())
}
