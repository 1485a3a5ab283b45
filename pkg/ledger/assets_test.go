package ledger_test

import (
	"time"

	"github.com/homeledger/backend/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) addAsset(person, assetName, value string, d time.Time) {
	_, err := suite.store.AddAsset(suite.ctx, models.Asset{
		Person:    person,
		AssetType: "Bank",
		AssetName: assetName,
		Value:     amount(value),
		Date:      d,
	})
	require.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestNetWorthSnapshotLatestRow() {
	suite.addAsset("Person A", "Checking", "1000", date(2024, 1, 1))
	suite.addAsset("Person A", "Checking", "1500", date(2024, 3, 1))
	suite.addAsset("Person A", "Checking", "1200", date(2024, 2, 1))

	snapshot, err := suite.store.NetWorthSnapshot(suite.ctx, nil)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), snapshot, 1)
	assert.True(suite.T(), amount("1500").Equal(snapshot[0].Value))
	assert.Equal(suite.T(), date(2024, 3, 1), snapshot[0].Date)
}

func (suite *TestSuiteStandard) TestNetWorthSnapshotAsOf() {
	suite.addAsset("Person A", "Checking", "1000", date(2024, 1, 1))
	suite.addAsset("Person A", "Checking", "1500", date(2024, 3, 1))
	suite.addAsset("Person B", "Savings", "300", date(2024, 1, 15))
	suite.addAsset("Person B", "Savings", "350", date(2024, 1, 15))

	_, err := suite.store.AddAsset(suite.ctx, models.Asset{Person: "Person B", AssetType: "Loan", AssetName: "Car", Value: amount("-400"), Date: date(2024, 2, 1)})
	require.Nil(suite.T(), err)

	asOf := date(2024, 2, 1)
	snapshot, err := suite.store.NetWorthSnapshot(suite.ctx, &asOf)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), snapshot, 3)

	assert.Equal(suite.T(), models.AssetKey{Person: "Person A", AssetType: "Bank", AssetName: "Checking"}, snapshot[0].Key())
	assert.True(suite.T(), amount("1000").Equal(snapshot[0].Value), "The value after the as of date must be ignored")
	assert.True(suite.T(), amount("350").Equal(snapshot[1].Value), "The last row of a day must win")
	assert.True(suite.T(), amount("-400").Equal(snapshot[2].Value))

	total, err := suite.store.NetWorth(suite.ctx, &asOf)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), amount("950").Equal(total), total.String())
}

func (suite *TestSuiteStandard) TestAssetHistoryAndDelete() {
	suite.addAsset("Person A", "Checking", "1000", date(2024, 1, 1))
	suite.addAsset("Person A", "Checking", "1500", date(2024, 3, 1))

	key := models.AssetKey{Person: "Person A", AssetType: "Bank", AssetName: "Checking"}
	history, err := suite.store.AssetHistory(suite.ctx, key)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), history, 2)
	assert.True(suite.T(), amount("1000").Equal(history[0].Value))

	require.Nil(suite.T(), suite.store.DeleteAsset(suite.ctx, key))
	assert.ErrorIs(suite.T(), suite.store.DeleteAsset(suite.ctx, key), models.ErrNotFound)
}
