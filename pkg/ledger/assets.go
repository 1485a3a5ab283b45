package ledger

import (
	"cmp"
	"context"
	"time"

	"github.com/homeledger/backend/internal/types"
	"github.com/homeledger/backend/pkg/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// AddAsset appends a new value for an asset. Earlier values are kept as history.
func (s *Store) AddAsset(ctx context.Context, asset models.Asset) (models.Asset, error) {
	err := s.db.WithContext(ctx).Create(&asset).Error
	if err != nil {
		return models.Asset{}, err
	}
	return asset, nil
}

// AssetHistory returns all values of an asset, oldest first.
func (s *Store) AssetHistory(ctx context.Context, key models.AssetKey) ([]models.Asset, error) {
	var history []models.Asset
	err := s.db.WithContext(ctx).
		Where("person = ? AND asset_type = ? AND asset_name = ?", key.Person, key.AssetType, key.AssetName).
		Order("date(date) ASC").
		Order("rowid ASC").
		Find(&history).
		Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

// DeleteAsset removes the whole history of an asset.
func (s *Store) DeleteAsset(ctx context.Context, key models.AssetKey) error {
	tx := s.db.WithContext(ctx).
		Where("person = ? AND asset_type = ? AND asset_name = ?", key.Person, key.AssetType, key.AssetName).
		Delete(&models.Asset{})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return models.NewNotFoundError("asset")
	}
	return nil
}

// NetWorthSnapshot returns the latest value of every asset on or before asOf,
// which defaults to today.
//
// Values on the same day are ordered by insertion, the last one wins.
// The result is sorted by person, asset type and asset name.
func (s *Store) NetWorthSnapshot(ctx context.Context, asOf *time.Time) ([]models.Asset, error) {
	day := types.Day(time.Now())
	if asOf != nil {
		day = types.Day(*asOf)
	}

	var rows []models.Asset
	err := s.db.WithContext(ctx).
		Where("date(date) <= date(?)", day.Format(time.DateOnly)).
		Order("date(date) ASC").
		Order("rowid ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	latest := make(map[models.AssetKey]models.Asset)
	for _, row := range rows {
		latest[row.Key()] = row
	}

	snapshot := make([]models.Asset, 0, len(latest))
	for _, asset := range latest {
		snapshot = append(snapshot, asset)
	}

	slices.SortFunc(snapshot, func(a, b models.Asset) int {
		if c := cmp.Compare(a.Person, b.Person); c != 0 {
			return c
		}
		if c := cmp.Compare(a.AssetType, b.AssetType); c != 0 {
			return c
		}
		return cmp.Compare(a.AssetName, b.AssetName)
	})

	return snapshot, nil
}

// NetWorth sums the snapshot. Liabilities have negative values.
func (s *Store) NetWorth(ctx context.Context, asOf *time.Time) (decimal.Decimal, error) {
	snapshot, err := s.NetWorthSnapshot(ctx, asOf)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, asset := range snapshot {
		total = total.Add(asset.Value)
	}
	return total, nil
}
