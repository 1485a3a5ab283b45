package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Asset is one historic value of a net worth line item.
//
// Rows are only ever appended. The current value of an item is the latest
// row for its (Person, AssetType, AssetName) key. Negative values are liabilities.
type Asset struct {
	DefaultModel
	Person    string          `json:"person" gorm:"index:asset_key"`
	AssetType string          `json:"assetType" gorm:"index:asset_key"`
	AssetName string          `json:"assetName" gorm:"index:asset_key"`
	Value     decimal.Decimal `json:"value" gorm:"type:DECIMAL(20,8)"`
	Date      time.Time       `json:"date"`
	Notes     string          `json:"notes"`
}

func (a Asset) Self() string {
	return "Asset"
}

// Key identifies the tracked item the row belongs to.
func (a Asset) Key() AssetKey {
	return AssetKey{Person: a.Person, AssetType: a.AssetType, AssetName: a.AssetName}
}

type AssetKey struct {
	Person    string
	AssetType string
	AssetName string
}

func (a *Asset) BeforeSave(_ *gorm.DB) error {
	a.Person = strings.TrimSpace(a.Person)
	a.AssetType = strings.TrimSpace(a.AssetType)
	a.AssetName = strings.TrimSpace(a.AssetName)
	a.Notes = strings.TrimSpace(a.Notes)
	a.Date = dateOrToday(a.Date)

	if a.AssetName == "" || a.AssetType == "" {
		return NewValidationError("asset", "asset type and asset name are required")
	}

	return nil
}

func (a *Asset) AfterFind(tx *gorm.DB) (err error) {
	err = a.DefaultModel.AfterFind(tx)
	a.Date = a.Date.In(time.UTC)
	return
}
