package models

import (
	"strings"

	"gorm.io/gorm"
)

// CategoryEntry is one persisted category/subcategory pair of the catalog.
type CategoryEntry struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Category    string `json:"category" gorm:"uniqueIndex:category_subcategory;not null"`
	Subcategory string `json:"subcategory" gorm:"uniqueIndex:category_subcategory;not null"`
}

func (c CategoryEntry) Self() string {
	return "Category"
}

func (c *CategoryEntry) BeforeSave(_ *gorm.DB) error {
	c.Category = strings.TrimSpace(c.Category)
	c.Subcategory = strings.TrimSpace(c.Subcategory)

	if c.Category == "" || c.Subcategory == "" {
		return NewValidationError("category", "category and subcategory must not be empty")
	}

	return nil
}
