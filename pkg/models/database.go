package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate migrates all models to the schema defined in the code.
//
// It is safe to run on every start, tables and indices are only created if missing.
func Migrate(db *gorm.DB) (err error) {
	models := make([]interface{}, 0, len(Registry))
	for _, m := range Registry {
		models = append(models, m)
	}

	err = db.AutoMigrate(models...)
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
