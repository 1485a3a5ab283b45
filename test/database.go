package test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/homeledger/backend/pkg/database"
	"github.com/homeledger/backend/pkg/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TmpFile returns the path to a unique file to be used in tests
func TmpFile(t *testing.T) string {
	dir := t.TempDir()
	return filepath.Join(dir, uuid.New().String())
}

// DB returns a migrated in-memory database that is closed when the test ends.
func DB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.DSN(":memory:"))
	require.Nil(t, err, "Database connection failed")

	require.Nil(t, models.Migrate(db), "Database migration failed")

	t.Cleanup(func() {
		_ = database.Close(db)
	})

	return db
}
