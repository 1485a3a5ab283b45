package database

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/homeledger/backend/pkg/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var uniqueConstraint = regexp.MustCompile(`UNIQUE constraint failed: ([a-z_]+)\.`)

func registerCallbacks(db *gorm.DB) error {
	err := db.Callback().Query().After("*").Register("ledger:after_query", queryCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Query().After("ledger:after_query").Register("ledger:after_query_general", generalCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Create().After("*").Register("ledger:after_create", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Create().After("ledger:after_create").Register("ledger:after_create_general", generalCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Update().After("*").Register("ledger:after_update", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Update().After("ledger:after_update").Register("ledger:after_update_general", generalCallback)
	if err != nil {
		return err
	}

	return db.Callback().Delete().After("*").Register("ledger:after_delete_general", generalCallback)
}

// resourceName turns a table name into the human readable singular,
// e.g. "savings_goals" into "savings goal".
func resourceName(table string) string {
	name := strings.ReplaceAll(table, "_", " ")

	// Replace pluralized "ies" with "y"
	name = regexp.MustCompile("ies$").ReplaceAllString(name, "y")

	return strings.TrimSuffix(name, "s")
}

// queryCallback replaces the generic "no record" error with a not found StoreError.
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		db.Error = models.NewNotFoundError(resourceName(db.Statement.Table))
	}
}

// createUpdateCallback turns unique constraint violations into conflict errors.
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: savings_goals.name") {
		db.Error = models.ErrGoalNameNotUnique
		return
	}

	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: category_entries.") {
		db.Error = models.ErrCategoryEntryExists
		return
	}

	if match := uniqueConstraint.FindStringSubmatch(db.Error.Error()); match != nil {
		db.Error = models.NewConflictError(resourceName(match[1]), "an identical entry already exists")
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the caller with a helpful message.
// Instead, the error is logged and a general error is returned.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in the sql module
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = models.ErrGeneral
	}
}
