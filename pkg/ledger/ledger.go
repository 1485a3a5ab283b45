// Package ledger stores transactions, assets, savings goals, budget targets
// and match rules and answers the aggregate queries over them.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/homeledger/backend/pkg/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryValidator decides which category/subcategory pairs expenses may use.
type CategoryValidator interface {
	IsValid(category, subcategory string) bool
}

type Store struct {
	db        *gorm.DB
	validator CategoryValidator
}

func New(db *gorm.DB, validator CategoryValidator) *Store {
	return &Store{db: db, validator: validator}
}

// DB returns the database the store writes to.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Entry is an income or an expense.
//
// Subcategory, Realized and ImportHash are only used for expenses.
type Entry struct {
	ID            uuid.UUID
	Kind          models.Kind
	Date          time.Time
	Person        string
	Amount        decimal.Decimal
	Category      string
	Subcategory   string
	Description   string
	PaymentMethod string
	Realized      bool
	ImportHash    string
}

// Filter restricts transaction queries. All set fields must match.
type Filter struct {
	From     *time.Time // inclusive
	To       *time.Time // inclusive
	Person   string
	Category string
}

func (f Filter) apply(tx *gorm.DB) *gorm.DB {
	if f.From != nil {
		tx = tx.Where("date(date) >= date(?)", f.From.Format(time.DateOnly))
	}

	if f.To != nil {
		tx = tx.Where("date(date) <= date(?)", f.To.Format(time.DateOnly))
	}

	if f.Person != "" {
		tx = tx.Where("person = ?", f.Person)
	}

	if f.Category != "" {
		tx = tx.Where("category = ?", f.Category)
	}

	return tx
}

func (s *Store) validate(e Entry) error {
	resource := "transaction"
	switch e.Kind {
	case models.KindIncome:
		resource = "income"
	case models.KindExpense:
		resource = "expense"
	default:
		return models.NewValidationError(resource, "kind must be income or expense")
	}

	if !e.Amount.IsPositive() {
		return models.ErrAmountNotPositive
	}

	if e.Person == "" {
		return models.NewValidationError(resource, "person is required")
	}

	if e.Date.IsZero() {
		return models.NewValidationError(resource, "date is required")
	}

	if e.Kind == models.KindExpense && !s.validator.IsValid(e.Category, e.Subcategory) {
		return models.NewValidationError(resource, fmt.Sprintf("%q / %q is not a known category and subcategory", e.Category, e.Subcategory))
	}

	return nil
}

func (e Entry) income() models.Income {
	return models.Income{
		DefaultModel:  models.DefaultModel{ID: e.ID},
		Date:          e.Date,
		Person:        e.Person,
		Amount:        e.Amount,
		Category:      e.Category,
		Description:   e.Description,
		PaymentMethod: e.PaymentMethod,
	}
}

func (e Entry) expense() models.Expense {
	return models.Expense{
		DefaultModel:  models.DefaultModel{ID: e.ID},
		Date:          e.Date,
		Person:        e.Person,
		Amount:        e.Amount,
		Category:      e.Category,
		Subcategory:   e.Subcategory,
		Description:   e.Description,
		PaymentMethod: e.PaymentMethod,
		Realized:      e.Realized,
		ImportHash:    e.ImportHash,
	}
}

func incomeEntry(i models.Income) Entry {
	return Entry{
		ID:            i.ID,
		Kind:          models.KindIncome,
		Date:          i.Date,
		Person:        i.Person,
		Amount:        i.Amount,
		Category:      i.Category,
		Description:   i.Description,
		PaymentMethod: i.PaymentMethod,
	}
}

func expenseEntry(e models.Expense) Entry {
	return Entry{
		ID:            e.ID,
		Kind:          models.KindExpense,
		Date:          e.Date,
		Person:        e.Person,
		Amount:        e.Amount,
		Category:      e.Category,
		Subcategory:   e.Subcategory,
		Description:   e.Description,
		PaymentMethod: e.PaymentMethod,
		Realized:      e.Realized,
		ImportHash:    e.ImportHash,
	}
}
