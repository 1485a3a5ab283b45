package models

import (
	"strings"
	"time"

	"github.com/homeledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Kind distinguishes the two transaction tables.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// ParseKind parses a kind from user input.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindIncome:
		return KindIncome, nil
	case KindExpense:
		return KindExpense, nil
	}
	return "", NewValidationError("transaction", "kind must be income or expense")
}

// Income is money received by one person of the household.
type Income struct {
	DefaultModel
	Date          time.Time       `json:"date" gorm:"index"` // Only the calendar day is stored
	Person        string          `json:"person" gorm:"index"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Category      string          `json:"category"` // Source of the income
	Description   string          `json:"description"`
	PaymentMethod string          `json:"paymentMethod"`
}

func (i Income) Self() string {
	return "Income"
}

func (i *Income) BeforeSave(_ *gorm.DB) error {
	i.Person = strings.TrimSpace(i.Person)
	i.Category = strings.TrimSpace(i.Category)
	i.Description = strings.TrimSpace(i.Description)
	i.PaymentMethod = strings.TrimSpace(i.PaymentMethod)
	i.Date = dateOrToday(i.Date)

	if !i.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

func (i *Income) AfterFind(tx *gorm.DB) (err error) {
	err = i.DefaultModel.AfterFind(tx)
	i.Date = i.Date.In(time.UTC)
	return
}

// Expense is money spent by one person of the household.
type Expense struct {
	DefaultModel
	Date          time.Time       `json:"date" gorm:"index"` // Only the calendar day is stored
	Person        string          `json:"person" gorm:"index"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Category      string          `json:"category" gorm:"index:expense_category"`
	Subcategory   string          `json:"subcategory" gorm:"index:expense_category"`
	Description   string          `json:"description"`
	PaymentMethod string          `json:"paymentMethod"`
	Realized      bool            `json:"realized"`   // Has the money already left the joint account?
	ImportHash    string          `json:"importHash"` // SHA256 over the normalized record, used to detect duplicate imports
}

func (e Expense) Self() string {
	return "Expense"
}

func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Person = strings.TrimSpace(e.Person)
	e.Category = strings.TrimSpace(e.Category)
	e.Subcategory = strings.TrimSpace(e.Subcategory)
	e.Description = strings.TrimSpace(e.Description)
	e.PaymentMethod = strings.TrimSpace(e.PaymentMethod)
	e.ImportHash = strings.TrimSpace(e.ImportHash)
	e.Date = dateOrToday(e.Date)

	if !e.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

func (e *Expense) AfterFind(tx *gorm.DB) (err error) {
	err = e.DefaultModel.AfterFind(tx)
	e.Date = e.Date.In(time.UTC)
	return
}

func dateOrToday(t time.Time) time.Time {
	if t.IsZero() {
		return types.Day(time.Now())
	}
	return types.Day(t)
}
