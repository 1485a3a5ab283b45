package models

import (
	"errors"
	"fmt"
)

var (
	ErrGeneral = errors.New("an error occurred in the database")

	// Kinds of StoreError. Use errors.Is to check for them.
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("referential conflict")

	ErrAmountNotPositive     = NewValidationError("transaction", "amount must be larger than zero")
	ErrGoalAmountNotPositive = NewValidationError("savings goal", "target amount must be larger than zero")
	ErrGoalNameNotUnique     = NewConflictError("savings goal", "a goal with this name already exists")
	ErrMonthOutOfRange       = NewValidationError("budget target", "month must be between 1 and 12")
	ErrCategoryEntryExists   = NewConflictError("category", "the subcategory already exists in this category")
)

// StoreError is returned by all operations that read or write the ledger database.
type StoreError struct {
	Kind     error  // One of ErrNotFound, ErrValidation, ErrConflict
	Resource string // Human readable name of the affected resource
	Reason   string
}

func (e *StoreError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s", e.Resource, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Resource, e.Kind, e.Reason)
}

func (e *StoreError) Unwrap() error {
	return e.Kind
}

// Is makes two StoreErrors equal when kind, resource and reason match.
func (e *StoreError) Is(target error) bool {
	t, ok := target.(*StoreError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Resource == e.Resource && t.Reason == e.Reason
}

func NewNotFoundError(resource string) *StoreError {
	return &StoreError{Kind: ErrNotFound, Resource: resource, Reason: fmt.Sprintf("there is no %s matching your query", resource)}
}

func NewValidationError(resource, reason string) *StoreError {
	return &StoreError{Kind: ErrValidation, Resource: resource, Reason: reason}
}

func NewConflictError(resource, reason string) *StoreError {
	return &StoreError{Kind: ErrConflict, Resource: resource, Reason: reason}
}
