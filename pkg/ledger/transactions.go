package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/homeledger/backend/pkg/metrics"
	"github.com/homeledger/backend/pkg/models"
	"gorm.io/gorm"
)

// BulkResult describes a committed batch.
type BulkResult struct {
	IDs        []uuid.UUID // In the order of the input
	Duplicates int         // Expenses whose import hash was already stored
}

// RecordTransaction validates and stores a single income or expense.
func (s *Store) RecordTransaction(ctx context.Context, e Entry) (uuid.UUID, error) {
	if err := s.validate(e); err != nil {
		return uuid.Nil, err
	}

	id, err := create(s.db.WithContext(ctx), e)
	if err != nil {
		return uuid.Nil, err
	}

	metrics.TransactionsRecorded.WithLabelValues(string(e.Kind)).Inc()
	return id, nil
}

func create(tx *gorm.DB, e Entry) (uuid.UUID, error) {
	var id uuid.UUID
	switch e.Kind {
	case models.KindIncome:
		income := e.income()
		if err := tx.Create(&income).Error; err != nil {
			return uuid.Nil, err
		}
		id = income.ID
	case models.KindExpense:
		expense := e.expense()
		if err := tx.Create(&expense).Error; err != nil {
			return uuid.Nil, err
		}
		id = expense.ID
	}

	return id, nil
}

// QueryTransactions returns the transactions of one kind matching the filter,
// newest first. Transactions on the same day keep their insertion order.
func (s *Store) QueryTransactions(ctx context.Context, kind models.Kind, f Filter) ([]Entry, error) {
	tx := f.apply(s.db.WithContext(ctx)).Order("date(date) DESC").Order("rowid ASC")

	var entries []Entry
	switch kind {
	case models.KindIncome:
		var incomes []models.Income
		if err := tx.Find(&incomes).Error; err != nil {
			return nil, err
		}
		for _, i := range incomes {
			entries = append(entries, incomeEntry(i))
		}
	case models.KindExpense:
		var expenses []models.Expense
		if err := tx.Find(&expenses).Error; err != nil {
			return nil, err
		}
		for _, e := range expenses {
			entries = append(entries, expenseEntry(e))
		}
	default:
		return nil, models.NewValidationError("transaction", "kind must be income or expense")
	}

	return entries, nil
}

// BulkInsert stores all entries in one database transaction.
//
// Every entry is validated before anything is written. If a single entry is
// invalid or cannot be stored, nothing is written.
func (s *Store) BulkInsert(ctx context.Context, entries []Entry) (BulkResult, error) {
	for i, e := range entries {
		if err := s.validate(e); err != nil {
			var storeErr *models.StoreError
			if errors.As(err, &storeErr) {
				return BulkResult{}, models.NewValidationError(storeErr.Resource, fmt.Sprintf("row %d: %s", i+1, storeErr.Reason))
			}
			return BulkResult{}, err
		}
	}

	var hashes []string
	for _, e := range entries {
		if e.Kind == models.KindExpense && e.ImportHash != "" {
			hashes = append(hashes, e.ImportHash)
		}
	}

	existing, err := s.ExistingImportHashes(ctx, hashes)
	if err != nil {
		return BulkResult{}, err
	}

	result := BulkResult{IDs: make([]uuid.UUID, 0, len(entries))}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			id, err := create(tx, e)
			if err != nil {
				return err
			}

			if existing[e.ImportHash] {
				result.Duplicates++
			}
			result.IDs = append(result.IDs, id)
		}
		return nil
	})
	if err != nil {
		return BulkResult{}, err
	}

	for _, e := range entries {
		metrics.TransactionsRecorded.WithLabelValues(string(e.Kind)).Inc()
	}

	return result, nil
}

// DeleteTransaction permanently removes a transaction.
func (s *Store) DeleteTransaction(ctx context.Context, kind models.Kind, id uuid.UUID) error {
	var tx *gorm.DB
	switch kind {
	case models.KindIncome:
		tx = s.db.WithContext(ctx).Delete(&models.Income{}, "id = ?", id)
	case models.KindExpense:
		tx = s.db.WithContext(ctx).Delete(&models.Expense{}, "id = ?", id)
	default:
		return models.NewValidationError("transaction", "kind must be income or expense")
	}

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return models.NewNotFoundError(string(kind))
	}

	return nil
}

// ToggleRealized flips the realized flag of an expense and returns the new value.
func (s *Store) ToggleRealized(ctx context.Context, id uuid.UUID) (bool, error) {
	var expense models.Expense
	err := s.db.WithContext(ctx).First(&expense, "id = ?", id).Error
	if errors.Is(err, models.ErrNotFound) {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Income{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return false, err
		}

		if count > 0 {
			return false, models.NewValidationError("income", "only expenses can be realized")
		}
		return false, err
	} else if err != nil {
		return false, err
	}

	realized := !expense.Realized
	err = s.db.WithContext(ctx).Model(&expense).Select("Realized").Updates(models.Expense{Realized: realized}).Error
	if err != nil {
		return false, err
	}

	return realized, nil
}

// ExistingImportHashes returns which of the hashes are already stored for an expense.
func (s *Store) ExistingImportHashes(ctx context.Context, hashes []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(hashes) == 0 {
		return existing, nil
	}

	var found []string
	err := s.db.WithContext(ctx).Model(&models.Expense{}).Where("import_hash IN ?", hashes).Distinct().Pluck("import_hash", &found).Error
	if err != nil {
		return nil, err
	}

	for _, h := range found {
		existing[h] = true
	}

	return existing, nil
}
