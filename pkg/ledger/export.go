package ledger

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/homeledger/backend/pkg/models"
)

// ExportHeader is the first line of every expense export.
var ExportHeader = []string{"date", "person", "amount", "category", "subcategory", "description", "payment_method"}

// ExportDateFormat is the format of the date column of an export.
const ExportDateFormat = time.DateOnly

// ExportExpenses writes the expenses matching the filter as CSV and returns
// the number of rows written.
func (s *Store) ExportExpenses(ctx context.Context, w io.Writer, f Filter) (int, error) {
	expenses, err := s.QueryTransactions(ctx, models.KindExpense, f)
	if err != nil {
		return 0, err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(ExportHeader); err != nil {
		return 0, fmt.Errorf("could not write export header: %w", err)
	}

	for _, e := range expenses {
		err := writer.Write([]string{
			e.Date.Format(ExportDateFormat),
			e.Person,
			e.Amount.String(),
			e.Category,
			e.Subcategory,
			e.Description,
			e.PaymentMethod,
		})
		if err != nil {
			return 0, fmt.Errorf("could not write export row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("could not write export: %w", err)
	}

	return len(expenses), nil
}
