package importer

import (
	"fmt"
	"strings"

	"github.com/homeledger/backend/pkg/metrics"
)

// Validate checks the records again before they are committed.
//
// It returns the valid records and one message per rejected record. The
// messages are numbered by the position of the record, starting at 1.
// Exported rows may have an empty description, since the ledger accepts
// expenses without one.
func Validate(records []Record) ([]Record, []string) {
	valid := make([]Record, 0, len(records))
	var errs []string

	for i, r := range records {
		var missing []string
		if r.Date.IsZero() {
			missing = append(missing, "date")
		}
		if strings.TrimSpace(r.Person) == "" {
			missing = append(missing, "person")
		}
		if r.Amount.IsZero() {
			missing = append(missing, "amount")
		}
		if strings.TrimSpace(r.Category) == "" {
			missing = append(missing, "category")
		}
		if strings.TrimSpace(r.Subcategory) == "" {
			missing = append(missing, "subcategory")
		}
		if strings.TrimSpace(r.Description) == "" && r.Format != FormatExport {
			missing = append(missing, "description")
		}

		if len(missing) > 0 {
			errs = append(errs, fmt.Sprintf("Expense %d: Missing fields: %s", i+1, strings.Join(missing, ", ")))
			continue
		}

		if !r.Amount.IsPositive() {
			errs = append(errs, fmt.Sprintf("Expense %d: Invalid amount", i+1))
			continue
		}

		valid = append(valid, r)
	}

	metrics.ImportRows.WithLabelValues(metrics.OutcomeInvalid).Add(float64(len(errs)))
	return valid, errs
}
