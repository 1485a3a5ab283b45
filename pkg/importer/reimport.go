package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/homeledger/backend/pkg/ledger"
)

func isExportHeader(header []string) bool {
	if len(header) != len(ledger.ExportHeader) {
		return false
	}

	for i, name := range header {
		if !strings.EqualFold(strings.TrimSpace(name), ledger.ExportHeader[i]) {
			return false
		}
	}
	return true
}

// parseExport reads a file written by the ledger export. Stored categories are
// kept, only rows without a category are guessed.
func parseExport(content []byte, opts Options) ([]Record, []string) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	var records []Record
	var errs []string

	if _, err := reader.Read(); err != nil {
		return records, []string{fmt.Sprintf("Error processing CSV: %s", err)}
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				errs = append(errs, fmt.Sprintf("Error processing CSV: %s", err))
				break
			}
			errs = append(errs, fmt.Sprintf("Row %d: %s", parseErr.Line, parseErr.Err))
			continue
		}

		// always use the first field, we are only interested in the line
		line, _ := reader.FieldPos(0)

		// Columns in the order of ledger.ExportHeader
		date, person, amountText := field(row, 0), field(row, 1), field(row, 2)
		category, subcategory := field(row, 3), field(row, 4)
		description, paymentMethod := field(row, 5), field(row, 6)

		if date == "" || amountText == "" {
			errs = append(errs, fmt.Sprintf("Row %d: Missing required fields", line))
			continue
		}

		amount, err := parseAmount(amountText)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Row %d: Invalid amount '%s'", line, amountText))
			continue
		}

		parsed, err := parseDate(date, opts.now())
		if err != nil {
			errs = append(errs, fmt.Sprintf("Row %d: Invalid date format '%s'", line, date))
			continue
		}

		if category == "" || subcategory == "" {
			category, subcategory = opts.guess(description, "")
		}

		records = append(records, Record{
			Line:          line,
			Date:          parsed,
			Person:        person,
			Amount:        amount,
			Category:      category,
			Subcategory:   subcategory,
			Description:   description,
			PaymentMethod: paymentMethod,
			Format:        FormatExport,
		})
	}

	return records, errs
}
