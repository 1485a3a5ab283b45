package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Columns of a credit card statement.
const (
	columnTransactionDate = "Transaction Date"
	columnDescription     = "Description"
	columnType            = "Type"
	columnAmount          = "Amount"
	columnCategory        = "Category"
)

type statementHeader struct {
	date, description, kind, amount, category int
}

// statementColumns finds the statement columns. ok is false if a required column is missing.
func statementColumns(header []string) (statementHeader, bool) {
	index := columnIndex(header)

	h := statementHeader{category: -1}
	var ok [4]bool
	h.date, ok[0] = index[columnTransactionDate]
	h.description, ok[1] = index[columnDescription]
	h.kind, ok[2] = index[columnType]
	h.amount, ok[3] = index[columnAmount]

	if c, found := index[columnCategory]; found {
		h.category = c
	}

	return h, ok[0] && ok[1] && ok[2] && ok[3]
}

// parseStatement reads a credit card statement.
//
// Only sales with a negative amount are expenses. Returns, payments and
// other credits are skipped without a message.
func parseStatement(content []byte, opts Options) ([]Record, []string) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	var records []Record
	var errs []string

	header, err := reader.Read()
	if err != nil {
		return records, []string{fmt.Sprintf("Error processing CSV: %s", err)}
	}
	columns, _ := statementColumns(header)

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

		if !strings.EqualFold(field(row, columns.kind), "sale") {
			continue
		}

		date := field(row, columns.date)
		description := field(row, columns.description)
		amountText := field(row, columns.amount)
		if date == "" || description == "" || amountText == "" {
			errs = append(errs, fmt.Sprintf("Row %d: Missing required fields", line))
			continue
		}

		amount, err := parseAmount(amountText)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Row %d: Invalid amount '%s'", line, amountText))
			continue
		}

		// Positive amounts are returns or credits
		if !amount.IsNegative() {
			continue
		}

		parsed, err := parseDate(date, opts.now())
		if err != nil {
			errs = append(errs, fmt.Sprintf("Row %d: Invalid date format '%s'", line, date))
			continue
		}

		sourceCategory := field(row, columns.category)
		category, subcategory := opts.guess(description, sourceCategory)

		records = append(records, Record{
			Line:           line,
			Date:           parsed,
			Person:         opts.StatementPerson,
			Amount:         amount.Abs(),
			Category:       category,
			Subcategory:    subcategory,
			Description:    description,
			PaymentMethod:  PaymentCreditCard,
			SourceCategory: sourceCategory,
		})
	}

	return records, errs
}
