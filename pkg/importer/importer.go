// Package importer reads bank and credit card statements into expense records
// that can be reviewed before they are written to the ledger.
//
// Bad rows never abort an import. They are skipped and reported as strings,
// so that a reviewer sees exactly what was dropped and why.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/homeledger/backend/pkg/importer/helpers"
	"github.com/homeledger/backend/pkg/ledger"
	"github.com/homeledger/backend/pkg/metrics"
	"github.com/homeledger/backend/pkg/models"
	"github.com/shopspring/decimal"
)

// Format is a supported statement layout.
type Format string

const (
	FormatExport    Format = "export"    // CSV written by the ledger export
	FormatStatement Format = "statement" // Credit card statement CSV
	FormatLines     Format = "lines"     // "<date> <description...> <amount>" per line
)

// Payment methods assigned to imported records.
const (
	PaymentCreditCard = "Credit Card"
	PaymentCashDebit  = "Cash/Debit"
)

// Record is a candidate expense read from a statement.
type Record struct {
	Line           int // Line in the source file
	Date           time.Time
	Person         string
	Amount         decimal.Decimal
	Category       string
	Subcategory    string
	Description    string
	PaymentMethod  string
	SourceCategory string // Category label of the statement, if any
	Format         Format // Layout the record was read from
}

// Hash identifies the record for duplicate detection.
func (r Record) Hash() string {
	return helpers.Fingerprint(
		r.Date.Format(time.DateOnly),
		r.Amount.StringFixed(2),
		strings.ToUpper(r.Description),
		r.Person,
	)
}

// Entry converts the record to an expense for the ledger.
func (r Record) Entry() ledger.Entry {
	return ledger.Entry{
		Kind:          models.KindExpense,
		Date:          r.Date,
		Person:        r.Person,
		Amount:        r.Amount,
		Category:      r.Category,
		Subcategory:   r.Subcategory,
		Description:   r.Description,
		PaymentMethod: r.PaymentMethod,
		ImportHash:    r.Hash(),
	}
}

// Options configure how statements are read.
type Options struct {
	StatementPerson string           // Person for credit card statement rows
	LinePerson      string           // Person for plain text lines
	Guesser         *Guesser         // Assigns categories, nil assigns "Other"
	Now             func() time.Time // Clock for dates without a year, defaults to time.Now

	Workers  int                   // Files parsed at the same time by LoadFiles
	Progress func(done, total int) // Called by LoadFiles after every file
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

func (o Options) guess(description, sourceCategory string) (string, string) {
	if o.Guesser == nil {
		return fallbackCategory, fallbackSubcategory
	}
	return o.Guesser.Guess(description, sourceCategory)
}

// Load reads a statement in any supported format.
//
// It returns the records that could be parsed and one message per skipped row.
// An empty or completely invalid statement yields no records, not an error.
func Load(r io.Reader, opts Options) ([]Record, []string) {
	content, err := io.ReadAll(r)
	if err != nil {
		return []Record{}, []string{fmt.Sprintf("Error reading file: %s", err)}
	}

	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))

	var records []Record
	var errs []string
	switch Detect(content) {
	case FormatExport:
		records, errs = parseExport(content, opts)
	case FormatStatement:
		records, errs = parseStatement(content, opts)
	default:
		records, errs = parseLines(content, opts)
	}

	metrics.ImportRows.WithLabelValues(metrics.OutcomeParsed).Add(float64(len(records)))
	metrics.ImportRows.WithLabelValues(metrics.OutcomeSkipped).Add(float64(len(errs)))

	if records == nil {
		records = []Record{}
	}
	return records, errs
}

// Detect determines the format from the first line.
func Detect(content []byte) Format {
	first, _, _ := bytes.Cut(content, []byte("\n"))

	header, err := csv.NewReader(bytes.NewReader(first)).Read()
	if err != nil {
		return FormatLines
	}

	if isExportHeader(header) {
		return FormatExport
	}

	if _, ok := statementColumns(header); ok {
		return FormatStatement
	}

	return FormatLines
}

// columnIndex maps the trimmed column names of a header to their position.
func columnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	return index
}

// field returns the trimmed value of a column, or "" if the row is too short.
func field(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

// parseAmount parses amounts with thousands separators and currency signs.
func parseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer(",", "", "$", "", " ", "").Replace(strings.TrimSpace(s))
	return decimal.NewFromString(cleaned)
}
