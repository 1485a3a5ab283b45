package importer

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// parseLines reads one expense per line in the form "<date> <description...> <amount>".
func parseLines(content []byte, opts Options) ([]Record, []string) {
	var records []Record
	var errs []string

	scanner := bufio.NewScanner(bytes.NewReader(content))
	line := 0
	for scanner.Scan() {
		line++

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		parts := strings.Fields(text)
		if len(parts) < 3 {
			errs = append(errs, fmt.Sprintf("Line %d: Invalid format - expected 'MM/DD description amount'", line))
			continue
		}

		date, err := parseDate(parts[0], opts.now())
		if err != nil {
			errs = append(errs, fmt.Sprintf("Line %d: Invalid date format '%s'", line, parts[0]))
			continue
		}

		amountText := parts[len(parts)-1]
		amount, err := parseAmount(amountText)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Line %d: Invalid amount '%s'", line, amountText))
			continue
		}

		description := strings.Join(parts[1:len(parts)-1], " ")
		category, subcategory := opts.guess(description, "")

		records = append(records, Record{
			Line:          line,
			Date:          date,
			Person:        opts.LinePerson,
			Amount:        amount,
			Category:      category,
			Subcategory:   subcategory,
			Description:   description,
			PaymentMethod: PaymentCashDebit,
		})
	}

	if err := scanner.Err(); err != nil {
		errs = append(errs, fmt.Sprintf("Error reading file: %s", err))
	}

	return records, errs
}
