package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/homeledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

var errUsage = errors.New("invalid usage")

// decimalFlag is a decimal.Decimal command line flag.
type decimalFlag struct {
	value decimal.Decimal
	set   bool
}

func (d *decimalFlag) String() string {
	return d.value.String()
}

func (d *decimalFlag) Set(s string) error {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount '%s'", s)
	}
	d.value, d.set = v, true
	return nil
}

// dateFlag is a YYYY-MM-DD command line flag.
type dateFlag struct {
	value *time.Time
}

func (d *dateFlag) String() string {
	if d.value == nil {
		return ""
	}
	return d.value.Format(time.DateOnly)
}

func (d *dateFlag) Set(s string) error {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("invalid date '%s', expected YYYY-MM-DD", s)
	}
	d.value = &t
	return nil
}

// monthFlag is a YYYY-MM command line flag.
type monthFlag struct {
	value types.Month
}

func (m *monthFlag) String() string {
	if m.value.IsZero() {
		return ""
	}
	return m.value.String()
}

func (m *monthFlag) Set(s string) error {
	v, err := types.ParseMonth(s)
	if err != nil {
		return fmt.Errorf("invalid month '%s', expected YYYY-MM", s)
	}
	m.value = v
	return nil
}

// orCurrent returns the month or the current month if none was given.
func (m *monthFlag) orCurrent(now time.Time) types.Month {
	if m.value.IsZero() {
		return types.MonthOf(now)
	}
	return m.value
}

// newFlagSet creates a flag set that returns errors instead of exiting.
func newFlagSet(name string, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	return fs
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid id '%s'", errUsage, s)
	}
	return id, nil
}

// subcommand splits the first argument from the rest, defaulting to def.
func subcommand(args []string, def string) (string, []string) {
	if len(args) == 0 || len(args[0]) == 0 || args[0][0] == '-' {
		return def, args
	}
	return args[0], args[1:]
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func day(t time.Time) string {
	return t.Format(time.DateOnly)
}

// dateOrToday returns the date of the flag or today if it was not set.
func (a *app) dateOrToday(d dateFlag) time.Time {
	if d.value == nil {
		return types.Day(a.now())
	}
	return *d.value
}
