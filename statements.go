package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/homeledger/backend/pkg/importer"
	"github.com/homeledger/backend/pkg/ledger"
	"github.com/homeledger/backend/pkg/models"
)

func (a *app) importStatements(ctx context.Context, args []string) error {
	fs := newFlagSet("import", os.Stderr)
	commit := fs.Bool("commit", false, "Store the new expenses instead of only showing them")
	workers := fs.Int("workers", a.cfg.ImportWorkers, "Files parsed at the same time")
	includeDuplicates := fs.Bool("include-duplicates", false, "Also store expenses that were already imported")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		return fmt.Errorf("%w: at least one statement file is required", errUsage)
	}

	matchRules, err := a.store.MatchRules(ctx)
	if err != nil {
		return err
	}

	results, err := importer.LoadFiles(ctx, fs.Args(), importer.Options{
		StatementPerson: a.cfg.StatementPerson,
		LinePerson:      a.cfg.LinePerson,
		Guesser:         importer.NewGuesser(a.catalog, matchRules),
		Now:             a.now,
		Workers:         *workers,
		Progress: func(done, total int) {
			a.log.Debug().Int("done", done).Int("total", total).Msg("Parsed statement")
		},
	})
	if err != nil {
		return err
	}

	var records []importer.Record
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(a.out, "%s: %s\n", r.Path, r.Err)
			continue
		}

		valid, errs := importer.Validate(r.Records)
		for _, e := range append(r.Errors, errs...) {
			fmt.Fprintf(a.out, "%s: %s\n", r.Path, e)
		}
		records = append(records, valid...)
	}

	previews, err := importer.Preview(ctx, records, a.store)
	if err != nil {
		return err
	}

	entries := make([]ledger.Entry, 0, len(previews))
	duplicates := 0

	w := table(a.out)
	fmt.Fprintln(w, "DATE\tPERSON\tAMOUNT\tCATEGORY\tSUBCATEGORY\tDESCRIPTION\tDUPLICATE")
	for _, p := range previews {
		r := p.Record
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%t\n", day(r.Date), r.Person, money(r.Amount), r.Category, r.Subcategory, r.Description, p.Duplicate)

		if p.Duplicate {
			duplicates++
			if !*includeDuplicates {
				continue
			}
		}
		entries = append(entries, r.Entry())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !*commit {
		fmt.Fprintf(a.out, "%d new expenses, %d duplicates. Run again with -commit to store them.\n", len(previews)-duplicates, duplicates)
		return nil
	}

	result, err := a.store.BulkInsert(ctx, entries)
	if err != nil {
		return err
	}

	a.log.Info().Int("stored", len(result.IDs)).Int("duplicates", duplicates).Msg("Imported statements")
	fmt.Fprintf(a.out, "Stored %d expenses.\n", len(result.IDs))
	return nil
}

func (a *app) export(ctx context.Context, args []string) error {
	var from, to dateFlag

	fs := newFlagSet("export", os.Stderr)
	path := fs.String("out", "-", "File to write, - for standard output")
	person, category := filterFlags(fs, &from, &to)
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := ledger.Filter{
		From:     from.value,
		To:       to.value,
		Person:   *person,
		Category: *category,
	}

	var n int
	write := func(w io.Writer) (err error) {
		n, err = a.store.ExportExpenses(ctx, w, filter)
		return err
	}

	var err error
	if *path == "-" {
		err = write(a.out)
	} else {
		err = writeFile(*path, write)
	}
	if err != nil {
		return err
	}

	a.log.Info().Int("expenses", n).Str("path", *path).Msg("Exported expenses")
	return nil
}

// writeFile creates path and passes it to write. Errors from closing the file are returned.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create export file: %w", err)
	}

	return closeWith(f, write(f))
}

// closeWith closes c and returns err, or the close error if err is nil.
func closeWith(c io.Closer, err error) error {
	if cerr := c.Close(); cerr != nil && err == nil {
		return fmt.Errorf("could not close export file: %w", cerr)
	}
	return err
}

func (a *app) categories(ctx context.Context, args []string) error {
	action, args := subcommand(args, "list")

	fs := newFlagSet("categories "+action, os.Stderr)
	category := fs.String("category", "", "Category")
	subcategory := fs.String("subcategory", "", "Subcategory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch action {
	case "list":
		w := table(a.out)
		fmt.Fprintln(w, "CATEGORY\tSUBCATEGORY")
		for _, c := range a.catalog.Categories() {
			if *category != "" && c.Name != *category {
				continue
			}
			for _, s := range c.Subcategories {
				fmt.Fprintf(w, "%s\t%s\n", c.Name, s)
			}
		}
		return w.Flush()

	case "add":
		if *subcategory == "" {
			return a.catalog.AddCategory(ctx, *category)
		}
		return a.catalog.AddSubcategory(ctx, *category, *subcategory)

	case "remove":
		return a.catalog.RemoveSubcategory(ctx, *category, *subcategory)

	case "refresh":
		return a.catalog.Refresh(ctx)
	}

	return fmt.Errorf("%w: unknown action '%s'", errUsage, action)
}

func (a *app) rules(ctx context.Context, args []string) error {
	action, args := subcommand(args, "list")

	fs := newFlagSet("rule "+action, os.Stderr)
	match := fs.String("match", "", "Glob matched against the description, e.g. *NETFLIX*")
	category := fs.String("category", "", "Category")
	subcategory := fs.String("subcategory", "", "Subcategory")
	priority := fs.Uint("priority", 0, "Rules with lower priority are tried first")
	idString := fs.String("id", "", "ID of the rule")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch action {
	case "list":
		all, err := a.store.MatchRules(ctx)
		if err != nil {
			return err
		}

		w := table(a.out)
		fmt.Fprintln(w, "ID\tPRIORITY\tMATCH\tCATEGORY\tSUBCATEGORY")
		for _, r := range all {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", r.ID, r.Priority, r.Match, r.Category, r.Subcategory)
		}
		return w.Flush()

	case "add":
		rule, err := a.store.AddMatchRule(ctx, models.MatchRule{
			Priority:    *priority,
			Match:       *match,
			Category:    *category,
			Subcategory: *subcategory,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Added rule %s\n", rule.ID)
		return nil

	case "delete":
		id, err := parseID(*idString)
		if err != nil {
			return err
		}
		return a.store.DeleteMatchRule(ctx, id)
	}

	return fmt.Errorf("%w: unknown action '%s'", errUsage, action)
}
