package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/homeledger/backend/pkg/ledger"
	"github.com/homeledger/backend/pkg/models"
)

func (a *app) addIncome(ctx context.Context, args []string) error {
	var date dateFlag
	var amount decimalFlag

	fs := newFlagSet("add-income", os.Stderr)
	fs.Var(&date, "date", "Date of the income, YYYY-MM-DD (default today)")
	fs.Var(&amount, "amount", "Amount received")
	person := fs.String("person", a.cfg.PersonA, "Person receiving the income")
	source := fs.String("source", "", "Source of the income, e.g. Salary")
	description := fs.String("description", "", "Description")
	payment := fs.String("payment", "", "Payment method")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := a.store.RecordTransaction(ctx, ledger.Entry{
		Kind:          models.KindIncome,
		Date:          a.dateOrToday(date),
		Person:        *person,
		Amount:        amount.value,
		Category:      *source,
		Description:   *description,
		PaymentMethod: *payment,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Recorded income %s\n", id)
	return nil
}

func (a *app) addExpense(ctx context.Context, args []string) error {
	var date dateFlag
	var amount decimalFlag

	fs := newFlagSet("add-expense", os.Stderr)
	fs.Var(&date, "date", "Date of the expense, YYYY-MM-DD (default today)")
	fs.Var(&amount, "amount", "Amount spent")
	person := fs.String("person", a.cfg.PersonA, "Person who spent the money")
	category := fs.String("category", "", "Category")
	subcategory := fs.String("subcategory", "", "Subcategory")
	description := fs.String("description", "", "Description")
	payment := fs.String("payment", "", "Payment method")
	realized := fs.Bool("realized", false, "The money already left the joint account")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := a.store.RecordTransaction(ctx, ledger.Entry{
		Kind:          models.KindExpense,
		Date:          a.dateOrToday(date),
		Person:        *person,
		Amount:        amount.value,
		Category:      *category,
		Subcategory:   *subcategory,
		Description:   *description,
		PaymentMethod: *payment,
		Realized:      *realized,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Recorded expense %s\n", id)
	return nil
}

// filterFlags registers the flags shared by all commands that filter transactions.
func filterFlags(fs *flag.FlagSet, from, to *dateFlag) (person, category *string) {
	fs.Var(from, "from", "First day, YYYY-MM-DD")
	fs.Var(to, "to", "Last day, YYYY-MM-DD")
	person = fs.String("person", "", "Only this person")
	category = fs.String("category", "", "Only this category")
	return person, category
}

func (a *app) list(ctx context.Context, args []string) error {
	var from, to dateFlag

	fs := newFlagSet("list", os.Stderr)
	kind := fs.String("kind", string(models.KindExpense), "income or expense")
	person, category := filterFlags(fs, &from, &to)
	if err := fs.Parse(args); err != nil {
		return err
	}

	k, err := models.ParseKind(*kind)
	if err != nil {
		return err
	}

	entries, err := a.store.QueryTransactions(ctx, k, ledger.Filter{
		From:     from.value,
		To:       to.value,
		Person:   *person,
		Category: *category,
	})
	if err != nil {
		return err
	}

	w := table(a.out)
	if k == models.KindIncome {
		fmt.Fprintln(w, "ID\tDATE\tPERSON\tAMOUNT\tSOURCE\tDESCRIPTION\tPAYMENT")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", e.ID, day(e.Date), e.Person, money(e.Amount), e.Category, e.Description, e.PaymentMethod)
		}
	} else {
		fmt.Fprintln(w, "ID\tDATE\tPERSON\tAMOUNT\tCATEGORY\tSUBCATEGORY\tDESCRIPTION\tPAYMENT\tREALIZED")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%t\n", e.ID, day(e.Date), e.Person, money(e.Amount), e.Category, e.Subcategory, e.Description, e.PaymentMethod, e.Realized)
		}
	}
	return w.Flush()
}

func (a *app) deleteTransaction(ctx context.Context, args []string) error {
	fs := newFlagSet("delete", os.Stderr)
	kind := fs.String("kind", string(models.KindExpense), "income or expense")
	idString := fs.String("id", "", "ID of the transaction")
	if err := fs.Parse(args); err != nil {
		return err
	}

	k, err := models.ParseKind(*kind)
	if err != nil {
		return err
	}

	id, err := parseID(*idString)
	if err != nil {
		return err
	}

	err = a.store.DeleteTransaction(ctx, k, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Deleted %s %s\n", k, id)
	return nil
}

func (a *app) toggleRealized(ctx context.Context, args []string) error {
	fs := newFlagSet("toggle-realized", os.Stderr)
	idString := fs.String("id", "", "ID of the expense")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := parseID(*idString)
	if err != nil {
		return err
	}

	realized, err := a.store.ToggleRealized(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Expense %s realized: %t\n", id, realized)
	return nil
}
