package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/homeledger/backend/pkg/ledger"
	"github.com/homeledger/backend/pkg/models"
	"github.com/homeledger/backend/pkg/savings"
	"github.com/shopspring/decimal"
)

func (a *app) assets(ctx context.Context, args []string) error {
	action, args := subcommand(args, "history")

	var date dateFlag
	var value decimalFlag

	fs := newFlagSet("asset "+action, os.Stderr)
	person := fs.String("person", a.cfg.PersonA, "Owner of the asset")
	assetType := fs.String("type", "", "Type of the asset, e.g. Bank Account")
	name := fs.String("name", "", "Name of the asset")
	fs.Var(&value, "value", "Current value, negative for liabilities")
	fs.Var(&date, "date", "Date of the value, YYYY-MM-DD (default today)")
	notes := fs.String("notes", "", "Notes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	key := models.AssetKey{Person: *person, AssetType: *assetType, AssetName: *name}

	switch action {
	case "add":
		if !value.set {
			return fmt.Errorf("%w: -value is required", errUsage)
		}

		asset, err := a.store.AddAsset(ctx, models.Asset{
			Person:    key.Person,
			AssetType: key.AssetType,
			AssetName: key.AssetName,
			Value:     value.value,
			Date:      a.dateOrToday(date),
			Notes:     *notes,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Recorded %s: %s on %s\n", asset.AssetName, money(asset.Value), day(asset.Date))
		return nil

	case "history":
		history, err := a.store.AssetHistory(ctx, key)
		if err != nil {
			return err
		}

		w := table(a.out)
		fmt.Fprintln(w, "DATE\tVALUE\tNOTES")
		for _, h := range history {
			fmt.Fprintf(w, "%s\t%s\t%s\n", day(h.Date), money(h.Value), h.Notes)
		}
		return w.Flush()

	case "delete":
		return a.store.DeleteAsset(ctx, key)
	}

	return fmt.Errorf("%w: unknown action '%s'", errUsage, action)
}

func (a *app) netWorth(ctx context.Context, args []string) error {
	var asOf dateFlag

	fs := newFlagSet("networth", os.Stderr)
	fs.Var(&asOf, "as-of", "Day of the snapshot, YYYY-MM-DD (default today)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	snapshot, err := a.store.NetWorthSnapshot(ctx, asOf.value)
	if err != nil {
		return err
	}

	w := table(a.out)
	fmt.Fprintln(w, "PERSON\tTYPE\tNAME\tVALUE\tDATE")
	sum := decimal.Zero
	for _, asset := range snapshot {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", asset.Person, asset.AssetType, asset.AssetName, money(asset.Value), day(asset.Date))
		sum = sum.Add(asset.Value)
	}
	fmt.Fprintf(w, "\t\tNet worth\t%s\t\n", money(sum))
	return w.Flush()
}

func (a *app) goals(ctx context.Context, args []string) error {
	action, args := subcommand(args, "list")

	var target, current decimalFlag
	var targetDate dateFlag

	fs := newFlagSet("goal "+action, os.Stderr)
	name := fs.String("name", "", "Name of the goal")
	fs.Var(&target, "target", "Amount to save")
	fs.Var(&current, "current", "Amount already saved")
	fs.Var(&targetDate, "target-date", "Day the goal should be reached, YYYY-MM-DD")
	priority := fs.Uint("priority", 1, "Goals with lower priority are funded first")
	notes := fs.String("notes", "", "Notes")
	idString := fs.String("id", "", "ID of the goal")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch action {
	case "list", "progress":
		progress, err := a.savings.Progress(ctx)
		if err != nil {
			return err
		}

		w := table(a.out)
		fmt.Fprintln(w, "ID\tPRIORITY\tNAME\tCURRENT\tTARGET\tREMAINING\tPROGRESS\tTARGET DATE")
		for _, p := range progress {
			g := p.Goal
			due := ""
			if g.TargetDate != nil {
				due = day(*g.TargetDate)
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%s%%\t%s\n", g.ID, g.Priority, g.Name, money(g.CurrentAmount), money(g.TargetAmount), money(p.Remaining), p.Percent.StringFixed(2), due)
		}
		return w.Flush()

	case "add":
		goal, err := a.store.AddGoal(ctx, models.SavingsGoal{
			Name:          *name,
			TargetAmount:  target.value,
			CurrentAmount: current.value,
			TargetDate:    targetDate.value,
			Priority:      *priority,
			Notes:         *notes,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Added goal %s\n", goal.ID)
		return nil

	case "delete":
		id, err := parseID(*idString)
		if err != nil {
			return err
		}
		return a.store.DeleteGoal(ctx, id)

	case "allocations":
		id, err := parseID(*idString)
		if err != nil {
			return err
		}

		allocations, err := a.store.GoalAllocations(ctx, id)
		if err != nil {
			return err
		}

		w := table(a.out)
		fmt.Fprintln(w, "DATE\tAMOUNT\tNOTES")
		for _, al := range allocations {
			fmt.Fprintf(w, "%s\t%s\t%s\n", day(al.Date), money(al.Amount), al.Notes)
		}
		return w.Flush()
	}

	return fmt.Errorf("%w: unknown action '%s'", errUsage, action)
}

func (a *app) allocate(ctx context.Context, args []string) error {
	var amount decimalFlag

	fs := newFlagSet("allocate", os.Stderr)
	fs.Var(&amount, "amount", "Amount to distribute (default the surplus of the current month)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var result savings.Result
	var err error
	if amount.set {
		result, err = a.savings.Allocate(ctx, amount.value)
	} else {
		result, err = a.savings.AllocateSurplus(ctx)
	}
	if errors.Is(err, savings.ErrNoFundsAvailable) {
		fmt.Fprintln(a.out, "No funds available for allocation.")
		return nil
	}
	if err != nil {
		return err
	}

	w := table(a.out)
	fmt.Fprintln(w, "GOAL\tAMOUNT")
	for _, al := range result.Allocations {
		fmt.Fprintf(w, "%s\t%s\n", al.Name, money(al.Amount))
	}
	fmt.Fprintf(w, "Allocated\t%s\n", money(result.Allocated))
	fmt.Fprintf(w, "Unallocated\t%s\n", money(result.Unallocated))
	return w.Flush()
}

func (a *app) budget(ctx context.Context, args []string) error {
	action, args := subcommand(args, "list")

	var month, from monthFlag
	var target decimalFlag

	fs := newFlagSet("budget "+action, os.Stderr)
	fs.Var(&month, "month", "Month, YYYY-MM (default current month)")
	fs.Var(&from, "from", "Month to copy the targets from, YYYY-MM (default the month before -month)")
	category := fs.String("category", "", "Category")
	subcategory := fs.String("subcategory", "", "Subcategory, empty for the whole category")
	fs.Var(&target, "target", "Monthly target")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m := month.orCurrent(a.now())

	switch action {
	case "list":
		targets, err := a.store.BudgetTargets(ctx, m)
		if err != nil {
			return err
		}

		w := table(a.out)
		fmt.Fprintln(w, "CATEGORY\tSUBCATEGORY\tTARGET")
		for _, t := range targets {
			fmt.Fprintf(w, "%s\t%s\t%s\n", t.Category, t.Subcategory, money(t.MonthlyTarget))
		}
		return w.Flush()

	case "set":
		if !target.set {
			return fmt.Errorf("%w: -target is required", errUsage)
		}

		_, err := a.store.SetBudgetTarget(ctx, models.BudgetTarget{
			Category:      *category,
			Subcategory:   *subcategory,
			MonthlyTarget: target.value,
			Year:          m.Year(),
			Month:         int(m.Month()),
		})
		return err

	case "copy":
		source := from.value
		if source.IsZero() {
			source = m.AddDate(0, -1)
		}

		n, err := a.store.CopyBudgetTargets(ctx, source, m)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Copied %d targets from %s to %s\n", n, source, m)
		return nil
	}

	return fmt.Errorf("%w: unknown action '%s'", errUsage, action)
}

func (a *app) report(ctx context.Context, args []string) error {
	name, args := subcommand(args, "overview")

	var month monthFlag
	var from, to dateFlag

	fs := newFlagSet("report "+name, os.Stderr)
	fs.Var(&month, "month", "Month, YYYY-MM (default current month)")
	months := fs.Int("months", 6, "Number of months for trends")
	n := fs.Int("n", 5, "Number of top categories, 0 for all")
	person, category := filterFlags(fs, &from, &to)
	if err := fs.Parse(args); err != nil {
		return err
	}

	m := month.orCurrent(a.now())
	w := table(a.out)

	switch name {
	case "summary":
		summary, err := a.store.MonthlySummary(ctx, m.Year(), m.Month())
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "Summary of %s\n", m.Label())
		fmt.Fprintln(w, "TYPE\tPERSON\tTOTAL")
		for _, p := range summary.IncomeByPerson {
			fmt.Fprintf(w, "Income\t%s\t%s\n", p.Person, money(p.Total))
		}
		for _, p := range summary.ExpenseByPerson {
			fmt.Fprintf(w, "Expense\t%s\t%s\n", p.Person, money(p.Total))
		}
		fmt.Fprintln(w, "\nCATEGORY\tSUBCATEGORY\tTOTAL")
		for _, c := range summary.ExpenseByCategory {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.Category, c.Subcategory, money(c.Total))
		}

	case "overview":
		o, err := a.reporter.Overview(ctx, m.Year(), m.Month())
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "Overview of %s\n", m.Label())
		fmt.Fprintf(w, "Total income\t%s\n", money(o.TotalIncome))
		fmt.Fprintf(w, "Total expenses\t%s\n", money(o.TotalExpense))
		fmt.Fprintf(w, "Net income\t%s\n", money(o.Net))
		fmt.Fprintf(w, "Savings rate\t%s%%\n", o.SavingsRate.StringFixed(1))
		fmt.Fprintf(w, "Days in month\t%d\n", o.DaysInMonth)
		fmt.Fprintf(w, "Daily average\t%s\n", money(o.DailyAverage))
		fmt.Fprintf(w, "Projected monthly\t%s\n", money(o.Projected))
		fmt.Fprintf(w, "Days remaining\t%d\n", o.DaysRemaining)
		for i, c := range o.TopCategories {
			fmt.Fprintf(w, "%d. %s / %s\t%s\n", i+1, c.Category, c.Subcategory, money(c.Total))
		}

	case "variance":
		rows, err := a.reporter.BudgetVsActual(ctx, m.Year(), m.Month())
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "CATEGORY\tSUBCATEGORY\tESTIMATE\t%s\t%s\tTOTAL\tVARIANCE\n", a.cfg.PersonA, a.cfg.PersonB)
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", r.Category, r.Subcategory, money(r.Estimate), money(r.PersonA), money(r.PersonB), money(r.TotalActual), money(r.Variance))
		}

	case "trend":
		points, err := a.reporter.TrendSeries(ctx, *months)
		if err != nil {
			return err
		}

		fmt.Fprintln(w, "MONTH\tINCOME\tEXPENSES\tSAVINGS")
		for _, p := range points {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Label, money(p.Income), money(p.Expense), money(p.Savings))
		}

	case "top":
		top, err := a.reporter.TopCategories(ctx, m.Year(), m.Month(), *n)
		if err != nil {
			return err
		}

		fmt.Fprintln(w, "CATEGORY\tSUBCATEGORY\tTOTAL")
		for _, c := range top {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.Category, c.Subcategory, money(c.Total))
		}

	case "unrealized":
		totals, err := a.reporter.Unrealized(ctx, ledger.Filter{From: from.value, To: to.value, Person: *person, Category: *category})
		if err != nil {
			return err
		}

		fmt.Fprintln(w, "PERSON\tUNREALIZED")
		for _, p := range totals.ByPerson {
			fmt.Fprintf(w, "%s\t%s\n", p.Person, money(p.Total))
		}
		fmt.Fprintf(w, "Total (%d expenses)\t%s\n", totals.Count, money(totals.Total))

	case "networth":
		points, err := a.reporter.NetWorthTrend(ctx, *months)
		if err != nil {
			return err
		}

		fmt.Fprintln(w, "MONTH\tNET WORTH")
		for _, p := range points {
			fmt.Fprintf(w, "%s\t%s\n", p.Label, money(p.NetWorth))
		}

	default:
		return fmt.Errorf("%w: unknown report '%s'", errUsage, name)
	}

	return w.Flush()
}
