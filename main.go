package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/homeledger/backend/internal/config"
	"github.com/homeledger/backend/internal/logging"
	"github.com/homeledger/backend/pkg/catalog"
	"github.com/homeledger/backend/pkg/database"
	"github.com/homeledger/backend/pkg/ledger"
	"github.com/homeledger/backend/pkg/metrics"
	"github.com/homeledger/backend/pkg/models"
	"github.com/homeledger/backend/pkg/reports"
	"github.com/homeledger/backend/pkg/savings"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// app holds the services shared by all commands.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	db       *gorm.DB
	catalog  *catalog.Catalog
	store    *ledger.Store
	savings  *savings.Allocator
	reporter *reports.Reporter
	now      func() time.Time
	out      io.Writer
}

type command struct {
	run   func(a *app, ctx context.Context, args []string) error
	usage string
}

var commands = map[string]command{
	"add-income":      {(*app).addIncome, "Record an income"},
	"add-expense":     {(*app).addExpense, "Record an expense"},
	"list":            {(*app).list, "List incomes or expenses"},
	"delete":          {(*app).deleteTransaction, "Delete an income or an expense"},
	"toggle-realized": {(*app).toggleRealized, "Flip the realized flag of an expense"},
	"import":          {(*app).importStatements, "Preview statement files, store them with -commit"},
	"export":          {(*app).export, "Export expenses as CSV"},
	"categories":      {(*app).categories, "List, add or remove categories (list|add|remove|refresh)"},
	"rule":            {(*app).rules, "Manage category match rules for imports (list|add|delete)"},
	"asset":           {(*app).assets, "Track asset values (add|history|delete)"},
	"networth":        {(*app).netWorth, "Show the net worth snapshot"},
	"goal":            {(*app).goals, "Manage savings goals (list|add|delete|allocations|progress)"},
	"allocate":        {(*app).allocate, "Distribute surplus funds to savings goals"},
	"budget":          {(*app).budget, "Manage monthly budget targets (list|set|copy)"},
	"report":          {(*app).report, "Show reports (summary|overview|variance|trend|top|unrealized|networth)"},
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	name := os.Args[1]
	if name == "help" || name == "-h" || name == "--help" {
		printUsage(os.Stdout)
		return
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Startup failed")
	}

	err = cmd.run(a, ctx, os.Args[2:])
	a.close()
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("command", name).Msg("Command failed")
		os.Exit(1)
	}
}

// open connects to the database and wires all services.
func open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	if err := metrics.Register(); err != nil {
		return nil, err
	}

	db, err := database.Connect(database.DSN(cfg.DBPath))
	if err != nil {
		return nil, err
	}

	// Migrate all models so that the schema is correct
	err = models.Migrate(db)
	if err != nil {
		return nil, err
	}

	c := catalog.New(db, catalog.WithSeedPaths(cfg.CatalogSeedPath...), catalog.WithLogger(logger))
	err = c.Load(ctx)
	if err != nil {
		return nil, err
	}

	store := ledger.New(db, c)
	household := reports.Household{PersonA: cfg.PersonA, PersonB: cfg.PersonB}

	return &app{
		cfg:      cfg,
		log:      logger,
		db:       db,
		catalog:  c,
		store:    store,
		savings:  savings.New(db, store, time.Now),
		reporter: reports.New(store, c, household, time.Now),
		now:      time.Now,
		out:      os.Stdout,
	}, nil
}

func (a *app) close() {
	if a.cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(a.cfg.MetricsTextfile); err != nil {
			a.log.Error().Err(err).Str("path", a.cfg.MetricsTextfile).Msg("Could not write metrics")
		}
	}

	if err := database.Close(a.db); err != nil {
		a.log.Error().Err(err).Msg("Could not close the database")
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Household ledger")
	fmt.Fprintln(w, "\nUsage:")
	fmt.Fprintln(w, "  ledger <command> [options]")
	fmt.Fprintln(w, "\nCommands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(w, "  %-16s %s\n", name, commands[name].usage)
	}
	fmt.Fprintln(w, "\nRun 'ledger <command> -h' for more information on a command.")
}
