package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/cadence/internal/cli"
	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/config"
	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/logging"
	"github.com/alexanderramin/cadence/internal/repository"
	"github.com/alexanderramin/cadence/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}
	cfg, err := config.Resolve(home)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.Log, logging.Options{})
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer closeLog.Close()

	// Open database
	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	logger.Debug("database opened", "path", cfg.Database.Path)

	// Wire repositories
	activityRepo := repository.NewSQLiteActivityRepo(database)
	completionRepo := repository.NewSQLiteCompletionRepo(database)
	coverRepo := repository.NewSQLiteCoverRepo(database)
	profileRepo := repository.NewSQLiteTrackerProfileRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// One lock table shared by every service that touches completions.
	locks := service.NewActivityLocks()
	observer := service.NewLogUseCaseObserver(logger)

	app := &cli.App{
		Activities: service.NewActivityService(activityRepo, uow, locks, observer),
		CheckIn:    service.NewCheckInService(completionRepo, uow, locks, observer),
		Analytics:  service.NewAnalyticsService(activityRepo, completionRepo, coverRepo, profileRepo, locks, observer),
		Profile:    service.NewProfileService(profileRepo, observer),
		Covers:     service.NewCoverService(activityRepo, coverRepo),
		Import:     service.NewImportService(activityRepo, completionRepo, coverRepo, uow, observer),

		Interactive: isTerminal(os.Stdin) && isTerminal(os.Stdout),
		TrendDays:   cfg.Display.TrendWindowDays,
		HeatDays:    cfg.Display.HeatWindowDays,
	}

	formatter.SetColorEnabled(cfg.Display.Color && isTerminal(os.Stdout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Execute root command
	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
