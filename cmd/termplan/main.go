package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/termplan/internal/cli"
	"github.com/alexanderramin/termplan/internal/db"
	"github.com/alexanderramin/termplan/internal/repository"
	"github.com/alexanderramin/termplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.termplan/termplan.db
	dbPath := os.Getenv("TERMPLAN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".termplan", "termplan.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	var observers []service.UseCaseObserver
	if envBool("TERMPLAN_LOG_USE_CASES") {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}
	var plannerLog io.Writer
	if envBool("TERMPLAN_LOG_PLANNER") {
		plannerLog = os.Stderr
	}
	logger := service.NewPlannerLogger(plannerLog)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Import:   service.NewImportService(uow, logger, observers...),
		Plans:    service.NewPlanService(repository.NewSQLitePlanRunRepo(database), uow, logger, observers...),
		Settings: service.NewSettingsService(uow, logger, observers...),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
