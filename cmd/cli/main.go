package main

import (
	"fmt"
	"os"

	"github.com/tally-tools/tally/pkg/runtime/terminal"
	"github.com/tally-tools/tally/pkg/services/assistant"
	"github.com/tally-tools/tally/pkg/services/config"
	"github.com/tally-tools/tally/pkg/services/export"
	"github.com/tally-tools/tally/pkg/services/tracker"
	"github.com/tally-tools/tally/pkg/store/sqlite"
	"github.com/tally-tools/tally/pkg/store/sqlite/entry"
	"github.com/tally-tools/tally/pkg/store/sqlite/quantity"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("TALLY_CONFIG"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := sqlite.NewDB(sqlite.Settings{DbPath: cfg.Storage.Path})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	quantities, err := quantity.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create quantity store: %w", err)
	}
	entries, err := entry.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create entry store: %w", err)
	}

	trk, err := tracker.NewService(quantities, entries, tracker.Options{
		WeekStart:   cfg.WeekStartDay(),
		ZeroIsEmpty: cfg.Tracking.ZeroIsEmpty,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracker service: %w", err)
	}

	asst, err := assistant.NewService(trk)
	if err != nil {
		return fmt.Errorf("failed to create assistant service: %w", err)
	}
	exporter, err := export.NewExporter(trk)
	if err != nil {
		return fmt.Errorf("failed to create exporter: %w", err)
	}

	cli := terminal.NewCLI(terminal.Options{
		Tracker:   trk,
		Assistant: asst,
		Exporter:  exporter,
		Output:    os.Stdout,
	})

	return cli.Execute()
}
