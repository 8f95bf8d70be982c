package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tally-tools/tally/pkg/server"
	"github.com/tally-tools/tally/pkg/services/assistant"
	"github.com/tally-tools/tally/pkg/services/config"
	"github.com/tally-tools/tally/pkg/services/export"
	"github.com/tally-tools/tally/pkg/services/tracker"
	"github.com/tally-tools/tally/pkg/store/sqlite"
	"github.com/tally-tools/tally/pkg/store/sqlite/entry"
	"github.com/tally-tools/tally/pkg/store/sqlite/quantity"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the Tally web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML config file (defaults and TALLY_ env vars apply without one)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	// Optional; env vars may also come from the real environment.
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(cfgPath)
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

	trk.Subscribe(func(id uuid.UUID) {
		logger.Debug().Str("quantity_type_id", id.String()).Msg("totals invalidated")
	})

	if cfg.Tracking.SeedDefaults {
		if err := trk.SeedDefaults(ctx); err != nil {
			return fmt.Errorf("failed to seed default quantities: %w", err)
		}
	}

	asst, err := assistant.NewService(trk)
	if err != nil {
		return fmt.Errorf("failed to create assistant service: %w", err)
	}
	exporter, err := export.NewExporter(trk)
	if err != nil {
		return fmt.Errorf("failed to create exporter: %w", err)
	}

	logger.Info().Str("db", cfg.Storage.Path).Msg("storage ready")

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Tracker:   trk,
			Assistant: asst,
			Exporter:  exporter,
		},
	})

	return api.Start()
}
