// Command importer loads a TOML broker snapshot into Postgres
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/simaogato/wealthflow-costbasis/internal/adapter/repository/postgres"
	"github.com/simaogato/wealthflow-costbasis/internal/config"
	"github.com/simaogato/wealthflow-costbasis/internal/logging"
	"github.com/simaogato/wealthflow-costbasis/internal/usecase/importer"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config file")
	snapshotPath := flag.String("snapshot", "", "path to the TOML snapshot to import")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.New("error", "console").Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	if *snapshotPath == "" {
		logger.Fatal().Msg("-snapshot is required")
	}

	snap, err := importer.LoadSnapshot(*snapshotPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load snapshot")
	}

	db, err := postgres.NewDB(cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.EnsureSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to create schema")
	}

	imp := importer.NewImporter(
		postgres.NewLedgerRepository(db),
		postgres.NewPriceRepository(db),
		logger.With("component", "importer"),
	)
	if _, err := imp.Import(ctx, snap); err != nil {
		logger.Error().Err(err).Str("snapshot", *snapshotPath).Msg("Import failed")
		os.Exit(1)
	}
}
