package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/simaogato/wealthflow-costbasis/internal/adapter/chart"
	grpcadapter "github.com/simaogato/wealthflow-costbasis/internal/adapter/grpc"
	"github.com/simaogato/wealthflow-costbasis/internal/adapter/repository/postgres"
	"github.com/simaogato/wealthflow-costbasis/internal/config"
	"github.com/simaogato/wealthflow-costbasis/internal/logging"
	"github.com/simaogato/wealthflow-costbasis/internal/usecase/dashboard"
)

const (
	connectAttempts = 5
	connectBackoff  = 2 * time.Second
)

func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", "config.toml"), "path to the TOML config file")
	flag.Parse()

	// A .env file is optional; real environment variables win
	_ = godotenv.Load()

	// 1. Load configuration and logger
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.New("error", "console").Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	// 2. Setup Database
	db, err := connect(cfg.Database.ConnectionString(), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.EnsureSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to create schema")
	}

	// 3. Initialize Repositories (Postgres)
	ledgerRepo := postgres.NewLedgerRepository(db)
	priceRepo := postgres.NewPriceRepository(db)

	// 4. Initialize Services (Use Cases)
	dashboardService := dashboard.NewDashboardService(
		ledgerRepo,
		priceRepo,
		logger.With("component", "dashboard"),
		cfg.Engine.Concurrency,
	)

	// 5. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.AuthInterceptor(cfg.Server.APIToken),
			grpcadapter.LoggingInterceptor(logger.With("component", "grpc")),
		),
	)

	grpcAdapter := grpcadapter.NewServer(dashboardService, chart.Options{
		Width:  cfg.Chart.Width,
		Height: cfg.Chart.Height,
	})
	grpcadapter.RegisterCostBasisServer(grpcServer, grpcAdapter)

	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		logger.Fatal().Err(err).Str("addr", cfg.Server.Addr).Msg("Failed to listen")
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatal().Err(err).Msg("Failed to serve gRPC server")
		}
	}()

	// Graceful shutdown
	waitForShutdown(grpcServer, logger)
}

// connect retries while Postgres is still starting up
func connect(connStr string, logger *logging.Logger) (*postgres.DB, error) {
	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		var db *postgres.DB
		db, err = postgres.NewDB(connStr)
		if err == nil {
			return db, nil
		}
		logger.Warn().Err(err).Int("attempt", attempt).Msg("Database not ready")
		time.Sleep(connectBackoff)
	}
	return nil, err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(grpcServer *grpclib.Server, logger *logging.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info().Str("signal", sig.String()).Msg("Shutting down gracefully")

	grpcServer.GracefulStop()
	logger.Info().Msg("gRPC server stopped")
}
