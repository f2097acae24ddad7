package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/rendalab/carteira-backend/internal/adapter/httpapi"
	"github.com/rendalab/carteira-backend/internal/adapter/repository/postgres"
	"github.com/rendalab/carteira-backend/internal/config"
	"github.com/rendalab/carteira-backend/internal/usecase/dashboard"
	portfoliouc "github.com/rendalab/carteira-backend/internal/usecase/portfolio"
	"github.com/rendalab/carteira-backend/internal/usecase/seeder"
)

func main() {
	// 1. Configuration and logging
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	// 2. Database
	db, err := postgres.NewDB(cfg.DBConnStr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// 3. Repositories
	portfolioRepo := postgres.NewPortfolioRepository(db)
	assetRepo := postgres.NewAssetRepository(db)
	rateRepo := postgres.NewReferenceRateRepository(db)

	// 4. Seed baseline reference rates
	rateSeeder := seeder.NewRateSeeder(rateRepo)
	if err := rateSeeder.Seed(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to seed reference rates")
	}

	// 5. Services (use cases)
	portfolioService := portfoliouc.NewPortfolioService(portfolioRepo)
	dashboardService := dashboard.NewDashboardService(portfolioRepo, rateRepo, log)

	// 6. HTTP server
	handler := httpapi.NewHandler(portfolioService, dashboardService, assetRepo, rateRepo, log)
	server := httpapi.New(httpapi.Config{
		Port:           cfg.Port,
		APIToken:       cfg.APIToken,
		AllowedOrigins: cfg.AllowedOrigins,
		Log:            log,
		Handler:        handler,
	})

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal().Err(err).Msg("http server stopped")
		}
	}()

	waitForShutdown(server, log)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(server *httpapi.Server, log zerolog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("http server stopped")
}
