package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/goldsim/internal/config"
	"github.com/aristath/goldsim/internal/database"
	"github.com/aristath/goldsim/internal/modules/history"
	historyjobs "github.com/aristath/goldsim/internal/modules/history/jobs"
	"github.com/aristath/goldsim/internal/modules/simulation"
	"github.com/aristath/goldsim/internal/scheduler"
	"github.com/aristath/goldsim/internal/server"
	"github.com/aristath/goldsim/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Logger not up yet; fall back to a default one for the exit.
		fallback := logger.New(logger.Config{Level: "info"})
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting goldsim")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// History module: cached series, snapshot import, synthetic fallback
	historyRepo := history.NewRepository(db.Conn(), log)
	snapshot := history.NewSnapshotReader(cfg.HistorySnapshotPath, log)
	historyService := history.NewService(historyRepo, snapshot, cfg.RandomSeed, log)
	if err := historyService.Load(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load historical series")
	}

	// Simulation module
	simulationService := simulation.NewService(log)
	simulationHandler := simulation.NewHandler(simulationService, historyService, simulation.Defaults{
		BuyPrice:          cfg.BuyPricePerGram,
		SellPrice:         cfg.SellPricePerGram,
		MonthlyGrams:      cfg.MonthlyGrams,
		Subscriptions:     cfg.Subscriptions,
		BonusGramsPerYear: cfg.BonusGramsPerYear,
		PriceFloor:        cfg.PriceFloor,
		PriceCeiling:      cfg.PriceCeiling,
		Periods:           cfg.SimulationPeriods,
		NumPaths:          cfg.NumSimulations,
		Workers:           cfg.Workers,
		InflationRate:     cfg.InflationRate,
		Seed:              cfg.RandomSeed,
	}, log)

	// Initialize scheduler
	sched := scheduler.New(log)
	sched.Start()
	defer sched.Stop()

	// Daily refresh keeps the cached series in sync with snapshot
	// updates.
	refreshJob := historyjobs.NewRefreshJob(historyService, log)
	if err := sched.AddJob("@daily", refreshJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register refresh job")
	}

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:              cfg.Port,
		Log:               log,
		DevMode:           cfg.DevMode,
		SimulationHandler: simulationHandler,
		HistoryHandler:    history.NewHandler(historyService, log),
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
