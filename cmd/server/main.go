package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adityadutt29/EmeLoc/internal/infrastructure/config"
	"github.com/adityadutt29/EmeLoc/internal/infrastructure/persistence"
	"github.com/adityadutt29/EmeLoc/internal/interface/api"
	"github.com/adityadutt29/EmeLoc/internal/interface/repository"
	"github.com/adityadutt29/EmeLoc/internal/usecase"
	"github.com/adityadutt29/EmeLoc/pkg/logger"
	"github.com/adityadutt29/EmeLoc/pkg/metrics"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting EmeLoc service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up PostgreSQL connection
	log.Info("Connecting to PostgreSQL")
	gormDB, err := persistence.NewPostgres(cfg.PostgresURI, 10, 2*time.Second)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}
	if err := repository.AutoMigrate(gormDB); err != nil {
		log.Fatal("Failed to migrate schema", "error", err)
	}

	// Set up MongoDB connection for the notification audit log
	log.Info("Connecting to MongoDB")
	mongoClient, mongoDB, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up repositories
	ambulanceRepo := repository.NewGormAmbulanceRepository(gormDB)
	caseRepo := repository.NewGormCaseRepository(gormDB)
	locationRepo := repository.NewGormLocationRepository(gormDB)
	snapshotRepo := repository.NewSnapshotRouter(ambulanceRepo, caseRepo)
	notifLogRepo := repository.NewMongoNotificationLogRepository(mongoDB)
	mailerRepo := repository.NewHTTPMailerRepository(cfg.MailerEndpoint, log)

	// Set up metrics and use cases
	m := metrics.NewMetrics("emeloc")
	recorder := usecase.NewLocationRecorder(locationRepo, snapshotRepo, nil, log, m)
	caseService := usecase.NewCaseService(caseRepo, ambulanceRepo, locationRepo, mailerRepo, notifLogRepo, cfg.PublicOrigin, log, m)
	ambulanceService := usecase.NewAmbulanceService(ambulanceRepo, log)
	mapRefresher := usecase.NewMapRefresher(locationRepo, ambulanceRepo, log, m)

	// Viewer-side tracking loop: rebuild the map snapshot on a fixed period
	mapScheduler := usecase.NewTrackingScheduler(cfg.MapRefreshInterval, true, log)
	if err := mapScheduler.Start("", mapRefresher.Refresh); err != nil {
		log.Fatal("Failed to start map refresh loop", "error", err)
	}

	// Set up HTTP server
	handler := api.NewHandler(caseService, ambulanceService, recorder, mapRefresher, log, cfg.AppVersion)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(handler),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	mapScheduler.Stop()
	cancel()

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("EmeLoc service stopped")
}
