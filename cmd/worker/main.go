package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/voxatu/scribe/internal/app"
	"github.com/voxatu/scribe/internal/config"
	"github.com/voxatu/scribe/internal/database"
	"github.com/voxatu/scribe/pkg/Logger"
)

// Background worker entry point: consumes queued transcription tasks and
// runs processing attempts with the configured retry schedule.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := Logger.New(cfg.Debug)
	logger.Info("Logger initialized")

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.MigrateDB(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	rc, err := database.NewRedis(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}

	application, err := app.NewApp(cfg, logger, db, rc)
	if err != nil {
		log.Fatalf("Failed to wire application: %v", err)
	}

	if err := application.Queue.Start(); err != nil {
		log.Fatalf("Failed to start queue worker: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	application.Queue.Stop()
	logger.Info("Worker stopped")
}
