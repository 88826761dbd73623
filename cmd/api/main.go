package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voxatu/scribe/internal/app"
	"github.com/voxatu/scribe/internal/config"
	"github.com/voxatu/scribe/internal/database"
	"github.com/voxatu/scribe/internal/server"
	"github.com/voxatu/scribe/pkg/Logger"
)

// @title Scribe Transcription API
// @version 1.0
// @description Speech-to-text and text-to-speech transcription processing service.
// @BasePath /api/v1

// This is the main entry point for the API server.
// Loads in all system components
// Exposes functionalities
func main() {
	// fetch cfg
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	// load global logger
	logger := Logger.New(cfg.Debug)
	logger.Info("Logger initialized")
	// fetch database connection
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// handle migrations
	if err := database.MigrateDB(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	rc, err := database.NewRedis(cfg.Redis)
	if err != nil {
		logger.Warnf("Redis unavailable, process locking disabled: %v", err)
		rc = nil
	}

	application, err := app.NewApp(cfg, logger, db, rc)
	if err != nil {
		log.Fatalf("Failed to wire application: %v", err)
	}

	// compose router
	router := gin.New()
	server.InitializeRoutes(cfg, router, application.GetServerDependencies())

	addr := cfg.Server.Addr
	if addr == "" {
		addr = ":8080"
	}

	// listen with graceful exit
	srv := &http.Server{
		Addr:    addr,
		Handler: router.Handler(),
	}
	go func() {
		logger.Infof("API server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server exiting %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// 5 secs then cancel
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Shutdown err %v", err)
	}
	logger.Info("Shutdown system")
}
