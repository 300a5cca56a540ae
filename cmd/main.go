package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vantage/docs/swagger"
	"vantage/internal/api"
	"vantage/internal/audit"
	"vantage/internal/backend"
	"vantage/internal/config"
	"vantage/internal/db"
	"vantage/internal/handlers"
	"vantage/internal/repositories"
	"vantage/internal/services"
	"vantage/internal/session"
	"vantage/internal/tasks"
	"vantage/internal/utils/logger"

	"github.com/joho/godotenv"
)

// @title Vantage Admin Gateway
// @version 1.0
// @description Session, proxy and bulk import gateway for the admin dashboard.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	logger := logger.New("vantage")

	// check if .env file exists
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		logger.Info("No .env file found, skipping environment variable loading")
	} else {
		logger.Info("Loading environment variables from .env file")
		if err := godotenv.Load(); err != nil {
			log.Fatalf("Failed to load environment variables: %v", err)
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to the local operational store
	if err := db.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("Failed to close database connection: %v", err)
		}
	}()

	dbInstance := db.GetDB()

	// Backend gateway and repositories
	apiClient := backend.NewClient(cfg.Backend)
	repos := repositories.NewRegistry(apiClient)
	sessions := session.NewService(apiClient, cfg.Session)

	// Every repository mutation lands in the audit trail.
	recorder := audit.NewRecorder(dbInstance)
	recorder.Subscribe(repositories.ImportableResources()...)

	// Storage for bulk upload files
	s3Service, err := services.NewS3Service(cfg.S3)
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}

	// Background work: imports, sweeps, audit retention
	taskClient := tasks.NewTaskClient(cfg.Redis)
	defer func() {
		if err := taskClient.Close(); err != nil {
			logger.Warn("Failed to close task client: %v", err)
		}
	}()

	taskHandler := tasks.NewTaskHandler(dbInstance, repos, s3Service, taskClient)
	taskServer := tasks.NewServer(cfg.Redis, cfg.Worker, taskHandler)

	go func() {
		if err := taskServer.Start(); err != nil {
			_ = logger.Error("Task server error", err)
		}
	}()

	taskScheduler := tasks.NewScheduler(cfg.Redis)
	go func() {
		if err := taskScheduler.Start(); err != nil {
			_ = logger.Error("Task scheduler error", err)
		}
	}()

	// One call starts the recurring stale-job sweep; it reschedules itself.
	if err := taskClient.EnqueueImportSweep(); err != nil {
		logger.Warn("Failed to schedule import sweep: %v", err)
	}

	// API server
	uploadHandler := handlers.NewUploadHandler(s3Service, taskClient, dbInstance)
	apiServer := api.NewServer(cfg, dbInstance, repos, sessions, uploadHandler)
	if apiServer == nil {
		log.Fatalf("Failed to initialize API server")
	}

	go func() {
		swagger.SwaggerInfo.Title = "Vantage Admin Gateway"
		swagger.SwaggerInfo.Description = "Session, proxy and bulk import gateway for the admin dashboard."
		swagger.SwaggerInfo.Version = "1.0"
		swagger.SwaggerInfo.Host = cfg.Server.Host
		swagger.SwaggerInfo.Schemes = []string{"https"}

		logger.Success("API server starting on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := apiServer.Start(); err != nil {
			_ = logger.Error("API server error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the servers
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	taskScheduler.Stop()
	taskServer.Shutdown()

	if err := apiServer.Shutdown(ctx); err != nil {
		_ = logger.Error("Failed to shutdown API server", err)
	}

	logger.Info("Servers shutdown gracefully")
}
