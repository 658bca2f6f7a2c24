package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	_ "github.com/johnquangdev/signal-pulse/docs"
	"github.com/johnquangdev/signal-pulse/internal/adapter/handler"
	"github.com/johnquangdev/signal-pulse/internal/adapter/repository"
	"github.com/johnquangdev/signal-pulse/internal/domain/repositories"
	"github.com/johnquangdev/signal-pulse/internal/infrastructure/cache"
	"github.com/johnquangdev/signal-pulse/internal/infrastructure/database"
	httpmw "github.com/johnquangdev/signal-pulse/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/signal-pulse/internal/infrastructure/metrics"
	"github.com/johnquangdev/signal-pulse/internal/infrastructure/storage"
	"github.com/johnquangdev/signal-pulse/internal/usecase/pulse"
	pkgai "github.com/johnquangdev/signal-pulse/pkg/ai"
	"github.com/johnquangdev/signal-pulse/pkg/config"
	"github.com/johnquangdev/signal-pulse/pkg/logger"
	pkgvalidator "github.com/johnquangdev/signal-pulse/pkg/validator"

	migrate "github.com/rubenv/sql-migrate"
)

// @title           Signal Pulse API
// @version         1.0
// @description     Turns meeting notes into scored execution signals and a pulse report

// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Server.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	recorder := metrics.NewRecorder()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = handler.HTTPErrorHandler(appLogger)

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())
	e.Use(recorder.Middleware())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, httpmw.PasscodeHeader},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	ctx := context.Background()

	// Artifact storage
	var artifacts repositories.ArtifactStore
	switch cfg.Storage.Type {
	case config.StorageMinio:
		log.Printf("📦 Connecting to MinIO at %s...", cfg.Storage.Endpoint)
		store, err := storage.NewMinIOStore(ctx, &cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO storage: %v", err)
		}
		artifacts = store
	default:
		log.Printf("📁 Writing artifacts under %s", cfg.Storage.Root)
		artifacts = storage.NewFilesystemStore(afero.NewOsFs(), cfg.Storage.Root)
	}

	// Run history
	var history repositories.HistoryStore
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		history = cache.NewRedisHistory(redisClient, cfg.Redis.HistoryLimit)
	} else {
		log.Println("🧠 Using in-memory run history")
		history = cache.NewMemoryHistory(cfg.Redis.HistoryLimit)
	}

	// Run records
	var runs repositories.RunRepository
	if cfg.Database.Enabled {
		log.Println("📦 Connecting to database...")
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.CloseDB(db)

		if cfg.Database.AutoMigrate {
			log.Println("🔄 Applying migrations...")
			if _, err := database.Migrate(db, migrate.Up); err != nil {
				log.Fatalf("Failed to apply migrations: %v", err)
			}
		} else {
			log.Println("🔄 Skipping migrations; run cmd/migrate to manage the schema")
		}
		runs = repository.NewPulseRunRepository(db)
	}

	// Model client. A missing credential keeps the server up so the health
	// endpoint can report it.
	log.Printf("🤖 Initializing %s client...", cfg.LLM.Provider)
	asker, askerErr := pkgai.New(cfg, appLogger)
	if askerErr != nil {
		appLogger.Warn("⚠️ Model client not configured", zap.Error(askerErr))
	}

	loc, err := time.LoadLocation(cfg.Pulse.ReportTimezone)
	if err != nil {
		log.Fatalf("Failed to load time zone: %v", err)
	}

	pulseService := pulse.NewService(asker, artifacts, history, runs, recorder, pulse.Options{
		DefaultTone:      cfg.Pulse.DefaultTone,
		Location:         loc,
		SaveRawOnFailure: cfg.LLM.SaveRawOnFailure,
		NotConfigured:    askerErr,
	}, appLogger)

	guard := httpmw.NewPasscodeGuard(cfg.Server.Passcode)
	if !guard.Enabled() {
		log.Println("⚠️  SIGNAL_PULSE_PASSCODE is not set; the API is open")
	}

	pulseHandler := handler.NewPulse(pulseService, runs, guard, recorder, cfg, appLogger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, pulseHandler, guard, recorder.Handler())
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
