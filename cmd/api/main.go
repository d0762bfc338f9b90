package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sysgest/insights-api/docs"
	"github.com/sysgest/insights-api/internal/auth"
	"github.com/sysgest/insights-api/internal/config"
	"github.com/sysgest/insights-api/internal/database"
	"github.com/sysgest/insights-api/internal/dataset"
	"github.com/sysgest/insights-api/internal/domain"
	"github.com/sysgest/insights-api/internal/http/handler"
	"github.com/sysgest/insights-api/internal/http/middleware"
	"github.com/sysgest/insights-api/internal/http/router"
	"github.com/sysgest/insights-api/internal/jobs"
	"github.com/sysgest/insights-api/internal/logger"
	"github.com/sysgest/insights-api/internal/repository"
	"github.com/sysgest/insights-api/internal/service"
	"github.com/sysgest/insights-api/internal/storage"
	"github.com/sysgest/insights-api/internal/warehouse"
	"go.uber.org/zap"
)

// warehouseSyncTimeout bounds one scheduled warehouse pull end to end.
const warehouseSyncTimeout = 5 * time.Minute

// @title Sysgest Insights API
// @version 1.0
// @description Field-service BI dashboard: spreadsheet ingestion, reopening matching, permanence and bonus panels
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email suporte@sysgest.com.br

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "insights-staging.sysgest.com.br"
	case "production":
		docs.SwaggerInfo.Host = "insights.sysgest.com.br"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// sqlite has no migration pipeline; gorm keeps the schema current there.
	// Postgres schemas are managed through cmd/migrate in non-dev environments.
	if cfg.Database.Driver == "sqlite" || cfg.App.Environment == "development" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize storage
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Token manager for login and request authentication
	tokens, err := auth.NewTokenManager(&cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token manager: %w", err)
	}

	// In-memory dataset behind every panel
	store := dataset.NewStore(log)

	// Initialize warehouse connection (optional feed source)
	// This connection is read-only and the app continues without it
	var whClient *warehouse.Client
	if cfg.Warehouse.Enabled {
		whClient, err = warehouse.NewClient(&cfg.Warehouse, log)
		if err != nil {
			log.Warn("Warehouse connection failed, continuing with uploads only",
				zap.Error(err),
			)
		} else if whClient != nil {
			log.Info("Warehouse connected successfully",
				zap.Int("max_open_conns", cfg.Warehouse.MaxOpenConns),
				zap.Int("query_timeout_seconds", cfg.Warehouse.QueryTimeout),
			)
		}
	} else {
		log.Info("Warehouse not configured, feeds come from uploads only")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	batchRepo := repository.NewImportBatchRepository(db)
	goalRepo := repository.NewGoalRepository(db)

	// Initialize services
	userService := service.NewUserService(userRepo, tokens, log)
	settingService := service.NewSettingService(settingRepo, log)
	importService := service.NewImportService(store, batchRepo, goalRepo, fileStorage,
		cfg.Import.AllowedExtensions, log)
	dashboardService := service.NewDashboardService(store, log)

	// Goal rows survive restarts in the relational store; feed rows do not.
	if goals, err := goalRepo.ListAll(ctx); err != nil {
		log.Warn("Failed to reload stored goals", zap.Error(err))
	} else if len(goals) > 0 {
		store.SeedGoals(goals)
		log.Info("Reloaded stored goals", zap.Int("count", len(goals)))
	}

	if err := bootstrapAdmin(ctx, userRepo, userService, log); err != nil {
		return fmt.Errorf("failed to bootstrap admin user: %w", err)
	}

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(tokens, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService, log)
	userHandler := handler.NewUserHandler(userService, log)
	settingHandler := handler.NewSettingHandler(settingService, log)
	importHandler := handler.NewImportHandler(importService, cfg.Storage.MaxUploadSizeMB, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		authHandler,
		userHandler,
		settingHandler,
		importHandler,
		dashboardHandler,
	)

	// Initialize and start scheduler for the warehouse pull
	var scheduler *jobs.Scheduler
	if whClient != nil && whClient.IsEnabled() {
		scheduler = jobs.NewScheduler(log)

		if err := jobs.RegisterWarehouseSyncJob(
			scheduler,
			whClient,
			store,
			log,
			cfg.Warehouse.SyncSchedule,
			warehouseSyncTimeout,
			true, // backfill immediately so panels have data on boot
		); err != nil {
			log.Error("Failed to register warehouse sync job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with warehouse sync job",
				zap.String("cron_expr", cfg.Warehouse.SyncSchedule),
				zap.Duration("timeout", warehouseSyncTimeout),
			)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		// Close warehouse connection if initialized
		if whClient != nil {
			if err := whClient.Close(); err != nil {
				log.Warn("Error closing warehouse connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}

// bootstrapAdmin creates the first admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD when the users table is empty, so a fresh deployment can
// log in without manual SQL.
func bootstrapAdmin(ctx context.Context, userRepo *repository.UserRepository, users *service.UserService, log *zap.Logger) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	count, err := userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = users.Create(ctx, &domain.CreateUserRequest{
		Email:    email,
		Name:     "Administrador",
		Password: password,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return err
	}

	log.Info("Bootstrap admin user created", zap.String("email", email))
	return nil
}
