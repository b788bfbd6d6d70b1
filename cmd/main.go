package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"sheetmart/internal/analytics"
	"sheetmart/internal/caching"
	"sheetmart/internal/config"
	"sheetmart/internal/handlers"
	"sheetmart/internal/jobs"
	"sheetmart/internal/jobs/background"
	"sheetmart/internal/middleware"
	"sheetmart/internal/repositories"
	"sheetmart/internal/services"
	"sheetmart/internal/sheets"
	"sheetmart/pkg/database"
	"sheetmart/pkg/logger"
)

const version = "1.0.0"

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	credentials, err := cfg.GoogleCredentials()
	if err != nil {
		return err
	}
	store, err := sheets.NewGoogleStore(ctx, credentials, log)
	if err != nil {
		return err
	}

	// Redis backs the directory cache and login rate limiting when configured
	var cacheSvc caching.CacheService
	tenantRepo := repositories.NewTenantRepo(store, cfg.MasterSheetID, log)
	if cfg.RedisAddr != "" {
		cacheSvc = caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
		tenantRepo = repositories.NewCachedTenantRepo(store, cfg.MasterSheetID, cacheSvc, cfg.DirectoryCacheTTL, log)
	}

	var pool *pgxpool.Pool
	deliveryRepo := repositories.NewNoopDeliveryRepo()
	if cfg.DatabaseURL != "" {
		pool, err = database.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return err
		}
		defer database.ClosePool(pool, log)
		deliveryRepo = repositories.NewDeliveryRepo(pool)
	}

	var storage services.MinioService
	if cfg.MinioEndpoint != "" {
		storage, err = services.NewMinioService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
		if err != nil {
			return fmt.Errorf("failed to initialize minio: %w", err)
		}
		if err := storage.EnsureBucketExists(ctx, cfg.MinioBucket); err != nil {
			log.Warn("report bucket unavailable", zap.String("bucket", cfg.MinioBucket), zap.Error(err))
		}
	}

	validate := validator.New()
	locale := services.NewLocale(cfg.SchedulerLocation())

	inventoryRepo := repositories.NewInventoryRepo(store)
	purchaseRepo := repositories.NewPurchaseRepo(store)
	salesRepo := repositories.NewSalesRepo(store)
	supplierRepo := repositories.NewSupplierRepo(store)

	analyticsSvc := analytics.NewAnalyticsService(inventoryRepo, purchaseRepo, salesRepo, time.Now, log)
	supplierSvc := services.NewSupplierService(supplierRepo)
	inventorySvc := services.NewInventoryService(inventoryRepo, validate, time.Now, log)
	orderSvc := services.NewOrderService(purchaseRepo, salesRepo, inventoryRepo, supplierSvc, validate, time.Now, log)
	tenantSvc := services.NewTenantService(tenantRepo, store, validate, time.Now, log)
	resolver := services.NewTenantResolver(tenantRepo, cfg.DefaultSheetID, log)
	reportSvc := services.NewReportService(inventoryRepo, storage, cfg.MinioBucket, locale, time.Now, log)

	transport := services.NewSMTPTransport(services.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	})
	if cfg.SMTPUsername == "" || cfg.SMTPPassword == "" {
		log.Warn("smtp credentials not set, notification emails will fail")
	}
	sender := services.Sender{From: cfg.MailFrom, ReplyTo: cfg.MailReplyTo}
	if sender.From == "" {
		sender.From = cfg.SMTPUsername
	}
	notificationSvc := services.NewNotificationService(inventoryRepo, analyticsSvc, transport, sender, locale, time.Now, log)

	notificationJobs := jobs.NewNotificationJobs(tenantRepo, notificationSvc, deliveryRepo, time.Now, log)
	scheduler := background.NewSchedulerClock(notificationJobs, background.ClockConfig{
		Interval:      cfg.SchedulerInterval,
		TriggerHour:   cfg.SchedulerTriggerHour,
		WindowMinutes: cfg.SchedulerWindowMinutes,
		Location:      cfg.SchedulerLocation(),
	}, nil, log)
	if cfg.SchedulerEnabled {
		if err := scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	}
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Warn("scheduler stop", zap.Error(err))
		}
	}()

	adminSecret := middleware.AdminSecret(cfg.AdminJWTSecret, log)

	authHandlers := handlers.NewAuthHandlers(tenantSvc, cacheSvc, handlers.AuthConfig{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		AdminSecret:   adminSecret,
		SecureCookies: cfg.IsProduction(),
	}, time.Now, log)
	dashboardHandlers := handlers.NewDashboardHandlers(analyticsSvc)
	inventoryHandlers := handlers.NewInventoryHandlers(inventorySvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	supplierHandlers := handlers.NewSupplierHandlers(supplierSvc)
	reportHandlers := handlers.NewReportHandlers(reportSvc, tenantSvc, log)
	tenantHandlers := handlers.NewTenantHandlers(tenantSvc)
	schedulerHandlers := handlers.NewSchedulerHandlers(scheduler, log)
	notificationHandlers := handlers.NewNotificationHandlers(deliveryRepo)

	checks := map[string]handlers.Pinger{"redis": nil, "database": nil}
	if cacheSvc != nil {
		checks["redis"] = cacheSvc
	}
	if pool != nil {
		checks["database"] = pool
	}
	healthHandlers := handlers.NewHealthHandlers(version, checks)

	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(echoMiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	registerRoutes(e, routeHandlers{
		health:        healthHandlers,
		auth:          authHandlers,
		dashboard:     dashboardHandlers,
		inventory:     inventoryHandlers,
		orders:        orderHandlers,
		suppliers:     supplierHandlers,
		reports:       reportHandlers,
		tenants:       tenantHandlers,
		scheduler:     schedulerHandlers,
		notifications: notificationHandlers,
	},
		[]echo.MiddlewareFunc{middleware.TenantMiddleware(resolver, log)},
		[]echo.MiddlewareFunc{middleware.AdminJWT(adminSecret), middleware.RequireAdmin},
	)

	errCh := make(chan error, 1)
	go func() {
		log.Info("sheetmart server starting", zap.String("version", version), zap.Int("port", cfg.Port))
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
