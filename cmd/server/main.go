package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "gearflow-backend/internal/api/http"
	"gearflow-backend/internal/cache"
	"gearflow-backend/internal/config"
	"gearflow-backend/internal/logger"
	"gearflow-backend/internal/metrics"
	"gearflow-backend/internal/repository/postgres"
	"gearflow-backend/internal/security"
	"gearflow-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load .env before the config reads the environment
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting GearFlow Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Redis cache for dashboard counts
	dashCache := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer dashCache.Close()
	if err := dashCache.Ping(context.Background()); err != nil {
		// The dashboard recomputes on every miss, so a dead cache degrades
		// rather than breaks.
		logger.Warn("Redis unavailable, dashboard counts will not be cached", "error", err)
	} else {
		logger.Info("Redis connection established", "addr", cfg.Redis.Addr)
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Metrics
	metrics.Register()

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	pushSvc := service.NewPushService(store.PushQueueRepository, cfg.Push.VAPIDPublicKey, cfg.Push.VAPIDPrivateKey, cfg.Push.Subject, cfg.Push.MaxAttempts)
	notifySvc := service.NewNotificationService(store.NotificationRepository, store.ProfileRepository, emailSvc, pushSvc)
	authSvc := service.NewAuthService(store.ProfileRepository, tokenManager)
	dashboardSvc := service.NewDashboardService(store.GearRepository, store.CheckinRepository, dashCache)
	gearSvc := service.NewGearService(store.GearRepository, store.ProfileRepository, dashboardSvc)
	requestSvc := service.NewRequestService(store.RequestRepository, store.GearRepository, store.ProfileRepository, notifySvc, dashboardSvc)
	checkinSvc := service.NewCheckinService(store.CheckinRepository, store.GearRepository, store.ProfileRepository, notifySvc, dashboardSvc)
	bookingSvc := service.NewBookingService(store.BookingRepository, store.RequestRepository, store.ProfileRepository, notifySvc, emailSvc)
	reconcileSvc := service.NewReconcileService(store.GearRepository, store.CheckinRepository, dashboardSvc)
	announcementSvc := service.NewAnnouncementService(store.AnnouncementRepository, store.ProfileRepository, notifySvc)
	profileSvc := service.NewProfileService(store.ProfileRepository)

	// Initialize HTTP handlers and router
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:         httpapi.NewAuthHandler(authSvc),
		Gear:         httpapi.NewGearHandler(gearSvc),
		Request:      httpapi.NewRequestHandler(requestSvc),
		Checkin:      httpapi.NewCheckinHandler(checkinSvc, notifySvc),
		Booking:      httpapi.NewBookingHandler(bookingSvc),
		Notification: httpapi.NewNotificationHandler(notifySvc, pushSvc),
		Profile:      httpapi.NewProfileHandler(profileSvc),
		Admin:        httpapi.NewAdminHandler(notifySvc, reconcileSvc, announcementSvc),
		Dashboard:    httpapi.NewDashboardHandler(dashboardSvc, announcementSvc),
		Middleware:   httpapi.NewMiddleware(tokenManager, store.ProfileRepository),
		DB:           db,
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
