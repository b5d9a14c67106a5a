package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/autoconnect-transport/service-admin/internal/application"
	"github.com/autoconnect-transport/service-admin/internal/auth"
	"github.com/autoconnect-transport/service-admin/internal/config"
	"github.com/autoconnect-transport/service-admin/internal/database"
	bookingDomain "github.com/autoconnect-transport/service-admin/internal/domain/booking"
	"github.com/autoconnect-transport/service-admin/internal/email"
	bookingEvents "github.com/autoconnect-transport/service-admin/internal/events"
	"github.com/autoconnect-transport/service-admin/internal/handler"
	"github.com/autoconnect-transport/service-admin/internal/kafka"
	"github.com/autoconnect-transport/service-admin/internal/logger"
	"github.com/autoconnect-transport/service-admin/internal/middleware"
	"github.com/autoconnect-transport/service-admin/internal/otp"
	"github.com/autoconnect-transport/service-admin/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-admin")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-admin",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DB.DSN(), log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.BookingModel{},
			&repository.CarModel{},
			&repository.AdminModel{},
			&repository.AuditLogModel{},
			&repository.NotificationModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DB.URL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize email sender
	emailSender := email.NewSender(cfg.SMTP, log)

	// Initialize OTP store
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var otpStore otp.Store
	if cfg.OTP.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.OTP.RedisAddr})
		defer func() { _ = redisClient.Close() }()
		otpStore = otp.NewRedisStore(redisClient)
		log.Info("using redis OTP store", zap.String("addr", cfg.OTP.RedisAddr))
	} else {
		memStore := otp.NewMemoryStore()
		go otp.StartSweeper(ctx, memStore, cfg.OTP.SweepInterval)
		otpStore = memStore
	}

	// Initialize repositories
	bookingRepo := repository.NewGormBookingRepository(db)
	carRepo := repository.NewGormCarRepository(db)
	adminRepo := repository.NewGormAdminRepository(db)
	auditRepo := repository.NewGormAuditRepository(db)
	notificationRepo := repository.NewGormNotificationRepository(db)

	// Initialize booking lifecycle and dispatcher
	lifecycle := bookingDomain.NewLifecycle(bookingDomain.NewTieredCancellationPolicy())
	dispatcher := application.NewSideEffectDispatcher(
		bookingRepo,
		auditRepo,
		notificationRepo,
		emailSender,
		log,
	)

	// Initialize application services
	bookingService := application.NewBookingService(
		bookingRepo,
		lifecycle,
		dispatcher,
		kafkaProducer,
		log,
	)
	invoiceService := application.NewInvoiceService(bookingRepo, carRepo, emailSender, log)
	fleetService := application.NewFleetService(carRepo, auditRepo, log)
	authService := application.NewAuthService(
		adminRepo,
		otpStore,
		emailSender,
		jwtManager,
		cfg.OTP.TTL,
		log,
	)

	// Initialize and start booking event consumer in a goroutine
	groupID := cfg.Kafka.GroupPrefix + "admin-service"
	bookingConsumer := bookingEvents.NewBookingEventConsumer(
		cfg.Kafka.Brokers,
		groupID,
		invoiceService,
		log,
	)
	defer func() { _ = bookingConsumer.Close() }()

	go func() {
		log.Info("starting booking event consumer")
		if err := bookingConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("booking event consumer error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	fleetHandler := handler.NewFleetHandler(fleetService)
	authHandler := handler.NewAuthHandler(authService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())

	// Register routes
	bookingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	fleetHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	authHandler.RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-admin...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-admin stopped")
}
