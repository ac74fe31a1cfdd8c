package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"donerci/internal/cart"
	"donerci/internal/config"
	"donerci/internal/database"
	"donerci/internal/events"
	"donerci/internal/handlers"
	"donerci/internal/logging"
	"donerci/internal/migrations"
	"donerci/internal/pricing"
	"donerci/internal/redis"
	"donerci/internal/repository"
	"donerci/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL, !cfg.IsProduction())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := migrations.RunMigrations(db, migrations.Options{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		Logger:        logger,
	}); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	// Cart snapshots live in Redis when configured, in process otherwise
	var store cart.SnapshotStore = cart.NewMemoryStore()
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.Initialize(cfg.RedisURL, cfg.CartTTL)
		if err != nil {
			logger.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		store = redisClient
	} else {
		logger.Warn("REDIS_URL not set, carts are kept in memory")
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.KafkaBrokers != "" {
		kafka, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaActivityTopic, logger)
		if err != nil {
			logger.Fatal("failed to connect to Kafka", zap.Error(err))
		}
		publisher = kafka
	}
	defer publisher.Close()

	calc := pricing.NewCalculator(cfg.DeliveryFee)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)
	contactRepo := repository.NewContactRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Initialize services
	activityService := services.NewActivityService(activityRepo, publisher, logger)
	orderService := services.NewOrderService(db, orderRepo, orderItemRepo, menuRepo, activityService, calc, logger)
	svc := handlers.Services{
		Contacts:        services.NewContactService(contactRepo),
		Catalog:         services.NewCatalogService(menuRepo, restaurantRepo, activityService, logger),
		Orders:          orderService,
		Carts:           services.NewCartService(store, menuRepo, orderService, calc, logger),
		Restaurants:     services.NewRestaurantService(restaurantRepo, activityService, logger),
		Users:           services.NewUserService(userRepo, activityService, logger),
		Activities:      activityService,
		Stats:           services.NewStatsService(userRepo, restaurantRepo, menuRepo, orderRepo),
		Recommendations: services.NewRecommendationService(restaurantRepo),
	}

	router := handlers.NewRouter(svc, handlers.RouterOptions{
		Logger:           logger,
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		SessionCookieTTL: int(cfg.CartTTL / time.Second),
		HealthCheck: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			if err := sqlDB.PingContext(ctx); err != nil {
				return err
			}
			if redisClient != nil {
				return redisClient.Ping(ctx)
			}
			return nil
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
