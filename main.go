package main

import (
	"context"
	"strings"

	"jewelry-backend/controllers"
	"jewelry-backend/database"
	"jewelry-backend/kafka"
	"jewelry-backend/logger"
	awspkg "jewelry-backend/pkg/aws"
	repositories "jewelry-backend/repository"
	"jewelry-backend/routes"
	"jewelry-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		panic(err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	db, err := database.Connect(cfg.PostgresDSN())
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("Migration failed", zap.Error(err))
	}

	repo := repositories.New(db)

	var events services.EventPublisher
	if cfg.KafkaBrokers != "" {
		producer := kafka.NewProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.OrderEventsTopic)
		defer producer.Close()
		events = producer
	}

	var notifier services.PushNotifier
	if cfg.PushSNSTopicArn != "" {
		awsCfg, err := awspkg.LoadAWSConfig(context.Background())
		if err != nil {
			logger.Log.Warn("AWS config load failed, push notifications disabled", zap.Error(err))
		} else {
			notifier = services.NewSNSNotifier(awspkg.NewSNSClient(awsCfg), cfg.PushSNSTopicArn)
		}
	}

	var cache *redis.Client
	if cfg.RedisURL != "" {
		client, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			logger.Log.Warn("Redis unavailable, report caching disabled", zap.Error(err))
		} else {
			cache = client
		}
	}

	orderService := services.NewOrderService(repo, events, notifier)
	reportService := services.NewReportService(repo.Orders, repo.Customers, cache)

	orderController := controllers.NewOrderController(orderService, reportService)
	orderDetailController := controllers.NewOrderDetailController(orderService)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(logger.RequestLogger(), gin.Recovery())

	routes.RegisterRoutes(r, orderController, orderDetailController)

	logger.Log.Info("Starting server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Error starting server", zap.Error(err))
	}
}
