package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"charity-merch-api/internal/cache"
	"charity-merch-api/internal/config"
	"charity-merch-api/internal/controller"
	"charity-merch-api/internal/events"
	"charity-merch-api/internal/middleware"
	"charity-merch-api/internal/repository"
	"charity-merch-api/internal/service"
)

func main() {
	fallback := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		fallback.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer startupCancel()

	// The store connection must be live before any traffic is served.
	client, err := mongo.Connect(startupCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	if err := client.Ping(startupCtx, readpref.Primary()); err != nil {
		logger.Error("mongodb is unreachable", "error", err)
		os.Exit(1)
	}
	db := client.Database(cfg.MongoDBName)

	orderRepo := repository.NewMongoOrderRepository(db)
	productRepo := repository.NewMongoProductRepository(db)
	userRepo := repository.NewMongoUserRepository(db)

	if err := orderRepo.EnsureIndexes(startupCtx); err != nil {
		logger.Error("failed to create order indexes", "error", err)
		os.Exit(1)
	}
	if err := userRepo.EnsureIndexes(startupCtx); err != nil {
		logger.Error("failed to create user indexes", "error", err)
		os.Exit(1)
	}

	cacheProvider, err := cache.NewProvider(cache.Config{
		Provider: cfg.CacheProvider,
		RedisURL: cfg.RedisURL,
	})
	if err != nil {
		logger.Error("failed to initialize cache", "error", err)
		os.Exit(1)
	}

	var publisher events.Publisher = events.NopPublisher{}
	var rabbitConn *amqp091.Connection
	if cfg.RabbitURL != "" {
		rabbitConn, err = amqp091.Dial(cfg.RabbitURL)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		rp, err := events.NewRabbitPublisher(rabbitConn)
		if err != nil {
			logger.Error("failed to set up event publisher", "error", err)
			os.Exit(1)
		}
		publisher = rp
		logger.Info("publishing order events", "exchange", "order_events")
	}

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	orderSvc := service.NewOrderService(orderRepo, productRepo, publisher, logger, cfg.ShippingFee)
	statsSvc := service.NewStatsService(orderRepo, productRepo, userRepo, cacheProvider, logger)

	orderCtl := controller.NewOrderController(orderSvc)
	statsCtl := controller.NewStatsController(statsSvc)
	authCtl := controller.NewAuthController(authSvc)

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"name": "charity-merch-api", "status": "running"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().UTC()})
	})

	api := r.Group("/api")
	api.POST("/auth/register", authCtl.Register)
	api.POST("/auth/login", authCtl.Login)
	api.GET("/statistics/public", statsCtl.Public)

	authed := api.Group("/")
	authed.Use(middleware.Auth(authSvc))
	authed.GET("/auth/me", authCtl.Me)

	orders := authed.Group("/orders")
	orders.GET("/my-orders", orderCtl.MyOrders)
	orders.POST("", orderCtl.Create)
	orders.GET("/:id", orderCtl.Get)
	orders.PUT("/:id/pay", orderCtl.AttachPayment)
	orders.POST("/:id/cancel", orderCtl.Cancel)

	adminOrders := orders.Group("")
	adminOrders.Use(middleware.AdminOnly())
	adminOrders.GET("", orderCtl.ListAll)
	adminOrders.PUT("/:id", orderCtl.UpdateStatus)
	adminOrders.DELETE("/:id", orderCtl.Delete)

	stats := authed.Group("/statistics")
	stats.Use(middleware.AdminOnly())
	stats.GET("/summary", statsCtl.Summary)
	stats.GET("/daily", statsCtl.Daily)
	stats.GET("/top-products", statsCtl.TopProducts)
	stats.GET("/sizes", statsCtl.Sizes)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()
	logger.Info("charity merch api listening", "port", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
		}
	case <-quit:
		logger.Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shut down", "error", err)
		}
		shutdownCancel()
	}

	if rabbitConn != nil {
		_ = rabbitConn.Close()
	}
	_ = cacheProvider.Close()
	disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
	_ = client.Disconnect(disconnectCtx)
	disconnectCancel()
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	}
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: cfg.LogLevel}))
}
