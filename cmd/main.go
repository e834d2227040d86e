package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-employee-service/config"
	"github.com/oksasatya/go-employee-service/internal/application"
	"github.com/oksasatya/go-employee-service/internal/domain/messaging"
	msginfra "github.com/oksasatya/go-employee-service/internal/infrastructure/messaging"
	pginfra "github.com/oksasatya/go-employee-service/internal/infrastructure/postgres"
	"github.com/oksasatya/go-employee-service/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-employee-service/internal/interface/http"
	"github.com/oksasatya/go-employee-service/internal/interface/middleware"
	"github.com/oksasatya/go-employee-service/internal/router"
	"github.com/oksasatya/go-employee-service/pkg/helpers"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	// Postgres
	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	// Redis (rate limiting)
	rdb := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	// RabbitMQ
	var publisher messaging.EventPublisher
	if cfg.RabbitMQURL != "" {
		rp, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmployeeUpdatesQueue, cfg.RabbitMQEmployeeEventsQueue)
		if err != nil {
			logger.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer rp.Close()
		publisher = msginfra.NewEmployeeEventPublisher(rp)
		logger.WithField("queue", cfg.RabbitMQEmployeeUpdatesQueue).Info("employee events enabled")
	} else {
		logger.Warn("RABBITMQ_URL empty; employee events disabled")
	}

	// Elasticsearch (optional search)
	var searcher handlers.EmployeeSearcher
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := search.NewClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch client init failed; search disabled")
		} else {
			searcher = search.NewEmployeeIndex(es, cfg.ESEmployeesIndex)
		}
	}

	repo := pginfra.NewEmployeeRepository(pool)
	svc := application.NewService(repo, publisher, logger, cfg.EventPublishTimeout)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(handlers.Recovery(logger))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.Metrics())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	reg := router.NewRegistry(r)
	router.InitModules(reg, router.Deps{
		Config:    cfg,
		Logger:    logger,
		Redis:     rdb,
		Employees: svc,
		Searcher:  searcher,
		DB:        svc,
	})
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
