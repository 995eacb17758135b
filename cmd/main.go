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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/medisync/user-service/config"
	"github.com/medisync/user-service/internal/application"
	"github.com/medisync/user-service/internal/infrastructure/mongodb"
	handlers "github.com/medisync/user-service/internal/interface/http"
	"github.com/medisync/user-service/internal/interface/middleware"
	"github.com/medisync/user-service/internal/router"
	"github.com/medisync/user-service/internal/router/modules"
	"github.com/medisync/user-service/pkg/helpers"
	"github.com/medisync/user-service/pkg/validation"

	"github.com/elastic/go-elasticsearch/v8"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// MongoDB
	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDatabase)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	// Redis
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	// RabbitMQ publisher for auth audit events
	var pub *helpers.RabbitPublisher
	if cfg.RabbitMQURL != "" {
		pub, err = helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQAuditQueue)
		if err != nil {
			log.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer pub.Close()
	} else {
		logger.Warn("RABBITMQ_URL not set, auth audit events disabled")
	}

	// Elasticsearch for user search
	var es *elasticsearch.Client
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err = helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			log.Fatalf("failed to init elasticsearch client: %v", err)
		}
	} else {
		logger.Warn("ELASTICSEARCH_ADDRS not set, user search disabled")
	}

	// JWT
	jwtManager := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	// Repositories
	roleRepo := mongodb.NewRoleRepository(db)
	userRepo := mongodb.NewUserRepository(db)

	// Services
	roleSvc := application.NewRoleService(roleRepo, logger)
	userSvc := application.NewUserService(userRepo, roleSvc, logger, es, cfg.ESUsersIndex)
	authSvc := application.NewAuthService(userSvc, jwtManager, pub, logger)

	// Handlers
	roleHandler := handlers.NewRoleHandler(roleSvc, logger)
	userHandler := handlers.NewUserHandler(userSvc, logger)
	authHandler := handlers.NewAuthHandler(authSvc, logger)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	reg := router.NewRegistry(r, "/api/v1")
	reg.Add(modules.NewAuthModule(authHandler, rdb))
	reg.Add(modules.NewRoleModule(roleHandler))
	reg.Add(modules.NewUserModule(userHandler))
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
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
