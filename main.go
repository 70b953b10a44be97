package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"social-service/internal/auth"
	"social-service/internal/config"
	"social-service/internal/db"
	"social-service/internal/filestorage"
	"social-service/internal/handlers"
	"social-service/internal/logger"
	"social-service/internal/middleware"
	"social-service/internal/observability"
	"social-service/internal/rabbitmq"
	"social-service/internal/repositories"
	"social-service/internal/services"
	"social-service/internal/telemetry"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format == "pretty",
	})
	logger.Info().Str("mode", cfg.Server.Mode).Msg("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Telemetry.OTLPEndpoint, cfg.Telemetry.ServiceName, cfg.Telemetry.Environment)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init tracing")
	}

	database, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to db")
	}
	defer database.Close()

	storage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.Server.UploadsURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init file storage")
	}

	publisher := rabbitmq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	defer publisher.Close()
	logger.Info().
		Str("mode", rabbitmq.PublisherMode(publisher)).
		Str("reason", rabbitmq.PublisherNoopReason(publisher)).
		Msg("audit publisher ready")
	audit := telemetry.NewAuditEmitter(publisher, cfg.AMQP.RoutingKey, cfg.Telemetry.ServiceName, cfg.Telemetry.Environment)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey: cfg.Auth.JWTSecret,
		TokenTTL:  cfg.Auth.TokenTTL,
		Issuer:    cfg.Auth.Issuer,
	})
	sessions := middleware.NewSessionManager(cfg.Auth.SessionKey, cfg.Auth.SessionMaxAge, cfg.Auth.SecureCookie)

	accountRepo := repositories.NewAccountRepo(database)
	postRepo := repositories.NewPostRepo(database)
	friendshipRepo := repositories.NewFriendshipRepo(database)
	messageRepo := repositories.NewMessageRepo(database)
	eventRepo := repositories.NewEventRepo(database)

	accountService := services.NewAccountService(accountRepo, jwtService, audit)
	friendshipService := services.NewFriendshipService(accountRepo, friendshipRepo, messageRepo, audit)
	messagingService := services.NewMessagingService(accountRepo, messageRepo, audit, time.Now)
	postService := services.NewPostService(postRepo, storage, audit)
	eventService := services.NewEventService(eventRepo, audit, time.Now)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// middlewares
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(observability.HTTPMetricsMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		if err := database.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.Static(cfg.Server.UploadsURL, cfg.Server.StoragePath)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)
	limiter.StartCleanup(ctx, cfg.RateLimit.IdleTTL, cfg.RateLimit.IdleTTL)
	authed := handlers.Router{
		Accounts: handlers.NewAccountHandler(accountService, sessions),
		Home:     handlers.NewHomeHandler(messagingService),
		Posts:    handlers.NewPostHandler(postService, storage),
		Friends:  handlers.NewFriendHandler(friendshipService),
		Chat:     handlers.NewChatHandler(messagingService),
		Events:   handlers.NewEventHandler(eventService),
	}.Register(router, middleware.AuthMiddleware(jwtService, sessions), limiter.Handler())
	handlers.RegisterDebugRoutes(authed, audit, !cfg.IsProduction())

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown failed")
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("tracer shutdown failed")
	}
}
