package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"lead-voucher-backend/docs"
	"lead-voucher-backend/internal/common/config"
	"lead-voucher-backend/internal/common/logger"
	"lead-voucher-backend/internal/common/middleware"
	"lead-voucher-backend/internal/common/validation"
	leadHTTP "lead-voucher-backend/internal/features/lead/delivery/http"
	"lead-voucher-backend/internal/features/lead/repository"
	fileLog "lead-voucher-backend/internal/features/lead/repository/file"
	redisLog "lead-voucher-backend/internal/features/lead/repository/redis"
	leadService "lead-voucher-backend/internal/features/lead/service"
	"lead-voucher-backend/internal/observability/metrics"
	"lead-voucher-backend/internal/platform/httpclient"
	"lead-voucher-backend/internal/platform/issuance"
	"lead-voucher-backend/internal/platform/redis"
	"lead-voucher-backend/internal/platform/relay"
)

// @title           Lead Voucher API
// @version         1.0
// @description     Lead capture form backend: records the lead and issues a gift voucher coupon.

// @host      localhost:8080
// @BasePath  /api/v1

// @tag.name leads
// @tag.description Lead submission, inline field validation and interest categories

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.ServiceName, cfg.Debug)
	appLogger := log.Logger

	appLogger.Info().
		Str("version", "1.0.0").
		Bool("debug", cfg.Debug).
		Bool("redis", cfg.Redis.Enabled).
		Bool("relay", cfg.Relay.Complete()).
		Msg("Starting Lead Voucher Backend")

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err = redis.OpenFromConfig(ctx, cfg)
		cancel()
		if err != nil {
			appLogger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		appLogger.Info().Str("addr", cfg.RedisAddr()).Msg("Redis connection established")
	}

	// Submission log
	var recorder relay.Recorder = repository.NopLog{}
	var entries repository.EntryReader
	var submissionLog *repository.AsyncLog
	if cfg.SubmissionLog.Enabled {
		fileStore := fileLog.NewStore(cfg.SubmissionLog.Path)
		stores := repository.MultiStore{fileStore}
		entries = fileStore
		if redisClient != nil {
			redisStore := redisLog.NewStore(redisClient, cfg.SubmissionLog.RedisMaxLen)
			stores = append(stores, redisStore)
			entries = redisStore
		}
		submissionLog = repository.NewAsyncLog(stores, cfg.SubmissionLog.Buffer, appLogger)
		recorder = submissionLog
	}

	// Outbound clients
	httpClient := httpclient.New(cfg.HTTPClientTimeout)
	relayClient := relay.WithRecorder(relay.New(cfg.Relay, httpClient, appLogger), recorder)
	issuanceClient := issuance.NewClient(cfg.Issuance.URL, cfg.Issuance.APIToken, httpClient, appLogger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	submissionMetrics := metrics.NewSubmissionMetrics(registry)

	formRules := validation.Rules{RequireInterest: cfg.Lead.RequireInterest}

	leadSvc := leadService.NewLeadService(
		relayClient,
		issuanceClient,
		leadService.IssuanceSettings{
			ChannelID: cfg.Issuance.ChannelID,
			RequestID: cfg.Issuance.RequestID,
			ProgramID: cfg.Issuance.ProgramID,
		},
		formRules,
		submissionMetrics,
		appLogger,
	)

	appLogger.Info().Msg("Services initialized")

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// client IPs come from X-Forwarded-For only behind these proxies
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		appLogger.Fatal().Err(err).Msg("Invalid TRUSTED_PROXIES")
	}
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(appLogger, "/health", "/live", "/ready", "/metrics"))
	router.Use(middleware.ErrorHandler(appLogger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Accept", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Retry-After"}
	router.Use(cors.New(corsConfig))

	leadHandler := leadHTTP.NewLeadHandler(leadSvc, appLogger).WithRules(formRules)
	if cfg.Debug && entries != nil {
		leadHandler.WithEntries(entries)
	}

	routeMW := leadHTTP.RouteMiddleware{}
	if cfg.RateLimit.Requests > 0 {
		var limiter middleware.Limiter = middleware.NewMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		if redisClient != nil {
			limiter = middleware.NewRedisLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window)
		}
		routeMW.Submit = append(routeMW.Submit, middleware.RateLimit(limiter, cfg.RateLimit.Window, appLogger))
	}
	if redisClient != nil {
		routeMW.Interests = append(routeMW.Interests, middleware.RedisCache(redisClient, cfg.Redis.CacheTTL, appLogger))
	}

	setupRoutes(router, cfg, leadHandler, routeMW, registry, redisClient, appLogger)

	appLogger.Info().Msg("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*cfg.HTTPClientTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error().Err(err).Msg("Server forced to shutdown")
	}

	// flush pending log entries before Redis closes
	if submissionLog != nil {
		submissionLog.Close()
	}

	appLogger.Info().Msg("Server exited")
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	leadHandler *leadHTTP.LeadHandler,
	routeMW leadHTTP.RouteMiddleware,
	registry *prometheus.Registry,
	redisClient *redis.Client,
	appLogger zerolog.Logger,
) {
	router.NoRoute(middleware.NotFound(appLogger))

	v1 := router.Group("/api/v1")
	leadHandler.RegisterRoutes(v1, routeMW)

	if cfg.Debug {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.Server.Port)
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   cfg.ServiceName,
		})
	})

	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if redisClient != nil {
			if err := redisClient.HealthCheck(ctx); err != nil {
				log.Warn().Err(err).Msg("Readiness check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unready",
					"error":   "redis unavailable",
					"details": err.Error(),
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   cfg.ServiceName,
		})
	})
}
