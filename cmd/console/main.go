package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/smart-defence/academy-console/pkg/cache"
	"github.com/smart-defence/academy-console/pkg/config"
	"github.com/smart-defence/academy-console/pkg/logger"
	"github.com/smart-defence/academy-console/pkg/middleware/cors"
	"github.com/smart-defence/academy-console/pkg/middleware/requestid"

	"github.com/smart-defence/academy-console/internal/api"
	"github.com/smart-defence/academy-console/internal/form"
	"github.com/smart-defence/academy-console/internal/handler"
	"github.com/smart-defence/academy-console/internal/middleware"
	"github.com/smart-defence/academy-console/internal/render"
	"github.com/smart-defence/academy-console/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("connect redis", zap.Error(err))
	}
	defer redisClient.Close()

	var bundleCache *redis.Client
	if cfg.Cache.Enabled {
		bundleCache = redisClient
	}

	metrics := service.NewMetricsService(prometheus.DefaultRegisterer)

	apiClient := api.New(api.Options{
		BaseURL:        cfg.Platform.BaseURL,
		OrganizationID: cfg.Platform.OrganizationID,
		Timeout:        cfg.Platform.Timeout,
		Logger:         zapLogger,
		Observe:        metrics.ObserveUpstream,
	})

	renderer, err := render.New()
	if err != nil {
		zapLogger.Fatal("init renderer", zap.Error(err))
	}
	validate := form.NewValidator()

	sessions := service.NewSessionService(redisClient, cfg.Session, zapLogger)
	bundles := service.NewBundleService(apiClient, bundleCache, cfg.Cache.BundleTTL, zapLogger)
	portal := service.NewPortalService(apiClient, zapLogger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.Middleware())
	router.Use(logger.GinMiddleware(zapLogger))
	router.Use(cors.New(cfg.CORS))
	router.Use(middleware.Metrics(metrics))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := router.Group("/")
	authed := router.Group("/")
	authed.Use(middleware.SessionAuth(sessions, cfg.Session.CookieName))

	handler.NewAuthHandler(apiClient, sessions, cfg.Session.CookieName, zapLogger).RegisterRoutes(public, authed)

	handler.NewCourseHandler(apiClient, validate, renderer, zapLogger).RegisterRoutes(authed)
	handler.NewStudentHandler(apiClient, bundles, validate, renderer, metrics, zapLogger).RegisterRoutes(authed)

	handler.NewLessonPlanHandler(apiClient, validate, renderer, metrics, zapLogger,
		cfg.AI.Enabled, cfg.AI.PollInterval, cfg.AI.PollTimeout).RegisterRoutes(authed)

	if cfg.Portal.Enabled {
		handler.NewPortalHandler(portal, sessions, renderer, zapLogger).RegisterRoutes(authed)
		handler.NewChatHandler(cfg.Platform.ChatGatewayURL, zapLogger).RegisterRoutes(authed)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	zapLogger.Info("console listening",
		zap.String("addr", addr),
		zap.String("env", cfg.Env),
		zap.String("platform", cfg.Platform.BaseURL))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
