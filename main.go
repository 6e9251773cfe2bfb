package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/clauselens/clauselens/backend/go-services/handlers"
	"github.com/clauselens/clauselens/backend/go-services/internal/auth"
	"github.com/clauselens/clauselens/backend/go-services/internal/config"
	"github.com/clauselens/clauselens/backend/go-services/internal/contracts"
	"github.com/clauselens/clauselens/backend/go-services/internal/session"
	"github.com/clauselens/clauselens/backend/go-services/pkg/logger"
	"github.com/clauselens/clauselens/backend/go-services/pkg/metrics"
	"github.com/clauselens/clauselens/backend/go-services/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: redis=%v session_backend=%s", cfg.Redis.Host != "", cfg.Session.Backend)

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the blacklist and rate-limiter can use it when configured
	var importedRedis *redis.Client
	if cfg.Redis.Host != "" {
		importedRedis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := importedRedis.Ping(context.Background()).Err(); err == nil {
			session.SetBlacklistClient(importedRedis)
			logger.Infof("Connected to Redis for blacklist/rate-limit features: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		} else {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			importedRedis = nil
		}
	}

	// Optional global rate limiter (per-user when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && importedRedis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(importedRedis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Credential slot backend. Memory is the default; file survives restarts;
	// Redis shares the slot across replicas.
	var store session.Store
	switch cfg.Session.Backend {
	case "file":
		store = session.NewFileStore(cfg.Session.Path)
	case "redis":
		if importedRedis == nil {
			logger.Fatalf("SESSION_BACKEND=redis but Redis is not reachable")
		}
		store = session.NewRedisStore(importedRedis, "")
	default:
		store = session.NewMemoryStore()
	}

	authSvc := auth.NewService(cfg, store)
	// The HTTP path sources the credential from each request's bearer token.
	contractsSvc := contracts.NewService(contracts.ContextTokenSource{}, cfg.Latency.Contracts)

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint — return 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["session_store"] = store != nil

		// Redis readiness only matters when a Redis-backed feature is configured
		if cfg.Redis.Host != "" && (cfg.RateLimit.UseRedis || cfg.Session.Backend == "redis") {
			deps["redis"] = importedRedis != nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": fmt.Sprintf("%s", time.Since(startTime))})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": fmt.Sprintf("%s", time.Since(startTime))})
	})

	// Register handlers
	ah := handlers.NewAuthHandler(cfg, authSvc, store)
	ah.Register(r.Group("/"))
	ch := handlers.NewContractsHandler(contractsSvc)
	ch.Register(r.Group("/"))
	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Config summary: redis=%v jwt_secret_set=%v auth_latency=%s contracts_latency=%s",
		cfg.Redis.Host != "", cfg.JWT.Secret != "", cfg.Latency.Auth, cfg.Latency.Contracts)
	logger.Infof("Starting clauselens demo service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
