package core

import (
	"net/http"
	"time"

	"github.com/anoixa/photo-gallery/api/middleware"
	"github.com/anoixa/photo-gallery/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// NewRouter 创建 gin 引擎并注册中间件与路由，返回的函数用于释放后台资源
func NewRouter(cfg *config.Config, deps *RouterDependencies) (*gin.Engine, func()) {
	router := gin.New()

	// 仅在开发版本时启用 gin 日志
	if config.IsDevelopment() {
		router.Use(gin.Logger())
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router.Use(gin.Recovery())

	if origins := cfg.CorsOrigins(); len(origins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "HEAD", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	_ = router.SetTrustedProxies(nil)

	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())

	cleanup := func() {}
	if cfg.RateLimitUploadRPS > 0 {
		uploadLimiter := middleware.NewIPRateLimiter(cfg.RateLimitUploadRPS, cfg.RateLimitUploadBurst, 10*time.Minute)
		deps.UploadLimiter = uploadLimiter
		cleanup = uploadLimiter.StopCleanup
	}
	if deps.UploadConcurrency == nil {
		deps.UploadConcurrency = middleware.NewConcurrencyLimiter(int64(cfg.UploadMaxConcurrency))
	}
	if deps.MaxUploadBytes <= 0 {
		deps.MaxUploadBytes = cfg.UploadMaxBytes()
	}
	if deps.Config == nil {
		deps.Config = cfg
	}

	RegisterRoutes(router, deps)

	return router, cleanup
}

// StartServer 创建 http.Server
func StartServer(cfg *config.Config, deps *RouterDependencies) (*http.Server, func()) {
	router, cleanup := NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return srv, cleanup
}
