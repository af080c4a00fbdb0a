package core

import (
	"net/http"
	"time"

	"github.com/anoixa/photo-gallery/api/common"
	handlerPhotos "github.com/anoixa/photo-gallery/api/handler/photos"
	"github.com/anoixa/photo-gallery/api/middleware"
	"github.com/anoixa/photo-gallery/cache"
	"github.com/anoixa/photo-gallery/config"
	"github.com/anoixa/photo-gallery/database"
	"github.com/anoixa/photo-gallery/internal/services/photo"
	"github.com/anoixa/photo-gallery/storage"
	"github.com/gin-gonic/gin"
)

// multipartOverhead 上传请求体在文件上限之外允许的表单开销
const multipartOverhead = 1 << 20

// RouterDependencies 路由注册依赖
type RouterDependencies struct {
	Config            *config.Config
	DB                database.Provider
	StorageFactory    *storage.Factory
	CacheFactory      *cache.Factory
	Ingest            *photo.IngestService
	Query             *photo.QueryService
	Owners            photo.OwnerResolver
	MaxUploadBytes    int64
	UploadLimiter     *middleware.IPRateLimiter
	UploadConcurrency *middleware.ConcurrencyLimiter
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(router *gin.Engine, deps *RouterDependencies) {
	registerBasicRoutes(router, deps)
	registerPhotoRoutes(router, deps)
}

// registerBasicRoutes 注册基础路由
func registerBasicRoutes(router *gin.Engine, deps *RouterDependencies) {
	router.GET("/ping", func(context *gin.Context) {
		context.JSON(http.StatusOK, gin.H{"pong": "it worked!"})
	})

	router.GET("/health", func(context *gin.Context) {
		checks := gin.H{
			"database": checkDatabaseHealth(deps.DB),
			"cache":    checkCacheHealth(deps.CacheFactory),
			"storage":  checkStorageHealth(context.Request.Context(), deps.StorageFactory),
		}
		httpStatus := http.StatusOK
		for _, result := range checks {
			if result != "ok" {
				httpStatus = http.StatusServiceUnavailable
				break
			}
		}
		context.JSON(httpStatus, gin.H{
			"status":  http.StatusText(httpStatus),
			"uptime":  time.Since(startTime).Round(time.Second).String(),
			"version": config.Version,
			"checks":  checks,
		})
	})

	router.GET("/version", func(context *gin.Context) {
		common.RespondSuccess(context, gin.H{
			"version": config.Version,
			"commit":  config.CommitHash,
		})
	})

	router.GET("/metrics", func(context *gin.Context) {
		context.JSON(http.StatusOK, middleware.GetMetrics())
	})
}

// registerPhotoRoutes 注册照片相关路由
func registerPhotoRoutes(router *gin.Engine, deps *RouterDependencies) {
	photoHandler := handlerPhotos.NewHandler(deps.Ingest, deps.Query, deps.Owners, deps.StorageFactory.GetDefault())

	uploadChain := []gin.HandlerFunc{}
	if deps.UploadConcurrency != nil {
		uploadChain = append(uploadChain, deps.UploadConcurrency.Middleware())
	}
	if deps.UploadLimiter != nil {
		uploadChain = append(uploadChain, deps.UploadLimiter.Middleware())
	}
	uploadChain = append(uploadChain,
		middleware.MaxBytesReader(deps.MaxUploadBytes+multipartOverhead),
		photoHandler.UploadPhoto,
	)

	photosGroup := router.Group("/photos")
	photosGroup.Use(func(context *gin.Context) {
		context.Header("Cache-Control", "no-store")
		context.Next()
	})
	{
		photosGroup.POST("", uploadChain...)         // POST /photos
		photosGroup.GET("", photoHandler.ListPhotos) // GET /photos
	}

	prefix := "/uploads/photos"
	if deps.Config != nil && deps.Config.StaticURLPrefix != "" {
		prefix = deps.Config.StaticURLPrefix
	}
	staticGroup := router.Group(prefix)
	{
		staticGroup.GET("/:filename", photoHandler.ServeFile)  // GET /uploads/photos/{filename}
		staticGroup.HEAD("/:filename", photoHandler.ServeFile) // HEAD /uploads/photos/{filename}
	}
}
