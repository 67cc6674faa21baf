package handler

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"gamevault/backend/internal/auth"
	"gamevault/backend/internal/hub"
	"gamevault/backend/internal/metrics"
	"gamevault/backend/internal/middleware"
)

// RouterDeps are the collaborators mounted on the router.
type RouterDeps struct {
	Games     GameService
	Lookups   LookupService
	Syncer    LibrarySyncer
	Hub       *hub.Hub
	Checks    map[string]Checker
	Logger    *slog.Logger
	JWTSecret string
	Origins   []string
	// Tracing is prepended to the middleware chain when non-nil.
	Tracing gin.HandlerFunc
}

// NewRouter builds the HTTP API.
func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if deps.Tracing != nil {
		router.Use(deps.Tracing)
	}
	router.Use(middleware.RequestID(), middleware.RequestLogger(logger), metrics.Middleware())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = deps.Origins
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	corsCfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	corsCfg.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsCfg))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	NewHealthHandler(deps.Checks).RegisterRoutes(router)

	apiV1 := router.Group("/api/v1")
	if deps.Hub != nil {
		// the event stream must not be buffered by gzip
		NewEventsHandler(deps.Hub, deps.Origins).RegisterRoutes(apiV1)
	}

	compressed := apiV1.Group("", gzip.Gzip(gzip.DefaultCompression))
	{
		if deps.Games != nil {
			NewGameHandler(deps.Games, logger).RegisterRoutes(compressed)
		}
		if deps.Lookups != nil {
			NewLookupHandler(deps.Lookups, logger).RegisterRoutes(compressed)
		}

		if deps.Syncer != nil {
			if deps.JWTSecret == "" {
				logger.Warn("admin_routes_disabled", "reason", "JWT_SECRET is empty")
			} else {
				adminRoutes := compressed.Group("/admin")
				adminRoutes.Use(auth.AdminMiddleware(deps.JWTSecret))
				NewSyncHandler(deps.Syncer, logger).RegisterRoutes(adminRoutes)
			}
		}
	}

	return router
}
