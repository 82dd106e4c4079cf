package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/studymind/studymind-backend/internal/http/handlers"
	"github.com/studymind/studymind-backend/internal/http/middleware"
	"github.com/studymind/studymind-backend/internal/platform/envutil"
	"github.com/studymind/studymind-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log             *logger.Logger
	AuthMiddleware  *middleware.AuthMiddleware
	DocumentHandler *handlers.DocumentHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLog(cfg.Log))
	if envutil.Bool("OTEL_ENABLED", false) {
		router.Use(otelgin.Middleware(envutil.Str("OTEL_SERVICE_NAME", "studymind-backend")))
	}

	router.GET("/healthcheck", handlers.HealthCheck)

	documents := router.Group("/api/documents")
	documents.Use(cfg.AuthMiddleware.RequireAuth())
	{
		documents.GET("/", cfg.DocumentHandler.List)
		documents.GET("/:id", cfg.DocumentHandler.GetDetail)
		documents.DELETE("/:id", cfg.DocumentHandler.Delete)
	}

	return router
}
