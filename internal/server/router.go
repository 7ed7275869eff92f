package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/harmonynav-backend/internal/handlers"
	"github.com/yungbote/harmonynav-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler        *handlers.AuthHandler
	AuthMiddleware     *middleware.AuthMiddleware
	RecordHandler      *handlers.RecordHandler
	AnalyticsHandler   *handlers.AnalyticsHandler
	WeightsHandler     *handlers.WeightsHandler
	AchievementHandler *handlers.AchievementHandler
	AllowOrigins       []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("harmonynav-backend"))

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// Protected
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	protected.POST("/records", cfg.RecordHandler.Submit)
	protected.GET("/records", cfg.RecordHandler.List)
	protected.GET("/export", cfg.RecordHandler.Export)
	protected.DELETE("/account", cfg.RecordHandler.DeleteAccount)
	protected.GET("/analytics/dashboard", cfg.AnalyticsHandler.Dashboard)
	protected.GET("/weights/domains", cfg.WeightsHandler.Domains)
	protected.POST("/weights/estimate", cfg.WeightsHandler.Estimate)
	protected.GET("/achievements", cfg.AchievementHandler.List)

	return router
}
