package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "sellbridge/docs"
	"sellbridge/internal/config"
	"sellbridge/internal/domain"
	"sellbridge/internal/handler"
	"sellbridge/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	calcH *handler.CalculationHandler,
	refH *handler.ReferenceHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(&cfg.JWT))

	// Calculation routes
	calculations := protected.Group("/calculations")
	calculations.POST("", calcH.Calculate)
	calculations.GET("", calcH.List)
	calculations.POST("/export", calcH.Export)

	// Reference data routes
	reference := protected.Group("/reference")
	reference.GET("/tariffs/:code", refH.GetTariff)
	reference.GET("/policies", refH.ListPolicies)
	reference.GET("/exchange-rate", refH.GetExchangeRate)
	reference.PUT("/exchange-rate", middleware.RequireRole(domain.RoleAdmin), refH.UpdateExchangeRate)

	return r
}
