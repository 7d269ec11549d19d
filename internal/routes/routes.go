package routes

import (
	"gebeya_backend/internal/handlers"
	"gebeya_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers every HTTP route.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	apiLimiter *middleware.RateLimiter,
	authLimiter *middleware.RateLimiter,
) {
	ginRouter.GET("/metrics", middleware.MetricsHandler())
	appHandlers.HealthHandler.RegisterRoutes(ginRouter)

	api := ginRouter.Group("/api/v1")
	api.Use(apiLimiter.Middleware())
	{
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.ListingHandler.RegisterRoutes(api)
		appHandlers.CategoryHandler.RegisterRoutes(api)
		appHandlers.ChatHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
		appHandlers.PlanHandler.RegisterRoutes(api)
		appHandlers.PaymentHandler.RegisterRoutes(api)
		appHandlers.VerificationHandler.RegisterRoutes(api)
		appHandlers.ContentHandler.RegisterRoutes(api)
		appHandlers.AdminHandler.RegisterRoutes(api)
	}

	// Credential endpoints get a tighter limit than the rest of the API.
	authAPI := ginRouter.Group("/api/v1")
	authAPI.Use(authLimiter.Middleware())
	{
		appHandlers.AuthHandler.RegisterRoutes(authAPI)
	}
}
