package routes

import (
	"fitforge_backend/internal/handlers"
	"fitforge_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Guards are the capabilities endpoints are composed from.
type Guards struct {
	Authenticated middleware.Capability
	AdminRole     middleware.Capability
	TrainerRole   middleware.Capability
	SelfOnly      middleware.Capability
}

// RegisterRoutes mounts the HTTP API under /api/v1 and /health at the root.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers, guards Guards) {
	ginRouter.GET("/health", appHandlers.HealthHandler.Health)

	api := ginRouter.Group("/api/v1")
	{
		SetupPublicRoutes(api, appHandlers)
		SetupMemberRoutes(api, appHandlers, guards)
		SetupTrainerRoutes(api, appHandlers, guards)
		SetupAdminRoutes(api, appHandlers, guards)
	}
}
