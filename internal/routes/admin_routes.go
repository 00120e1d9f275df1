package routes

import (
	"fitforge_backend/internal/handlers"
	"fitforge_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAdminRoutes(r *gin.RouterGroup, h *handlers.AppHandlers, g Guards) {
	admin := middleware.Guard(g.Authenticated, g.AdminRole, g.SelfOnly)

	r.POST("/classes", admin, h.ClassHandler.Create)

	applications := r.Group("/admin/applications", admin)
	{
		applications.GET("", h.ApplicationHandler.ListPending)
		applications.GET("/:email", h.ApplicationHandler.Detail)
		applications.PATCH("/:id", h.ApplicationHandler.Resolve)
	}
}
