package routes

import (
	"fitforge_backend/internal/handlers"
	"fitforge_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupMemberRoutes registers endpoints open to any authenticated user.
// Mutations also require ?email= to name the caller.
func SetupMemberRoutes(r *gin.RouterGroup, h *handlers.AppHandlers, g Guards) {
	r.GET("/users/:email", middleware.Guard(g.Authenticated), h.UserHandler.GetUser)

	self := middleware.Guard(g.Authenticated, g.SelfOnly)

	applications := r.Group("/applications", self)
	{
		applications.POST("", h.ApplicationHandler.File)
		applications.GET("/me", h.ApplicationHandler.MyApplications)
	}

	bookings := r.Group("/bookings", self)
	{
		bookings.POST("", h.SlotHandler.Book)
		bookings.GET("", h.SlotHandler.MyBookings)
	}
}
