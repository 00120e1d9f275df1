package routes

import (
	"fitforge_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

func SetupPublicRoutes(r *gin.RouterGroup, h *handlers.AppHandlers) {
	r.POST("/users", h.UserHandler.Register)
	r.POST("/subscribers", h.UserHandler.Subscribe)
	r.GET("/classes/:id", h.ClassHandler.Get)
	r.GET("/trainers/:id/slots", h.SlotHandler.List)
}
