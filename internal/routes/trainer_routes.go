package routes

import (
	"fitforge_backend/internal/handlers"
	"fitforge_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTrainerRoutes(r *gin.RouterGroup, h *handlers.AppHandlers, g Guards) {
	trainers := r.Group("/trainers/:id", middleware.Guard(g.Authenticated, g.TrainerRole, g.SelfOnly))
	{
		trainers.POST("/slots", h.SlotHandler.Add)
		trainers.DELETE("/slots/:slotId", h.SlotHandler.Remove)
		trainers.GET("/payments", h.SlotHandler.TrainerPayments)
	}
}
