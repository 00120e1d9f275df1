package handlers

import (
	"net/http"

	"fitforge_backend/internal/services"
	"fitforge_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ClassHandler struct {
	*BaseHandler
	classService services.ClassService
}

func NewClassHandler(base *BaseHandler, classService services.ClassService) *ClassHandler {
	return &ClassHandler{
		BaseHandler:  base,
		classService: classService,
	}
}

func (h *ClassHandler) Create(c *gin.Context) {
	var req dto.CreateClassRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	class, err := h.classService.CreateClass(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, class)
}

func (h *ClassHandler) Get(c *gin.Context) {
	class, err := h.classService.GetClass(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}
