package handlers

import (
	"net/http"

	"fitforge_backend/internal/services"
	"fitforge_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

// File submits the caller's trainer application.
func (h *ApplicationHandler) File(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.FileApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.applicationService.FileApplication(h.GetDB(c), identity.Email, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// MyApplications lists the caller's applications with status and feedback.
func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	apps, err := h.applicationService.GetApplicationStatus(h.GetDB(c), identity.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ApplicationHandler) ListPending(c *gin.Context) {
	apps, err := h.applicationService.ListPending(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ApplicationHandler) Detail(c *gin.Context) {
	detail, err := h.applicationService.GetApplicationDetail(h.GetDB(c), c.Param("email"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *ApplicationHandler) Resolve(c *gin.Context) {
	var req dto.ResolveApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.applicationService.ResolveApplication(h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
