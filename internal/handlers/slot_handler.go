package handlers

import (
	"net/http"

	"fitforge_backend/internal/services"
	"fitforge_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	*BaseHandler
	slotService services.SlotService
}

func NewSlotHandler(base *BaseHandler, slotService services.SlotService) *SlotHandler {
	return &SlotHandler{
		BaseHandler: base,
		slotService: slotService,
	}
}

func (h *SlotHandler) List(c *gin.Context) {
	slots := make([]dto.SlotView, 0)
	for view, err := range h.slotService.ListSlots(h.GetDB(c), c.Param("id")) {
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		slots = append(slots, view)
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

func (h *SlotHandler) Add(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.AddSlotRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	slot, err := h.slotService.AddSlot(h.GetDB(c), identity.Email, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, slot)
}

func (h *SlotHandler) Remove(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	if err := h.slotService.RemoveSlot(h.GetDB(c), identity.Email, c.Param("id"), c.Param("slotId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slot removed"})
}

func (h *SlotHandler) TrainerPayments(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	payments, err := h.slotService.ListTrainerPayments(h.GetDB(c), identity.Email, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

func (h *SlotHandler) Book(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.BookSlotRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	payment, err := h.slotService.BookSlot(h.GetDB(c), identity.Email, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *SlotHandler) MyBookings(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	payments, err := h.slotService.ListMemberBookings(h.GetDB(c), identity.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": payments})
}
