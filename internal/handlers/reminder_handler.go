package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"listkeeper/internal/models"
	"listkeeper/internal/services"
)

type ReminderHandler struct {
	service services.ReminderService
}

func NewReminderHandler(service services.ReminderService) *ReminderHandler {
	return &ReminderHandler{service: service}
}

// GET /reminders
func (h *ReminderHandler) GetAll(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	rems, err := h.service.GetAll(c.Request.Context(), principal)
	if err != nil {
		log.Printf("[reminder][list][err] %v", err)
		serviceError(c, err)
		return
	}
	if rems == nil {
		rems = []models.Reminder{}
	}
	c.JSON(http.StatusOK, rems)
}

// POST /reminders
func (h *ReminderHandler) Create(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req struct {
		TaskID string `json:"task_id" binding:"required"`
		FireAt string `json:"fire_at" binding:"required"` // RFC3339
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[reminder][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fireAt, err := time.Parse(time.RFC3339, req.FireAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fire_at (RFC3339)"})
		return
	}

	rem, err := h.service.Create(c.Request.Context(), principal, models.CreateReminderInput{
		TaskID: req.TaskID,
		FireAt: fireAt,
	})
	if err != nil {
		log.Printf("[reminder][create][err] %v", err)
		serviceError(c, err)
		return
	}
	log.Printf("[reminder][create][ok] id=%s task=%s", rem.ID, rem.TaskID)
	c.JSON(http.StatusCreated, rem)
}

// DELETE /reminders/:id
func (h *ReminderHandler) Delete(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id := c.Param("id")

	count, err := h.service.Delete(c.Request.Context(), principal, id)
	if err != nil {
		log.Printf("[reminder][delete][err] id=%s: %v", id, err)
		serviceError(c, err)
		return
	}
	log.Printf("[reminder][delete][ok] id=%s deleted=%d", id, count)
	c.JSON(http.StatusOK, gin.H{"deleted": count})
}

// POST /reminders/:id/delivered — write-once; repeating it changes nothing.
func (h *ReminderHandler) MarkDelivered(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id := c.Param("id")

	count, err := h.service.MarkDelivered(c.Request.Context(), principal, id)
	if err != nil {
		log.Printf("[reminder][delivered][err] id=%s: %v", id, err)
		serviceError(c, err)
		return
	}
	log.Printf("[reminder][delivered][ok] id=%s updated=%d", id, count)
	c.JSON(http.StatusOK, gin.H{"updated": count})
}
