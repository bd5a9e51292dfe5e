package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"listkeeper/internal/models"
	"listkeeper/internal/services"
)

type ProfileHandler struct {
	service services.ProfileService
}

func NewProfileHandler(service services.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// GET /me
func (h *ProfileHandler) Get(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	profile, err := h.service.Ensure(c.Request.Context(), principal)
	if err != nil {
		log.Printf("[profile][get][err] %v", err)
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PATCH /me
func (h *ProfileHandler) Update(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var patch models.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		log.Printf("[profile][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.service.Update(c.Request.Context(), principal, patch)
	if err != nil {
		log.Printf("[profile][update][err] %v", err)
		serviceError(c, err)
		return
	}
	log.Printf("[profile][update][ok] principal=%s", principal)
	c.JSON(http.StatusOK, profile)
}

// DELETE /me — identity-lifecycle hook: removes everything the caller owns.
func (h *ProfileHandler) Purge(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	if err := h.service.Purge(c.Request.Context(), principal); err != nil {
		log.Printf("[profile][purge][err] %v", err)
		serviceError(c, err)
		return
	}
	log.Printf("[profile][purge][ok] principal=%s", principal)
	c.Status(http.StatusNoContent)
}
