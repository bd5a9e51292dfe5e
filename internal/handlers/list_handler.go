package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"listkeeper/internal/models"
	"listkeeper/internal/services"
)

type ListHandler struct {
	service services.ListService
}

func NewListHandler(service services.ListService) *ListHandler {
	return &ListHandler{service: service}
}

// GET /lists
func (h *ListHandler) GetAll(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	includeArchived := c.Query("include_archived") == "true"
	lists, err := h.service.GetAll(c.Request.Context(), principal, includeArchived)
	if err != nil {
		log.Printf("[list][list][err] %v", err)
		serviceError(c, err)
		return
	}
	if lists == nil {
		lists = []models.List{}
	}
	c.JSON(http.StatusOK, lists)
}

// POST /lists
func (h *ListHandler) Create(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req struct {
		Title string   `json:"title" binding:"required"`
		Color *string  `json:"color"`
		Rank  *float64 `json:"rank"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[list][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.service.Create(c.Request.Context(), principal, models.CreateListInput{
		Title: req.Title,
		Color: req.Color,
		Rank:  req.Rank,
	})
	if err != nil {
		log.Printf("[list][create][err] %v", err)
		serviceError(c, err)
		return
	}
	log.Printf("[list][create][ok] id=%s title=%q", list.ID, list.Title)
	c.JSON(http.StatusCreated, list)
}

// PATCH /lists/:id
func (h *ListHandler) Update(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id := c.Param("id")

	var patch models.ListPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		log.Printf("[list][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.service.Update(c.Request.Context(), principal, id, patch)
	if err != nil {
		log.Printf("[list][update][err] id=%s: %v", id, err)
		serviceError(c, err)
		return
	}
	if list == nil {
		log.Printf("[list][update][404] id=%s", id)
		c.JSON(http.StatusNotFound, gin.H{"error": "list not found"})
		return
	}
	log.Printf("[list][update][ok] id=%s", id)
	c.JSON(http.StatusOK, list)
}

// DELETE /lists/:id
func (h *ListHandler) Delete(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id := c.Param("id")

	count, err := h.service.Delete(c.Request.Context(), principal, id)
	if err != nil {
		log.Printf("[list][delete][err] id=%s: %v", id, err)
		serviceError(c, err)
		return
	}
	log.Printf("[list][delete][ok] id=%s deleted=%d", id, count)
	c.JSON(http.StatusOK, gin.H{"deleted": count})
}
