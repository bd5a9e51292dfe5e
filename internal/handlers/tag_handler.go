package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"listkeeper/internal/models"
	"listkeeper/internal/services"
)

type TagHandler struct {
	service services.TagService
}

func NewTagHandler(service services.TagService) *TagHandler {
	return &TagHandler{service: service}
}

// GET /tags
func (h *TagHandler) GetAll(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	tags, err := h.service.GetAll(c.Request.Context(), principal)
	if err != nil {
		log.Printf("[tag][list][err] %v", err)
		serviceError(c, err)
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	c.JSON(http.StatusOK, tags)
}

// POST /tags — upsert on name collision, the second call's color wins.
func (h *TagHandler) Create(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req struct {
		Name  string  `json:"name" binding:"required"`
		Color *string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[tag][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := h.service.Create(c.Request.Context(), principal, models.CreateTagInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		log.Printf("[tag][create][err] %v", err)
		serviceError(c, err)
		return
	}
	log.Printf("[tag][create][ok] id=%s name=%q", tag.ID, tag.Name)
	c.JSON(http.StatusCreated, tag)
}

// PATCH /tags/:id
func (h *TagHandler) Update(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id := c.Param("id")

	var patch models.TagPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		log.Printf("[tag][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := h.service.Update(c.Request.Context(), principal, id, patch)
	if err != nil {
		log.Printf("[tag][update][err] id=%s: %v", id, err)
		serviceError(c, err)
		return
	}
	if tag == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tag not found"})
		return
	}
	c.JSON(http.StatusOK, tag)
}

// DELETE /tags/:id
func (h *TagHandler) Delete(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id := c.Param("id")

	count, err := h.service.Delete(c.Request.Context(), principal, id)
	if err != nil {
		log.Printf("[tag][delete][err] id=%s: %v", id, err)
		serviceError(c, err)
		return
	}
	log.Printf("[tag][delete][ok] id=%s deleted=%d", id, count)
	c.JSON(http.StatusOK, gin.H{"deleted": count})
}

// POST /tasks/:id/tags/:tag_id
func (h *TagHandler) Assign(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	taskID, tagID := c.Param("id"), c.Param("tag_id")

	if err := h.service.Assign(c.Request.Context(), principal, taskID, tagID); err != nil {
		log.Printf("[tag][assign][err] task=%s tag=%s: %v", taskID, tagID, err)
		serviceError(c, err)
		return
	}
	log.Printf("[tag][assign][ok] task=%s tag=%s", taskID, tagID)
	c.Status(http.StatusNoContent)
}

// DELETE /tasks/:id/tags/:tag_id
func (h *TagHandler) Unassign(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	taskID, tagID := c.Param("id"), c.Param("tag_id")

	if err := h.service.Unassign(c.Request.Context(), principal, taskID, tagID); err != nil {
		log.Printf("[tag][unassign][err] task=%s tag=%s: %v", taskID, tagID, err)
		serviceError(c, err)
		return
	}
	log.Printf("[tag][unassign][ok] task=%s tag=%s", taskID, tagID)
	c.Status(http.StatusNoContent)
}
