package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"listkeeper/internal/models"
	"listkeeper/internal/services"
)

type TaskHandler struct {
	service services.TaskService
	tags    services.TagService
}

func NewTaskHandler(service services.TaskService, tags services.TagService) *TaskHandler {
	return &TaskHandler{service: service, tags: tags}
}

// GET /tasks
func (h *TaskHandler) GetAll(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var filter models.TaskFilter
	if v, ok := c.GetQuery("list_id"); ok {
		filter.ListID = &v
	}

	tasks, err := h.service.GetAll(c.Request.Context(), principal, filter)
	if err != nil {
		log.Printf("[task][list][err] %v", err)
		serviceError(c, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// GET /tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id := c.Param("id")

	task, err := h.service.GetByID(c.Request.Context(), principal, id)
	if err != nil {
		log.Printf("[task][get][err] id=%s: %v", id, err)
		serviceError(c, err)
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req struct {
		ListID    string   `json:"list_id" binding:"required"`
		Title     string   `json:"title" binding:"required"`
		Notes     *string  `json:"notes"`
		DueDate   *string  `json:"due_date"` // YYYY-MM-DD
		DueTime   *string  `json:"due_time"` // HH:MM
		Important bool     `json:"important"`
		Priority  *int     `json:"priority"` // 1..5, default 3
		Rank      *float64 `json:"rank"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DueDate != nil && !validDueDate(*req.DueDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date (YYYY-MM-DD)"})
		return
	}
	if req.DueTime != nil && !validDueTime(*req.DueTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_time (HH:MM)"})
		return
	}

	task, err := h.service.Create(c.Request.Context(), principal, models.CreateTaskInput{
		ListID:    req.ListID,
		Title:     req.Title,
		Notes:     req.Notes,
		DueDate:   req.DueDate,
		DueTime:   req.DueTime,
		Important: req.Important,
		Priority:  req.Priority,
		Rank:      req.Rank,
	})
	if err != nil {
		log.Printf("[task][create][err] %v", err)
		serviceError(c, err)
		return
	}
	log.Printf("[task][create][ok] id=%s list=%s title=%q", task.ID, task.ListID, task.Title)
	c.JSON(http.StatusCreated, task)
}

// PATCH /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id := c.Param("id")

	var patch models.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		log.Printf("[task][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if patch.DueDate.Present && !patch.DueDate.Null && !validDueDate(patch.DueDate.Value) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date (YYYY-MM-DD)"})
		return
	}
	if patch.DueTime.Present && !patch.DueTime.Null && !validDueTime(patch.DueTime.Value) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_time (HH:MM)"})
		return
	}

	task, err := h.service.Update(c.Request.Context(), principal, id, patch)
	if err != nil {
		log.Printf("[task][update][err] id=%s: %v", id, err)
		serviceError(c, err)
		return
	}
	if task == nil {
		log.Printf("[task][update][404] id=%s", id)
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	log.Printf("[task][update][ok] id=%s", id)
	c.JSON(http.StatusOK, task)
}

// POST /tasks/:id/move { "after_rank": 1.0, "before_rank": 2.0 }
func (h *TaskHandler) Move(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id := c.Param("id")

	var req struct {
		AfterRank  *float64 `json:"after_rank" binding:"required"`
		BeforeRank *float64 `json:"before_rank" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.service.Move(c.Request.Context(), principal, id, *req.AfterRank, *req.BeforeRank)
	if err != nil {
		log.Printf("[task][move][err] id=%s: %v", id, err)
		serviceError(c, err)
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	log.Printf("[task][move][ok] id=%s rank=%v", id, task.Rank)
	c.JSON(http.StatusOK, task)
}

// DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id := c.Param("id")

	count, err := h.service.Delete(c.Request.Context(), principal, id)
	if err != nil {
		log.Printf("[task][delete][err] id=%s: %v", id, err)
		serviceError(c, err)
		return
	}
	log.Printf("[task][delete][ok] id=%s deleted=%d", id, count)
	c.JSON(http.StatusOK, gin.H{"deleted": count})
}

// GET /tasks/:id/activity
func (h *TaskHandler) Activity(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id := c.Param("id")

	entries, err := h.service.Activity(c.Request.Context(), principal, id)
	if err != nil {
		log.Printf("[task][activity][err] id=%s: %v", id, err)
		serviceError(c, err)
		return
	}
	if entries == nil {
		entries = []models.Activity{}
	}
	c.JSON(http.StatusOK, entries)
}

// GET /tasks/:id/tags
func (h *TaskHandler) Tags(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id := c.Param("id")

	tags, err := h.tags.TagsForTask(c.Request.Context(), principal, id)
	if err != nil {
		log.Printf("[task][tags][err] id=%s: %v", id, err)
		serviceError(c, err)
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	c.JSON(http.StatusOK, tags)
}
