package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"listkeeper/internal/handlers"
	"listkeeper/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authSecret []byte,
	profileHandler *handlers.ProfileHandler,
	listHandler *handlers.ListHandler,
	taskHandler *handlers.TaskHandler,
	tagHandler *handlers.TagHandler,
	reminderHandler *handlers.ReminderHandler,
) *gin.Engine {

	// ---- public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ---- protected
	r.Use(middleware.AuthMiddleware(authSecret))

	// PROFILE
	r.GET("/me", profileHandler.Get)
	r.PATCH("/me", profileHandler.Update)
	r.DELETE("/me", profileHandler.Purge)

	// LISTS
	lists := r.Group("/lists")
	{
		lists.GET("", listHandler.GetAll)
		lists.POST("", listHandler.Create)
		lists.PATCH("/:id", listHandler.Update)
		lists.DELETE("/:id", listHandler.Delete)
	}

	// TASKS
	tasks := r.Group("/tasks")
	{
		tasks.GET("", taskHandler.GetAll)
		tasks.POST("", taskHandler.Create)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PATCH("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
		tasks.POST("/:id/move", taskHandler.Move)
		tasks.GET("/:id/activity", taskHandler.Activity)
		tasks.GET("/:id/tags", taskHandler.Tags)
		tasks.POST("/:id/tags/:tag_id", tagHandler.Assign)
		tasks.DELETE("/:id/tags/:tag_id", tagHandler.Unassign)
	}

	// TAGS
	tags := r.Group("/tags")
	{
		tags.GET("", tagHandler.GetAll)
		tags.POST("", tagHandler.Create)
		tags.PATCH("/:id", tagHandler.Update)
		tags.DELETE("/:id", tagHandler.Delete)
	}

	// REMINDERS
	reminders := r.Group("/reminders")
	{
		reminders.GET("", reminderHandler.GetAll)
		reminders.POST("", reminderHandler.Create)
		reminders.DELETE("/:id", reminderHandler.Delete)
		reminders.POST("/:id/delivered", reminderHandler.MarkDelivered)
	}

	return r
}
