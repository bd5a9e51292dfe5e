package handlers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"listkeeper/internal/middleware"
	"listkeeper/internal/models"
)

// getPrincipal reads the verified caller identity the auth middleware put
// into the request context. Handlers pass it into every service call and
// never read an owner id from a payload.
func getPrincipal(c *gin.Context) (string, bool) {
	v, ok := c.Get(middleware.PrincipalKey)
	if !ok {
		return "", false
	}
	principal, ok := v.(string)
	if !ok || principal == "" {
		return "", false
	}
	return principal, true
}

var (
	dueDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dueTimeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

func validDueDate(s string) bool { return dueDateRe.MatchString(s) }
func validDueTime(s string) bool { return dueTimeRe.MatchString(s) }

// serviceError maps core errors onto transport statuses. Referenced rows
// the caller does not own answer 404, same as rows that do not exist.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrListNotFound),
		errors.Is(err, models.ErrTaskNotFound),
		errors.Is(err, models.ErrTagNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrNullField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
