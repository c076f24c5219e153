package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-lifecycle-backend/services"
)

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// StatusFromError maps the service error taxonomy to HTTP status codes.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrRoomUnavailable),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes a taxonomy-mapped error response.
func RespondError(c *gin.Context, err error) {
	JSONError(c, StatusFromError(err), err.Error())
}
