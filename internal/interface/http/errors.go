package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medisync/user-service/internal/application"
	"github.com/medisync/user-service/pkg/response"
)

// writeError maps application errors onto the HTTP error taxonomy.
// Authentication failures get one fixed message regardless of cause.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrInvalidID):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, application.ErrConflict):
		response.Error(c, http.StatusConflict, err.Error(), nil)
	default:
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
