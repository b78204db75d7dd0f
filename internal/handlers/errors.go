package handlers

import (
	"errors"
	"net/http"

	"gage_backend/internal/service"

	"github.com/gin-gonic/gin"
)

const errWarehouse = "warehouse request failed"

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondServiceError maps domain errors to statuses; anything unknown is
// a warehouse failure, logged under logKey and hidden from the client.
func (h *Handler) respondServiceError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	var missing *service.MissingFieldsError
	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, gin.H{"error": missing.Error()})
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrUnknownTable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenRevoked):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
	case errors.Is(err, service.ErrCustomerExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errWarehouse, logKey, err, kv...)
	}
}
