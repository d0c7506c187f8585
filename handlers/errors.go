package handlers

import (
	"errors"
	"net/http"

	"restaurant-api/config"
	"restaurant-api/orders"

	"github.com/gin-gonic/gin"
)

// svc builds the order service over the shared DB handle.
func svc() *orders.Service {
	return orders.NewService(config.DB)
}

// respondError maps service error kinds onto HTTP statuses in one place.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, orders.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, orders.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, orders.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, orders.ErrConflict):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
