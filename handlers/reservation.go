package handlers

import (
	"net/http"
	"time"

	"restaurant-api/config"
	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/orders"

	"github.com/gin-gonic/gin"
)

type CreateReservationRequest struct {
	TableNumber int       `json:"table_number" binding:"required,min=1"`
	Guests      int       `json:"guests" binding:"omitempty,min=1"`
	ReservedFor time.Time `json:"reserved_for" binding:"required"`
}

// CreateReservation books a table and returns the reservation code the
// client later presents at order creation to resolve their table
func CreateReservation(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	guests := req.Guests
	if guests == 0 {
		guests = 1
	}
	reservation := models.Reservation{
		UserID:          userID,
		ReservationCode: orders.MintCode(),
		TableNumber:     req.TableNumber,
		Guests:          guests,
		ReservedFor:     req.ReservedFor,
		Status:          "active",
	}
	if err := config.DB.Create(&reservation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Reservation created",
		"reservation": reservation,
	})
}

// GetMyReservations lists the client's reservations
func GetMyReservations(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var reservations []models.Reservation
	config.DB.Where("user_id = ?", userID).
		Order("reserved_for desc").Find(&reservations)
	c.JSON(http.StatusOK, gin.H{"count": len(reservations), "reservations": reservations})
}
