package handlers

import (
	"net/http"

	"restaurant-api/config"
	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/orders"
	"restaurant-api/statemachine"

	"github.com/gin-gonic/gin"
)

// AdminGetAllOrders returns every order, optionally filtered by status
func AdminGetAllOrders(c *gin.Context) {
	filter := orders.ListFilter{}
	if raw := c.Query("status"); raw != "" {
		status, err := statemachine.ParseStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.Status = &status
	}

	list, err := svc().List(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	// Dashboard summary: order counts grouped by status
	summary := map[string]int{}
	for _, o := range list {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"count":         len(list),
		"orders":        list,
	})
}

// AdminUpdateOrder applies a partial update, including status and payment
// fields, with full state-machine enforcement
func AdminUpdateOrder(c *gin.Context) {
	var req orders.UpdateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderID, ok := parseID(c)
	if !ok {
		return
	}
	order, err := svc().Update(orderID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated", "order": order})
}

// AdminDeleteOrder removes an order and its items
func AdminDeleteOrder(c *gin.Context) {
	orderID, ok := parseID(c)
	if !ok {
		return
	}
	if err := svc().Delete(orderID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}

type ReassignRequest struct {
	WaiterID uint `json:"waiter_id" binding:"required"`
}

// AdminReassignOrder force-assigns an order to a waiter, overriding any
// existing claim
func AdminReassignOrder(c *gin.Context) {
	var req ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var waiter models.User
	if err := config.DB.First(&waiter, req.WaiterID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Waiter not found"})
		return
	}
	if waiter.Role != models.RoleWaiter && waiter.Role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User is not a waiter"})
		return
	}

	orderID, ok := parseID(c)
	if !ok {
		return
	}
	order, err := svc().Take(orderID, req.WaiterID, true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Order reassigned",
		"order_id":  order.ID,
		"waiter_id": order.WaiterID,
	})
}

// AdminCancelOrder cancels any non-terminal order
func AdminCancelOrder(c *gin.Context) {
	orderID, ok := parseID(c)
	if !ok {
		return
	}
	order, err := svc().Cancel(orderID, middleware.GetUserID(c), models.RoleAdmin)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled", "order_id": order.ID})
}

// AdminGetAllUsers lists all registered users
func AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	config.DB.Order("created_at desc").Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminGetAllReservations lists all reservations
func AdminGetAllReservations(c *gin.Context) {
	var reservations []models.Reservation
	config.DB.Preload("User").Order("reserved_for desc").Find(&reservations)
	c.JSON(http.StatusOK, gin.H{"count": len(reservations), "reservations": reservations})
}
