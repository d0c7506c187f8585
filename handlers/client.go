package handlers

import (
	"net/http"
	"strconv"

	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/orders"

	"github.com/gin-gonic/gin"
)

type PlaceOrderRequest struct {
	TableNumber     *int               `json:"table_number"`
	ReservationCode string             `json:"reservation_code"`
	OrderCode       string             `json:"order_code"`
	IsUrgent        bool               `json:"is_urgent"`
	IsGroupOrder    bool               `json:"is_group_order"`
	Items           []orders.ItemInput `json:"items" binding:"required,min=1,dive"`
}

// PlaceOrder creates a new order for the logged-in client
func PlaceOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := svc().Create(orders.CreateOrderInput{
		UserID:          &userID,
		TableNumber:     req.TableNumber,
		ReservationCode: req.ReservationCode,
		OrderCode:       req.OrderCode,
		IsUrgent:        req.IsUrgent,
		IsGroupOrder:    req.IsGroupOrder,
		Items:           req.Items,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetMyOrders returns all orders for the logged-in client
func GetMyOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := svc().List(orders.ListFilter{UserID: &userID})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "orders": list})
}

// GetOrderDetail returns a single order; clients only see their own
func GetOrderDetail(c *gin.Context) {
	orderID, ok := parseID(c)
	if !ok {
		return
	}
	order, err := svc().Get(orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	if middleware.GetRole(c) == models.RoleClient {
		userID := middleware.GetUserID(c)
		if order.UserID == nil || *order.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateMyOrder lets a client change items, table or flags on their own
// order. Status and payment fields are staff-only.
func UpdateMyOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	orderID, ok := parseID(c)
	if !ok {
		return
	}

	order, err := svc().Get(orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	if order.UserID == nil || *order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	var req orders.UpdateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != nil || req.PaymentStatus != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Status changes are handled by staff"})
		return
	}

	updated, err := svc().Update(orderID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated", "order": updated})
}

// CancelOrder cancels the client's own order while still pending/confirmed
func CancelOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	orderID, ok := parseID(c)
	if !ok {
		return
	}

	order, err := svc().Cancel(orderID, userID, middleware.GetRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": order.ID})
}

// parseID reads the :id route param. A malformed id is the client's
// mistake, reported as 400 rather than a lookup of order 0.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id: " + c.Param("id")})
		return 0, false
	}
	return uint(id), true
}
