package handlers

import (
	"net/http"

	"restaurant-api/middleware"
	"restaurant-api/orders"

	"github.com/gin-gonic/gin"
)

type ClaimOrderRequest struct {
	Code string `json:"code" binding:"required"`
}

// ClaimOrder assigns the order behind a ticket code to the calling waiter.
// Exactly one of several racing waiters wins; the rest get 409.
func ClaimOrder(c *gin.Context) {
	waiterID := middleware.GetUserID(c)

	var req ClaimOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := svc().ClaimByCode(req.Code, waiterID, middleware.IsAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Order claimed",
		"order":   order,
	})
}

// TakeOrder claims an order by id instead of code
func TakeOrder(c *gin.Context) {
	waiterID := middleware.GetUserID(c)
	orderID, ok := parseID(c)
	if !ok {
		return
	}
	order, err := svc().Take(orderID, waiterID, middleware.IsAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order taken", "order": order})
}

type ConfirmPaymentRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// ConfirmPayment marks the order paid; confirming twice is a no-op
func ConfirmPayment(c *gin.Context) {
	waiterID := middleware.GetUserID(c)

	var req ConfirmPaymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	orderID, ok := parseID(c)
	if !ok {
		return
	}
	order, err := svc().ConfirmPayment(orderID, waiterID, middleware.IsAdmin(c), req.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Payment confirmed",
		"order_id":       order.ID,
		"payment_status": order.PaymentStatus,
	})
}

// CompleteOrder closes out a paid order
func CompleteOrder(c *gin.Context) {
	waiterID := middleware.GetUserID(c)
	orderID, ok := parseID(c)
	if !ok {
		return
	}
	order, err := svc().Complete(orderID, waiterID, middleware.IsAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Order completed",
		"order_id":     order.ID,
		"status":       order.Status,
		"completed_at": order.CompletedAt,
	})
}

// GetMyAssignedOrders returns every order held by the calling waiter
func GetMyAssignedOrders(c *gin.Context) {
	waiterID := middleware.GetUserID(c)
	list, err := svc().List(orders.ListFilter{WaiterID: &waiterID})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "orders": list})
}

// GetAvailableOrders shows unclaimed, still-open orders
func GetAvailableOrders(c *gin.Context) {
	list, err := svc().List(orders.ListFilter{Unclaimed: true})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "orders": list})
}

type CreateCodeRequest struct {
	TableNumber *int `json:"table_number"`
}

// CreateCode mints a pre-printed ticket code, optionally tied to a table
func CreateCode(c *gin.Context) {
	waiterID := middleware.GetUserID(c)

	var req CreateCodeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	code, err := svc().CreateCode(waiterID, req.TableNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Code created", "code": code})
}

// ListCodes returns the calling waiter's ticket codes
func ListCodes(c *gin.Context) {
	waiterID := middleware.GetUserID(c)
	codes, err := svc().ListCodes(waiterID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(codes), "codes": codes})
}

type VerifyCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// VerifyCode checks that a ticket code exists and is still claimable
func VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := svc().VerifyCode(req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "code": code})
}

// DeleteCode removes an unused ticket code
func DeleteCode(c *gin.Context) {
	if err := svc().DeleteCode(c.Param("code")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Code deleted"})
}
