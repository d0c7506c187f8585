package handlers

import (
	"net/http"

	"restaurant-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetStateMachineInfo documents the order state machine for clients
func GetStateMachineInfo(c *gin.Context) {
	transitions := statemachine.GetAllTransitions()

	view := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		view = append(view, gin.H{"from": t.From, "to": t.To})
	}

	c.JSON(http.StatusOK, gin.H{
		"description": "Order status lifecycle. Statuses are case-insensitive on input and stored lowercase.",
		"statuses": []string{
			"pending", "confirmed", "cooking", "ready", "delivered", "completed", "cancelled",
		},
		"terminal_states": statemachine.TerminalStatuses(),
		"transitions":     view,
		"payment_statuses": []string{
			"pending", "paid", "failed", "refunded",
		},
		"notes": []string{
			"Claiming a pending order confirms it automatically",
			"Payment must be confirmed before an order can be completed",
		},
	})
}
