package routes

import (
	"restaurant-api/handlers"
	"restaurant-api/middleware"
	"restaurant-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Menu (no auth needed)
		public.GET("/menu", handlers.GetMenu)
		public.GET("/menu/:id", handlers.GetDish)
		public.GET("/categories", handlers.ListCategories)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
		auth.GET("/orders/:id", handlers.GetOrderDetail)
	}

	// ── Client routes ──────────────────────────────────────────────
	client := r.Group("/api/client")
	client.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleClient))
	{
		client.POST("/orders", handlers.PlaceOrder)
		client.GET("/orders", handlers.GetMyOrders)
		client.PUT("/orders/:id", handlers.UpdateMyOrder)
		client.PUT("/orders/:id/cancel", handlers.CancelOrder)

		client.POST("/reservations", handlers.CreateReservation)
		client.GET("/reservations", handlers.GetMyReservations)
	}

	// ── Waiter routes ──────────────────────────────────────────────
	waiter := r.Group("/api/waiter")
	waiter.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleWaiter, models.RoleAdmin))
	{
		waiter.POST("/orders/claim", handlers.ClaimOrder)
		waiter.PUT("/orders/:id/take", handlers.TakeOrder)
		waiter.PUT("/orders/:id/confirm-payment", handlers.ConfirmPayment)
		waiter.PUT("/orders/:id/complete", handlers.CompleteOrder)
		waiter.GET("/orders", handlers.GetMyAssignedOrders)
		waiter.GET("/orders/available", handlers.GetAvailableOrders)

		waiter.POST("/codes", handlers.CreateCode)
		waiter.GET("/codes", handlers.ListCodes)
		waiter.POST("/codes/verify", handlers.VerifyCode)
		waiter.DELETE("/codes/:code", handlers.DeleteCode)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.PUT("/orders/:id", handlers.AdminUpdateOrder)
		admin.DELETE("/orders/:id", handlers.AdminDeleteOrder)
		admin.PUT("/orders/:id/reassign", handlers.AdminReassignOrder)
		admin.PUT("/orders/:id/cancel", handlers.AdminCancelOrder)

		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.GET("/reservations", handlers.AdminGetAllReservations)

		admin.POST("/menu", handlers.CreateDish)
		admin.PUT("/menu/:id", handlers.UpdateDish)
		admin.DELETE("/menu/:id", handlers.DeleteDish)
		admin.POST("/categories", handlers.CreateCategory)
		admin.DELETE("/categories/:id", handlers.DeleteCategory)
	}
}
