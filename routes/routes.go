package routes

import (
	"quickbite/handlers"
	"quickbite/middleware"
	"quickbite/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Restaurants & menus (no auth needed)
		public.GET("/restaurants", handlers.ListRestaurants)
		public.GET("/restaurants/:id", handlers.GetRestaurant)
		public.GET("/restaurants/:id/menu", handlers.GetMenu)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)

		// Customer-facing order API; the storefront checks out without a login
		public.GET("/orders", handlers.ListOrders)
		public.POST("/orders", handlers.CreateOrder)
		public.GET("/orders/customer/:customerId", handlers.CustomerOrders)
		public.GET("/orders/:id", handlers.GetOrder)
		public.PUT("/orders/:id", handlers.UpdateOrder)
		public.PATCH("/orders/:id/status", handlers.UpdateOrderStatus)
		public.PUT("/orders/:id/assign-driver", handlers.AssignDriver)
		public.GET("/orders/:id/track", handlers.TrackOrder)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
	}

	// ── Driver routes ──────────────────────────────────────────────
	driver := r.Group("/api/driver")
	driver.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleDriver))
	{
		driver.GET("/orders/available", handlers.AvailableOrders)
		driver.GET("/orders/mine", handlers.MyDeliveries)
		driver.PUT("/orders/:id/advance", handlers.AdvanceOrder)
		driver.PUT("/availability", handlers.SetAvailability)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.DELETE("/orders/:id", handlers.DeleteOrder)
		admin.GET("/notifications", handlers.ListNotifications)
		admin.PUT("/notifications/:id/read", handlers.MarkNotificationRead)

		admin.POST("/restaurants", handlers.CreateRestaurant)
		admin.PUT("/restaurants/:id", handlers.UpdateRestaurant)
		admin.POST("/restaurants/:id/menu", handlers.AddMenuItem)
		admin.PUT("/menu/:itemId", handlers.UpdateMenuItem)
		admin.DELETE("/menu/:itemId", handlers.DeleteMenuItem)
	}
}
