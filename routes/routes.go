package routes

import (
	"github.com/gin-gonic/gin"

	"pizza-club-api/handlers"
	"pizza-club-api/middleware"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Menu & schedule (no auth needed; the terminal renders these
		// before login)
		public.GET("/menu", handlers.GetMenu)
		public.GET("/nights", handlers.GetNights)
		public.GET("/nights/:date/slots", handlers.GetNightSlots)

		// Kitchen lifecycle info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Member routes ──────────────────────────────────────────────
	member := r.Group("/api")
	member.Use(middleware.AuthRequired())
	{
		member.GET("/profile", handlers.GetProfile)
		member.POST("/orders", handlers.SubmitOrder)
		member.GET("/orders", handlers.GetMyOrders)
		member.GET("/orders/:ref", handlers.GetOrderDetail)
	}

	// ── Admin routes ───────────────────────────────────────────────
	// The JWT gate shields the group; every mutating call additionally
	// re-verifies the admin_username it carries against the registry.
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		// Schedule
		admin.POST("/slots/lock", handlers.SetSlotLock)
		admin.POST("/nights/provision", handlers.ProvisionNight)

		// Kitchen display & order management
		admin.GET("/nights/:date/orders", handlers.KitchenDisplay)
		admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus)
		admin.DELETE("/orders/:id", handlers.AdminCancelOrder)

		// Catalog & roster
		admin.POST("/menu", handlers.CreatePizza)
		admin.PUT("/menu/:id", handlers.UpdatePizza)
		admin.DELETE("/menu/:id", handlers.DeactivatePizza)
		admin.GET("/members", handlers.ListMembers)
	}
}
