package routes

import (
	"foodfusion-backend/firebase"
	"foodfusion-backend/handlers"
	"foodfusion-backend/middleware"
	"foodfusion-backend/payments"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, storage firebase.StorageClient, checkout payments.CheckoutClient) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	foodHandler := &handlers.FoodHandler{DB: db, Storage: storage}
	comboHandler := &handlers.ComboHandler{DB: db, Storage: storage}
	couponHandler := &handlers.CouponHandler{DB: db}
	cartHandler := &handlers.CartHandler{DB: db}
	orderHandler := &handlers.OrderHandler{DB: db, Payments: checkout}
	reviewHandler := &handlers.ReviewHandler{DB: db}
	dashboardHandler := &handlers.DashboardHandler{DB: db}

	// Public routes
	api := r.Group("/api")
	{
		// Auth routes
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.RefreshTokenHandler)
		api.POST("/auth/forgot-password", authHandler.ForgotPassword)
		api.POST("/auth/reset-password", authHandler.ResetPassword)

		// Public menu routes
		api.GET("/foods", foodHandler.GetFoods)
		api.GET("/foods/:id", foodHandler.GetFood)
		api.GET("/foods/:id/reviews", reviewHandler.GetReviewsByFood)
		api.GET("/categories", foodHandler.GetCategories)

		// Public combo routes
		api.GET("/combos", comboHandler.GetCombos)
		api.GET("/combos/:id", comboHandler.GetCombo)
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		// User profile
		protected.GET("/auth/profile", authHandler.GetProfile)
		protected.PUT("/auth/profile", authHandler.UpdateProfile)
		protected.PUT("/auth/password", authHandler.ChangePassword)

		// Coupon pre-check
		protected.POST("/coupons/validate", couponHandler.ValidateCoupon)

		// Cart routes
		protected.GET("/cart", cartHandler.GetCart)
		protected.POST("/cart", cartHandler.AddToCart)
		protected.PUT("/cart/:id", cartHandler.UpdateCartItem)
		protected.DELETE("/cart/:id", cartHandler.RemoveFromCart)
		protected.DELETE("/cart", cartHandler.ClearCart)

		// Order routes
		protected.POST("/orders/place", orderHandler.PlaceOrder)
		protected.POST("/orders/verify", orderHandler.VerifyPayment)
		protected.GET("/orders", orderHandler.GetMyOrders)
		protected.GET("/orders/:id/status", orderHandler.GetOrderStatus)
		protected.POST("/orders/:id/cancel", orderHandler.CancelOrder)
		protected.POST("/orders/:id/cancel-request", orderHandler.RequestCancellation)

		// Review routes
		protected.POST("/reviews", reviewHandler.CreateReview)
		protected.GET("/reviews/mine", reviewHandler.GetUserReviews)
		protected.GET("/reviews/reviewable", reviewHandler.GetReviewableItems)
	}

	// Admin routes (require admin role)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		// Menu management
		admin.POST("/foods", foodHandler.CreateFood)
		admin.PUT("/foods/:id", foodHandler.UpdateFood)
		admin.DELETE("/foods/:id", foodHandler.DeleteFood)

		// Combo management
		admin.POST("/combos", comboHandler.CreateCombo)
		admin.PUT("/combos/:id", comboHandler.UpdateCombo)
		admin.DELETE("/combos/:id", comboHandler.DeleteCombo)

		// Coupon management
		admin.GET("/coupons", couponHandler.ListCoupons)
		admin.POST("/coupons", couponHandler.CreateCoupon)
		admin.PUT("/coupons/:id", couponHandler.UpdateCoupon)
		admin.DELETE("/coupons/:id", couponHandler.DeleteCoupon)

		// Order management
		admin.GET("/orders", orderHandler.ListOrders)
		admin.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
		admin.GET("/orders/cancellation-requests", orderHandler.GetCancellationRequests)
		admin.POST("/orders/:id/cancellation", orderHandler.HandleCancellationRequest)

		// Review moderation
		admin.GET("/reviews", reviewHandler.GetAllReviews)
		admin.PUT("/reviews/:id/status", reviewHandler.UpdateReviewStatus)
		admin.DELETE("/reviews/:id", reviewHandler.DeleteReview)

		// User management
		admin.GET("/users", authHandler.ListUsers)
		admin.PUT("/users/:id", authHandler.UpdateUser)

		// Dashboard
		admin.GET("/dashboard", dashboardHandler.GetStats)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
