package handlers

import (
	"net/http"
	"time"

	"foodfusion-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	DB *gorm.DB
}

type topSellingItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type categoryStat struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// GetStats aggregates the admin dashboard in one response: counts, revenue,
// best and worst sellers, and the latest orders.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	var foodCount, orderCount, userCount, processingCount int64
	h.DB.Model(&models.Food{}).Count(&foodCount)
	h.DB.Model(&models.Order{}).Count(&orderCount)
	h.DB.Model(&models.User{}).Where("role = ?", "customer").Count(&userCount)
	h.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusProcessing).Count(&processingCount)

	// Cancelled orders never count toward revenue.
	var totalRevenue float64
	h.DB.Model(&models.Order{}).
		Where("status <> ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalRevenue)

	weekAgo := time.Now().AddDate(0, 0, -7)
	var weekRevenue float64
	h.DB.Model(&models.Order{}).
		Where("status <> ? AND created_at >= ?", models.OrderStatusCancelled, weekAgo).
		Select("COALESCE(SUM(amount), 0)").Scan(&weekRevenue)

	var topSelling []topSellingItem
	h.DB.Model(&models.OrderItem{}).
		Select("order_items.name, SUM(order_items.quantity) AS quantity, SUM(order_items.price * order_items.quantity) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id AND orders.status <> ? AND orders.deleted_at IS NULL", models.OrderStatusCancelled).
		Group("order_items.name").
		Order("quantity DESC").
		Limit(5).
		Scan(&topSelling)

	// Foods that have never been ordered.
	var nonSelling []models.Food
	h.DB.Where("id NOT IN (?)", h.DB.Model(&models.OrderItem{}).Select("food_id")).
		Find(&nonSelling)

	var categoryStats []categoryStat
	h.DB.Model(&models.Food{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("count DESC").
		Scan(&categoryStats)

	var recentOrders []models.Order
	h.DB.Preload("Items").Preload("User").
		Order("created_at DESC").Limit(10).Find(&recentOrders)

	c.JSON(http.StatusOK, gin.H{
		"food_count":        foodCount,
		"order_count":       orderCount,
		"customer_count":    userCount,
		"processing_orders": processingCount,
		"total_revenue":     totalRevenue,
		"week_revenue":      weekRevenue,
		"top_selling":       topSelling,
		"non_selling_foods": nonSelling,
		"category_stats":    categoryStats,
		"recent_orders":     recentOrders,
	})
}
