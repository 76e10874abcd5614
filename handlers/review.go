package handlers

import (
	"net/http"

	"foodfusion-backend/models"
	"foodfusion-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewHandler struct {
	DB *gorm.DB
}

// CreateReview records a review for one food of one delivered order. The
// order must belong to the caller, have reviews open, and actually contain
// the food; the (user, food, order) triple may review only once.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		FoodID  uuid.UUID `json:"food_id" binding:"required"`
		OrderID uuid.UUID `json:"order_id" binding:"required"`
		Rating  int       `json:"rating" binding:"required,min=1,max=5"`
		Comment string    `json:"comment" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var order models.Order
	if err := h.DB.Preload("Items").Where("id = ? AND user_id = ?", req.OrderID, userID).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if order.Status != models.OrderStatusDelivered || !order.AllowReview {
		c.JSON(http.StatusForbidden, gin.H{"error": "Reviews are only allowed after the order has been delivered"})
		return
	}

	var orderItem *models.OrderItem
	for i := range order.Items {
		if order.Items[i].FoodID == req.FoodID {
			orderItem = &order.Items[i]
			break
		}
	}
	if orderItem == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This food was not part of the order"})
		return
	}

	var existing models.Review
	if err := h.DB.Where("user_id = ? AND food_id = ? AND order_id = ?", userID, req.FoodID, req.OrderID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this food for this order"})
		return
	}

	var user models.User
	h.DB.Where("id = ?", userID).First(&user)

	review := models.Review{
		ID:         uuid.New(),
		UserID:     userID.(uuid.UUID),
		FoodID:     req.FoodID,
		OrderID:    req.OrderID,
		UserName:   user.Name,
		Rating:     req.Rating,
		Comment:    req.Comment,
		IsApproved: true,
	}

	if err := h.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	// Mark exactly the reviewed line item; other items of the order stay open.
	h.DB.Model(&models.OrderItem{}).Where("id = ?", orderItem.ID).Update("is_reviewed", true)

	c.JSON(http.StatusCreated, review)
}

// GetReviewsByFood is the public review listing for one dish. Foods with no
// approved reviews report a default average of 5.
func (h *ReviewHandler) GetReviewsByFood(c *gin.Context) {
	foodID := c.Param("id")

	var food models.Food
	if err := h.DB.Where("id = ?", foodID).First(&food).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
		return
	}

	var reviews []models.Review
	if err := h.DB.Where("food_id = ? AND is_approved = ?", foodID, true).
		Order("created_at DESC").Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	averageRating := 5.0
	if len(reviews) > 0 {
		var sum int
		for _, r := range reviews {
			sum += r.Rating
		}
		averageRating = float64(sum) / float64(len(reviews))
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":        reviews,
		"average_rating": averageRating,
		"count":          len(reviews),
	})
}

// GetUserReviews lists the caller's own reviews.
func (h *ReviewHandler) GetUserReviews(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var reviews []models.Review
	if err := h.DB.Preload("Food").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// GetReviewableItems returns the caller's delivered line items still open for
// review, optionally narrowed to one order.
func (h *ReviewHandler) GetReviewableItems(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	query := h.DB.Preload("Items").
		Where("user_id = ? AND status = ? AND allow_review = ?", userID, models.OrderStatusDelivered, true)
	if orderID := c.Query("orderId"); orderID != "" {
		query = query.Where("id = ?", orderID)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviewable items"})
		return
	}

	type reviewableItem struct {
		OrderID     uuid.UUID `json:"order_id"`
		OrderNumber string    `json:"order_number"`
		FoodID      uuid.UUID `json:"food_id"`
		Name        string    `json:"name"`
	}

	items := []reviewableItem{}
	for _, order := range orders {
		for _, item := range order.Items {
			if !item.IsReviewed {
				items = append(items, reviewableItem{
					OrderID:     order.ID,
					OrderNumber: order.OrderNumber,
					FoodID:      item.FoodID,
					Name:        item.Name,
				})
			}
		}
	}

	c.JSON(http.StatusOK, items)
}

// GetAllReviews is the admin moderation listing.
func (h *ReviewHandler) GetAllReviews(c *gin.Context) {
	var reviews []models.Review
	if err := h.DB.Preload("User").Preload("Food").
		Order("created_at DESC").Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// UpdateReviewStatus toggles a review's public visibility.
func (h *ReviewHandler) UpdateReviewStatus(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		IsApproved *bool `json:"is_approved" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var review models.Review
	if err := h.DB.Where("id = ?", id).First(&review).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	if err := h.DB.Model(&review).Update("is_approved", *req.IsApproved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}

	c.JSON(http.StatusOK, review)
}

// DeleteReview removes a review and reopens the matching line item so the
// customer may review again.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id := c.Param("id")

	var review models.Review
	if err := h.DB.Where("id = ?", id).First(&review).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	if err := h.DB.Delete(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}

	h.DB.Model(&models.OrderItem{}).
		Where("order_id = ? AND food_id = ?", review.OrderID, review.FoodID).
		Update("is_reviewed", false)

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
