package handlers

import (
	"net/http"
	"strings"
	"time"

	"foodfusion-backend/models"
	"foodfusion-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CouponHandler struct {
	DB *gorm.DB
}

func (h *CouponHandler) ListCoupons(c *gin.Context) {
	var coupons []models.Coupon
	if err := h.DB.Order("created_at DESC").Find(&coupons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coupons"})
		return
	}

	c.JSON(http.StatusOK, coupons)
}

func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req struct {
		Code            string     `json:"code" binding:"required"`
		DiscountPercent float64    `json:"discount_percent" binding:"required,min=1,max=100"`
		ExpiresAt       *time.Time `json:"expires_at"`
		Active          *bool      `json:"active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	var existing models.Coupon
	if err := h.DB.Where("code = ?", code).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Coupon code already exists"})
		return
	}

	coupon := models.Coupon{
		ID:              uuid.New(),
		Code:            code,
		DiscountPercent: req.DiscountPercent,
		ExpiresAt:       req.ExpiresAt,
		Active:          true,
	}
	if req.Active != nil {
		coupon.Active = *req.Active
	}

	if err := h.DB.Create(&coupon).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create coupon"})
		return
	}

	c.JSON(http.StatusCreated, coupon)
}

func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	id := c.Param("id")

	var coupon models.Coupon
	if err := h.DB.Where("id = ?", id).First(&coupon).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
		return
	}

	var req struct {
		DiscountPercent *float64   `json:"discount_percent"`
		ExpiresAt       *time.Time `json:"expires_at"`
		Active          *bool      `json:"active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.DiscountPercent != nil {
		if *req.DiscountPercent < 1 || *req.DiscountPercent > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "discount_percent must be between 1 and 100"})
			return
		}
		coupon.DiscountPercent = *req.DiscountPercent
	}
	if req.ExpiresAt != nil {
		coupon.ExpiresAt = req.ExpiresAt
	}
	if req.Active != nil {
		coupon.Active = *req.Active
	}

	if err := h.DB.Save(&coupon).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update coupon"})
		return
	}

	c.JSON(http.StatusOK, coupon)
}

func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id := c.Param("id")

	var coupon models.Coupon
	if err := h.DB.Where("id = ?", id).First(&coupon).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
		return
	}

	if err := h.DB.Delete(&coupon).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete coupon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted successfully"})
}

// ValidateCoupon is the strict pre-checkout check: unlike order placement,
// which silently skips a bad coupon, this endpoint reports exactly why a code
// cannot be applied.
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	var coupon models.Coupon
	if err := h.DB.Where("code = ?", code).First(&coupon).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"valid": false, "error": "Coupon not found"})
		return
	}

	if !coupon.Active {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": "Coupon is no longer active"})
		return
	}

	if coupon.ExpiresAt != nil && !coupon.ExpiresAt.After(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": "Coupon has expired"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":            true,
		"code":             coupon.Code,
		"discount_percent": coupon.DiscountPercent,
	})
}
