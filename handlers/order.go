package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"foodfusion-backend/config"
	"foodfusion-backend/models"
	"foodfusion-backend/payments"
	"foodfusion-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderHandler struct {
	DB       *gorm.DB
	Payments payments.CheckoutClient
}

type placeOrderItem struct {
	FoodID   uuid.UUID `json:"food_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

type placeOrderAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zipcode   string `json:"zipcode"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

// PlaceOrder creates an order from the submitted cart contents. The coupon
// lookup fails open: an unknown, inactive or expired code applies zero
// discount and the order still goes through.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Items           []placeOrderItem  `json:"items" binding:"required"`
		Address         placeOrderAddress `json:"address"`
		DeliveryAddress string            `json:"delivery_address" binding:"required"`
		ContactNumber   string            `json:"contact_number" binding:"required"`
		PaymentMethod   string            `json:"payment_method" binding:"required"`
		CouponCode      string            `json:"coupon_code"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order must contain at least one item"})
		return
	}

	if req.PaymentMethod != models.PaymentMethodCOD && req.PaymentMethod != models.PaymentMethodOnline {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method"})
		return
	}

	missing := utils.MissingAddressFields(map[string]string{
		"firstName": req.Address.FirstName,
		"lastName":  req.Address.LastName,
		"email":     req.Address.Email,
		"street":    req.Address.Street,
		"city":      req.Address.City,
		"state":     req.Address.State,
		"zipcode":   req.Address.Zipcode,
		"country":   req.Address.Country,
		"phone":     req.Address.Phone,
	})
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing address fields", "missing_fields": missing})
		return
	}

	// Snapshot name and price from the catalog so later edits never alter
	// historical orders.
	var amount float64
	orderItems := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		var food models.Food
		if err := h.DB.Where("id = ?", item.FoodID).First(&food).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Food item not found"})
			return
		}
		amount += food.Price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			FoodID:   food.ID,
			Name:     food.Name,
			Quantity: item.Quantity,
			Price:    food.Price,
		})
	}

	var discount float64
	couponCode := strings.ToUpper(strings.TrimSpace(req.CouponCode))
	if couponCode != "" {
		var coupon models.Coupon
		if err := h.DB.Where("code = ? AND active = ?", couponCode, true).First(&coupon).Error; err == nil && coupon.Valid(time.Now()) {
			discount = amount * coupon.DiscountPercent / 100
			amount -= discount
		}
	}

	paymentStatus := models.PaymentStatusPending
	if req.PaymentMethod == models.PaymentMethodCOD {
		paymentStatus = models.PaymentStatusCompleted
	}

	order := models.Order{
		ID:     uuid.New(),
		UserID: userID.(uuid.UUID),
		Items:  orderItems,
		Amount: amount,
		Status: models.OrderStatusProcessing,
		Address: models.Address{
			FirstName: req.Address.FirstName,
			LastName:  req.Address.LastName,
			Email:     req.Address.Email,
			Street:    req.Address.Street,
			City:      req.Address.City,
			State:     req.Address.State,
			Zipcode:   req.Address.Zipcode,
			Country:   req.Address.Country,
			Phone:     req.Address.Phone,
		},
		DeliveryAddress: req.DeliveryAddress,
		ContactNumber:   req.ContactNumber,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   paymentStatus,
		Payment:         req.PaymentMethod == models.PaymentMethodCOD,
		Discount:        discount,
		CouponCode:      couponCode,
		AllowReview:     false,
	}

	if err := h.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	// Cart clearing is a separate write, not atomic with the order insert.
	h.DB.Where("user_id = ?", userID).Delete(&models.CartItem{})

	var user models.User
	if err := h.DB.Where("id = ?", userID).First(&user).Error; err == nil {
		utils.SendOrderConfirmation(user.Email, user.Name, order.OrderNumber, order.Amount)
	}

	if req.PaymentMethod == models.PaymentMethodCOD {
		c.JSON(http.StatusCreated, gin.H{"success": true, "order_id": order.ID, "order": order})
		return
	}

	frontendURL := config.GetEnv("FRONTEND_URL", "http://localhost:3000")
	checkoutItems := make([]payments.CheckoutItem, 0, len(orderItems)+1)
	for _, item := range orderItems {
		checkoutItems = append(checkoutItems, payments.CheckoutItem{
			Name:       item.Name,
			UnitAmount: int64(item.Price * 100),
			Quantity:   int64(item.Quantity),
		})
	}
	checkoutItems = append(checkoutItems, payments.CheckoutItem{
		Name:       "Delivery Charges",
		UnitAmount: payments.DeliveryCharge * 100,
		Quantity:   1,
	})

	sessionURL, err := h.Payments.CreateCheckoutSession(
		checkoutItems,
		fmt.Sprintf("%s/verify?success=true&orderId=%s", frontendURL, order.ID),
		fmt.Sprintf("%s/verify?success=false&orderId=%s", frontendURL, order.ID),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "order_id": order.ID, "session_url": sessionURL})
}

// VerifyPayment settles an online order from the checkout redirect. The
// success flag is client-supplied; a failed redirect deletes the order.
func (h *OrderHandler) VerifyPayment(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req struct {
		OrderID uuid.UUID `json:"order_id" binding:"required"`
		Success string    `json:"success" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var order models.Order
	if err := h.DB.Where("id = ? AND user_id = ?", req.OrderID, userID).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if req.Success == "true" {
		order.Payment = true
		order.PaymentStatus = models.PaymentStatusCompleted
		if err := h.DB.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify payment"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Paid"})
		return
	}

	h.DB.Where("order_id = ?", order.ID).Delete(&models.OrderItem{})
	h.DB.Delete(&order)
	c.JSON(http.StatusOK, gin.H{"success": false, "message": "Not Paid"})
}

// GetMyOrders returns the authenticated user's orders, newest first.
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var orders []models.Order
	if err := h.DB.Preload("Items").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// ListOrders returns every order for the admin panel.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var orders []models.Order
	if err := h.DB.Preload("Items").Preload("User").
		Order("created_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus applies an admin status change through the transition
// table. Setting Delivered twice is a no-op; cancelled orders and orders with
// a pending cancellation request reject every candidate status.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if !models.IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status provided"})
		return
	}

	var order models.Order
	if err := h.DB.Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if order.Status == models.OrderStatusCancelled || order.HasPendingCancellation() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cannot update status of cancelled orders or orders with pending cancellation",
		})
		return
	}

	// Re-delivering a delivered order must not flip allow_review back or
	// repeat side effects.
	if order.Status == models.OrderStatusDelivered && req.Status == models.OrderStatusDelivered {
		c.JSON(http.StatusOK, order)
		return
	}

	if !models.IsValidTransition(order.Status, req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid status transition from '%s' to '%s'; valid transitions are: %s",
				order.Status, req.Status, models.DescribeTransitionsFrom(order.Status)),
		})
		return
	}

	order.Status = req.Status
	if req.Status == models.OrderStatusDelivered {
		order.AllowReview = true
	}

	if err := h.DB.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	var user models.User
	if err := h.DB.Where("id = ?", order.UserID).First(&user).Error; err == nil && user.Email != "" {
		utils.SendOrderStatusUpdate(user.Email, user.Name, order.OrderNumber, string(req.Status))
	}

	c.JSON(http.StatusOK, order)
}

// RequestCancellation files a cancellation request on the caller's own order.
// The current status is stored on the sub-record so a rejection can restore it.
func (h *OrderHandler) RequestCancellation(c *gin.Context) {
	userID, _ := c.Get("user_id")
	id := c.Param("id")

	var req struct {
		Reason string `json:"reason"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if strings.TrimSpace(req.Reason) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cancellation reason is required"})
		return
	}

	var order models.Order
	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if order.Status == models.OrderStatusDelivered {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Delivered orders cannot be cancelled"})
		return
	}

	if order.Status == models.OrderStatusCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order is already cancelled"})
		return
	}

	if order.HasPendingCancellation() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A cancellation request is already pending for this order"})
		return
	}

	now := time.Now()
	order.CancellationRequest = models.CancellationRequest{
		Reason:         req.Reason,
		RequestedAt:    &now,
		Status:         models.CancellationPending,
		PreviousStatus: order.Status,
	}
	order.Status = models.OrderStatusCancellationRequested

	if err := h.DB.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit cancellation request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cancellation request submitted successfully",
		"order":   order,
	})
}

// HandleCancellationRequest resolves a pending cancellation request. Approval
// cancels the order and closes reviews; rejection restores the status the
// order held when the request was filed.
func (h *OrderHandler) HandleCancellationRequest(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Action        models.CancellationStatus `json:"action" binding:"required"`
		AdminResponse string                    `json:"admin_response"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Action != models.CancellationApproved && req.Action != models.CancellationRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action. Must be 'approved' or 'rejected'"})
		return
	}

	var order models.Order
	if err := h.DB.Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if !order.HasPendingCancellation() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No pending cancellation request found for this order"})
		return
	}

	order.CancellationRequest.Status = req.Action
	order.CancellationRequest.AdminResponse = req.AdminResponse

	if req.Action == models.CancellationApproved {
		order.Status = models.OrderStatusCancelled
		order.AllowReview = false
	} else {
		order.Status = order.RevertStatusAfterRejection()
	}

	if err := h.DB.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to handle cancellation request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Cancellation request %s successfully", req.Action),
		"order":   order,
	})
}

// GetCancellationRequests lists orders awaiting a cancellation decision.
func (h *OrderHandler) GetCancellationRequests(c *gin.Context) {
	var orders []models.Order
	if err := h.DB.Preload("Items").Preload("User").
		Where("cancellation_status = ?", models.CancellationPending).
		Order("cancellation_requested_at ASC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cancellation requests"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// CancelOrder cancels the caller's own order outright, without admin
// arbitration. Only allowed while the kitchen has not handed the order off.
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	userID, _ := c.Get("user_id")
	id := c.Param("id")

	var order models.Order
	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if !order.Status.IsDirectlyCancellable() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Order cannot be cancelled in its current state: %s", order.Status),
		})
		return
	}

	order.Status = models.OrderStatusCancelled
	if err := h.DB.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order cancelled successfully",
		"order":   order,
	})
}

// GetOrderStatus is a read-only projection used by the tracking page.
func (h *OrderHandler) GetOrderStatus(c *gin.Context) {
	userID, _ := c.Get("user_id")
	id := c.Param("id")

	var order models.Order
	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":               order.Status,
		"allow_review":         order.AllowReview,
		"cancellation_request": order.CancellationRequest,
	})
}
