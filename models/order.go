package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusProcessing            OrderStatus = "Food Processing"
	OrderStatusPrepared              OrderStatus = "Your food is prepared"
	OrderStatusOutForDelivery        OrderStatus = "Out for Delivery"
	OrderStatusDelivered             OrderStatus = "Delivered"
	OrderStatusCancelled             OrderStatus = "Cancelled"
	OrderStatusCancellationRequested OrderStatus = "cancellation_requested"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

const (
	PaymentMethodCOD    = "cod"
	PaymentMethodOnline = "online"
)

type CancellationStatus string

const (
	CancellationPending  CancellationStatus = "pending"
	CancellationApproved CancellationStatus = "approved"
	CancellationRejected CancellationStatus = "rejected"
)

// Address holds the structured delivery/invoicing address snapshotted on the order.
type Address struct {
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

// CancellationRequest is the user-initiated, admin-arbitrated sub-workflow.
// At most one is active per order. PreviousStatus records the status the order
// held when the request was filed, so a rejection can restore it exactly.
type CancellationRequest struct {
	Reason         string             `json:"reason,omitempty"`
	RequestedAt    *time.Time         `json:"requested_at,omitempty"`
	Status         CancellationStatus `json:"status,omitempty"`
	AdminResponse  string             `json:"admin_response,omitempty"`
	PreviousStatus OrderStatus        `json:"previous_status,omitempty"`
}

type Order struct {
	ID                  uuid.UUID           `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID              uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	User                User                `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderNumber         string              `gorm:"uniqueIndex;not null" json:"order_number"`
	Items               []OrderItem         `gorm:"foreignKey:OrderID" json:"items"`
	Amount              float64             `gorm:"not null" json:"amount"`
	Discount            float64             `gorm:"default:0" json:"discount"`
	CouponCode          string              `gorm:"default:''" json:"coupon_code"`
	Status              OrderStatus         `gorm:"default:'Food Processing'" json:"status"`
	PaymentMethod       string              `gorm:"not null" json:"payment_method"`
	PaymentStatus       PaymentStatus       `gorm:"default:pending" json:"payment_status"`
	Payment             bool                `gorm:"default:false" json:"payment"` // legacy settled flag, duplicates PaymentStatus
	AllowReview         bool                `gorm:"default:false" json:"allow_review"`
	DeliveryAddress     string              `gorm:"not null" json:"delivery_address"`
	ContactNumber       string              `gorm:"not null" json:"contact_number"`
	Address             Address             `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	CancellationRequest CancellationRequest `gorm:"embedded;embeddedPrefix:cancellation_" json:"cancellation_request"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
	DeletedAt           gorm.DeletedAt      `gorm:"index" json:"-"`
}

type OrderItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	FoodID     uuid.UUID `gorm:"type:uuid;not null;index" json:"food_id"`
	Name       string    `gorm:"not null" json:"name"` // snapshot of food name at order time
	Quantity   int       `gorm:"not null" json:"quantity"`
	Price      float64   `gorm:"not null" json:"price"` // snapshot of unit price at order time
	IsReviewed bool      `gorm:"default:false" json:"is_reviewed"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.OrderNumber == "" {
		o.OrderNumber = "ORD" + time.Now().Format("20060102150405") + o.ID.String()[:8]
	}
	return nil
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// HasPendingCancellation reports whether an unresolved cancellation request
// blocks ordinary status updates on this order.
func (o *Order) HasPendingCancellation() bool {
	return o.CancellationRequest.Status == CancellationPending
}

// AllowedTransitions defines the order status state machine for admin updates.
// Forward jumps may skip intermediate states; Delivered and Cancelled are
// terminal. cancellation_requested is entered and left only through the
// cancellation events, never through an ordinary status update.
var AllowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusProcessing:            {OrderStatusPrepared, OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusPrepared:              {OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusOutForDelivery:        {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:             {},
	OrderStatusCancelled:             {},
	OrderStatusCancellationRequested: {},
}

// IsValidTransition checks whether an admin status update from one state to
// another is allowed by the state machine.
func IsValidTransition(from, to OrderStatus) bool {
	allowed, exists := AllowedTransitions[from]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// ValidStatuses lists every status an admin may set directly.
var ValidStatuses = []OrderStatus{
	OrderStatusProcessing,
	OrderStatusPrepared,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValidStatus reports whether s is a member of the admin-settable enum.
func IsValidStatus(s OrderStatus) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition may leave this status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// IsDirectlyCancellable reports whether the order owner may cancel outright,
// without going through the request/approval workflow.
func (s OrderStatus) IsDirectlyCancellable() bool {
	return s == OrderStatusProcessing || s == OrderStatusPrepared
}

// DescribeTransitionsFrom renders the allowed next statuses for error messages.
func DescribeTransitionsFrom(s OrderStatus) string {
	allowed := AllowedTransitions[s]
	if len(allowed) == 0 {
		return "none (terminal state)"
	}
	parts := make([]string, len(allowed))
	for i, a := range allowed {
		parts[i] = string(a)
	}
	return strings.Join(parts, ", ")
}

// RevertStatusAfterRejection picks the status an order returns to when an
// admin rejects its cancellation request. The stored previous status wins;
// orders predating that field fall back to the old item-reviewed heuristic.
func (o *Order) RevertStatusAfterRejection() OrderStatus {
	if prev := o.CancellationRequest.PreviousStatus; prev != "" {
		return prev
	}
	for _, item := range o.Items {
		if item.IsReviewed {
			return OrderStatusPrepared
		}
	}
	return OrderStatusProcessing
}
