package models

import "time"

type OrderStatus string

const (
	// Order statuses (storefront flow)
	OrderStatusPending        OrderStatus = "pending"          // Order placed, awaiting confirmation
	OrderStatusProcessing     OrderStatus = "processing"       // Being prepared
	OrderStatusShipped        OrderStatus = "shipped"          // Handed to the carrier (shipping orders)
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery" // On the van (local delivery orders)
	OrderStatusDelivered      OrderStatus = "delivered"        // Customer received the order
	OrderStatusCancelled      OrderStatus = "cancelled"        // Cancelled by admin
)

const (
	MethodDelivery = "delivery" // local NYC delivery
	MethodShipping = "shipping" // US shipping
)

type Order struct {
	ID             uint        `gorm:"primaryKey" json:"-"`
	OrderRef       string      `gorm:"uniqueIndex;not null" json:"orderId"` // human-facing order number
	CustomerName   string      `gorm:"not null" json:"customerName"`
	Email          string      `gorm:"not null" json:"email"`
	Phone          string      `gorm:"not null" json:"phone"`
	Items          []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	DeliveryMethod string      `gorm:"type:VARCHAR(20);not null" json:"deliveryMethod"` // "delivery" | "shipping"
	Borough        string      `json:"borough,omitempty"`
	Address        string      `json:"address"`
	City           string      `json:"city,omitempty"`
	State          string      `json:"state,omitempty"`
	ZipCode        string      `json:"zipCode"`
	DeliveryDate   string      `json:"deliveryDate,omitempty"` // YYYY-MM-DD, delivery orders only
	Subtotal       float64     `json:"subtotal"`
	Fee            float64     `json:"fee"`
	Total          float64     `json:"total"` // always Subtotal + Fee
	Status         OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	NeedsSync      bool        `gorm:"-" json:"needsSync,omitempty"` // local file store only
	CreatedAt      time.Time   `json:"createdAt"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   uint    `gorm:"index" json:"-"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Variation string  `json:"variation,omitempty"`
}
