package models

// DeliverySetting holds the per-borough delivery fee schedule. Seeded at
// startup; read-only to the checkout flow.
type DeliverySetting struct {
	ID                  uint    `gorm:"primaryKey" json:"-"`
	Borough             string  `gorm:"uniqueIndex;not null" json:"borough"`
	DeliveryFee         float64 `json:"deliveryFee"`
	FreeDeliveryMinimum float64 `json:"freeDeliveryMinimum"`
}
