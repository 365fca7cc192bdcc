package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"

	ExpectedDeliveryText = "within 7 days from order"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Image     string  `json:"image"`
}

type Totals struct {
	Subtotal float64 `gorm:"not null" json:"subtotal"`
	Shipping float64 `gorm:"not null" json:"shipping"`
	Tax      float64 `gorm:"not null" json:"tax"`
	Total    float64 `gorm:"not null" json:"total"`
}

type ShippingAddress struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone"`
}

type Order struct {
	ID                   uuid.UUID       `gorm:"primaryKey"                           json:"id"`
	OrderNumber          string          `gorm:"not null;size:64;uniqueIndex"         json:"orderNumber"`
	Username             string          `gorm:"not null;size:255;index"              json:"username"`
	Items                []OrderItem     `gorm:"serializer:json;not null"             json:"items"`
	Totals               Totals          `gorm:"embedded;embeddedPrefix:totals_"      json:"totals"`
	Shipping             ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_"    json:"shipping"`
	Status               string          `gorm:"not null;size:32;index"               json:"status"`
	ExpectedDeliveryText string          `gorm:"not null"                             json:"expectedDeliveryText"`
	CreatedAt            time.Time       `gorm:"index"                                json:"createdAt"`
	UpdatedAt            time.Time       `                                            json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (Order) TableName() string { return "orders" }

// TotalCount is a periodically refreshed snapshot used by the admin dashboard.
type TotalCount struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TotalOrders  int64     `gorm:"not null"                 json:"totalOrders"`
	TotalUsers   int64     `gorm:"not null"                 json:"totalUsers"`
	TotalRevenue float64   `gorm:"not null"                 json:"totalRevenue"`
	CreatedAt    time.Time `                                json:"updatedAt"`
}

func (TotalCount) TableName() string { return "total_counts" }
