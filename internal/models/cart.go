package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartItem struct {
	ID        uuid.UUID `gorm:"primaryKey"                                  json:"id"`
	UserName  string    `gorm:"not null;size:255;uniqueIndex:idx_cart_line" json:"userName"`
	ProductID uuid.UUID `gorm:"not null;uniqueIndex:idx_cart_line"          json:"productId"`
	Size      string    `gorm:"not null;size:64;uniqueIndex:idx_cart_line"  json:"size"`
	Color     string    `gorm:"not null;size:64;uniqueIndex:idx_cart_line"  json:"color"`
	Name      string    `gorm:"not null"                                    json:"name"`
	Price     float64   `gorm:"not null"                                    json:"price"`
	Image     string    `                                                   json:"image"`
	Quantity  int       `gorm:"not null;check:quantity > 0"                 json:"quantity"`
	CreatedAt time.Time `gorm:"index"                                       json:"createdAt"`
	UpdatedAt time.Time `                                                   json:"updatedAt"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string { return "cart_items" }

type WishlistItem struct {
	ID        uuid.UUID `gorm:"primaryKey"                                  json:"id"`
	Username  string    `gorm:"not null;size:255;uniqueIndex:idx_wish_line" json:"username"`
	ProductID uuid.UUID `gorm:"not null;uniqueIndex:idx_wish_line"          json:"productId"`
	Size      string    `gorm:"not null;size:64;uniqueIndex:idx_wish_line"  json:"size"`
	Color     string    `gorm:"not null;size:64;uniqueIndex:idx_wish_line"  json:"color"`
	Name      string    `gorm:"not null"                                    json:"name"`
	Price     float64   `gorm:"not null"                                    json:"price"`
	Image     string    `                                                   json:"image"`
	CreatedAt time.Time `gorm:"index"                                       json:"createdAt"`
}

func (w *WishlistItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

func (WishlistItem) TableName() string { return "wishlist_items" }
