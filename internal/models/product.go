package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	GenderMen    = "men"
	GenderWomen  = "women"
	GenderUnisex = "unisex"

	StockIn  = "In Stock"
	StockOut = "Out of Stock"
)

type Product struct {
	ID            uuid.UUID `gorm:"primaryKey"                      json:"id"`
	Name          string    `gorm:"not null;index"                  json:"name"`
	Price         float64   `gorm:"not null;check:price >= 0"       json:"price"`
	OriginalPrice *float64  `                                       json:"originalPrice,omitempty"`
	Description   string    `                                       json:"description"`
	Image         string    `                                       json:"image"`
	Sizes         []string  `gorm:"serializer:json"                 json:"sizes"`
	Colors        []string  `gorm:"serializer:json"                 json:"colors"`
	Features      []string  `gorm:"serializer:json"                 json:"features"`
	Category      []string  `gorm:"serializer:json"                 json:"category"`
	Brand         string    `gorm:"index"                           json:"brand"`
	Gender        string    `gorm:"not null;index"                  json:"gender"`
	Quantity      int       `gorm:"not null;check:quantity >= 0"    json:"quantity"`
	InStock       bool      `gorm:"not null"                        json:"inStock"`
	Rating        float64   `gorm:"not null"                        json:"rating"`
	ReviewCount   int       `gorm:"not null"                        json:"reviews"`
	StockStatus   string    `gorm:"-"                               json:"stockStatus"`
	CreatedAt     time.Time `gorm:"index"                           json:"createdAt"`
	UpdatedAt     time.Time `                                       json:"updatedAt"`
}

// ProductCategory holds one normalized category token of a product.
type ProductCategory struct {
	ProductID uuid.UUID `gorm:"primaryKey"          json:"productId"`
	Name      string    `gorm:"primaryKey;size:128" json:"name"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Product) AfterFind(tx *gorm.DB) error {
	p.deriveStock()
	return nil
}

func (p *Product) AfterSave(tx *gorm.DB) error {
	p.deriveStock()
	return nil
}

func (p *Product) deriveStock() {
	if p.Quantity == 0 {
		p.StockStatus = StockOut
		return
	}
	p.StockStatus = StockIn
}

func (Product) TableName() string { return "products" }

func (ProductCategory) TableName() string { return "product_categories" }
