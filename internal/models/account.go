package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Account is the credential record shared by the users and admins tables.
type Account struct {
	ID           uuid.UUID `gorm:"primaryKey"                   json:"id"`
	Email        string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null"                     json:"-"`
	FirstName    string    `                                    json:"firstName"`
	LastName     string    `                                    json:"lastName"`
	Role         string    `gorm:"not null;size:32"             json:"role"`
	CreatedAt    time.Time `gorm:"index"                        json:"createdAt"`
	UpdatedAt    time.Time `                                    json:"updatedAt"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type User struct {
	Account
}

func (User) TableName() string { return "users" }

type Admin struct {
	Account
}

func (Admin) TableName() string { return "admins" }

type RefreshToken struct {
	ID        uuid.UUID `gorm:"primaryKey"                json:"id"`
	JTI       string    `gorm:"not null;size:64;uniqueIndex" json:"jti"`
	TokenHash string    `gorm:"not null;size:64"          json:"-"`
	Subject   string    `gorm:"not null;size:64;index"    json:"subject"`
	Role      string    `gorm:"not null;size:32"          json:"role"`
	ExpiresAt time.Time `gorm:"not null"                  json:"expiresAt"`
	Revoked   bool      `gorm:"not null"                  json:"revoked"`
	CreatedAt time.Time `                                 json:"createdAt"`
}

func (r *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

func All() []any {
	return []any{
		&Product{},
		&ProductCategory{},
		&CartItem{},
		&WishlistItem{},
		&Order{},
		&TotalCount{},
		&User{},
		&Admin{},
		&RefreshToken{},
	}
}
