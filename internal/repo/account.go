package repo

import (
	"context"

	"github.com/Skotchmaster/shoe_store/internal/models"
	"gorm.io/gorm"
)

// AccountStore reads and writes credential records in one table (users or admins).
type AccountStore struct {
	DB    *gorm.DB
	Table string
	Role  string
}

func NewUserStore(db *gorm.DB) *AccountStore {
	return &AccountStore{DB: db, Table: models.User{}.TableName(), Role: models.RoleCustomer}
}

func NewAdminStore(db *gorm.DB) *AccountStore {
	return &AccountStore{DB: db, Table: models.Admin{}.TableName(), Role: models.RoleAdmin}
}

func (s *AccountStore) DefaultRole() string { return s.Role }

func (s *AccountStore) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var acc models.Account
	if err := s.DB.WithContext(ctx).Table(s.Table).Where("email = ?", email).First(&acc).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}

func (s *AccountStore) FindByID(ctx context.Context, id string) (*models.Account, error) {
	var acc models.Account
	if err := s.DB.WithContext(ctx).Table(s.Table).Where("id = ?", id).First(&acc).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}

func (s *AccountStore) Create(ctx context.Context, acc *models.Account) error {
	return s.DB.WithContext(ctx).Table(s.Table).Create(acc).Error
}

func (s *AccountStore) List(ctx context.Context, limit int) ([]models.Account, error) {
	var out []models.Account
	if err := s.DB.WithContext(ctx).Table(s.Table).Order("created_at DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AccountStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Table(s.Table).Count(&n).Error
	return n, err
}
