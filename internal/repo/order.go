package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shoe_store/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, o *models.Order) error {
	return r.DB.WithContext(ctx).Create(o).Error
}

// ListOrders returns the newest orders first; an empty username lists everyone's.
func (r *GormRepo) ListOrders(ctx context.Context, username string, limit int) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if username != "" {
		q = q.Where("username = ?", username)
	}
	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var o models.Order
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	var o models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ?", id).First(&o).Error
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *GormRepo) CountOrders(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).Count(&n).Error
	return n, err
}

func (r *GormRepo) SumRevenue(ctx context.Context) (float64, error) {
	var sum float64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("COALESCE(SUM(totals_total), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *GormRepo) LatestSnapshot(ctx context.Context) (*models.TotalCount, error) {
	var tc models.TotalCount
	if err := r.DB.WithContext(ctx).Order("id DESC").First(&tc).Error; err != nil {
		return nil, err
	}
	return &tc, nil
}

func (r *GormRepo) SaveSnapshot(ctx context.Context, tc *models.TotalCount) error {
	return r.DB.WithContext(ctx).Create(tc).Error
}
