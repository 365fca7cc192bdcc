package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shoe_store/internal/models"
)

func (r *GormRepo) ListWishlist(ctx context.Context, username string, limit int) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := r.DB.WithContext(ctx).
		Where("username = ?", username).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddToWishlist stores item unless an identical line exists, in which case item
// is overwritten with the stored record and false is returned.
func (r *GormRepo) AddToWishlist(ctx context.Context, item *models.WishlistItem) (bool, error) {
	existing, err := r.findWishlistLine(ctx, item)
	if err == nil {
		*item = *existing
		return false, nil
	}
	if !IsNotFound(err) {
		return false, err
	}

	if err := r.DB.WithContext(ctx).Create(item).Error; err != nil {
		if !IsDuplicate(err) {
			return false, err
		}
		existing, err := r.findWishlistLine(ctx, item)
		if err != nil {
			return false, err
		}
		*item = *existing
		return false, nil
	}
	return true, nil
}

func (r *GormRepo) findWishlistLine(ctx context.Context, item *models.WishlistItem) (*models.WishlistItem, error) {
	var found models.WishlistItem
	if err := r.DB.WithContext(ctx).
		Where("username = ? AND product_id = ? AND size = ? AND color = ?",
			item.Username, item.ProductID, item.Size, item.Color).
		First(&found).Error; err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *GormRepo) DeleteWishlistItem(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.WishlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
