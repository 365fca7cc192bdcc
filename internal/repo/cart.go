package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shoe_store/internal/models"
)

func (r *GormRepo) ListCart(ctx context.Context, userName string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("user_name = ?", userName).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart merges into the line with the same (user, product, size, color) or
// creates it. A concurrent insert of the same line falls back to the merge path.
func (r *GormRepo) AddToCart(ctx context.Context, item *models.CartItem) (bool, error) {
	created, err := r.addToCart(ctx, item)
	if IsDuplicate(err) {
		return r.addToCart(ctx, item)
	}
	return created, err
}

func (r *GormRepo) addToCart(ctx context.Context, item *models.CartItem) (bool, error) {
	created := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		line := func(db *gorm.DB) *gorm.DB {
			return db.Where("user_name = ? AND product_id = ? AND size = ? AND color = ?",
				item.UserName, item.ProductID, item.Size, item.Color)
		}

		res := line(tx.Model(&models.CartItem{})).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			// item.ID may already hold the uuid of a create that lost the race.
			var merged models.CartItem
			if err := line(tx).First(&merged).Error; err != nil {
				return err
			}
			*item = merged
			return nil
		}

		if err := tx.Create(item).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

func (r *GormRepo) UpdateCartQuantity(ctx context.Context, id uuid.UUID, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).Where("id = ?", id).Update("quantity", quantity)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ?", id).First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) DeleteCartItem(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ClearCart(ctx context.Context, userName string) (int64, error) {
	res := r.DB.WithContext(ctx).Where("user_name = ?", userName).Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}
