package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shoe_store/internal/models"
	"github.com/Skotchmaster/shoe_store/internal/transport"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *GormRepo) ListProducts(ctx context.Context, f transport.ProductFilter, limit int) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})

	if len(f.Genders) > 0 {
		q = q.Where("LOWER(gender) IN ?", lowerAll(f.Genders))
	}
	if len(f.Brands) > 0 {
		q = q.Where("LOWER(brand) IN ?", lowerAll(f.Brands))
	}
	// every requested category must be present
	for _, c := range f.Categories {
		sub := r.DB.Model(&models.ProductCategory{}).
			Select("product_id").
			Where("name = ?", strings.ToLower(c))
		q = q.Where("id IN (?)", sub)
	}
	if f.Query != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(f.Query))+"%")
	}

	var items []models.Product
	if err := q.Order(sortOrder(f.Sort)).Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func sortOrder(s string) string {
	switch s {
	case transport.SortPriceLow:
		return "price ASC, created_at ASC"
	case transport.SortPriceHigh:
		return "price DESC, created_at ASC"
	case transport.SortNewest:
		return "created_at DESC"
	case transport.SortRating:
		return "rating DESC, created_at ASC"
	default:
		return "created_at ASC"
	}
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.ToLower(v)
	}
	return out
}

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) AllProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	out := make(map[uuid.UUID]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var items []models.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, p := range items {
		out[p.ID] = p
	}
	return out, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return replaceCategories(tx, p.ID, p.Category)
	})
}

func (r *GormRepo) UpdateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		return replaceCategories(tx, p.ID, p.Category)
	})
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.Product{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("product_id = ?", id).Delete(&models.ProductCategory{}).Error
	})
}

func (r *GormRepo) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&n).Error
	return n, err
}

func replaceCategories(tx *gorm.DB, id uuid.UUID, display []string) error {
	if err := tx.Where("product_id = ?", id).Delete(&models.ProductCategory{}).Error; err != nil {
		return err
	}
	rows := CategoryRows(id, display)
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// CategoryRows flattens display categories ("Running, Trail") into lower-cased,
// de-duplicated membership rows.
func CategoryRows(id uuid.UUID, display []string) []models.ProductCategory {
	seen := map[string]struct{}{}
	var rows []models.ProductCategory
	for _, tok := range transport.SplitTokens(display...) {
		name := strings.ToLower(tok)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		rows = append(rows, models.ProductCategory{ProductID: id, Name: name})
	}
	return rows
}
