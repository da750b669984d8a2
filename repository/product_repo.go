package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/openmart/shop-api/apperr"
	"github.com/openmart/shop-api/logger"
	"github.com/openmart/shop-api/models"
)

// ProductRepo backs the catalog port consumed by the cart service.
type ProductRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) *ProductRepo {
	return &ProductRepo{db: db, log: baseLog.With("repo", "ProductRepo")}
}

// GetPrice resolves a product's price in minor units. A deleted or unknown
// product is reported as not found, never as a zero price.
func (r *ProductRepo) GetPrice(ctx context.Context, productID uint) (int64, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Select("id", "price_cents").
		First(&product, "id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("product %d: %w", productID, apperr.ErrNotFound)
	}
	if err != nil {
		r.log.Error("price lookup failed", "product_id", productID, "err", err)
		return 0, err
	}
	return product.PriceCents, nil
}

// List returns the full catalog, newest first.
func (r *ProductRepo) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
