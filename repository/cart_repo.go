package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openmart/shop-api/apperr"
	"github.com/openmart/shop-api/logger"
	"github.com/openmart/shop-api/models"
)

// CartRepo persists one cart per user. Appends for the same owner are
// serialized by locking that owner's cart row, so writers for different
// owners never contend.
type CartRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartRepo(db *gorm.DB, baseLog *logger.Logger) *CartRepo {
	return &CartRepo{db: db, log: baseLog.With("repo", "CartRepo")}
}

func (r *CartRepo) FindByOwner(ctx context.Context, ownerID string) (models.Cart, error) {
	var found models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", ownerID).
		First(&found).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Cart{}, apperr.ErrNoCart
	}
	if err != nil {
		return models.Cart{}, err
	}
	return found, nil
}

// AppendItem inserts a new line item inside one transaction: lock the
// owner's cart row, create it first if needed, insert the item, reload.
// Either the item is durably appended or the whole call fails.
func (r *CartRepo) AppendItem(ctx context.Context, ownerID string, item models.CartItem) (models.Cart, error) {
	var out models.Cart
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned, err := r.lockOrCreate(tx, ownerID)
		if err != nil {
			return err
		}

		item.CartID = owned.CartID
		if item.AddedAt.IsZero() {
			item.AddedAt = time.Now()
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		return tx.Preload("Items").First(&out, "cart_id = ?", owned.CartID).Error
	})
	if err != nil {
		r.log.Error("append item transaction failed", "owner_id", ownerID, "err", err)
		return models.Cart{}, err
	}
	return out, nil
}

// lockOrCreate takes the per-owner row lock, lazily creating the cart on a
// user's first add. Two first-adds can race on the insert; ON CONFLICT DO
// NOTHING keeps the transaction alive so the loser just locks the winner's
// row on the re-read.
func (r *CartRepo) lockOrCreate(tx *gorm.DB, ownerID string) (models.Cart, error) {
	var owned models.Cart
	err := lockForUpdate(tx).Where("user_id = ?", ownerID).First(&owned).Error
	if err == nil {
		return owned, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Cart{}, err
	}

	fresh := models.Cart{UserID: ownerID}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&fresh).Error; err != nil {
		return models.Cart{}, err
	}

	err = lockForUpdate(tx).Where("user_id = ?", ownerID).First(&owned).Error
	return owned, err
}

// lockForUpdate applies SELECT ... FOR UPDATE where the dialect supports
// it. SQLite has no row locks; its single-writer transaction lock already
// serializes appends.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
