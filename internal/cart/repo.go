package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GESTIONMAX/my-vision-connect-sub001/internal/repo"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/db/models"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
)

// Repository exposes persistence operations for shopper carts.
type Repository struct {
	base repo.Base
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &Repository{base: r.base.WithTx(tx)}
}

// FindActiveByShopper loads the active cart with its items for the shopper.
func (r *Repository) FindActiveByShopper(ctx context.Context, shopperID string) (*models.CartRecord, error) {
	var record models.CartRecord
	err := r.base.DB(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC")
		}).
		Where("shopper_id = ? AND status = ?", shopperID, enums.CartStatusActive).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Create inserts a new CartRecord.
func (r *Repository) Create(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error) {
	if record.Status == "" {
		record.Status = enums.CartStatusActive
	}
	if record.Currency == "" {
		record.Currency = enums.CurrencyEUR
	}
	if err := r.base.DB(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// FindItem returns the line for the product inside a cart, if present.
func (r *Repository) FindItem(ctx context.Context, cartID, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.base.DB(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a new cart line.
func (r *Repository) CreateItem(ctx context.Context, item *models.CartItem) error {
	return r.base.DB(ctx).Create(item).Error
}

// UpdateItemQuantity sets the quantity for an existing line.
func (r *Repository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return r.base.DB(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

// DeleteItem removes the line for the product from a cart.
func (r *Repository) DeleteItem(ctx context.Context, cartID, productID uuid.UUID) error {
	return r.base.DB(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{}).Error
}

// DeleteItems removes every line from a cart.
func (r *Repository) DeleteItems(ctx context.Context, cartID uuid.UUID) error {
	return r.base.DB(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error
}

// LinkUser associates the shopper's active cart with an authenticated user.
func (r *Repository) LinkUser(ctx context.Context, shopperID string, userID uuid.UUID) error {
	return r.base.DB(ctx).
		Model(&models.CartRecord{}).
		Where("shopper_id = ? AND status = ?", shopperID, enums.CartStatusActive).
		Update("user_id", userID).Error
}

// UpdateStatus moves the shopper's active cart into the given status.
func (r *Repository) UpdateStatus(ctx context.Context, cartID uuid.UUID, status enums.CartStatus) error {
	return r.base.DB(ctx).
		Model(&models.CartRecord{}).
		Where("id = ?", cartID).
		Update("status", status).Error
}
