package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
)

// CartItem snapshots one product line inside a CartRecord. Name, category
// and prices are copied at add time so later catalog edits do not reprice
// a cart under the shopper.
type CartItem struct {
	ID                      uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID                  uuid.UUID             `gorm:"column:cart_id;type:uuid;not null;index"`
	ProductID               uuid.UUID             `gorm:"column:product_id;type:uuid;not null"`
	Name                    string                `gorm:"column:name;not null"`
	Category                enums.ProductCategory `gorm:"column:category;type:text;not null"`
	UnitPriceCents          int                   `gorm:"column:unit_price_cents;not null"`
	CompareAtUnitPriceCents *int                  `gorm:"column:compare_at_unit_price_cents"`
	Quantity                int                   `gorm:"column:quantity;not null"`
	CreatedAt               time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt               time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
