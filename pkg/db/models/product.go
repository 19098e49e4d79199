package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
)

// Product is a catalog entry the storefront renders and carts snapshot.
type Product struct {
	ID                  uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug                string                `gorm:"column:slug;type:text;not null;uniqueIndex"`
	Name                string                `gorm:"column:name;not null"`
	Description         *string               `gorm:"column:description"`
	Category            enums.ProductCategory `gorm:"column:category;type:text;not null"`
	CollectionHandle    *string               `gorm:"column:collection_handle"`
	PriceCents          int                   `gorm:"column:price_cents;not null"`
	CompareAtPriceCents *int                  `gorm:"column:compare_at_price_cents"`
	Currency            enums.Currency        `gorm:"column:currency;not null;default:'EUR'"`
	Features            pq.StringArray        `gorm:"column:features;type:text[]"`
	StockQty            int                   `gorm:"column:stock_qty;not null;default:0"`
	IsActive            bool                  `gorm:"column:is_active;not null;default:true"`
	CreatedAt           time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
