package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
)

// CartRecord is the shopper-scoped cart. Monetary aggregates are derived
// at read time by the pricing calculator and never stored here.
type CartRecord struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShopperID string           `gorm:"column:shopper_id;type:text;not null;index"`
	UserID    *uuid.UUID       `gorm:"column:user_id;type:uuid"`
	Status    enums.CartStatus `gorm:"column:status;type:text;not null;default:'active'"`
	Currency  enums.Currency   `gorm:"column:currency;not null;default:'EUR'"`
	Items     []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
