package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
)

// User represents the canonical identity entity. Business accounts carry
// a class-level discount rate expressed in basis points.
type User struct {
	ID              uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email           string            `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash    string            `gorm:"column:password_hash;not null"`
	FirstName       string            `gorm:"column:first_name;not null"`
	LastName        string            `gorm:"column:last_name;not null"`
	Phone           *string           `gorm:"column:phone"`
	AccountType     enums.AccountType `gorm:"column:account_type;type:text;not null;default:'individual'"`
	CompanyName     *string           `gorm:"column:company_name"`
	SiretNumber     *string           `gorm:"column:siret_number"`
	DiscountRateBps int               `gorm:"column:discount_rate_bps;not null;default:0"`
	IsActive        bool              `gorm:"column:is_active;not null;default:true"`
	LastLoginAt     *time.Time        `gorm:"column:last_login_at"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// IsBusiness reports whether the user belongs to the B2B class.
func (u *User) IsBusiness() bool {
	return u != nil && u.AccountType == enums.AccountTypeBusiness
}
