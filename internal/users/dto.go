package users

import (
	"github.com/google/uuid"

	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/db/models"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
)

// DTO is the safe user representation returned to clients.
type DTO struct {
	ID              uuid.UUID         `json:"id"`
	Email           string            `json:"email"`
	FirstName       string            `json:"first_name"`
	LastName        string            `json:"last_name"`
	Phone           *string           `json:"phone,omitempty"`
	AccountType     enums.AccountType `json:"account_type"`
	CompanyName     *string           `json:"company_name,omitempty"`
	DiscountRateBps int               `json:"discount_rate_bps"`
}

// FromModel maps a stored user onto the public DTO.
func FromModel(user *models.User) DTO {
	if user == nil {
		return DTO{}
	}
	return DTO{
		ID:              user.ID,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Phone:           user.Phone,
		AccountType:     user.AccountType,
		CompanyName:     user.CompanyName,
		DiscountRateBps: user.DiscountRateBps,
	}
}
