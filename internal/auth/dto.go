package auth

import (
	"github.com/GESTIONMAX/my-vision-connect-sub001/internal/users"
)

// LoginRequest is the credential payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the account-creation payload. Business accounts must
// provide a company name.
type RegisterRequest struct {
	Email                string  `json:"email" validate:"required,email"`
	Password             string  `json:"password" validate:"required"`
	PasswordConfirmation string  `json:"password_confirmation" validate:"required"`
	FirstName            string  `json:"first_name" validate:"required"`
	LastName             string  `json:"last_name" validate:"required"`
	Phone                *string `json:"phone,omitempty"`
	AccountType          string  `json:"account_type" validate:"required,oneof=individual business"`
	CompanyName          *string `json:"company_name,omitempty"`
	SiretNumber          *string `json:"siret_number,omitempty"`
}

// RefreshRequest rotates an access/refresh token pair.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse is returned by login, register, and refresh.
type AuthResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         users.DTO `json:"user"`
}
