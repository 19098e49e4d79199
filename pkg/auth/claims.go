package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID      uuid.UUID
	AccountType enums.AccountType
	JTI         string
}

// AccessTokenClaims represents the typed JWT issued to storefront clients.
type AccessTokenClaims struct {
	UserID      uuid.UUID         `json:"user_id"`
	AccountType enums.AccountType `json:"account_type"`
	jwt.RegisteredClaims
}
