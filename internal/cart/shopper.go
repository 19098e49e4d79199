package cart

import (
	"github.com/google/uuid"

	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
)

// Shopper identifies who a cart belongs to. Guests carry only the
// client-generated shopper id; authenticated users add their account
// class and negotiated discount.
type Shopper struct {
	ID              string
	AccountType     enums.AccountType
	DiscountRateBps int
	UserID          *uuid.UUID
}

// EffectiveAccountType defaults guests to the individual class.
func (s Shopper) EffectiveAccountType() enums.AccountType {
	if s.AccountType.IsValid() {
		return s.AccountType
	}
	return enums.AccountTypeIndividual
}
