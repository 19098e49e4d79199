package paymentmethods

import (
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
)

// Catalog resolves which payment methods an account class may use.
// Individual shoppers pay immediately; business accounts settle through
// quotes or bank transfer.
type Catalog struct{}

// NewCatalog constructs the payment method catalog.
func NewCatalog() Catalog {
	return Catalog{}
}

var methodsByAccountType = map[enums.AccountType][]enums.PaymentMethod{
	enums.AccountTypeIndividual: {
		enums.PaymentMethodCard,
		enums.PaymentMethodPayPal,
	},
	enums.AccountTypeBusiness: {
		enums.PaymentMethodQuote,
		enums.PaymentMethodTransfer,
	},
}

// MethodsFor returns the ordered methods offered to the account class.
// Unknown classes fall back to the individual set.
func (Catalog) MethodsFor(accountType enums.AccountType) []enums.PaymentMethod {
	methods, ok := methodsByAccountType[accountType]
	if !ok {
		methods = methodsByAccountType[enums.AccountTypeIndividual]
	}
	out := make([]enums.PaymentMethod, len(methods))
	copy(out, methods)
	return out
}

// Allowed reports whether the method is offered to the account class.
func (c Catalog) Allowed(accountType enums.AccountType, method enums.PaymentMethod) bool {
	for _, m := range c.MethodsFor(accountType) {
		if m == method {
			return true
		}
	}
	return false
}
