package cart

import "github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"

const (
	// MaxQuantityIndividual caps a single line for retail shoppers.
	MaxQuantityIndividual = 10
	// MaxQuantityBusiness caps a single line for B2B accounts.
	MaxQuantityBusiness = 999
)

// MaxQuantityFor returns the per-line quantity cap for the account type.
func MaxQuantityFor(accountType enums.AccountType) int {
	if accountType == enums.AccountTypeBusiness {
		return MaxQuantityBusiness
	}
	return MaxQuantityIndividual
}
