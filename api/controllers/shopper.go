package controllers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GESTIONMAX/my-vision-connect-sub001/api/middleware"
	"github.com/GESTIONMAX/my-vision-connect-sub001/internal/cart"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/db/models"
	pkgerrors "github.com/GESTIONMAX/my-vision-connect-sub001/pkg/errors"
)

// accountLoader resolves the signed-in user backing a request, when any.
type accountLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// shopperFromContext assembles the cart identity for the request. Guests
// carry only the shopper id; authenticated shoppers pick up their account
// class and negotiated discount from the user record.
func shopperFromContext(ctx context.Context, users accountLoader) (cart.Shopper, error) {
	shopper := cart.Shopper{ID: middleware.ShopperIDFromContext(ctx)}
	if shopper.ID == "" {
		return cart.Shopper{}, pkgerrors.New(pkgerrors.CodeValidation, "shopper id is required")
	}

	rawUserID := middleware.UserIDFromContext(ctx)
	if rawUserID == "" || users == nil {
		return shopper, nil
	}

	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return cart.Shopper{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}

	user, err := users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// stale token; serve the request as a guest
		return shopper, nil
	}
	if err != nil {
		return cart.Shopper{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	shopper.UserID = &user.ID
	shopper.AccountType = user.AccountType
	shopper.DiscountRateBps = user.DiscountRateBps
	return shopper, nil
}
