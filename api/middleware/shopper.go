package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/GESTIONMAX/my-vision-connect-sub001/api/responses"
	pkgerrors "github.com/GESTIONMAX/my-vision-connect-sub001/pkg/errors"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/logger"
)

const shopperIDHeader = "X-Shopper-Id"

const maxShopperIDLen = 128

// ShopperContext requires the client-generated shopper identifier and seeds
// it into the request context. Cart and checkout state hangs off this id.
func ShopperContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			shopperID := strings.TrimSpace(r.Header.Get(shopperIDHeader))
			if shopperID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "shopper id header is required"))
				return
			}
			if len(shopperID) > maxShopperIDLen {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "shopper id is too long"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxShopperID, shopperID)
			if logg != nil {
				ctx = logg.WithShopperID(ctx, shopperID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalShopperContext seeds the shopper id when the header is present.
// Auth endpoints use it so a mid-checkout login can link the cart.
func OptionalShopperContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			shopperID := strings.TrimSpace(r.Header.Get(shopperIDHeader))
			if shopperID == "" || len(shopperID) > maxShopperIDLen {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxShopperID, shopperID)
			if logg != nil {
				ctx = logg.WithShopperID(ctx, shopperID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
