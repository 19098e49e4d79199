package controllers

import (
	"net/http"
	"strings"

	"github.com/GESTIONMAX/my-vision-connect-sub001/api/middleware"
	"github.com/GESTIONMAX/my-vision-connect-sub001/api/responses"
	"github.com/GESTIONMAX/my-vision-connect-sub001/api/validators"
	checkoutsvc "github.com/GESTIONMAX/my-vision-connect-sub001/internal/checkout"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/enums"
	pkgerrors "github.com/GESTIONMAX/my-vision-connect-sub001/pkg/errors"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/logger"
)

type selectPaymentMethodRequest struct {
	Method string `json:"method" validate:"required"`
}

// CheckoutStart opens a checkout session on the cart step.
func CheckoutStart(svc checkoutsvc.Service, users accountLoader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		shopper, err := shopperFromContext(r.Context(), users)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Start(r.Context(), shopper)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, session)
	}
}

// CheckoutGet returns the current session snapshot.
func CheckoutGet(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		session, err := svc.Get(r.Context(), middleware.ShopperIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}

// CheckoutAdvance moves the session one step forward.
func CheckoutAdvance(svc checkoutsvc.Service, users accountLoader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		shopper, err := shopperFromContext(r.Context(), users)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Advance(r.Context(), shopper)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}

// CheckoutBack moves the session one step backward.
func CheckoutBack(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		session, err := svc.Back(r.Context(), middleware.ShopperIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}

// CheckoutSelectPaymentMethod records the shopper's payment choice.
func CheckoutSelectPaymentMethod(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var body selectPaymentMethodRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(strings.TrimSpace(body.Method))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method"))
			return
		}

		session, err := svc.SelectPaymentMethod(r.Context(), middleware.ShopperIDFromContext(r.Context()), method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}

// CheckoutPaymentOptions lists the methods offered to the session's account class.
func CheckoutPaymentOptions(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		methods, err := svc.PaymentOptions(r.Context(), middleware.ShopperIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"methods": methods})
	}
}

// CheckoutAbandon tears the session down, clears the cart, and queues the
// home redirect.
func CheckoutAbandon(svc checkoutsvc.Service, users accountLoader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		shopper, err := shopperFromContext(r.Context(), users)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Abandon(r.Context(), shopper); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "abandoned"})
	}
}

// CheckoutRedirect is polled by the storefront after confirmation. Once the
// confirmation delay elapses it hands out the home path exactly once.
func CheckoutRedirect(registry *RedirectRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if registry == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "redirect registry unavailable"))
			return
		}

		path, ok := registry.Consume(middleware.ShopperIDFromContext(r.Context()))
		if !ok {
			responses.WriteSuccess(w, map[string]any{"redirect": nil})
			return
		}

		responses.WriteSuccess(w, map[string]any{"redirect": path})
	}
}
